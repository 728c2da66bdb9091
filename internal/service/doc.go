// Package service contains the application use cases. Services validate
// input into domain values, run mutations inside a store.UnitOfWork, publish
// the resulting domain events and report the outcome as a result.Result.
//
// Expected business outcomes (not found, uniqueness clashes, mismatches) are
// returned as failure reasons. Infrastructure errors are logged in redacted
// form and surface as failure.Error with a fixed message.
//
// Every mutating operation follows the same shape:
//
//  1. check the request against current state and fail without side effects;
//  2. mutate through the transactional stores;
//  3. build the event from the before and after values;
//  4. publish it, so synchronous subscribers run inside the transaction;
//  5. after commit, release asynchronous deliveries.
//
// A failing synchronous subscriber rolls the transaction back and its
// asynchronous deliveries are dropped.
package service
