// Package events defines the domain events emitted by services and the Bus
// that delivers them to subscribers.
//
// Every event belongs to one Family. Subscribers register on the generic
// channel (every event), on a family channel, or on a single event type, and
// choose Sync or Async delivery. Publish walks the channels in that order.
// Sync handlers run inline and their first error aborts the publish; async
// handlers are handed to a WorkerPool and their errors are only logged.
package events
