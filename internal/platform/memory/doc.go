// Package memory provides in-process implementations of the store
// interfaces. Transactions are serialized and roll back by restoring a
// snapshot, so behaviour matches the postgres stores for tests and for
// running the server without a database.
package memory
