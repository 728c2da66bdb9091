// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store. Stores run over store.DBTX so the
// same code serves plain connections and transactions; UnitOfWork binds them
// to one transaction. The schema ships as embedded goose migrations.
package postgres
