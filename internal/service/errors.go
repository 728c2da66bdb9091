package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/redact"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/store"
)

// ErrNilDependency is returned by constructors given a nil collaborator.
var ErrNilDependency = errors.New("service dependency cannot be nil")

// errRollback aborts a unit of work that ended in a business failure.
var errRollback = errors.New("rolled back on business failure")

var (
	personNotFound       = failure.NotFound{Msg: "Person not found"}
	organizationNotFound = failure.NotFound{Msg: "Organization not found"}
)

// transact runs fn in a unit of work. fn returns a value on success, a
// reason for an expected business failure, or an error for anything
// unexpected. Asynchronous deliveries published inside fn are held until
// commit and dropped on rollback.
func transact[T any](
	ctx context.Context,
	uow store.UnitOfWork,
	log *slog.Logger,
	operation string,
	fn func(ctx context.Context, stores store.Stores) (T, failure.Reason, error),
) result.Result[T] {
	ctx, async := events.DeferAsync(ctx)

	var (
		out    T
		reason failure.Reason
	)
	err := uow.RunInTx(ctx, func(ctx context.Context, stores store.Stores) error {
		value, r, err := fn(ctx, stores)
		if err != nil {
			return err
		}
		if r != nil {
			reason = r
			return errRollback
		}
		out = value
		return nil
	})

	if reason != nil {
		async.Discard()
		log.Debug("operation failed",
			slog.String("operation", operation),
			slog.String("kind", string(reason.Kind())))
		return result.Failure[T](reason)
	}
	if err != nil {
		async.Discard()
		return unexpected[T](log, operation, err)
	}

	async.Release()
	return result.Success(out)
}

// unexpected logs err in redacted form and returns the generic failure.
func unexpected[T any](log *slog.Logger, operation string, err error) result.Result[T] {
	var handlerErr *events.HandlerError
	if errors.As(err, &handlerErr) {
		log.Error("synchronous subscriber failed; transaction rolled back",
			slog.String("operation", operation),
			slog.String("subscriber", handlerErr.Subscriber),
			slog.String("event_type", handlerErr.EventType),
			slog.String("error", redact.Error(handlerErr.Err)))
	} else {
		log.Error("operation failed unexpectedly",
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)))
	}
	return result.Failure[T](failure.Internal(err))
}
