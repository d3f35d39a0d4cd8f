package commands

import (
	"context"
	"errors"
	"time"

	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/ports"
)

func resultOf(err error) syncattempt.Result {
	switch {
	case err == nil:
		return syncattempt.Result{Outcome: syncattempt.OutcomeSucceeded}
	case errors.Is(err, ports.ErrUnexpectedStatus):
		return syncattempt.Result{
			Outcome:    syncattempt.OutcomeRejected,
			HTTPStatus: ports.StatusCodeOf(err),
			Error:      err.Error(),
		}
	default:
		return syncattempt.Result{Outcome: syncattempt.OutcomeTransportError, Error: err.Error()}
	}
}

func recordAttempts(ctx context.Context, factory LedgerUoWFactory, attempts []*syncattempt.Attempt) error {
	if len(attempts) == 0 {
		return nil
	}

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SyncAttemptRepository()
	for _, a := range attempts {
		if err := repo.Add(ctx, a); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
