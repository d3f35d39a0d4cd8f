package queries

import (
	"context"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSyncAttemptsQueryHandler reads the sync_attempts table directly.
type GetSyncAttemptsQueryHandler struct {
	db *gorm.DB
}

func NewGetSyncAttemptsQueryHandler(db *gorm.DB) GetSyncAttemptsQueryHandler {
	return GetSyncAttemptsQueryHandler{db: db}
}

func (h GetSyncAttemptsQueryHandler) Handle(
	ctx context.Context,
	query GetSyncAttemptsQuery,
) ([]GetSyncAttemptsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	attempts := make([]GetSyncAttemptsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			woo_order_id,
			woo_vendor_id,
			sync_trigger,
			kind,
			woo_status,
			item_count,
			total,
			outcome,
			http_status,
			error,
			created_at
		FROM sync_attempts
		WHERE ? = 0 OR woo_order_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.WooOrderID(), query.WooOrderID(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			attempt                GetSyncAttemptsQueryResponse
			id                     uuid.UUID
			trigger, kind, outcome string
		)

		err = rows.Scan(
			&id,
			&attempt.WooOrderID,
			&attempt.VendorID,
			&trigger,
			&kind,
			&attempt.WooStatus,
			&attempt.ItemCount,
			&attempt.Total,
			&outcome,
			&attempt.HTTPStatus,
			&attempt.Error,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		attemptID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		attempt.ID = attemptID
		attempt.Trigger = syncattempt.Trigger(trigger)
		attempt.Kind = syncattempt.Kind(kind)
		attempt.Outcome = syncattempt.Outcome(outcome)
		attempt.CreatedAt = attempt.CreatedAt.UTC()

		attempts = append(attempts, attempt)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}
