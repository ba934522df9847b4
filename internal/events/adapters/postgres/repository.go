package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"calq-destination-service/internal/events/core/domain"
	"calq-destination-service/internal/events/core/ports"

	"github.com/lib/pq"
)

type DeliveryRepository struct {
	db DB
}

func NewDeliveryRepository(db DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

var _ ports.DeliveryLogPort = (*DeliveryRepository)(nil)

const createDeliveriesSQL = `
CREATE TABLE IF NOT EXISTS deliveries (
    id            UUID PRIMARY KEY,
    operation     TEXT NOT NULL,
    path          TEXT NOT NULL DEFAULT '',
    actor         TEXT NOT NULL DEFAULT '',
    action_name   TEXT,
    outcome       TEXT NOT NULL,
    status_code   INTEGER,
    error         TEXT,
    property_keys TEXT[] NOT NULL DEFAULT '{}',
    payload       JSONB NOT NULL,
    delivered_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS deliveries_operation_time_idx ON deliveries (operation, delivered_at);
`

// SQL template
const insertDeliverySQL = `
INSERT INTO deliveries (
    id,
    operation,
    path,
    actor,
    action_name,
    outcome,
    status_code,
    error,
    property_keys,
    payload,
    delivered_at
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11
)
ON CONFLICT (id) DO NOTHING;
`

// EnsureSchema creates the deliveries table when it does not exist yet.
func (r *DeliveryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDeliveriesSQL); err != nil {
		return fmt.Errorf("create deliveries table: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) RecordDelivery(ctx context.Context, d *domain.Delivery) error {
	payloadJSON, err := json.Marshal(d.Payload)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertDeliverySQL,
		d.ID,
		string(d.Operation),
		d.Path,
		d.Actor,
		nullString(d.ActionName),
		string(d.Outcome),
		nullInt(d.StatusCode),
		nullString(d.Error),
		pq.Array(propertyKeys(d.Payload)),
		payloadJSON,
		d.DeliveredAt,
	)
	return err
}

// propertyKeys lists the property names that were sent, sorted.
func propertyKeys(p domain.Payload) []string {
	props, _ := p["properties"].(map[string]any)
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
