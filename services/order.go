package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"qr-dine/db"
	"qr-dine/models"

	"github.com/jackc/pgx/v5"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusPreparing = "Preparing"
	OrderStatusReady     = "Ready"
	OrderStatusServed    = "Served"
)

// transitions is the order lifecycle: Pending -> Preparing -> Ready -> Served.
// Linear, no skips, no cancellation. Served is terminal.
var transitions = map[string]string{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReady,
	OrderStatusReady:     OrderStatusServed,
}

// AllowedNext returns the set of statuses reachable from the current one.
func AllowedNext(current string) []string {
	next, ok := transitions[current]
	if !ok {
		return nil
	}
	return []string{next}
}

func ValidStatusTransition(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	return transitions[from] == to
}

// InsertOrder persists a new order. The id is supplied by the caller so a
// double submit of the same placement cannot create a second row.
func InsertOrder(ctx context.Context, o *models.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO orders (id, table_id, customer_id, items, total_price, status, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		o.ID, o.TableID, o.CustomerID, itemsJSON, o.TotalPrice, o.Status, o.Summary,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	var itemsJSON []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT id, table_id, customer_id, items, total_price, status, summary, created_at
		FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.TableID, &o.CustomerID, &itemsJSON, &o.TotalPrice, &o.Status, &o.Summary, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

// ListOrders returns orders newest first, optionally filtered by status.
func ListOrders(ctx context.Context, statuses ...string) ([]models.Order, error) {
	query := `
		SELECT id, table_id, customer_id, items, total_price, status, summary, created_at
		FROM orders`
	args := []any{}
	if len(statuses) > 0 {
		query += ` WHERE status = ANY($1)`
		args = append(args, statuses)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var itemsJSON []byte
		if err := rows.Scan(&o.ID, &o.TableID, &o.CustomerID, &itemsJSON, &o.TotalPrice, &o.Status, &o.Summary, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CountOrders returns the total number of orders and the number in Pending
// status, in one round trip. The watcher calls this every poll.
func CountOrders(ctx context.Context) (total int, pending int, err error) {
	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)::int, COUNT(*) FILTER (WHERE status = $1)::int FROM orders`,
		OrderStatusPending,
	).Scan(&total, &pending)
	return total, pending, err
}

// UpdateOrderStatus advances an order through the lifecycle. The update is
// compare-and-set on the current status so a stale transition from a second
// staff member is rejected instead of applied twice.
func UpdateOrderStatus(ctx context.Context, orderID, newStatus, actor string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromStatus string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&fromStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}

	if !ValidStatusTransition(fromStatus, newStatus) {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, fromStatus, newStatus)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		newStatus, orderID, fromStatus,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s changed concurrently", ErrInvalidTransition, orderID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_history (order_id, from_status, to_status, actor)
		VALUES ($1, $2, $3, $4)`,
		orderID, fromStatus, newStatus, actor,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
