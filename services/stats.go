package services

import (
	"context"

	"qr-dine/db"
	"qr-dine/models"
)

// GetStats returns the admin dashboard aggregates over all orders.
func GetStats(ctx context.Context) (*models.Stats, error) {
	var s models.Stats
	err := db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COALESCE(SUM(total_price), 0),
			COUNT(*) FILTER (WHERE status = $1)::int,
			COUNT(*) FILTER (WHERE status = $2)::int,
			COUNT(*) FILTER (WHERE status = $3)::int,
			COUNT(*) FILTER (WHERE status = $4)::int
		FROM orders`,
		OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusServed,
	).Scan(&s.OrdersCount, &s.TotalRevenue, &s.Pending, &s.Preparing, &s.Ready, &s.Served)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TopItems unnests the jsonb item snapshots and sums quantities by name.
func TopItems(ctx context.Context, limit int) ([]models.TopItem, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT item->>'name', SUM((item->>'quantity')::int)::int AS qty
		FROM orders, jsonb_array_elements(items) AS item
		GROUP BY item->>'name'
		ORDER BY qty DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []models.TopItem
	for rows.Next() {
		var t models.TopItem
		if err := rows.Scan(&t.Name, &t.Quantity); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}
