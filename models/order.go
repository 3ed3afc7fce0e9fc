package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a snapshot of a cart entry at placement time. Name and price are
// denormalized so later menu edits cannot change a placed order.
type OrderItem struct {
	ItemID          string          `json:"itemId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
}

// Order is a row from the orders table. TotalPrice is computed once at placement
// and never recomputed.
type Order struct {
	ID         string          `json:"id"`
	TableID    string          `json:"tableId"`
	CustomerID string          `json:"customerId"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	Summary    string          `json:"summary,omitempty"`
	CreatedAt  time.Time       `json:"timestamp"`
}

type Stats struct {
	OrdersCount  int             `json:"ordersCount"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	Pending      int             `json:"pending"`
	Preparing    int             `json:"preparing"`
	Ready        int             `json:"ready"`
	Served       int             `json:"served"`
}

type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
