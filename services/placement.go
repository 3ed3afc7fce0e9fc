package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"qr-dine/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryGenerator condenses the item list into a short note for the chef.
// It is an external AI call and strictly best-effort: placement never fails
// because of it.
type SummaryGenerator interface {
	Summarize(ctx context.Context, items []models.OrderItem) (string, error)
}

// OrderWriter is the persistence boundary for placement. Production uses the
// pgx-backed store; tests substitute a stub.
type OrderWriter interface {
	InsertOrder(ctx context.Context, o *models.Order) error
}

// OrderWriterFunc adapts a function to the OrderWriter interface.
type OrderWriterFunc func(ctx context.Context, o *models.Order) error

func (f OrderWriterFunc) InsertOrder(ctx context.Context, o *models.Order) error {
	return f(ctx, o)
}

type Placer struct {
	Store      OrderWriter
	Summarizer SummaryGenerator // nil disables summaries
	AITimeout  time.Duration
	Log        *slog.Logger
}

func NewPlacer(store OrderWriter, summarizer SummaryGenerator, aiTimeout time.Duration, log *slog.Logger) *Placer {
	if log == nil {
		log = slog.Default()
	}
	return &Placer{Store: store, Summarizer: summarizer, AITimeout: aiTimeout, Log: log}
}

type PlaceOrderInput struct {
	OrderID    string // optional; supplied by the client to make retries idempotent
	TableID    string
	CustomerID string
	Items      []models.OrderItem
}

// PlaceOrder converts a cart snapshot into a persisted Pending order.
// The summary delegate runs first with a timeout; on failure the order is
// placed with an empty summary. If the insert fails the caller must keep the
// cart so the customer can retry.
func (p *Placer) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if in.TableID == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("table and customer references are required")
	}

	id := in.OrderID
	if id == "" {
		id = uuid.NewString()
	}

	order := &models.Order{
		ID:         id,
		TableID:    in.TableID,
		CustomerID: in.CustomerID,
		Items:      in.Items,
		TotalPrice: orderTotal(in.Items),
		Status:     OrderStatusPending,
		CreatedAt:  time.Now(),
	}

	if p.Summarizer != nil {
		order.Summary = p.summarize(ctx, in.Items)
	}

	if err := p.Store.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

func (p *Placer) summarize(ctx context.Context, items []models.OrderItem) string {
	timeout := p.AITimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summary, err := p.Summarizer.Summarize(sctx, items)
	if err != nil {
		p.Log.Warn("order summary unavailable, placing without it", "error", err)
		return ""
	}
	return summary
}

func orderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
