package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"qr-dine/models"
)

// AdvisorInput mirrors the notification delegate contract: current pending
// queue length plus time context.
type AdvisorInput struct {
	OrderQueueLength int    `json:"orderQueueLength"`
	TimeOfDay        string `json:"timeOfDay"` // e.g. "3:04 PM"
	DayOfWeek        string `json:"dayOfWeek"` // e.g. "Monday"
}

type AdvisorDecision struct {
	TriggerNotification bool   `json:"triggerNotification"`
	Reason              string `json:"reason"`
}

// NotificationAdvisor decides whether a new order deserves an audible alert.
// External AI call; failures are logged and swallowed.
type NotificationAdvisor interface {
	Advise(ctx context.Context, in AdvisorInput) (AdvisorDecision, error)
}

// OrderSource is the read side of the order store the watcher observes.
type OrderSource interface {
	CountOrders(ctx context.Context) (total, pending int, err error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// Alerter delivers a triggered notification to a side channel (Telegram etc).
type Alerter interface {
	Alert(ctx context.Context, reason string) error
}

// WatchEvent is what subscribers (SSE handlers) receive. Kind is "orders" for
// a snapshot refresh or "notify" for a triggered alert.
type WatchEvent struct {
	Kind   string         `json:"kind"`
	Orders []models.Order `json:"orders,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// Watcher polls the order store, pushes snapshots to subscribers, and asks the
// advisor about new orders. The first successful poll only records a baseline:
// without history there is nothing to compare against, and alerting on initial
// load would be spurious.
type Watcher struct {
	Source       OrderSource
	Advisor      NotificationAdvisor // nil disables advisor calls
	Alerters     []Alerter
	PollInterval time.Duration
	AITimeout    time.Duration
	Log          *slog.Logger
	Now          func() time.Time // overridable in tests

	mu        sync.Mutex
	subs      map[chan WatchEvent]struct{}
	seeded    bool
	lastCount int
	lastSig   string
}

func NewWatcher(source OrderSource, advisor NotificationAdvisor, pollInterval time.Duration, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &Watcher{
		Source:       source,
		Advisor:      advisor,
		PollInterval: pollInterval,
		AITimeout:    5 * time.Second,
		Log:          log,
		Now:          time.Now,
		subs:         make(map[chan WatchEvent]struct{}),
	}
}

// Subscribe registers a listener. The returned cancel func must be called when
// the consumer goes away; slow consumers drop events rather than block polls.
func (w *Watcher) Subscribe() (<-chan WatchEvent, func()) {
	ch := make(chan WatchEvent, 8)
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
	return ch, cancel
}

func (w *Watcher) broadcast(ev WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	w.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll performs one observation cycle. Exported so tests can drive the watcher
// without the ticker.
func (w *Watcher) Poll(ctx context.Context) {
	total, pending, err := w.Source.CountOrders(ctx)
	if err != nil {
		w.Log.Warn("order watch poll failed", "error", err)
		return
	}

	orders, err := w.Source.ListOrders(ctx)
	if err != nil {
		w.Log.Warn("order watch list failed", "error", err)
		return
	}

	if sig := ordersSignature(orders); sig != w.lastSig {
		w.lastSig = sig
		w.broadcast(WatchEvent{Kind: "orders", Orders: orders})
	}

	grew := w.seeded && total > w.lastCount
	w.seeded = true
	w.lastCount = total

	if grew && w.Advisor != nil {
		w.adviseNewOrders(ctx, pending)
	}
}

func (w *Watcher) adviseNewOrders(ctx context.Context, pending int) {
	now := w.Now()
	in := AdvisorInput{
		OrderQueueLength: pending,
		TimeOfDay:        now.Format("3:04 PM"),
		DayOfWeek:        now.Weekday().String(),
	}

	actx, cancel := context.WithTimeout(ctx, w.AITimeout)
	defer cancel()

	decision, err := w.Advisor.Advise(actx, in)
	if err != nil {
		w.Log.Warn("notification advisor unavailable", "error", err)
		return
	}
	if !decision.TriggerNotification {
		w.Log.Debug("advisor declined notification", "reason", decision.Reason)
		return
	}

	recently, err := RecentlyNotified(ctx, "new_order", 30*time.Second)
	if err != nil {
		w.Log.Warn("notification de-dup check failed", "error", err)
	} else if recently {
		return
	}
	if err := RecordNotification(ctx, "new_order", decision.Reason, map[string]any{"queue": pending}); err != nil {
		w.Log.Warn("record notification failed", "error", err)
	}

	w.broadcast(WatchEvent{Kind: "notify", Reason: decision.Reason})
	for _, a := range w.Alerters {
		if err := a.Alert(ctx, decision.Reason); err != nil {
			w.Log.Warn("alert delivery failed", "error", err)
		}
	}
}

func ordersSignature(orders []models.Order) string {
	var b strings.Builder
	for _, o := range orders {
		fmt.Fprintf(&b, "%s:%s;", o.ID, o.Status)
	}
	return b.String()
}

// DBOrderSource reads from the pgx-backed order store.
type DBOrderSource struct{}

func (DBOrderSource) CountOrders(ctx context.Context) (int, int, error) {
	return CountOrders(ctx)
}

func (DBOrderSource) ListOrders(ctx context.Context) ([]models.Order, error) {
	return ListOrders(ctx)
}
