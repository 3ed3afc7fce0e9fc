package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"qr-dine/db"
	"qr-dine/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/001_init.sql",
			"../migrations/002_seed.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

type orderStoreSuite struct {
	suite.Suite

	pool *pgxpool.Pool
}

func TestOrderStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping order store integration tests in short mode")
	}
	suite.Run(t, new(orderStoreSuite))
}

func (s *orderStoreSuite) SetupSuite() {
	ctx := context.Background()

	_, connStr, err := startPostgres(ctx)
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)

	db.Pool = s.pool
}

func (s *orderStoreSuite) TearDownSuite() {
	db.Pool = nil
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *orderStoreSuite) TearDownTest() {
	_, err := s.pool.Exec(context.Background(),
		`TRUNCATE orders, order_status_history, notifications`)
	s.Require().NoError(err)
}

func randomOrder() *models.Order {
	qty := gofakeit.Number(1, 3)
	price := decimal.NewFromFloat(gofakeit.Price(1, 50)).Round(2)
	item := models.OrderItem{
		ItemID:          uuid.NewString(),
		Name:            gofakeit.Dinner(),
		Price:           price,
		Quantity:        qty,
		SpecialRequests: gofakeit.Sentence(3),
	}
	return &models.Order{
		ID:         uuid.NewString(),
		TableID:    fmt.Sprint(gofakeit.Number(1, 5)),
		CustomerID: uuid.NewString(),
		Items:      []models.OrderItem{item},
		TotalPrice: price.Mul(decimal.NewFromInt(int64(qty))),
		Status:     OrderStatusPending,
	}
}

var orderCmpOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmpopts.IgnoreFields(models.Order{}, "CreatedAt"),
}

func (s *orderStoreSuite) TestInsertAndGetOrder() {
	t := s.T()
	ctx := context.Background()

	want := randomOrder()
	require.NoError(t, InsertOrder(ctx, want))

	got, err := GetOrder(ctx, want.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, orderCmpOpts); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	require.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func (s *orderStoreSuite) TestInsertOrderDoubleSubmit() {
	t := s.T()
	ctx := context.Background()

	order := randomOrder()
	require.NoError(t, InsertOrder(ctx, order))

	// Retry of the same placement must not create a second row.
	require.NoError(t, InsertOrder(ctx, order))

	total, pending, err := CountOrders(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 1, pending)
}

func (s *orderStoreSuite) TestGetOrderNotFound() {
	_, err := GetOrder(context.Background(), uuid.NewString())
	s.Require().ErrorIs(err, ErrOrderNotFound)
}

func (s *orderStoreSuite) TestUpdateOrderStatusLifecycle() {
	t := s.T()
	ctx := context.Background()

	order := randomOrder()
	require.NoError(t, InsertOrder(ctx, order))

	// Skipping ahead from Pending is refused.
	err := UpdateOrderStatus(ctx, order.ID, OrderStatusReady, "kitchen")
	require.ErrorIs(t, err, ErrInvalidTransition)
	err = UpdateOrderStatus(ctx, order.ID, OrderStatusServed, "kitchen")
	require.ErrorIs(t, err, ErrInvalidTransition)

	for _, status := range []string{OrderStatusPreparing, OrderStatusReady, OrderStatusServed} {
		require.NoError(t, UpdateOrderStatus(ctx, order.ID, status, "kitchen"))
	}

	got, err := GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, OrderStatusServed, got.Status)

	// Served is terminal.
	for _, status := range []string{OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusServed} {
		err := UpdateOrderStatus(ctx, order.ID, status, "kitchen")
		require.ErrorIs(t, err, ErrInvalidTransition, "Served must reject transition to %s", status)
	}

	var historyCount int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM order_status_history WHERE order_id = $1`, order.ID).Scan(&historyCount)
	require.NoError(t, err)
	require.Equal(t, 3, historyCount)
}

func (s *orderStoreSuite) TestUpdateOrderStatusUnknownOrder() {
	err := UpdateOrderStatus(context.Background(), uuid.NewString(), OrderStatusPreparing, "kitchen")
	s.Require().ErrorIs(err, ErrOrderNotFound)
}

func (s *orderStoreSuite) TestFrozenTotalSurvivesMenuEdit() {
	t := s.T()
	ctx := context.Background()

	burger, err := GetMenuItem(ctx, "item1")
	require.NoError(t, err)

	order := &models.Order{
		ID:         uuid.NewString(),
		TableID:    "3",
		CustomerID: uuid.NewString(),
		Items: []models.OrderItem{{
			ItemID:   burger.ID,
			Name:     burger.Name,
			Price:    burger.Price,
			Quantity: 2,
		}},
		TotalPrice: burger.Price.Mul(decimal.NewFromInt(2)),
		Status:     OrderStatusPending,
	}
	require.NoError(t, InsertOrder(ctx, order))

	edited := *burger
	edited.Price = burger.Price.Add(decimal.RequireFromString("5.00"))
	require.NoError(t, UpdateMenuItem(ctx, edited))

	got, err := GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, got.TotalPrice.Equal(order.TotalPrice),
		"frozen total changed after menu edit: %s", got.TotalPrice)
	require.True(t, got.Items[0].Price.Equal(burger.Price))

	// Restore the seed price for other tests.
	require.NoError(t, UpdateMenuItem(ctx, *burger))
}

func (s *orderStoreSuite) TestListOrdersNewestFirstAndFiltered() {
	t := s.T()
	ctx := context.Background()

	first := randomOrder()
	require.NoError(t, InsertOrder(ctx, first))
	time.Sleep(20 * time.Millisecond)
	second := randomOrder()
	require.NoError(t, InsertOrder(ctx, second))
	require.NoError(t, UpdateOrderStatus(ctx, second.ID, OrderStatusPreparing, "kitchen"))

	orders, err := ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID, "newest order first")

	pendingOnly, err := ListOrders(ctx, OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pendingOnly, 1)
	require.Equal(t, first.ID, pendingOnly[0].ID)
}

func (s *orderStoreSuite) TestStats() {
	t := s.T()
	ctx := context.Background()

	a := randomOrder()
	b := randomOrder()
	require.NoError(t, InsertOrder(ctx, a))
	require.NoError(t, InsertOrder(ctx, b))
	require.NoError(t, UpdateOrderStatus(ctx, b.ID, OrderStatusPreparing, "kitchen"))

	stats, err := GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.OrdersCount)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 1, stats.Preparing)
	require.True(t, stats.TotalRevenue.Equal(a.TotalPrice.Add(b.TotalPrice)))

	top, err := TopItems(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, top)
}

func (s *orderStoreSuite) TestNotificationDedup() {
	t := s.T()
	ctx := context.Background()

	recently, err := RecentlyNotified(ctx, "new_order", 30*time.Second)
	require.NoError(t, err)
	require.False(t, recently)

	require.NoError(t, RecordNotification(ctx, "new_order", "lunch rush", map[string]any{"queue": 3}))

	recently, err = RecentlyNotified(ctx, "new_order", 30*time.Second)
	require.NoError(t, err)
	require.True(t, recently)

	// Other kinds are unaffected.
	recently, err = RecentlyNotified(ctx, "other", 30*time.Second)
	require.NoError(t, err)
	require.False(t, recently)
}
