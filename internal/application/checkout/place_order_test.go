package checkout_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/pkg/logger"
)

const (
	buyerID    = "buyer-1"
	artisanAID = "artisan-a"
	artisanBID = "artisan-b"
	potteryID  = "prod-pottery"
	scarfID    = "prod-scarf"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// seedStore builds a store with two artisans, a pottery bowl (stock 10,
// 250.00) and a wool scarf (stock 3, 19.99), and the buyer's cart holding
// both.
func seedStore() *memStore {
	s := newMemStore()
	s.artisans[artisanAID] = &entity.ArtisanProfile{
		ID: artisanAID, UserID: "user-artisan-a", ShopName: "Clay & Kiln",
		TotalSales: decimal.Zero,
	}
	s.artisans[artisanBID] = &entity.ArtisanProfile{
		ID: artisanBID, UserID: "user-artisan-b", ShopName: "Warp & Weft",
		TotalSales: decimal.Zero,
	}
	s.products[potteryID] = &entity.Product{
		ID: potteryID, ArtisanID: artisanAID, Name: "Pottery Bowl",
		Price: decimal.RequireFromString("250.00"), StockQuantity: 10,
		Status: entity.ProductStatusActive,
	}
	s.products[scarfID] = &entity.Product{
		ID: scarfID, ArtisanID: artisanBID, Name: "Wool Scarf",
		Price: decimal.RequireFromString("19.99"), StockQuantity: 3,
		Status: entity.ProductStatusActive,
	}
	s.addCartRow(buyerID, potteryID, 2)
	s.addCartRow(buyerID, scarfID, 3)
	return s
}

func newCheckout(s *memStore) (*checkout.UseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{store: s}
	uc := checkout.NewUseCase(
		runner,
		&fakeOrderRepo{s: s},
		&fakeArtisanRepo{s: s},
		&fakeProfileRepo{s: s},
		&fakeNotifRepo{s: s},
		nil,
		quietLogger(),
	)
	return uc, runner
}

func shippingAddress() entity.Address {
	return entity.Address{
		FullName: "Asha Devi", Line1: "12 Potter Lane", City: "Jaipur",
		State: "RJ", PostalCode: "302001", Country: "IN",
	}
}

// twoLineRequest prices 2 bowls and 3 scarves: subtotal 559.97, tax 28.00,
// shipping 40.00, discount 10.00, total 617.97.
func twoLineRequest() dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		Items: []dto.OrderItemInput{
			{ProductID: potteryID, Quantity: 2, UnitPrice: decimal.RequireFromString("250.00")},
			{ProductID: scarfID, Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
		},
		Subtotal:        decimal.RequireFromString("559.97"),
		TaxAmount:       decimal.RequireFromString("28.00"),
		ShippingCost:    decimal.RequireFromString("40.00"),
		DiscountAmount:  decimal.RequireFromString("10.00"),
		TotalAmount:     decimal.RequireFromString("617.97"),
		ShippingAddress: shippingAddress(),
		PaymentMethod:   "upi",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	resp, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "ORD-"), "order number %q", resp.OrderNumber)
	require.Len(t, resp.Items, 2)

	// Header and lines are durable.
	require.Contains(t, s.orders, resp.ID)
	assert.Len(t, s.items, 2)

	// Stock decremented per line.
	assert.Equal(t, 8, s.products[potteryID].StockQuantity)
	assert.Equal(t, 0, s.products[scarfID].StockQuantity)

	// Cart emptied.
	assert.Equal(t, 0, s.cartCount(buyerID))

	// Sales counters bumped once per artisan with the artisan's line total.
	assert.True(t, s.artisans[artisanAID].TotalSales.Equal(decimal.RequireFromString("500.00")),
		"artisan A sales = %s", s.artisans[artisanAID].TotalSales)
	assert.Equal(t, 1, s.artisans[artisanAID].TotalOrders)
	assert.True(t, s.artisans[artisanBID].TotalSales.Equal(decimal.RequireFromString("59.97")),
		"artisan B sales = %s", s.artisans[artisanBID].TotalSales)
	assert.Equal(t, 1, s.artisans[artisanBID].TotalOrders)
}

func TestPlaceOrder_LineTotalsAreExact(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	resp, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)

	for _, item := range resp.Items {
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		assert.True(t, item.TotalPrice.Equal(expected),
			"line %s: total %s, want %s", item.ProductID, item.TotalPrice, expected)
	}
}

func TestPlaceOrder_NotificationsReachBuyerAndArtisans(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	resp, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)

	var buyerNotifs, artisanNotifs int
	for _, n := range s.notifs {
		assert.Equal(t, resp.ID, n.ReferenceID)
		switch n.Type {
		case entity.NotificationOrderPlaced:
			buyerNotifs++
			assert.Equal(t, buyerID, n.UserID)
		case entity.NotificationOrderReceived:
			artisanNotifs++
			// Addressed to the shop owner's user id, not the shop id.
			assert.Contains(t, []string{"user-artisan-a", "user-artisan-b"}, n.UserID)
		}
	}
	assert.Equal(t, 1, buyerNotifs)
	assert.Equal(t, 2, artisanNotifs)
}

func TestPlaceOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	in := twoLineRequest()
	in.Items[1].Quantity = 4 // scarf stock is 3
	in.Subtotal = decimal.RequireFromString("579.96")
	in.TotalAmount = decimal.RequireFromString("637.96")

	_, err := uc.PlaceOrder(context.Background(), buyerID, in)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The first line had already decremented stock inside the transaction;
	// the rollback must undo it along with the header and the cart clear.
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
	assert.Equal(t, 3, s.products[scarfID].StockQuantity)
	assert.Empty(t, s.orders)
	assert.Empty(t, s.items)
	assert.Equal(t, 2, s.cartCount(buyerID))
	assert.True(t, s.artisans[artisanAID].TotalSales.IsZero())
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	in := twoLineRequest()
	in.Items[0].ProductID = "prod-ghost"

	_, err := uc.PlaceOrder(context.Background(), buyerID, in)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.orders)
	assert.Equal(t, 2, s.cartCount(buyerID))
}

func TestPlaceOrder_TotalsMismatchRejectedBeforeWrites(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	in := twoLineRequest()
	in.TotalAmount = decimal.RequireFromString("600.00") // off by 17.97

	_, err := uc.PlaceOrder(context.Background(), buyerID, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
	assert.Empty(t, s.orders)
}

func TestPlaceOrder_TotalsWithinToleranceAccepted(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	in := twoLineRequest()
	in.TotalAmount = decimal.RequireFromString("617.98") // 0.01 off, rounding

	_, err := uc.PlaceOrder(context.Background(), buyerID, in)
	require.NoError(t, err)
}

func TestPlaceOrder_ValidationRejects(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	ctx := context.Background()

	cases := map[string]func(*dto.PlaceOrderRequest){
		"no items":          func(in *dto.PlaceOrderRequest) { in.Items = nil },
		"zero quantity":     func(in *dto.PlaceOrderRequest) { in.Items[0].Quantity = 0 },
		"negative price":    func(in *dto.PlaceOrderRequest) { in.Items[0].UnitPrice = decimal.RequireFromString("-1") },
		"negative discount": func(in *dto.PlaceOrderRequest) { in.DiscountAmount = decimal.RequireFromString("-5") },
		"missing line1":     func(in *dto.PlaceOrderRequest) { in.ShippingAddress.Line1 = "" },
		"missing city":      func(in *dto.PlaceOrderRequest) { in.ShippingAddress.City = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := twoLineRequest()
			mutate(&in)
			_, err := uc.PlaceOrder(ctx, buyerID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.orders, "no validation failure may write")
}

func TestPlaceOrder_ClearsWholeCartIncludingUnpurchasedRows(t *testing.T) {
	s := seedStore()
	s.products["prod-extra"] = &entity.Product{
		ID: "prod-extra", ArtisanID: artisanAID, Name: "Brass Lamp",
		Price: decimal.RequireFromString("75.00"), StockQuantity: 5,
		Status: entity.ProductStatusActive,
	}
	s.addCartRow(buyerID, "prod-extra", 1)
	uc, _ := newCheckout(s)

	_, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)

	// The lamp was never ordered, yet the whole cart goes.
	assert.Equal(t, 0, s.cartCount(buyerID))
	assert.Equal(t, 5, s.products["prod-extra"].StockQuantity)
}

func TestPlaceOrder_RetriesOnOrderNumberCollision(t *testing.T) {
	s := seedStore()
	uc, runner := newCheckout(s)

	collisions := 1
	var seen []string
	runner.orderCreateHook = func(o *entity.Order) error {
		seen = append(seen, o.OrderNumber)
		if collisions > 0 {
			collisions--
			return domain.ErrDuplicate
		}
		return nil
	}

	resp, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1], "a fresh number must be generated per attempt")
	assert.Equal(t, seen[1], resp.OrderNumber)
}

func TestPlaceOrder_ExhaustedRetriesSurfaceTransactionError(t *testing.T) {
	s := seedStore()
	uc, runner := newCheckout(s)
	runner.orderCreateHook = func(*entity.Order) error { return domain.ErrDuplicate }

	_, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransaction)
	assert.Empty(t, s.orders)
}

func TestPlaceOrder_CommitFailureWrapsTransactionError(t *testing.T) {
	s := seedStore()
	uc, runner := newCheckout(s)
	runner.commitErr = errors.New("connection reset")

	_, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.ErrorIs(t, err, domain.ErrTransaction)

	// Nothing committed.
	assert.Empty(t, s.orders)
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
	assert.Equal(t, 2, s.cartCount(buyerID))
}
