package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
)

func placeTestOrder(t *testing.T, uc *checkout.UseCase) *dto.OrderResponse {
	t.Helper()
	resp, err := uc.PlaceOrder(context.Background(), buyerID, twoLineRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	return resp
}

func TestCancelOrder_RestoresStockAndCancelsLines(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)

	resp, err := uc.CancelOrder(context.Background(), buyerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	assert.Equal(t, entity.OrderStatusCancelled, s.orders[order.ID].Status)
	for _, item := range s.items {
		assert.Equal(t, entity.OrderStatusCancelled, item.Status)
	}
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
	assert.Equal(t, 3, s.products[scarfID].StockQuantity)
}

func TestCancelOrder_OnlyOwnerMayCancel(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)

	_, err := uc.CancelOrder(context.Background(), "someone-else", order.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.OrderStatusPending, s.orders[order.ID].Status)
}

func TestCancelOrder_UnknownOrder(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)

	_, err := uc.CancelOrder(context.Background(), buyerID, "order-ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelOrder_ShippedOrderIsConflict(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	s.orders[order.ID].Status = entity.OrderStatusShipped

	_, err := uc.CancelOrder(context.Background(), buyerID, order.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelOrder_CancelledOrderStaysTerminal(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)

	_, err := uc.CancelOrder(context.Background(), buyerID, order.ID)
	require.NoError(t, err)
	_, err = uc.CancelOrder(context.Background(), buyerID, order.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	// The second attempt must not restock again.
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
}

// itemOf finds the response line for a product.
func itemOf(t *testing.T, order *dto.OrderResponse, productID string) dto.OrderItemResponse {
	t.Helper()
	for _, item := range order.Items {
		if item.ProductID == productID {
			return item
		}
	}
	t.Fatalf("no line for product %s", productID)
	return dto.OrderItemResponse{}
}

func TestUpdateItemStatus_DerivesHeaderFromLines(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	ctx := context.Background()
	potteryItem := itemOf(t, order, potteryID)
	scarfItem := itemOf(t, order, scarfID)

	// One line starts processing: header follows.
	resp, err := uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, resp.Status)

	// That line ships, the other is still pending: header stays processing.
	resp, err = uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, resp.Status)

	// Both lines shipped: header shipped.
	resp, err = uc.UpdateItemStatus(ctx, "user-artisan-b", order.ID, scarfItem.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, resp.Status)

	// Both delivered: header delivered, terminal.
	_, err = uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	resp, err = uc.UpdateItemStatus(ctx, "user-artisan-b", order.ID, scarfItem.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)
}

func TestUpdateItemStatus_OnlyOwningArtisan(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	potteryItem := itemOf(t, order, potteryID)

	// Artisan B does not own the pottery line.
	_, err := uc.UpdateItemStatus(context.Background(), "user-artisan-b", order.ID, potteryItem.ID, entity.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// A non-artisan user has no shop at all.
	_, err = uc.UpdateItemStatus(context.Background(), buyerID, order.ID, potteryItem.ID, entity.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateItemStatus_InvalidTransitions(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	ctx := context.Background()
	potteryItem := itemOf(t, order, potteryID)

	// pending -> delivered skips shipping.
	_, err := uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusDelivered)
	require.ErrorIs(t, err, domain.ErrConflict)

	// Terminal line admits nothing.
	_, err = uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	_, err = uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusProcessing)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateItemStatus_CancelledLineRestocksItsProduct(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	potteryItem := itemOf(t, order, potteryID)

	resp, err := uc.UpdateItemStatus(context.Background(), "user-artisan-a", order.ID, potteryItem.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, 10, s.products[potteryID].StockQuantity, "cancelled line restocked")
	assert.Equal(t, 0, s.products[scarfID].StockQuantity, "live line untouched")
	// One live pending line remains: the header stays pending.
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
}

func TestUpdateItemStatus_AllLinesCancelledCancelsHeader(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)
	ctx := context.Background()

	_, err := uc.UpdateItemStatus(ctx, "user-artisan-a", order.ID, itemOf(t, order, potteryID).ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	resp, err := uc.UpdateItemStatus(ctx, "user-artisan-b", order.ID, itemOf(t, order, scarfID).ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, 10, s.products[potteryID].StockQuantity)
	assert.Equal(t, 3, s.products[scarfID].StockQuantity)
}

func TestGetOrder_JoinsDisplayFieldsAndChecksOwner(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	order := placeTestOrder(t, uc)

	resp, err := uc.GetOrder(context.Background(), buyerID, order.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Clay & Kiln", itemOf(t, resp, potteryID).ShopName)
	assert.Equal(t, "Warp & Weft", itemOf(t, resp, scarfID).ShopName)

	_, err = uc.GetOrder(context.Background(), "someone-else", order.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetOrder(context.Background(), buyerID, "order-ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders_ReturnsOnlyOwnOrders(t *testing.T) {
	s := seedStore()
	uc, _ := newCheckout(s)
	placeTestOrder(t, uc)

	own, err := uc.ListOrders(context.Background(), buyerID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	other, err := uc.ListOrders(context.Background(), "someone-else", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}

// fakeReceipts records what it was asked to render.
type fakeReceipts struct {
	lastName  string
	lastItems int
}

func (f *fakeReceipts) GenerateOrderReceipt(_ context.Context, _ *entity.Order, items []*repository.OrderItemDetail, customerName string) ([]byte, error) {
	f.lastName = customerName
	f.lastItems = len(items)
	return []byte("%PDF-fake"), nil
}

func TestReceipt_UsesProfileNameAndChecksOwner(t *testing.T) {
	s := seedStore()
	s.profiles[buyerID] = &entity.Profile{UserID: buyerID, FullName: "Asha D."}
	runner := &fakeTxRunner{store: s}
	receipts := &fakeReceipts{}
	uc := checkout.NewUseCase(
		runner,
		&fakeOrderRepo{s: s},
		&fakeArtisanRepo{s: s},
		&fakeProfileRepo{s: s},
		&fakeNotifRepo{s: s},
		receipts,
		quietLogger(),
	)
	order := placeTestOrder(t, uc)

	data, err := uc.Receipt(context.Background(), buyerID, order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "Asha D.", receipts.lastName, "profile name wins over the address name")
	assert.Equal(t, 2, receipts.lastItems)

	_, err = uc.Receipt(context.Background(), "someone-else", order.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceipt_FallsBackToShippingAddressName(t *testing.T) {
	s := seedStore()
	runner := &fakeTxRunner{store: s}
	receipts := &fakeReceipts{}
	uc := checkout.NewUseCase(
		runner,
		&fakeOrderRepo{s: s},
		&fakeArtisanRepo{s: s},
		&fakeProfileRepo{s: s},
		&fakeNotifRepo{s: s},
		receipts,
		quietLogger(),
	)
	order := placeTestOrder(t, uc)

	_, err := uc.Receipt(context.Background(), buyerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Devi", receipts.lastName)
}
