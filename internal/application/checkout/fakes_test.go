package checkout_test

import (
	"context"
	"sort"
	"time"

	"github.com/karigarverse/karigarverse-api/internal/application/checkout"
	"github.com/karigarverse/karigarverse-api/internal/domain"
	"github.com/karigarverse/karigarverse-api/internal/domain/entity"
	"github.com/karigarverse/karigarverse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore is the in-memory database shared by the fake repositories. The
// fake TxRunner clones it per transaction and commits by swapping the clone
// back in, so a failing transaction leaves the original untouched.
type memStore struct {
	orders    map[string]*entity.Order
	items     map[string]*entity.OrderItem
	products  map[string]*entity.Product
	cart      map[string]map[string]*entity.CartItem // userID -> productID
	artisans  map[string]*entity.ArtisanProfile
	profiles  map[string]*entity.Profile
	notifs    []*entity.Notification
	orderNums map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		orders:    map[string]*entity.Order{},
		items:     map[string]*entity.OrderItem{},
		products:  map[string]*entity.Product{},
		cart:      map[string]map[string]*entity.CartItem{},
		artisans:  map[string]*entity.ArtisanProfile{},
		profiles:  map[string]*entity.Profile{},
		orderNums: map[string]bool{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for userID, rows := range s.cart {
		c.cart[userID] = map[string]*entity.CartItem{}
		for pid, item := range rows {
			cp := *item
			c.cart[userID][pid] = &cp
		}
	}
	for k, v := range s.artisans {
		cp := *v
		c.artisans[k] = &cp
	}
	for k, v := range s.profiles {
		cp := *v
		c.profiles[k] = &cp
	}
	c.notifs = append(c.notifs, s.notifs...)
	for k, v := range s.orderNums {
		c.orderNums[k] = v
	}
	return c
}

func (s *memStore) cartCount(userID string) int {
	return len(s.cart[userID])
}

func (s *memStore) addCartRow(userID, productID string, qty int) {
	if s.cart[userID] == nil {
		s.cart[userID] = map[string]*entity.CartItem{}
	}
	s.cart[userID][productID] = &entity.CartItem{
		ID: userID + "/" + productID, UserID: userID, ProductID: productID, Quantity: qty,
	}
}

// ── order repo ──

type fakeOrderRepo struct {
	s          *memStore
	createHook func(*entity.Order) error
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if r.createHook != nil {
		if err := r.createHook(o); err != nil {
			return err
		}
	}
	if r.s.orderNums[o.OrderNumber] {
		return domain.ErrDuplicate
	}
	cp := *o
	r.s.orders[o.ID] = &cp
	r.s.orderNums[o.OrderNumber] = true
	return nil
}

func (r *fakeOrderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]*entity.Order, error) {
	var list []*entity.Order
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			cp := *o
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeOrderRepo) GetItems(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var list []*entity.OrderItem
	for _, item := range r.s.items {
		if item.OrderID == orderID {
			cp := *item
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) GetItemDetails(ctx context.Context, orderID string) ([]*repository.OrderItemDetail, error) {
	items, _ := r.GetItems(ctx, orderID)
	out := make([]*repository.OrderItemDetail, 0, len(items))
	for _, item := range items {
		d := &repository.OrderItemDetail{OrderItem: *item}
		if p, ok := r.s.products[item.ProductID]; ok {
			d.ProductImageURL = p.ImageURL
		}
		if a, ok := r.s.artisans[item.ArtisanID]; ok {
			d.ShopName = a.ShopName
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetItemByID(_ context.Context, itemID string) (*entity.OrderItem, error) {
	item, ok := r.s.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID, status string, updatedAt time.Time) error {
	if o, ok := r.s.orders[orderID]; ok {
		o.Status = status
		o.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeOrderRepo) UpdateItemStatus(_ context.Context, itemID, status string, updatedAt time.Time) error {
	if item, ok := r.s.items[itemID]; ok {
		item.Status = status
		item.UpdatedAt = updatedAt
	}
	return nil
}

// ── product repo ──

type fakeProductRepo struct {
	s *memStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, quantity int, updatedAt time.Time) error {
	if p, ok := r.s.products[id]; ok {
		p.StockQuantity = quantity
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

// ── cart repo ──

type fakeCartRepo struct {
	s *memStore
}

var _ repository.CartRepository = (*fakeCartRepo)(nil)

func (r *fakeCartRepo) Upsert(_ context.Context, item *entity.CartItem) error {
	if r.s.cart[item.UserID] == nil {
		r.s.cart[item.UserID] = map[string]*entity.CartItem{}
	}
	if existing, ok := r.s.cart[item.UserID][item.ProductID]; ok {
		existing.Quantity += item.Quantity
		return nil
	}
	cp := *item
	r.s.cart[item.UserID][item.ProductID] = &cp
	return nil
}

func (r *fakeCartRepo) Get(_ context.Context, userID, productID string) (*entity.CartItem, error) {
	item, ok := r.s.cart[userID][productID]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID string) ([]*entity.CartItem, error) {
	var list []*entity.CartItem
	for _, item := range r.s.cart[userID] {
		cp := *item
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (r *fakeCartRepo) UpdateQuantity(_ context.Context, userID, productID string, quantity int) error {
	if item, ok := r.s.cart[userID][productID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (r *fakeCartRepo) Remove(_ context.Context, userID, productID string) error {
	delete(r.s.cart[userID], productID)
	return nil
}

func (r *fakeCartRepo) ClearByUser(_ context.Context, userID string) error {
	delete(r.s.cart, userID)
	return nil
}

// ── artisan repo ──

type fakeArtisanRepo struct {
	s *memStore
}

var _ repository.ArtisanProfileRepository = (*fakeArtisanRepo)(nil)

func (r *fakeArtisanRepo) Create(_ context.Context, p *entity.ArtisanProfile) error {
	for _, existing := range r.s.artisans {
		if existing.UserID == p.UserID {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.artisans[p.ID] = &cp
	return nil
}

func (r *fakeArtisanRepo) GetByID(_ context.Context, id string) (*entity.ArtisanProfile, error) {
	p, ok := r.s.artisans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeArtisanRepo) GetByUserID(_ context.Context, userID string) (*entity.ArtisanProfile, error) {
	for _, p := range r.s.artisans {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeArtisanRepo) Update(_ context.Context, p *entity.ArtisanProfile) error {
	cp := *p
	r.s.artisans[p.ID] = &cp
	return nil
}

func (r *fakeArtisanRepo) IncrementSales(_ context.Context, artisanID string, amount decimal.Decimal, orders int) error {
	if p, ok := r.s.artisans[artisanID]; ok {
		p.TotalSales = p.TotalSales.Add(amount)
		p.TotalOrders += orders
	}
	return nil
}

// ── profile repo ──

type fakeProfileRepo struct {
	s *memStore
}

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	cp := *p
	r.s.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	cp := *p
	r.s.profiles[p.UserID] = &cp
	return nil
}

// ── notification repo ──

type fakeNotifRepo struct {
	s *memStore
}

var _ repository.NotificationRepository = (*fakeNotifRepo)(nil)

func (r *fakeNotifRepo) Create(_ context.Context, n *entity.Notification) error {
	cp := *n
	r.s.notifs = append(r.s.notifs, &cp)
	return nil
}

func (r *fakeNotifRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]*entity.Notification, error) {
	var list []*entity.Notification
	for _, n := range r.s.notifs {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		cp := *n
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeNotifRepo) MarkRead(_ context.Context, userID, id string) error {
	for _, n := range r.s.notifs {
		if n.ID == id && n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotifRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range r.s.notifs {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// ── tx runner ──

// fakeTxRunner mimics the postgres runner: work happens on a clone, the
// clone replaces the store only when fn (and commit) succeed.
type fakeTxRunner struct {
	store           *memStore
	commitErr       error
	orderCreateHook func(*entity.Order) error
}

var _ checkout.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	artisanRepo repository.ArtisanProfileRepository,
) error) error {
	clone := r.store.clone()
	err := fn(
		&fakeOrderRepo{s: clone, createHook: r.orderCreateHook},
		&fakeProductRepo{s: clone},
		&fakeCartRepo{s: clone},
		&fakeArtisanRepo{s: clone},
	)
	if err != nil {
		return err
	}
	if r.commitErr != nil {
		return r.commitErr
	}
	*r.store = *clone
	return nil
}
