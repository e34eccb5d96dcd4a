package usecase_test

import (
	"context"
	"strings"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// OrderTxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type OrderTxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *OrderTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type OrderTxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
}

func (r *OrderTxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *OrderTxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *OrderTxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *OrderTxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }

// =====================
// Repository mocks (Order向け：衝突回避)
// =====================

type OrderUserRepoMock struct{ mock.Mock }

func (m *OrderUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *OrderUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderUserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderUserRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

type OrderOrdersRepoMock struct{ mock.Mock }

func (m *OrderOrdersRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderOrdersRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderOrdersRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderOrdersRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderOrdersRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderOrdersRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderOrdersRepoMock) SumTotal(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

type OrderItemsRepoMock struct{ mock.Mock }

func (m *OrderItemsRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemsRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type OrderProductsRepoMock struct{ mock.Mock }

func (m *OrderProductsRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductsRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *OrderProductsRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductsRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductsRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderProductsRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in OrderUsecase tests")
}

type OrderInventoryRepoMock struct{ mock.Mock }

func (m *OrderInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *OrderInventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrderInventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	panic("not used in OrderUsecase tests")
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func orderTestUser() *model.User {
	return &model.User{
		ID:          1,
		Name:        "Bat",
		Email:       "bat@example.com",
		PhoneNumber: "99112233",
		Role:        model.RoleUser,
	}
}

// =====================
// PlaceOrder tests
// =====================

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	userRepo := new(OrderUserRepoMock)
	ordersRepo := new(OrderOrdersRepoMock)
	itemsRepo := new(OrderItemsRepoMock)
	productsRepo := new(OrderProductsRepoMock)
	invRepo := new(OrderInventoryRepoMock)

	tx.Repos = &OrderTxReposMock{
		orders:     ordersRepo,
		orderItems: itemsRepo,
		products:   productsRepo,
		inventory:  invRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	productsRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "Coffee", Price: 1500, Stock: 5}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Name: "Tea", Price: 700, Stock: 3}, nil)

	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(11), int64(1)).Return(true, nil)

	// total = 1500*2 + 700*1、支払い未指定ならpay_later
	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 &&
			o.Status == model.OrderStatusPending &&
			o.Total == 3700 &&
			o.PaymentMethod == model.PaymentPayLater &&
			o.DeliveryAddress == "Sukhbaatar district 1-1"
	})).Return(int64(55), nil)

	// 明細はスナップショット（商品名と単価を注文時点で固定する）
	itemsRepo.On("CreateBulk", mock.Anything, int64(55), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductID == 10 &&
			items[0].ProductNameSnapshot == "Coffee" &&
			items[0].UnitPriceSnapshot == 1500 &&
			items[0].Quantity == 2 &&
			items[1].ProductNameSnapshot == "Tea"
	})).Return(nil)

	uc := usecase.NewOrderUsecase(tx, userRepo)

	out, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		},
		DeliveryAddress: " Sukhbaatar district 1-1 ",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(55), out.ID)
	assert.Equal(t, int64(3700), out.Total)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "pay_later", out.PaymentMethod)
	assert.Regexp(t, `^ORD-\d+-\d{1,3}$`, out.OrderCode)
	assert.Equal(t, 2, len(out.Items))
	if assert.NotNil(t, out.User) {
		assert.Equal(t, int64(1), out.User.ID)
	}

	tx.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_Unauthorized(t *testing.T) {
	uc := usecase.NewOrderUsecase(new(OrderTxManagerMock), new(OrderUserRepoMock))

	_, err := uc.PlaceOrder(context.Background(), 0, usecase.PlaceOrderInput{})
	assertErrContains(t, err, "unauthorized")
}

func TestOrderUsecase_PlaceOrder_UserNotFound(t *testing.T) {
	userRepo := new(OrderUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(new(OrderTxManagerMock), userRepo)

	_, err := uc.PlaceOrder(context.Background(), 9, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 1, Quantity: 1}},
		DeliveryAddress: "somewhere",
	})
	assertErrContains(t, err, "user not found")
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	tx := new(OrderTxManagerMock)
	userRepo := new(OrderUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	uc := usecase.NewOrderUsecase(tx, userRepo)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{},
		DeliveryAddress: "somewhere",
	})
	assertErrContains(t, err, "cart is empty")

	// 空カートではトランザクションに入らない
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_InvalidQuantity(t *testing.T) {
	userRepo := new(OrderUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	uc := usecase.NewOrderUsecase(new(OrderTxManagerMock), userRepo)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 10, Quantity: 0}},
		DeliveryAddress: "somewhere",
	})
	assertErrContains(t, err, "invalid quantity")
}

func TestOrderUsecase_PlaceOrder_AddressRequired(t *testing.T) {
	userRepo := new(OrderUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	uc := usecase.NewOrderUsecase(new(OrderTxManagerMock), userRepo)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 10, Quantity: 1}},
		DeliveryAddress: "   ",
	})
	assertErrContains(t, err, "delivery address required")
}

func TestOrderUsecase_PlaceOrder_InvalidPaymentMethod(t *testing.T) {
	userRepo := new(OrderUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	uc := usecase.NewOrderUsecase(new(OrderTxManagerMock), userRepo)

	_, err := uc.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 10, Quantity: 1}},
		DeliveryAddress: "somewhere",
		PaymentMethod:   "credit_card",
	})
	assertErrContains(t, err, "invalid payment method")
}

func TestOrderUsecase_PlaceOrder_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	userRepo := new(OrderUserRepoMock)
	ordersRepo := new(OrderOrdersRepoMock)
	productsRepo := new(OrderProductsRepoMock)
	invRepo := new(OrderInventoryRepoMock)

	tx.Repos = &OrderTxReposMock{
		orders:    ordersRepo,
		products:  productsRepo,
		inventory: invRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)
	productsRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(tx, userRepo)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		Items:           []usecase.OrderLineInput{{ProductID: 99, Quantity: 1}},
		DeliveryAddress: "somewhere",
	})
	assertErrContains(t, err, "product not found: 99")

	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 在庫不足の行でエラーにして、注文は作らない（ロールバック前提）
func TestOrderUsecase_PlaceOrder_InsufficientStock(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	userRepo := new(OrderUserRepoMock)
	ordersRepo := new(OrderOrdersRepoMock)
	itemsRepo := new(OrderItemsRepoMock)
	productsRepo := new(OrderProductsRepoMock)
	invRepo := new(OrderInventoryRepoMock)

	tx.Repos = &OrderTxReposMock{
		orders:     ordersRepo,
		orderItems: itemsRepo,
		products:   productsRepo,
		inventory:  invRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	// 1行目は通り、2行目で在庫不足
	productsRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "Coffee", Price: 1500}, nil)
	productsRepo.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Name: "Tea", Price: 700}, nil)

	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(1)).Return(true, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(11), int64(5)).Return(false, nil)

	uc := usecase.NewOrderUsecase(tx, userRepo)

	_, err := uc.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: 10, Quantity: 1},
			{ProductID: 11, Quantity: 5},
		},
		DeliveryAddress: "somewhere",
	})
	assertErrContains(t, err, "insufficient stock: Tea")

	ordersRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	itemsRepo.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	invRepo.AssertExpectations(t)
}

// =====================
// ListMyOrders / GetMyOrderDetail tests
// =====================

func TestOrderUsecase_ListMyOrders_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	ordersRepo := new(OrderOrdersRepoMock)
	itemsRepo := new(OrderItemsRepoMock)

	tx.Repos = &OrderTxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orders := []model.Order{
		{ID: 10, UserID: 1, Status: model.OrderStatusPending},
		{ID: 11, UserID: 1, Status: model.OrderStatusShipped},
	}
	ordersRepo.On("ListByUserID", mock.Anything, int64(1)).Return(orders, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewOrderUsecase(tx, new(OrderUserRepoMock))

	outs, err := uc.ListMyOrders(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))

	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}

func TestOrderUsecase_GetMyOrderDetail_NotFound_WhenOtherUsersOrder(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	ordersRepo := new(OrderOrdersRepoMock)
	itemsRepo := new(OrderItemsRepoMock)

	tx.Repos = &OrderTxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	// 他人（userID=2）の注文
	ordersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 2}, nil)

	uc := usecase.NewOrderUsecase(tx, new(OrderUserRepoMock))

	_, err := uc.GetMyOrderDetail(ctx, 1, 7)
	assertErrContains(t, err, "order not found")

	itemsRepo.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_GetMyOrderDetail_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(OrderTxManagerMock)
	userRepo := new(OrderUserRepoMock)
	ordersRepo := new(OrderOrdersRepoMock)
	itemsRepo := new(OrderItemsRepoMock)

	tx.Repos = &OrderTxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Total: 500, Status: model.OrderStatusDelivered}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ProductID: 10, ProductNameSnapshot: "Coffee", UnitPriceSnapshot: 500, Quantity: 1},
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(orderTestUser(), nil)

	uc := usecase.NewOrderUsecase(tx, userRepo)

	out, err := uc.GetMyOrderDetail(ctx, 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, "delivered", out.Status)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, "Coffee", out.Items[0].Name)

	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}
