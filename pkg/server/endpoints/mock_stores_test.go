package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) FetchUser(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) ListUsers(search string, limit, offset int) ([]model.User, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) CountUsers(search string) (int64, error) {
	args := m.Called(search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsersStore) UpdateRole(id, role string) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func (m *MockUsersStore) UpdatePermissions(id string, permissions []string) error {
	args := m.Called(id, permissions)
	return args.Error(0)
}

func (m *MockUsersStore) AddToWishlist(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockUsersStore) RemoveFromWishlist(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

// MockProductsStore implements store.ProductsStore for testing using testify/mock
type MockProductsStore struct {
	mock.Mock
}

func NewMockProductsStore() *MockProductsStore {
	return &MockProductsStore{}
}

func (m *MockProductsStore) ListProducts(q store.ProductQuery) ([]model.Product, error) {
	args := m.Called(q)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductsStore) CountProducts(q store.ProductQuery) (int64, error) {
	args := m.Called(q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductsStore) FetchProduct(id string) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductsStore) FetchProductsByIDs(ids []string) ([]model.Product, error) {
	args := m.Called(ids)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductsStore) CreateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductsStore) UpdateProduct(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductsStore) DeleteProduct(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductsStore) IncrementViews(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAdsStore implements store.AdsStore for testing using testify/mock
type MockAdsStore struct {
	mock.Mock
}

func NewMockAdsStore() *MockAdsStore {
	return &MockAdsStore{}
}

func (m *MockAdsStore) ListAds(activeOnly bool) ([]model.Ad, error) {
	args := m.Called(activeOnly)
	return args.Get(0).([]model.Ad), args.Error(1)
}

func (m *MockAdsStore) FetchAd(id string) (*model.Ad, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ad), args.Error(1)
}

func (m *MockAdsStore) CreateAd(ad *model.Ad) error {
	args := m.Called(ad)
	return args.Error(0)
}

func (m *MockAdsStore) UpdateAd(ad *model.Ad) error {
	args := m.Called(ad)
	return args.Error(0)
}

func (m *MockAdsStore) DeleteAd(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockActionButtonsStore implements store.ActionButtonsStore for testing
type MockActionButtonsStore struct {
	mock.Mock
}

func NewMockActionButtonsStore() *MockActionButtonsStore {
	return &MockActionButtonsStore{}
}

func (m *MockActionButtonsStore) ListButtons(productID string, activeOnly bool) ([]model.ActionButton, error) {
	args := m.Called(productID, activeOnly)
	return args.Get(0).([]model.ActionButton), args.Error(1)
}

func (m *MockActionButtonsStore) FetchButton(id string) (*model.ActionButton, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ActionButton), args.Error(1)
}

func (m *MockActionButtonsStore) CreateButton(button *model.ActionButton) error {
	args := m.Called(button)
	return args.Error(0)
}

func (m *MockActionButtonsStore) UpdateButton(button *model.ActionButton) error {
	args := m.Called(button)
	return args.Error(0)
}

func (m *MockActionButtonsStore) DeleteButton(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMerchantsStore implements store.MerchantsStore for testing
type MockMerchantsStore struct {
	mock.Mock
}

func NewMockMerchantsStore() *MockMerchantsStore {
	return &MockMerchantsStore{}
}

func (m *MockMerchantsStore) FetchMerchant(id string) (*model.Merchant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *MockMerchantsStore) UpsertMerchant(merchant *model.Merchant) error {
	args := m.Called(merchant)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
