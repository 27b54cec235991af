package ui

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/domain/tracking"
)

// MockProductRepository mocks ports.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id core.ProductID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*catalog.Product)
	return v, args.Error(1)
}

func (m *MockProductRepository) ListBestSellers(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]catalog.Product)
	return v, args.Error(1)
}

func (m *MockProductRepository) ListNewArrivals(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]catalog.Product)
	return v, args.Error(1)
}

func (m *MockProductRepository) ListByIDs(ctx context.Context, ids []core.ProductID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	v, _ := args.Get(0).([]catalog.Product)
	return v, args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]catalog.Category)
	return v, args.Error(1)
}

func (m *MockProductRepository) ListDailySales(ctx context.Context, days int) ([]catalog.DailySales, error) {
	args := m.Called(ctx, days)
	v, _ := args.Get(0).([]catalog.DailySales)
	return v, args.Error(1)
}

func (m *MockProductRepository) UpsertDailySales(ctx context.Context, sales catalog.DailySales) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockDealRepository mocks ports.DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) ListActive(ctx context.Context, now time.Time) ([]catalog.Deal, error) {
	args := m.Called(ctx, now)
	v, _ := args.Get(0).([]catalog.Deal)
	return v, args.Error(1)
}

func (m *MockDealRepository) Upsert(ctx context.Context, deal *catalog.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

// MockSupplementRepository mocks ports.SupplementRepository
type MockSupplementRepository struct {
	mock.Mock
}

func (m *MockSupplementRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Supplement, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]tracking.Supplement)
	return v, args.Error(1)
}

func (m *MockSupplementRepository) GetByID(ctx context.Context, userID core.UserID, id int64) (*tracking.Supplement, error) {
	args := m.Called(ctx, userID, id)
	v, _ := args.Get(0).(*tracking.Supplement)
	return v, args.Error(1)
}

func (m *MockSupplementRepository) Create(ctx context.Context, supplement *tracking.Supplement) error {
	args := m.Called(ctx, supplement)
	return args.Error(0)
}

func (m *MockSupplementRepository) Archive(ctx context.Context, userID core.UserID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockReminderRepository mocks ports.ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Reminder, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).([]tracking.Reminder)
	return v, args.Error(1)
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *tracking.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, userID core.UserID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockIntakeRepository mocks ports.IntakeRepository
type MockIntakeRepository struct {
	mock.Mock
}

func (m *MockIntakeRepository) Record(ctx context.Context, event *tracking.IntakeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockIntakeRepository) ListSince(ctx context.Context, userID core.UserID, days int) ([]tracking.IntakeEvent, error) {
	args := m.Called(ctx, userID, days)
	v, _ := args.Get(0).([]tracking.IntakeEvent)
	return v, args.Error(1)
}
