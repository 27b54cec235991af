package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/domain/feed"
	"regimen/domain/tracking"
)

// Mock port implementations shared by the service tests

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id core.ProductID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*catalog.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) ListBestSellers(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) ListNewArrivals(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) ListByIDs(ctx context.Context, ids []core.ProductID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]catalog.Category)
	return categories, args.Error(1)
}

func (m *MockProductRepository) ListDailySales(ctx context.Context, days int) ([]catalog.DailySales, error) {
	args := m.Called(ctx, days)
	series, _ := args.Get(0).([]catalog.DailySales)
	return series, args.Error(1)
}

func (m *MockProductRepository) UpsertDailySales(ctx context.Context, sales catalog.DailySales) error {
	args := m.Called(ctx, sales)
	return args.Error(0)
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) ListActive(ctx context.Context, now time.Time) ([]catalog.Deal, error) {
	args := m.Called(ctx, now)
	deals, _ := args.Get(0).([]catalog.Deal)
	return deals, args.Error(1)
}

func (m *MockDealRepository) Upsert(ctx context.Context, deal *catalog.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(storefront core.StorefrontID, snapshot feed.Snapshot) error {
	args := m.Called(storefront, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(storefront core.StorefrontID) (*feed.Snapshot, error) {
	args := m.Called(storefront)
	snapshot, _ := args.Get(0).(*feed.Snapshot)
	return snapshot, args.Error(1)
}

type MockSupplementRepository struct {
	mock.Mock
}

func (m *MockSupplementRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Supplement, error) {
	args := m.Called(ctx, userID)
	supplements, _ := args.Get(0).([]tracking.Supplement)
	return supplements, args.Error(1)
}

func (m *MockSupplementRepository) GetByID(ctx context.Context, userID core.UserID, id int64) (*tracking.Supplement, error) {
	args := m.Called(ctx, userID, id)
	supplement, _ := args.Get(0).(*tracking.Supplement)
	return supplement, args.Error(1)
}

func (m *MockSupplementRepository) Create(ctx context.Context, supplement *tracking.Supplement) error {
	args := m.Called(ctx, supplement)
	return args.Error(0)
}

func (m *MockSupplementRepository) Archive(ctx context.Context, userID core.UserID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) ListByUser(ctx context.Context, userID core.UserID) ([]tracking.Reminder, error) {
	args := m.Called(ctx, userID)
	reminders, _ := args.Get(0).([]tracking.Reminder)
	return reminders, args.Error(1)
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *tracking.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, userID core.UserID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockIntakeRepository struct {
	mock.Mock
}

func (m *MockIntakeRepository) Record(ctx context.Context, event *tracking.IntakeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockIntakeRepository) ListSince(ctx context.Context, userID core.UserID, days int) ([]tracking.IntakeEvent, error) {
	args := m.Called(ctx, userID, days)
	events, _ := args.Get(0).([]tracking.IntakeEvent)
	return events, args.Error(1)
}

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) Read(ctx context.Context) (*catalog.ImportBatch, error) {
	args := m.Called(ctx)
	batch, _ := args.Get(0).(*catalog.ImportBatch)
	return batch, args.Error(1)
}
