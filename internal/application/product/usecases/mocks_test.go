package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/domain/product"
)

type mockProductRepository struct {
	CreateFunc  func(ctx context.Context, p *product.Product) error
	GetByIDFunc func(ctx context.Context, id uint) (*product.Product, error)
	UpdateFunc  func(ctx context.Context, p *product.Product) error
}

func (m *mockProductRepository) Create(ctx context.Context, p *product.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return p.SetID(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, product.ErrProductNotFound
}

func (m *mockProductRepository) Update(ctx context.Context, p *product.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

type mockRaffleReferenceChecker struct {
	locked bool
	err    error
}

func (m *mockRaffleReferenceChecker) ExistsNonDraftForProduct(ctx context.Context, productID uint) (bool, error) {
	return m.locked, m.err
}

// inlineTx runs fn without a database.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockAuthorizer struct {
	allowed bool
}

func (m mockAuthorizer) Enforce(role, resource, action string) (bool, error) {
	return m.allowed, nil
}
