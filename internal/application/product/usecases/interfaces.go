package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/application/product/dto"
	"github.com/rafflehub/rafflehub/internal/domain/product"
)

// RaffleReferenceChecker reports whether a product already backs a raffle
// that left DRAFT.
type RaffleReferenceChecker interface {
	ExistsNonDraftForProduct(ctx context.Context, productID uint) (bool, error)
}

// TransactionRunner runs fn in one database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateProductExecutor interface {
	Execute(ctx context.Context, cmd CreateProductCommand) (*dto.ProductDTO, error)
}

type UpdateProductExecutor interface {
	Execute(ctx context.Context, cmd UpdateProductCommand) (*dto.ProductDTO, error)
}

type GetProductExecutor interface {
	Execute(ctx context.Context, query GetProductQuery) (*dto.ProductDTO, error)
}

type EvaluateDepositExecutor interface {
	Execute(ctx context.Context, dims product.Dimensions) (*DepositQuote, error)
}
