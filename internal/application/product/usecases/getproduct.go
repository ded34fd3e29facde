package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/product/dto"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type GetProductQuery struct {
	ProductID uint
	Actor     authorization.Actor
}

type GetProductUseCase struct {
	products product.Repository
	authz    access.Authorizer
	logger   logger.Interface
}

func NewGetProductUseCase(products product.Repository, authz access.Authorizer, logger logger.Interface) *GetProductUseCase {
	return &GetProductUseCase{
		products: products,
		authz:    authz,
		logger:   logger,
	}
}

func (uc *GetProductUseCase) Execute(ctx context.Context, query GetProductQuery) (*dto.ProductDTO, error) {
	if err := access.Check(uc.authz, query.Actor, permission.ResourceProduct, permission.ActionRead); err != nil {
		return nil, apperr.FromDomain(err)
	}

	p, err := uc.products.GetByID(ctx, query.ProductID)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	if err := access.CheckShop(query.Actor, p.ShopID()); err != nil {
		return nil, apperr.FromDomain(err)
	}
	return dto.ToProductDTO(p), nil
}

// DepositQuote answers whether given dimensions would need a deposit.
type DepositQuote struct {
	RequiresDeposit bool `json:"requires_deposit"`
	MaxDimensionCM  int  `json:"max_dimension_cm"`
}

// EvaluateDepositUseCase exposes the deposit rule to product forms before a
// product is saved.
type EvaluateDepositUseCase struct {
	policy product.DepositPolicy
}

func NewEvaluateDepositUseCase(policy product.DepositPolicy) *EvaluateDepositUseCase {
	return &EvaluateDepositUseCase{policy: policy}
}

func (uc *EvaluateDepositUseCase) Execute(ctx context.Context, dims product.Dimensions) (*DepositQuote, error) {
	requires, err := uc.policy.Evaluate(dims.HeightCM, dims.WidthCM, dims.DepthCM)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	return &DepositQuote{
		RequiresDeposit: requires,
		MaxDimensionCM:  uc.policy.MaxDimensionCM(),
	}, nil
}
