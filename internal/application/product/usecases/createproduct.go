package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/product/dto"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

type CreateProductCommand struct {
	ShopID      uint
	Name        string
	Description string
	ValueCents  int64
	Dimensions  product.Dimensions
	Actor       authorization.Actor
}

type CreateProductUseCase struct {
	products product.Repository
	policy   product.DepositPolicy
	authz    access.Authorizer
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreateProductUseCase(
	products product.Repository,
	policy product.DepositPolicy,
	authz access.Authorizer,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		products: products,
		policy:   policy,
		authz:    authz,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) (*dto.ProductDTO, error) {
	uc.logger.Infow("executing create product use case",
		"shop_id", cmd.ShopID,
		"actor_id", cmd.Actor.ID)

	if err := access.Check(uc.authz, cmd.Actor, permission.ResourceProduct, permission.ActionCreate); err != nil {
		return nil, apperr.FromDomain(err)
	}
	if err := access.CheckShop(cmd.Actor, cmd.ShopID); err != nil {
		return nil, apperr.FromDomain(err)
	}

	p, err := product.NewProduct(cmd.ShopID, cmd.Name, cmd.Description, cmd.ValueCents, cmd.Dimensions, uc.policy, uc.clock.Now())
	if err != nil {
		uc.logger.Warnw("invalid product input", "shop_id", cmd.ShopID, "error", err)
		return nil, apperr.FromInput("invalid product", err)
	}

	if err := uc.products.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create product", "shop_id", cmd.ShopID, "error", err)
		return nil, apperr.FromDomain(err)
	}

	uc.logger.Infow("product created successfully",
		"product_id", p.ID(),
		"requires_deposit", p.RequiresDeposit())
	return dto.ToProductDTO(p), nil
}
