package usecases

import (
	"context"
	"fmt"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/product/dto"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// UpdateProductCommand carries optional changes; nil fields are left as is.
type UpdateProductCommand struct {
	ProductID   uint
	Name        *string
	Description *string
	ValueCents  *int64
	Dimensions  *product.Dimensions
	Status      *product.Status
	Actor       authorization.Actor
}

func (c UpdateProductCommand) changesTerms() bool {
	return c.ValueCents != nil || c.Dimensions != nil
}

// UpdateProductUseCase edits a product. Value and dimensions freeze once a
// raffle past DRAFT references the product.
type UpdateProductUseCase struct {
	products product.Repository
	raffles  RaffleReferenceChecker
	tx       TransactionRunner
	policy   product.DepositPolicy
	authz    access.Authorizer
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUpdateProductUseCase(
	products product.Repository,
	raffles RaffleReferenceChecker,
	tx TransactionRunner,
	policy product.DepositPolicy,
	authz access.Authorizer,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		products: products,
		raffles:  raffles,
		tx:       tx,
		policy:   policy,
		authz:    authz,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *UpdateProductUseCase) Execute(ctx context.Context, cmd UpdateProductCommand) (*dto.ProductDTO, error) {
	uc.logger.Infow("executing update product use case",
		"product_id", cmd.ProductID,
		"actor_id", cmd.Actor.ID)

	if err := access.Check(uc.authz, cmd.Actor, permission.ResourceProduct, permission.ActionUpdate); err != nil {
		return nil, apperr.FromDomain(err)
	}

	var (
		updated  *product.Product
		inputErr error
	)
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := uc.products.GetByID(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if err := access.CheckShop(cmd.Actor, p.ShopID()); err != nil {
			return err
		}

		if cmd.changesTerms() {
			locked, err := uc.raffles.ExistsNonDraftForProduct(ctx, p.ID())
			if err != nil {
				return err
			}
			if locked {
				return fmt.Errorf("%w: product %d", product.ErrProductLocked, p.ID())
			}
		}

		if err := uc.apply(p, cmd); err != nil {
			inputErr = err
			return err
		}
		if err := uc.products.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		uc.logger.Warnw("failed to update product", "product_id", cmd.ProductID, "error", err)
		if inputErr != nil {
			return nil, apperr.FromInput("invalid product", inputErr)
		}
		return nil, apperr.FromDomain(err)
	}

	uc.logger.Infow("product updated successfully",
		"product_id", updated.ID(),
		"requires_deposit", updated.RequiresDeposit())
	return dto.ToProductDTO(updated), nil
}

func (uc *UpdateProductUseCase) apply(p *product.Product, cmd UpdateProductCommand) error {
	now := uc.clock.Now()
	if cmd.Name != nil || cmd.Description != nil {
		name, description := p.Name(), p.Description()
		if cmd.Name != nil {
			name = *cmd.Name
		}
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := p.UpdateMetadata(name, description, now); err != nil {
			return err
		}
	}
	if cmd.ValueCents != nil {
		if err := p.UpdateValue(*cmd.ValueCents, now); err != nil {
			return err
		}
	}
	if cmd.Dimensions != nil {
		if err := p.UpdateDimensions(*cmd.Dimensions, uc.policy, now); err != nil {
			return err
		}
	}
	if cmd.Status != nil {
		if err := p.ChangeStatus(*cmd.Status, now); err != nil {
			return err
		}
	}
	return nil
}
