package http

import (
	productUsecases "github.com/rafflehub/rafflehub/internal/application/product/usecases"
	"github.com/rafflehub/rafflehub/internal/application/raffle/usecases"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Raffle lifecycle
	stateMachine   *usecases.StateMachine
	createRaffleUC *usecases.CreateRaffleUseCase
	getRaffleUC    *usecases.GetRaffleUseCase
	lifecycleUC    *usecases.LifecycleUseCase
	approvalUC     *usecases.ApprovalWorkflow

	// Tickets and draw
	availabilityUC *usecases.GetAvailabilityUseCase
	listTicketsUC  *usecases.ListTicketsUseCase
	purchaseUC     *usecases.PurchaseTicketsUseCase
	winnerSelector *usecases.WinnerSelector
	recoverDraws   *usecases.RecoverDrawsUseCase

	// Product
	createProductUC   *productUsecases.CreateProductUseCase
	updateProductUC   *productUsecases.UpdateProductUseCase
	getProductUC      *productUsecases.GetProductUseCase
	evaluateDepositUC *productUsecases.EvaluateDepositUseCase
}

func (c *Container) initUseCases() {
	cfg := c.cfg.Raffle
	log := c.log
	repos := c.repos

	policy := product.NewDepositPolicy(cfg.MaxDimensionCM, cfg.MaxEntryDimensionCM)
	md := markdown.NewRenderer()
	clock := biztime.SystemClock()

	sm := usecases.NewStateMachine(repos.raffleRepo, repos.auditStore, c.enforcer, c.dispatcher, clock, log)
	selector := usecases.NewWinnerSelector(sm, repos.ticketRepo, raffle.NewCryptoRandomSource(), log)

	c.ucs = &allUseCases{
		stateMachine:   sm,
		createRaffleUC: usecases.NewCreateRaffleUseCase(repos.raffleRepo, repos.productRepo, c.enforcer, md, cfg.TicketsPerUnit, clock, log),
		getRaffleUC:    usecases.NewGetRaffleUseCase(repos.raffleRepo, c.enforcer, md, log),
		lifecycleUC:    usecases.NewLifecycleUseCase(sm, repos.shopRepo, repos.ticketRepo, repos.depositRepo, log),
		approvalUC:     usecases.NewApprovalWorkflow(sm, repos.depositRepo, log),

		availabilityUC: usecases.NewGetAvailabilityUseCase(repos.raffleRepo, c.availabilityCache, log),
		listTicketsUC:  usecases.NewListTicketsUseCase(repos.raffleRepo, repos.ticketRepo, c.enforcer, log),
		purchaseUC:     usecases.NewPurchaseTicketsUseCase(sm, repos.ticketRepo, selector, cfg.TicketsPerUnit, log),
		winnerSelector: selector,
		recoverDraws:   usecases.NewRecoverDrawsUseCase(repos.raffleRepo, selector, cfg.Recovery.BatchSize, log),

		createProductUC:   productUsecases.NewCreateProductUseCase(repos.productRepo, policy, c.enforcer, clock, log),
		updateProductUC:   productUsecases.NewUpdateProductUseCase(repos.productRepo, repos.raffleRepo, repos.txManager, policy, c.enforcer, clock, log),
		getProductUC:      productUsecases.NewGetProductUseCase(repos.productRepo, c.enforcer, log),
		evaluateDepositUC: productUsecases.NewEvaluateDepositUseCase(policy),
	}
}
