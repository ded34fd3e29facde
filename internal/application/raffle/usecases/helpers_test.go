package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/services/markdown"
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

const testShopID uint = 7

var (
	adminActor = authorization.Actor{ID: "admin-1", Role: authorization.RoleAdmin}
	shopActor  = authorization.Actor{ID: "shop-owner-1", Role: authorization.RoleShop, ShopID: testShopID}
	otherShop  = authorization.Actor{ID: "shop-owner-2", Role: authorization.RoleShop, ShopID: 99}
	buyer      = authorization.Actor{ID: "user-1", Role: authorization.RoleUser}
)

type testHarness struct {
	raffles   *mockRaffleRepository
	tickets   *mockTicketRepository
	audit     *mockAuditStore
	deposits  *mockDepositRepository
	shops     *mockShopRepository
	products  *mockProductRepository
	publisher *mockEventPublisher
	cache     *mockAvailabilityCache

	sm        *StateMachine
	lifecycle *LifecycleUseCase
	approval  *ApprovalWorkflow
	selector  *WinnerSelector
	purchase  *PurchaseTicketsUseCase
	recover   *RecoverDrawsUseCase
	create    *CreateRaffleUseCase
	get       *GetRaffleUseCase
	avail     *GetAvailabilityUseCase
	list      *ListTicketsUseCase
}

func newTestHarness(t *testing.T) *testHarness {
	return newTestHarnessWithRandom(t, fixedRandom{value: 2})
}

func newTestHarnessWithRandom(t *testing.T, random raffle.RandomSource) *testHarness {
	t.Helper()
	log := logger.NewDiscardLogger()

	enforcer, err := permission.NewEnforcer(nil, log)
	require.NoError(t, err)
	require.NoError(t, permission.InitRafflePermissions(enforcer, log))

	h := &testHarness{
		raffles:   newMockRaffleRepository(),
		tickets:   newMockTicketRepository(),
		audit:     &mockAuditStore{},
		deposits:  newMockDepositRepository(),
		shops:     &mockShopRepository{},
		products:  &mockProductRepository{},
		publisher: &mockEventPublisher{},
		cache:     newMockAvailabilityCache(),
	}
	clock := biztime.FixedClock{T: testNow}
	md := markdown.NewRenderer()

	h.sm = NewStateMachine(h.raffles, h.audit, enforcer, h.publisher, clock, log)
	h.lifecycle = NewLifecycleUseCase(h.sm, h.shops, h.tickets, h.deposits, log)
	h.approval = NewApprovalWorkflow(h.sm, h.deposits, log)
	h.selector = NewWinnerSelector(h.sm, h.tickets, random, log)
	h.purchase = NewPurchaseTicketsUseCase(h.sm, h.tickets, h.selector, raffle.DefaultTicketsPerUnit, log)
	h.recover = NewRecoverDrawsUseCase(h.raffles, h.selector, 0, log)
	h.create = NewCreateRaffleUseCase(h.raffles, h.products, enforcer, md, raffle.DefaultTicketsPerUnit, clock, log)
	h.get = NewGetRaffleUseCase(h.raffles, enforcer, md, log)
	h.avail = NewGetAvailabilityUseCase(h.raffles, h.cache, log)
	h.list = NewListTicketsUseCase(h.raffles, h.tickets, enforcer, log)
	return h
}

// newDraft stores a DRAFT raffle of the test shop.
func (h *testHarness) newDraft(t *testing.T, total int, requiresDeposit bool) uint {
	t.Helper()
	r, err := raffle.NewRaffle(testShopID, 1, int64(total)*50, total, requiresDeposit, "", testNow)
	require.NoError(t, err)
	require.NoError(t, h.raffles.Create(context.Background(), r))
	return r.ID()
}

// newActive drives a draft through submit and approve.
func (h *testHarness) newActive(t *testing.T, total int, requiresDeposit bool) uint {
	t.Helper()
	ctx := context.Background()
	id := h.newDraft(t, total, requiresDeposit)
	_, err := h.lifecycle.Submit(ctx, SubmitRaffleCommand{RaffleID: id, Actor: shopActor})
	require.NoError(t, err)
	_, err = h.approval.Approve(ctx, ApproveRaffleCommand{RaffleID: id, Actor: adminActor})
	require.NoError(t, err)
	return id
}

func (h *testHarness) status(t *testing.T, id uint) vo.RaffleStatus {
	t.Helper()
	r, err := h.raffles.GetByID(context.Background(), id)
	require.NoError(t, err)
	return r.Status()
}

// buy purchases quantity tickets for the user with an exact payment.
func (h *testHarness) buy(ctx context.Context, raffleID uint, userID string, quantity int, ref string) error {
	_, err := h.purchase.Execute(ctx, PurchaseTicketsCommand{
		RaffleID:         raffleID,
		UserID:           userID,
		Quantity:         quantity,
		AmountCents:      int64(quantity) * 50,
		PaymentReference: ref,
		Actor:            authorization.SystemActor(),
	})
	return err
}
