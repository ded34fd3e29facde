package usecases

import (
	"context"
	"time"

	"github.com/rafflehub/rafflehub/internal/application/common/access"
	"github.com/rafflehub/rafflehub/internal/application/common/apperr"
	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// transitionSpec describes one guarded status change.
type transitionSpec struct {
	// permission action checked before the raffle is loaded
	action      string
	auditAction string
	// shopScoped requires shop actors to own the raffle's shop
	shopScoped bool
	apply      func(r *raffle.Raffle, now time.Time) (raffle.Transition, error)
	// guard runs inside the transaction before apply
	guard func(ctx context.Context, r *raffle.Raffle) error
	// after runs inside the transaction once the transition is applied
	after func(ctx context.Context, r *raffle.Raffle, now time.Time) error
}

// StateMachine applies raffle status transitions. Every transition runs in
// the per-raffle transaction and appends exactly one audit entry.
type StateMachine struct {
	raffles   raffle.Repository
	audit     audit.Store
	authz     access.Authorizer
	publisher events.EventPublisher
	clock     biztime.Clock
	logger    logger.Interface
}

func NewStateMachine(
	raffles raffle.Repository,
	auditStore audit.Store,
	authz access.Authorizer,
	publisher events.EventPublisher,
	clock biztime.Clock,
	logger logger.Interface,
) *StateMachine {
	return &StateMachine{
		raffles:   raffles,
		audit:     auditStore,
		authz:     authz,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (sm *StateMachine) run(ctx context.Context, actor authorization.Actor, raffleID uint, spec transitionSpec) (*dto.RaffleDTO, error) {
	sm.logger.Infow("applying raffle transition",
		"raffle_id", raffleID,
		"action", spec.auditAction,
		"actor_id", actor.ID)

	if err := access.Check(sm.authz, actor, permission.ResourceRaffle, spec.action); err != nil {
		sm.logger.Warnw("raffle transition denied",
			"raffle_id", raffleID,
			"action", spec.auditAction,
			"actor_id", actor.ID,
			"error", err)
		return nil, apperr.FromDomain(err)
	}

	var (
		result     *dto.RaffleDTO
		transition raffle.Transition
		remaining  int
	)
	err := sm.raffles.WithRaffleTransaction(ctx, raffleID, func(ctx context.Context, r *raffle.Raffle) error {
		if spec.shopScoped {
			if err := access.CheckShop(actor, r.ShopID()); err != nil {
				return err
			}
		}
		if spec.guard != nil {
			if err := spec.guard(ctx, r); err != nil {
				return err
			}
		}

		now := sm.clock.Now()
		t, err := spec.apply(r, now)
		if err != nil {
			return err
		}
		if err := sm.appendAudit(ctx, actor.ID, spec.auditAction, r.ID(), t, nil, now); err != nil {
			return err
		}
		if spec.after != nil {
			if err := spec.after(ctx, r, now); err != nil {
				return err
			}
		}

		transition = t
		remaining = r.RemainingTickets()
		result = dto.ToRaffleDTO(r)
		return nil
	})
	if err != nil {
		sm.logger.Warnw("raffle transition failed",
			"raffle_id", raffleID,
			"action", spec.auditAction,
			"error", err)
		return nil, apperr.FromDomain(err)
	}

	sm.publish(raffle.NewStatusChangedEvent(raffleID, transition, remaining, sm.clock.Now()))

	sm.logger.Infow("raffle transition applied",
		"raffle_id", raffleID,
		"from", transition.From,
		"to", transition.To)
	return result, nil
}

func (sm *StateMachine) appendAudit(ctx context.Context, actorID, action string, raffleID uint, t raffle.Transition, metadata map[string]any, now time.Time) error {
	entry, err := audit.NewEntry(actorID, action, audit.EntityTypeRaffle, raffleID,
		t.From.String(), t.To.String(), t.Reason, metadata, now)
	if err != nil {
		return err
	}
	return sm.audit.Append(ctx, entry)
}

// publish runs after commit; delivery failures never undo the transition.
func (sm *StateMachine) publish(event events.DomainEvent) {
	if sm.publisher == nil {
		return
	}
	if err := sm.publisher.Publish(event); err != nil {
		sm.logger.Warnw("failed to publish raffle event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err)
	}
}
