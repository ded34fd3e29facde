package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

const defaultRecoveryBatch = 50

// RecoverDrawsUseCase finishes raffles that sold out but were never drawn,
// e.g. after a crash between the sale and the draw.
type RecoverDrawsUseCase struct {
	raffles   raffle.Repository
	selector  *WinnerSelector
	batchSize int
	logger    logger.Interface
}

func NewRecoverDrawsUseCase(raffles raffle.Repository, selector *WinnerSelector, batchSize int, logger logger.Interface) *RecoverDrawsUseCase {
	if batchSize <= 0 {
		batchSize = defaultRecoveryBatch
	}
	return &RecoverDrawsUseCase{
		raffles:   raffles,
		selector:  selector,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Execute returns how many raffles were finished. A failing raffle is logged
// and skipped so one bad row does not block the rest.
func (uc *RecoverDrawsUseCase) Execute(ctx context.Context) (int, error) {
	ids, err := uc.raffles.ListSoldOutWithoutWinner(ctx, uc.batchSize)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	uc.logger.Infow("recovering pending draws", "count", len(ids))

	recovered := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return recovered, ctx.Err()
		}
		result, err := uc.selector.Execute(ctx, SelectWinnerCommand{
			RaffleID: id,
			Actor:    authorization.SystemActor(),
		})
		if err != nil {
			uc.logger.Errorw("failed to recover draw", "raffle_id", id, "error", err)
			continue
		}
		if !result.AlreadyDrawn {
			recovered++
		}
	}
	return recovered, nil
}
