package usecases

import (
	"context"

	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
)

type CreateRaffleExecutor interface {
	Execute(ctx context.Context, cmd CreateRaffleCommand) (*dto.RaffleDTO, error)
}

type GetRaffleExecutor interface {
	Execute(ctx context.Context, query GetRaffleQuery) (*dto.RaffleDTO, error)
}

type GetAvailabilityExecutor interface {
	Execute(ctx context.Context, query GetAvailabilityQuery) (*dto.AvailabilityDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type PurchaseTicketsExecutor interface {
	Execute(ctx context.Context, cmd PurchaseTicketsCommand) (*dto.ReservationDTO, error)
}

type SelectWinnerExecutor interface {
	Execute(ctx context.Context, cmd SelectWinnerCommand) (*dto.WinnerDTO, error)
}

// LifecycleExecutor covers the transitions a shop drives on its own raffles.
type LifecycleExecutor interface {
	Submit(ctx context.Context, cmd SubmitRaffleCommand) (*dto.RaffleDTO, error)
	Pause(ctx context.Context, cmd PauseRaffleCommand) (*dto.RaffleDTO, error)
	Resume(ctx context.Context, cmd ResumeRaffleCommand) (*dto.RaffleDTO, error)
	Cancel(ctx context.Context, cmd CancelRaffleCommand) (*dto.RaffleDTO, error)
}

type ApprovalExecutor interface {
	Approve(ctx context.Context, cmd ApproveRaffleCommand) (*dto.RaffleDTO, error)
	Reject(ctx context.Context, cmd RejectRaffleCommand) (*dto.RaffleDTO, error)
}
