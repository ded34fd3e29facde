package raffle

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
)

const maxSpecialConditionsLength = 5000

// Transition describes one status change applied to a raffle.
type Transition struct {
	From   vo.RaffleStatus
	To     vo.RaffleStatus
	Reason string
}

// Reservation is the outcome of a successful Reserve call.
type Reservation struct {
	Numbers []int
	// SoldOut holds the ACTIVE -> SOLD_OUT transition when the call sold the last ticket.
	SoldOut *Transition
}

// Raffle is the aggregate root guarding ticket supply and lifecycle status.
// Mutations happen only inside the per-raffle transaction.
type Raffle struct {
	id                uint
	shopID            uint
	productID         uint
	productValueCents int64
	totalTickets      int
	soldTickets       int
	status            vo.RaffleStatus
	winnerTicketID    *uint
	winningNumber     *int
	requiresDeposit   bool
	specialConditions string
	rejectReason      string
	cancelReason      string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	activatedAt       *time.Time
	soldOutAt         *time.Time
	raffleExecutedAt  *time.Time
}

// NewRaffle creates a raffle in DRAFT.
func NewRaffle(shopID, productID uint, productValueCents int64, totalTickets int, requiresDeposit bool, specialConditions string, now time.Time) (*Raffle, error) {
	if shopID == 0 {
		return nil, fmt.Errorf("shop ID is required")
	}
	if productID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if totalTickets <= 0 {
		return nil, fmt.Errorf("total tickets must be positive, got %d", totalTickets)
	}
	specialConditions = strings.TrimSpace(specialConditions)
	if len(specialConditions) > maxSpecialConditionsLength {
		return nil, fmt.Errorf("special conditions exceed %d characters", maxSpecialConditionsLength)
	}

	return &Raffle{
		shopID:            shopID,
		productID:         productID,
		productValueCents: productValueCents,
		totalTickets:      totalTickets,
		status:            vo.StatusDraft,
		requiresDeposit:   requiresDeposit,
		specialConditions: specialConditions,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructRaffle reconstructs a raffle from persistence and rejects rows
// that break the aggregate invariants.
func ReconstructRaffle(
	id, shopID, productID uint,
	productValueCents int64,
	totalTickets, soldTickets int,
	status vo.RaffleStatus,
	winnerTicketID *uint,
	winningNumber *int,
	requiresDeposit bool,
	specialConditions, rejectReason, cancelReason string,
	version int,
	createdAt, updatedAt time.Time,
	activatedAt, soldOutAt, raffleExecutedAt *time.Time,
) (*Raffle, error) {
	if id == 0 {
		return nil, fmt.Errorf("raffle ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid raffle status: %s", status)
	}

	r := &Raffle{
		id:                id,
		shopID:            shopID,
		productID:         productID,
		productValueCents: productValueCents,
		totalTickets:      totalTickets,
		soldTickets:       soldTickets,
		status:            status,
		winnerTicketID:    winnerTicketID,
		winningNumber:     winningNumber,
		requiresDeposit:   requiresDeposit,
		specialConditions: specialConditions,
		rejectReason:      rejectReason,
		cancelReason:      cancelReason,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		activatedAt:       activatedAt,
		soldOutAt:         soldOutAt,
		raffleExecutedAt:  raffleExecutedAt,
	}
	if err := r.CheckInvariants(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Raffle) ID() uint {
	return r.id
}

func (r *Raffle) ShopID() uint {
	return r.shopID
}

func (r *Raffle) ProductID() uint {
	return r.productID
}

func (r *Raffle) ProductValueCents() int64 {
	return r.productValueCents
}

func (r *Raffle) TotalTickets() int {
	return r.totalTickets
}

func (r *Raffle) SoldTickets() int {
	return r.soldTickets
}

func (r *Raffle) RemainingTickets() int {
	return r.totalTickets - r.soldTickets
}

func (r *Raffle) Status() vo.RaffleStatus {
	return r.status
}

func (r *Raffle) WinnerTicketID() *uint {
	return r.winnerTicketID
}

func (r *Raffle) WinningNumber() *int {
	return r.winningNumber
}

func (r *Raffle) RequiresDeposit() bool {
	return r.requiresDeposit
}

func (r *Raffle) SpecialConditions() string {
	return r.specialConditions
}

func (r *Raffle) RejectReason() string {
	return r.rejectReason
}

func (r *Raffle) CancelReason() string {
	return r.cancelReason
}

// Version returns the aggregate version for optimistic locking
func (r *Raffle) Version() int {
	return r.version
}

func (r *Raffle) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Raffle) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Raffle) ActivatedAt() *time.Time {
	return r.activatedAt
}

func (r *Raffle) SoldOutAt() *time.Time {
	return r.soldOutAt
}

func (r *Raffle) RaffleExecutedAt() *time.Time {
	return r.raffleExecutedAt
}

// SetID sets the raffle ID (only for persistence layer use)
func (r *Raffle) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("raffle ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("raffle ID cannot be zero")
	}
	r.id = id
	return nil
}

// SetVersion records the version written by the repository (only for persistence layer use)
func (r *Raffle) SetVersion(version int) {
	r.version = version
}

// Submit sends a draft for admin approval.
func (r *Raffle) Submit(now time.Time) (Transition, error) {
	return r.transition(vo.StatusPendingApproval, "", now)
}

// Approve activates a raffle awaiting approval.
func (r *Raffle) Approve(now time.Time) (Transition, error) {
	t, err := r.transition(vo.StatusActive, "", now)
	if err != nil {
		return t, err
	}
	r.activatedAt = &now
	return t, nil
}

// Reject closes a raffle awaiting approval. The reason is mandatory.
func (r *Raffle) Reject(reason string, now time.Time) (Transition, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transition{}, ErrMissingRejectReason
	}
	t, err := r.transition(vo.StatusRejected, reason, now)
	if err != nil {
		return t, err
	}
	r.rejectReason = reason
	return t, nil
}

func (r *Raffle) Pause(now time.Time) (Transition, error) {
	return r.transition(vo.StatusPaused, "", now)
}

func (r *Raffle) Resume(now time.Time) (Transition, error) {
	return r.transition(vo.StatusActive, "", now)
}

// Cancel stops a raffle that has not sold out. The reason is mandatory.
func (r *Raffle) Cancel(reason string, now time.Time) (Transition, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transition{}, ErrMissingCancelReason
	}
	t, err := r.transition(vo.StatusCancelled, reason, now)
	if err != nil {
		return t, err
	}
	r.cancelReason = reason
	return t, nil
}

// WasActivated reports whether the raffle passed approval at some point.
func (r *Raffle) WasActivated() bool {
	return r.activatedAt != nil
}

// Reserve allocates the next quantity ticket numbers. It either grants all of
// them or nothing, and moves the raffle to SOLD_OUT when the last ticket goes.
func (r *Raffle) Reserve(quantity int, now time.Time) (Reservation, error) {
	if quantity < 1 {
		return Reservation{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if !r.status.AcceptsPurchases() {
		return Reservation{}, fmt.Errorf("%w: status %s", ErrRaffleNotActive, r.status)
	}
	remaining := r.RemainingTickets()
	if quantity > remaining {
		return Reservation{}, errInsufficient(quantity, remaining)
	}

	numbers := make([]int, quantity)
	for i := range numbers {
		numbers[i] = r.soldTickets + i + 1
	}
	r.soldTickets += quantity
	r.updatedAt = now

	res := Reservation{Numbers: numbers}
	if r.soldTickets == r.totalTickets {
		t, err := r.transition(vo.StatusSoldOut, "", now)
		if err != nil {
			return Reservation{}, err
		}
		r.soldOutAt = &now
		res.SoldOut = &t
	}

	if err := r.CheckInvariants(); err != nil {
		return Reservation{}, err
	}
	return res, nil
}

// Finish records the drawn ticket and closes the raffle.
func (r *Raffle) Finish(winnerTicketID uint, winningNumber int, now time.Time) (Transition, error) {
	if winnerTicketID == 0 {
		return Transition{}, fmt.Errorf("winner ticket ID is required")
	}
	if winningNumber < 1 || winningNumber > r.totalTickets {
		return Transition{}, fmt.Errorf("%w: %d not in [1,%d]", ErrInvalidWinningNumber, winningNumber, r.totalTickets)
	}
	t, err := r.transition(vo.StatusFinished, "", now)
	if err != nil {
		return t, err
	}
	r.winnerTicketID = &winnerTicketID
	r.winningNumber = &winningNumber
	r.raffleExecutedAt = &now
	return t, nil
}

// CheckInvariants verifies the supply bounds and the winner/status pairing.
func (r *Raffle) CheckInvariants() error {
	if r.totalTickets <= 0 {
		return fmt.Errorf("%w: total tickets %d", ErrInvariantViolation, r.totalTickets)
	}
	if r.soldTickets < 0 || r.soldTickets > r.totalTickets {
		return fmt.Errorf("%w: sold %d of %d", ErrInvariantViolation, r.soldTickets, r.totalTickets)
	}
	if (r.winnerTicketID != nil) != (r.status == vo.StatusFinished) {
		return fmt.Errorf("%w: status %s with winner set=%t", ErrInvariantViolation, r.status, r.winnerTicketID != nil)
	}
	if (r.status == vo.StatusSoldOut || r.status == vo.StatusFinished) && r.soldTickets != r.totalTickets {
		return fmt.Errorf("%w: status %s with %d of %d sold", ErrInvariantViolation, r.status, r.soldTickets, r.totalTickets)
	}
	return nil
}

func (r *Raffle) transition(target vo.RaffleStatus, reason string, now time.Time) (Transition, error) {
	if !r.status.CanTransitionTo(target) {
		return Transition{}, ErrInvalidTransition(r.status, target)
	}
	t := Transition{From: r.status, To: target, Reason: reason}
	r.status = target
	r.updatedAt = now
	return t, nil
}
