package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rafflehub/rafflehub/internal/domain/audit"
	"github.com/rafflehub/rafflehub/internal/domain/deposit"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	vo "github.com/rafflehub/rafflehub/internal/domain/raffle/valueobjects"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
	"github.com/rafflehub/rafflehub/internal/domain/shop"
	"github.com/rafflehub/rafflehub/internal/infrastructure/cache"
)

// mockRaffleRepository serializes transactions with one mutex and commits a
// copy of the aggregate only when fn succeeds.
type mockRaffleRepository struct {
	mu      sync.Mutex
	raffles map[uint]*raffle.Raffle
	nextID  uint

	WithRaffleTransactionFunc func(ctx context.Context, id uint, fn raffle.TxFunc) error
}

func newMockRaffleRepository() *mockRaffleRepository {
	return &mockRaffleRepository{raffles: make(map[uint]*raffle.Raffle)}
}

func (m *mockRaffleRepository) Create(ctx context.Context, r *raffle.Raffle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := r.SetID(m.nextID); err != nil {
		return err
	}
	cp := *r
	m.raffles[r.ID()] = &cp
	return nil
}

// put stores a reconstructed raffle as is.
func (m *mockRaffleRepository) put(r *raffle.Raffle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.raffles[r.ID()] = &cp
	if r.ID() > m.nextID {
		m.nextID = r.ID()
	}
}

func (m *mockRaffleRepository) GetByID(ctx context.Context, id uint) (*raffle.Raffle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.raffles[id]
	if !ok {
		return nil, raffle.ErrRaffleNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRaffleRepository) WithRaffleTransaction(ctx context.Context, id uint, fn raffle.TxFunc) error {
	if m.WithRaffleTransactionFunc != nil {
		return m.WithRaffleTransactionFunc(ctx, id, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.raffles[id]
	if !ok {
		return raffle.ErrRaffleNotFound
	}
	working := *stored
	if err := fn(ctx, &working); err != nil {
		return err
	}
	if err := working.CheckInvariants(); err != nil {
		return err
	}
	m.raffles[id] = &working
	return nil
}

func (m *mockRaffleRepository) ListSoldOutWithoutWinner(ctx context.Context, limit int) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for id, r := range m.raffles {
		if r.Status() == vo.StatusSoldOut && r.WinnerTicketID() == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (m *mockRaffleRepository) ExistsNonDraftForProduct(ctx context.Context, productID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.raffles {
		if r.ProductID() == productID && r.Status() != vo.StatusDraft {
			return true, nil
		}
	}
	return false, nil
}

type mockTicketRepository struct {
	mu      sync.Mutex
	tickets map[uint][]*raffle.Ticket
	nextID  uint

	CreateTicketsFunc func(ctx context.Context, tickets []*raffle.Ticket) error
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: make(map[uint][]*raffle.Ticket)}
}

func (m *mockTicketRepository) CreateTickets(ctx context.Context, tickets []*raffle.Ticket) error {
	if m.CreateTicketsFunc != nil {
		return m.CreateTicketsFunc(ctx, tickets)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tickets {
		for _, existing := range m.tickets[t.RaffleID()] {
			if existing.Number() == t.Number() {
				return fmt.Errorf("%w: raffle %d number %d", raffle.ErrDuplicateTicketNumber, t.RaffleID(), t.Number())
			}
		}
	}
	for _, t := range tickets {
		m.nextID++
		if err := t.SetID(m.nextID); err != nil {
			return err
		}
		m.tickets[t.RaffleID()] = append(m.tickets[t.RaffleID()], t)
	}
	return nil
}

func (m *mockTicketRepository) ListTicketsByRaffle(ctx context.Context, raffleID uint, offset, limit int) ([]*raffle.Ticket, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := append([]*raffle.Ticket(nil), m.tickets[raffleID]...)
	sort.Slice(all, func(i, j int) bool { return all[i].Number() < all[j].Number() })
	total := int64(len(all))
	if offset >= len(all) {
		return []*raffle.Ticket{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockTicketRepository) GetByRaffleAndNumber(ctx context.Context, raffleID uint, number int) (*raffle.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets[raffleID] {
		if t.Number() == number {
			return t, nil
		}
	}
	return nil, raffle.ErrTicketNotFound
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*raffle.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, list := range m.tickets {
		for _, t := range list {
			if t.ID() == id {
				return t, nil
			}
		}
	}
	return nil, raffle.ErrTicketNotFound
}

func (m *mockTicketRepository) FindByPaymentReference(ctx context.Context, raffleID uint, paymentReference string) ([]*raffle.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*raffle.Ticket
	for _, t := range m.tickets[raffleID] {
		if t.PaymentReference() == paymentReference {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTicketRepository) UpdateStatus(ctx context.Context, t *raffle.Ticket) error {
	return nil
}

func (m *mockTicketRepository) RefundSold(ctx context.Context, raffleID uint, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tickets[raffleID] {
		if t.Status() == vo.TicketStatusSold {
			if err := t.Refund(now); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (m *mockTicketRepository) count(raffleID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets[raffleID])
}

type mockAuditStore struct {
	mu      sync.Mutex
	entries []*audit.Entry

	AppendFunc func(ctx context.Context, entry *audit.Entry) error
}

func (m *mockAuditStore) Append(ctx context.Context, entry *audit.Entry) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditStore) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action())
	}
	return out
}

type mockDepositRepository struct {
	mu       sync.Mutex
	deposits map[uint]*deposit.Deposit
	nextID   uint
}

func newMockDepositRepository() *mockDepositRepository {
	return &mockDepositRepository{deposits: make(map[uint]*deposit.Deposit)}
}

func (m *mockDepositRepository) Create(ctx context.Context, d *deposit.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := d.SetID(m.nextID); err != nil {
		return err
	}
	m.deposits[d.RaffleID()] = d
	return nil
}

func (m *mockDepositRepository) GetByRaffleID(ctx context.Context, raffleID uint) (*deposit.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deposits[raffleID], nil
}

func (m *mockDepositRepository) Update(ctx context.Context, d *deposit.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deposits[d.RaffleID()]; !ok {
		return deposit.ErrDepositNotFound
	}
	m.deposits[d.RaffleID()] = d
	return nil
}

type mockShopRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*shop.Shop, error)
}

func (m *mockShopRepository) GetByID(ctx context.Context, id uint) (*shop.Shop, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &shop.Shop{ID: id, Name: "shop"}, nil
}

func (m *mockShopRepository) Upsert(ctx context.Context, s *shop.Shop) error {
	return nil
}

type mockProductRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*product.Product, error)
}

func (m *mockProductRepository) Create(ctx context.Context, p *product.Product) error {
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, product.ErrProductNotFound
}

func (m *mockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return nil
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventPublisher) PublishAll(list []events.DomainEvent) error {
	for _, e := range list {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockEventPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

// fixedRandom always draws value modulo n.
type fixedRandom struct {
	value int
	err   error
}

func (f fixedRandom) Intn(n int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.value % n, nil
}

type mockAvailabilityCache struct {
	mu      sync.Mutex
	entries map[uint]cache.Availability
	gets    int
}

func newMockAvailabilityCache() *mockAvailabilityCache {
	return &mockAvailabilityCache{entries: make(map[uint]cache.Availability)}
}

func (m *mockAvailabilityCache) Get(ctx context.Context, raffleID uint) (*cache.Availability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	a, ok := m.entries[raffleID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *mockAvailabilityCache) Set(ctx context.Context, raffleID uint, a cache.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[raffleID] = a
	return nil
}

func (m *mockAvailabilityCache) Invalidate(ctx context.Context, raffleID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, raffleID)
	return nil
}
