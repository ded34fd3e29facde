package raffle

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/application/raffle/dto"
	"github.com/rafflehub/rafflehub/internal/application/raffle/usecases"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/testutil"
	"github.com/rafflehub/rafflehub/internal/shared/errors"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateRaffleUC struct {
	result *dto.RaffleDTO
	err    error
	got    usecases.CreateRaffleCommand
}

func (m *mockCreateRaffleUC) Execute(_ context.Context, cmd usecases.CreateRaffleCommand) (*dto.RaffleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetRaffleUC struct {
	result *dto.RaffleDTO
	err    error
}

func (m *mockGetRaffleUC) Execute(_ context.Context, _ usecases.GetRaffleQuery) (*dto.RaffleDTO, error) {
	return m.result, m.err
}

type mockGetAvailabilityUC struct {
	result *dto.AvailabilityDTO
	err    error
}

func (m *mockGetAvailabilityUC) Execute(_ context.Context, _ usecases.GetAvailabilityQuery) (*dto.AvailabilityDTO, error) {
	return m.result, m.err
}

type mockListTicketsUC struct {
	result *usecases.ListTicketsResult
	err    error
	got    usecases.ListTicketsQuery
}

func (m *mockListTicketsUC) Execute(_ context.Context, query usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = query
	return m.result, m.err
}

// mockLifecycleUC records the last transition requested.
type mockLifecycleUC struct {
	err    error
	called string
	reason string
}

func (m *mockLifecycleUC) Submit(_ context.Context, cmd usecases.SubmitRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "submit"
	return m.reply(cmd.RaffleID, "PENDING_APPROVAL")
}

func (m *mockLifecycleUC) Pause(_ context.Context, cmd usecases.PauseRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "pause"
	return m.reply(cmd.RaffleID, "PAUSED")
}

func (m *mockLifecycleUC) Resume(_ context.Context, cmd usecases.ResumeRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "resume"
	return m.reply(cmd.RaffleID, "ACTIVE")
}

func (m *mockLifecycleUC) Cancel(_ context.Context, cmd usecases.CancelRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "cancel"
	m.reason = cmd.Reason
	return m.reply(cmd.RaffleID, "CANCELLED")
}

func (m *mockLifecycleUC) reply(id uint, status string) (*dto.RaffleDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.RaffleDTO{ID: id, Status: status}, nil
}

type mockApprovalUC struct {
	err    error
	called string
	reason string
}

func (m *mockApprovalUC) Approve(_ context.Context, cmd usecases.ApproveRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "approve"
	if m.err != nil {
		return nil, m.err
	}
	return &dto.RaffleDTO{ID: cmd.RaffleID, Status: "ACTIVE"}, nil
}

func (m *mockApprovalUC) Reject(_ context.Context, cmd usecases.RejectRaffleCommand) (*dto.RaffleDTO, error) {
	m.called = "reject"
	m.reason = cmd.Reason
	if m.err != nil {
		return nil, m.err
	}
	return &dto.RaffleDTO{ID: cmd.RaffleID, Status: "REJECTED"}, nil
}

type mockSelectWinnerUC struct {
	result *dto.WinnerDTO
	err    error
}

func (m *mockSelectWinnerUC) Execute(_ context.Context, _ usecases.SelectWinnerCommand) (*dto.WinnerDTO, error) {
	return m.result, m.err
}

type testDeps struct {
	create       *mockCreateRaffleUC
	get          *mockGetRaffleUC
	availability *mockGetAvailabilityUC
	tickets      *mockListTicketsUC
	lifecycle    *mockLifecycleUC
	approval     *mockApprovalUC
	winner       *mockSelectWinnerUC
}

func newTestHandler() (*RaffleHandler, testDeps) {
	deps := testDeps{
		create:       &mockCreateRaffleUC{},
		get:          &mockGetRaffleUC{},
		availability: &mockGetAvailabilityUC{},
		tickets:      &mockListTicketsUC{},
		lifecycle:    &mockLifecycleUC{},
		approval:     &mockApprovalUC{},
		winner:       &mockSelectWinnerUC{},
	}
	h := NewRaffleHandler(deps.create, deps.get, deps.availability, deps.tickets,
		deps.lifecycle, deps.approval, deps.winner, logger.NewDiscardLogger())
	return h, deps
}

// =====================================================================
// CreateRaffle
// =====================================================================

func TestCreateRaffle_Success(t *testing.T) {
	h, deps := newTestHandler()
	deps.create.result = &dto.RaffleDTO{ID: 10, TotalTickets: 50, Status: "DRAFT"}

	body := map[string]any{"product_id": 3, "special_conditions": "Pickup **only** in store"}
	c, w := testutil.NewTestContext(http.MethodPost, "/raffles", body)
	testutil.SetAuthContext(c, testutil.ShopActor)

	h.CreateRaffle(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(3), deps.create.got.ProductID)
	assert.Equal(t, "Pickup **only** in store", deps.create.got.SpecialConditions)
	assert.Equal(t, testutil.ShopActor, deps.create.got.Actor)
}

func TestCreateRaffle_MissingProduct(t *testing.T) {
	h, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/raffles", map[string]any{})
	testutil.SetAuthContext(c, testutil.ShopActor)

	h.CreateRaffle(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, resp.Error.Details, "product_id is required")
}

// =====================================================================
// Transitions
// =====================================================================

func TestTransitions_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		call       func(h *RaffleHandler) func(*gin.Context)
		body       any
		wantCalled string
		wantStatus string
	}{
		{"submit", func(h *RaffleHandler) func(*gin.Context) { return h.SubmitRaffle }, nil, "submit", "PENDING_APPROVAL"},
		{"pause", func(h *RaffleHandler) func(*gin.Context) { return h.PauseRaffle }, nil, "pause", "PAUSED"},
		{"resume", func(h *RaffleHandler) func(*gin.Context) { return h.ResumeRaffle }, nil, "resume", "ACTIVE"},
		{"cancel", func(h *RaffleHandler) func(*gin.Context) { return h.CancelRaffle }, map[string]string{"reason": "supplier failed"}, "cancel", "CANCELLED"},
		{"approve", func(h *RaffleHandler) func(*gin.Context) { return h.ApproveRaffle }, nil, "approve", "ACTIVE"},
		{"reject", func(h *RaffleHandler) func(*gin.Context) { return h.RejectRaffle }, map[string]string{"reason": "blurry photos"}, "reject", "REJECTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/"+tt.name, tt.body)
			testutil.SetURLParam(c, "id", "5")
			testutil.SetAuthContext(c, testutil.ShopActor)

			tt.call(h)(c)

			require.Equal(t, http.StatusOK, w.Code)
			called := deps.lifecycle.called + deps.approval.called
			assert.Equal(t, tt.wantCalled, called)

			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Contains(t, string(resp.Data), `"status":"`+tt.wantStatus+`"`)
		})
	}
}

func TestCancelRaffle_PassesReason(t *testing.T) {
	h, deps := newTestHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/cancel", map[string]string{"reason": "supplier failed"})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, testutil.ShopActor)

	h.CancelRaffle(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "supplier failed", deps.lifecycle.reason)
}

func TestRejectRaffle_EmptyBodyReachesUseCase(t *testing.T) {
	h, deps := newTestHandler()
	deps.approval.err = errors.NewValidationError("reject reason is required")

	c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/reject", map[string]string{})
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, testutil.AdminActor)

	h.RejectRaffle(c)

	assert.Equal(t, "reject", deps.approval.called)
	assert.Equal(t, "", deps.approval.reason)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransition_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid transition", errors.NewConflictError("invalid state transition"), http.StatusConflict},
		{"not found", errors.NewNotFoundError("raffle not found"), http.StatusNotFound},
		{"forbidden", errors.NewForbiddenError("not allowed"), http.StatusForbidden},
		{"busy", errors.NewServiceUnavailableError("raffle is busy"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler()
			deps.approval.err = tt.err

			c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/approve", nil)
			testutil.SetURLParam(c, "id", "5")
			testutil.SetAuthContext(c, testutil.AdminActor)

			h.ApproveRaffle(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTransition_RequiresAuthAndID(t *testing.T) {
	h, deps := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/submit", nil)
	testutil.SetURLParam(c, "id", "5")
	h.SubmitRaffle(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/raffles/x/submit", nil)
	testutil.SetURLParam(c, "id", "x")
	testutil.SetAuthContext(c, testutil.ShopActor)
	h.SubmitRaffle(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, deps.lifecycle.called)
}

// =====================================================================
// Queries and draw
// =====================================================================

func TestGetAvailability_Anonymous(t *testing.T) {
	h, deps := newTestHandler()
	deps.availability.result = &dto.AvailabilityDTO{RaffleID: 5, RemainingTickets: 12, Status: "ACTIVE", Cached: true}

	c, w := testutil.NewTestContext(http.MethodGet, "/raffles/5/availability", nil)
	testutil.SetURLParam(c, "id", "5")

	h.GetAvailability(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.JSONEq(t, `{"raffle_id":5,"remaining_tickets":12,"status":"ACTIVE","cached":true}`, string(resp.Data))
}

func TestGetRaffle(t *testing.T) {
	h, deps := newTestHandler()
	deps.get.result = &dto.RaffleDTO{ID: 5, SpecialConditionsHTML: "<p>Pickup</p>\n"}

	c, w := testutil.NewTestContext(http.MethodGet, "/raffles/5", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, testutil.UserActor)

	h.GetRaffle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "special_conditions_html")
}

func TestListTickets_Pagination(t *testing.T) {
	h, deps := newTestHandler()
	deps.tickets.result = &usecases.ListTicketsResult{
		Tickets: []*dto.TicketDTO{{ID: 1, Number: 1}, {ID: 2, Number: 2}},
		Total:   45,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/raffles/5/tickets", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "20"})
	testutil.SetAuthContext(c, testutil.ShopActor)

	h.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, deps.tickets.got.Page)
	assert.Equal(t, 20, deps.tickets.got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(45), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestDrawWinner(t *testing.T) {
	h, deps := newTestHandler()
	deps.winner.result = &dto.WinnerDTO{RaffleID: 5, WinnerTicketID: 31, WinningNumber: 3, AlreadyDrawn: true}

	c, w := testutil.NewTestContext(http.MethodPost, "/raffles/5/draw", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, testutil.AdminActor)

	h.DrawWinner(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"already_drawn":true`)
}
