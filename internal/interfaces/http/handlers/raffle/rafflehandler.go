package raffle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/application/raffle/usecases"
	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

type RaffleHandler struct {
	createRaffleUC    usecases.CreateRaffleExecutor
	getRaffleUC       usecases.GetRaffleExecutor
	getAvailabilityUC usecases.GetAvailabilityExecutor
	listTicketsUC     usecases.ListTicketsExecutor
	lifecycleUC       usecases.LifecycleExecutor
	approvalUC        usecases.ApprovalExecutor
	selectWinnerUC    usecases.SelectWinnerExecutor
	logger            logger.Interface
}

func NewRaffleHandler(
	createRaffleUC usecases.CreateRaffleExecutor,
	getRaffleUC usecases.GetRaffleExecutor,
	getAvailabilityUC usecases.GetAvailabilityExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	lifecycleUC usecases.LifecycleExecutor,
	approvalUC usecases.ApprovalExecutor,
	selectWinnerUC usecases.SelectWinnerExecutor,
	logger logger.Interface,
) *RaffleHandler {
	return &RaffleHandler{
		createRaffleUC:    createRaffleUC,
		getRaffleUC:       getRaffleUC,
		getAvailabilityUC: getAvailabilityUC,
		listTicketsUC:     listTicketsUC,
		lifecycleUC:       lifecycleUC,
		approvalUC:        approvalUC,
		selectWinnerUC:    selectWinnerUC,
		logger:            logger,
	}
}

// CreateRaffle handles POST /raffles
func (h *RaffleHandler) CreateRaffle(c *gin.Context) {
	actor, err := utils.GetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create raffle", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createRaffleUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Raffle created successfully")
}

// GetRaffle handles GET /raffles/:id
func (h *RaffleHandler) GetRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.getRaffleUC.Execute(c.Request.Context(), usecases.GetRaffleQuery{
		RaffleID: raffleID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetAvailability handles GET /raffles/:id/availability. No authentication.
func (h *RaffleHandler) GetAvailability(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getAvailabilityUC.Execute(c.Request.Context(), usecases.GetAvailabilityQuery{RaffleID: raffleID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /raffles/:id/tickets
func (h *RaffleHandler) ListTickets(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		RaffleID: raffleID,
		Page:     p.Page,
		PageSize: p.PageSize,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, p.Page, p.PageSize)
}

// SubmitRaffle handles POST /raffles/:id/submit
func (h *RaffleHandler) SubmitRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Submit(c.Request.Context(), usecases.SubmitRaffleCommand{RaffleID: raffleID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle submitted for approval", result)
}

// PauseRaffle handles POST /raffles/:id/pause
func (h *RaffleHandler) PauseRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Pause(c.Request.Context(), usecases.PauseRaffleCommand{RaffleID: raffleID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle paused", result)
}

// ResumeRaffle handles POST /raffles/:id/resume
func (h *RaffleHandler) ResumeRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Resume(c.Request.Context(), usecases.ResumeRaffleCommand{RaffleID: raffleID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle resumed", result)
}

// CancelRaffle handles POST /raffles/:id/cancel
func (h *RaffleHandler) CancelRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}
	reason, ok := bindReason(c)
	if !ok {
		return
	}

	result, err := h.lifecycleUC.Cancel(c.Request.Context(), usecases.CancelRaffleCommand{
		RaffleID: raffleID,
		Reason:   reason,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle cancelled", result)
}

// ApproveRaffle handles POST /raffles/:id/approve
func (h *RaffleHandler) ApproveRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.approvalUC.Approve(c.Request.Context(), usecases.ApproveRaffleCommand{RaffleID: raffleID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle approved", result)
}

// RejectRaffle handles POST /raffles/:id/reject
func (h *RaffleHandler) RejectRaffle(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}
	reason, ok := bindReason(c)
	if !ok {
		return
	}

	result, err := h.approvalUC.Reject(c.Request.Context(), usecases.RejectRaffleCommand{
		RaffleID: raffleID,
		Reason:   reason,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle rejected", result)
}

// DrawWinner handles POST /raffles/:id/draw. Calling it on a finished raffle
// returns the recorded winner.
func (h *RaffleHandler) DrawWinner(c *gin.Context) {
	raffleID, actor, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.selectWinnerUC.Execute(c.Request.Context(), usecases.SelectWinnerCommand{RaffleID: raffleID, Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// target reads the raffle ID and the actor, writing the error response itself.
func (h *RaffleHandler) target(c *gin.Context) (uint, authorization.Actor, bool) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, authorization.Actor{}, false
	}
	actor, err := utils.GetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, authorization.Actor{}, false
	}
	return raffleID, actor, true
}

func bindReason(c *gin.Context) (string, bool) {
	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return "", false
	}
	return req.Reason, true
}
