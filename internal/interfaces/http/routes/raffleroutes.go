package routes

import (
	"github.com/gin-gonic/gin"

	rafflehandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/raffle"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/middleware"
)

type RaffleRouteConfig struct {
	RaffleHandler  *rafflehandlers.RaffleHandler
	AuthMiddleware *middleware.AuthMiddleware
	// AvailabilityLimiter throttles the public availability counter; nil disables it.
	AvailabilityLimiter *middleware.RateLimiter
}

// SetupRaffleRoutes registers raffle endpoints. Role checks happen in the use
// cases; the routes only require an authenticated actor.
func SetupRaffleRoutes(engine *gin.Engine, config *RaffleRouteConfig) {
	public := engine.Group("/raffles")
	{
		availability := []gin.HandlerFunc{config.RaffleHandler.GetAvailability}
		if config.AvailabilityLimiter != nil {
			availability = append([]gin.HandlerFunc{config.AvailabilityLimiter.Limit()}, availability...)
		}
		public.GET("/:id/availability", availability...)
	}

	raffles := engine.Group("/raffles")
	raffles.Use(config.AuthMiddleware.RequireAuth())
	{
		raffles.POST("", config.RaffleHandler.CreateRaffle)

		raffles.GET("/:id/tickets", config.RaffleHandler.ListTickets)
		raffles.POST("/:id/submit", config.RaffleHandler.SubmitRaffle)
		raffles.POST("/:id/approve", config.RaffleHandler.ApproveRaffle)
		raffles.POST("/:id/reject", config.RaffleHandler.RejectRaffle)
		raffles.POST("/:id/pause", config.RaffleHandler.PauseRaffle)
		raffles.POST("/:id/resume", config.RaffleHandler.ResumeRaffle)
		raffles.POST("/:id/cancel", config.RaffleHandler.CancelRaffle)
		raffles.POST("/:id/draw", config.RaffleHandler.DrawWinner)

		raffles.GET("/:id", config.RaffleHandler.GetRaffle)
	}
}
