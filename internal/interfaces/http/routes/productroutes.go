package routes

import (
	"github.com/gin-gonic/gin"

	producthandlers "github.com/rafflehub/rafflehub/internal/interfaces/http/handlers/product"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/middleware"
)

type ProductRouteConfig struct {
	ProductHandler *producthandlers.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupProductRoutes(engine *gin.Engine, config *ProductRouteConfig) {
	products := engine.Group("/products")
	products.Use(config.AuthMiddleware.RequireAuth())
	{
		products.POST("", config.ProductHandler.CreateProduct)
		products.POST("/deposit-evaluations", config.ProductHandler.EvaluateDeposit)

		products.GET("/:id", config.ProductHandler.GetProduct)
		products.PATCH("/:id", config.ProductHandler.UpdateProduct)
	}
}
