package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/rafflehub/internal/application/product/usecases"
	"github.com/rafflehub/rafflehub/internal/domain/product"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
	"github.com/rafflehub/rafflehub/internal/shared/utils"
)

type ProductHandler struct {
	createProductUC   usecases.CreateProductExecutor
	updateProductUC   usecases.UpdateProductExecutor
	getProductUC      usecases.GetProductExecutor
	evaluateDepositUC usecases.EvaluateDepositExecutor
	logger            logger.Interface
}

func NewProductHandler(
	createProductUC usecases.CreateProductExecutor,
	updateProductUC usecases.UpdateProductExecutor,
	getProductUC usecases.GetProductExecutor,
	evaluateDepositUC usecases.EvaluateDepositExecutor,
	logger logger.Interface,
) *ProductHandler {
	return &ProductHandler{
		createProductUC:   createProductUC,
		updateProductUC:   updateProductUC,
		getProductUC:      getProductUC,
		evaluateDepositUC: evaluateDepositUC,
		logger:            logger,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor, err := utils.GetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create product", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createProductUC.Execute(c.Request.Context(), req.ToCommand(actor))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Product created successfully")
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	actor, err := utils.GetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getProductUC.Execute(c.Request.Context(), usecases.GetProductQuery{
		ProductID: productID,
		Actor:     actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateProduct handles PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := utils.ParseIDParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	actor, err := utils.GetActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update product", "product_id", productID, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	cmd, err := req.ToCommand(productID, actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateProductUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", result)
}

// EvaluateDeposit handles POST /products/deposit-evaluations
func (h *ProductHandler) EvaluateDeposit(c *gin.Context) {
	var req EvaluateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.evaluateDepositUC.Execute(c.Request.Context(), product.Dimensions{
		HeightCM: req.HeightCM,
		WidthCM:  req.WidthCM,
		DepthCM:  req.DepthCM,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
