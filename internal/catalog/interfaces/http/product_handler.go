package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/productcatalog/internal/catalog/application"
	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/logger"
	"github.com/wyfcoding/productcatalog/pkg/response"
)

// ProductHandler 商品 HTTP 处理器
type ProductHandler struct {
	cmd   *application.ProductCommandService
	query *application.ProductQueryService
}

// NewProductHandler 创建商品 HTTP 处理器实例
func NewProductHandler(cmd *application.ProductCommandService, query *application.ProductQueryService) *ProductHandler {
	return &ProductHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.POST("", h.Create)                      // 创建商品
		api.GET("", h.Search)                       // 条件检索
		api.GET("/:id", h.GetByID)                  // 按主键查询
		api.PATCH("/:id", h.Update)                 // 部分更新
		api.PUT("/:id/stock", h.AdjustStock)        // 调整库存
		api.POST("/specs", h.SearchBySpecs)         // 按规格检索
		api.POST("/stocks/verify", h.VerifyStocks)  // 库存充足性校验
		api.POST("/prices", h.PriceLookup)          // 批量价格查询
	}
}

// SpecRequest 规格项
type SpecRequest struct {
	Attribute string `json:"attribute" binding:"required"`
	Value     string `json:"value" binding:"required"`
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Stock       struct {
		Units int `json:"units"`
	} `json:"stock" binding:"required"`
	Manufacturer struct {
		Name string `json:"name" binding:"required"`
	} `json:"manufacturer" binding:"required"`
	Specs []SpecRequest `json:"specs"`
}

// Create 创建商品，制造商必须已存在
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.CreateProductCommand{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		StockUnits:   req.Stock.Units,
		Manufacturer: req.Manufacturer.Name,
	}
	for _, spec := range req.Specs {
		cmd.Specs = append(cmd.Specs, application.SpecPair{Attribute: spec.Attribute, Value: spec.Value})
	}

	view, err := h.cmd.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Created(c, view)
}

// GetByID 按主键查询商品完整视图
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.query.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, view)
}

// Search 条件检索，查询参数缺省则不过滤
func (h *ProductHandler) Search(c *gin.Context) {
	page, size := pageParams(c)

	filter := domain.ProductFilter{
		Name:             c.Query("name"),
		ManufacturerName: c.Query("manufacturer"),
	}
	if raw := c.Query("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		filter.Category = category
	}
	if raw := c.Query("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid min_price", raw)
			return
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid max_price", raw)
			return
		}
		filter.MaxPrice = &price
	}

	views, total, err := h.query.Search(c.Request.Context(), filter, page, size)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to search products", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, gin.H{"items": views, "total": total, "page": page, "size": size})
}

// UpdateProductRequest 部分更新请求，缺省字段保持不变
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Category     *string          `json:"category"`
	Manufacturer *struct {
		Name string `json:"name" binding:"required"`
	} `json:"manufacturer"`
}

// Update 部分更新商品
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.UpdateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	if req.Manufacturer != nil {
		cmd.Manufacturer = &req.Manufacturer.Name
	}

	view, err := h.cmd.UpdateProduct(c.Request.Context(), id, cmd)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to update product", "id", id, "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, view)
}

// AdjustStockRequest 库存调整请求，units 为有符号增量
// 零增量是合法的空操作，因此不做 required 校验
type AdjustStockRequest struct {
	Units int `json:"units"`
}

// AdjustStock 调整商品库存
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	view, err := h.cmd.AdjustStock(c.Request.Context(), id, req.Units)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to adjust stock", "id", id, "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, view)
}

// SearchBySpecs 按规格检索，仅首个规格对参与过滤
func (h *ProductHandler) SearchBySpecs(c *gin.Context) {
	page, size := pageParams(c)

	var pairs []SpecRequest
	if err := c.ShouldBindJSON(&pairs); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	specs := make([]application.SpecPair, 0, len(pairs))
	for _, pair := range pairs {
		specs = append(specs, application.SpecPair{Attribute: pair.Attribute, Value: pair.Value})
	}

	views, total, err := h.query.SearchBySpecs(c.Request.Context(), specs, page, size)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to search products by specs", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, gin.H{"items": views, "total": total, "page": page, "size": size})
}

// StockVerifyRequest 库存充足性校验项，零件数视为无需求
type StockVerifyRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Units     int  `json:"units"`
}

// VerifyStocks 库存充足性校验
// 存在库存不足的商品时返回 207，全部充足返回 200
func (h *ProductHandler) VerifyStocks(c *gin.Context) {
	var reqs []StockVerifyRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	requests := make([]application.StockRequest, 0, len(reqs))
	for _, req := range reqs {
		requests = append(requests, application.StockRequest{ProductID: req.ProductID, Units: req.Units})
	}

	outOfStock, err := h.query.VerifyStocks(c.Request.Context(), requests)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to verify stocks", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	if len(outOfStock) > 0 {
		response.SuccessWithStatus(c, http.StatusMultiStatus, gin.H{"out_of_stock": outOfStock})
		return
	}
	response.Success(c, gin.H{"out_of_stock": outOfStock})
}

// PriceLookupRequest 批量价格查询请求
type PriceLookupRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// PriceLookup 批量查询商品价格
func (h *ProductHandler) PriceLookup(c *gin.Context) {
	var req PriceLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	prices, err := h.query.PriceLookup(c.Request.Context(), req.IDs)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to look up prices", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, prices)
}
