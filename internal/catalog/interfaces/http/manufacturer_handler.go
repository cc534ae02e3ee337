// 包 http 商品目录服务的 HTTP 接口层
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/productcatalog/internal/catalog/application"
	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/logger"
	"github.com/wyfcoding/productcatalog/pkg/response"
)

// statusFromError 领域错误到 HTTP 状态码的映射
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", c.Param("id"))
		return 0, false
	}
	return uint(id), true
}

// ManufacturerHandler 制造商 HTTP 处理器
type ManufacturerHandler struct {
	service *application.ManufacturerService
}

// NewManufacturerHandler 创建制造商 HTTP 处理器实例
func NewManufacturerHandler(service *application.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *ManufacturerHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/manufacturers")
	{
		api.POST("", h.Create)       // 创建制造商
		api.GET("", h.List)          // 分页列表
		api.GET("/:id", h.GetByID)   // 按主键查询
		api.PUT("/:id", h.Rename)    // 重命名
	}
}

// ManufacturerRequest 创建/重命名制造商请求
type ManufacturerRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create 创建制造商
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	view, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to create manufacturer", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Created(c, view)
}

// List 分页列表
func (h *ManufacturerHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	views, total, err := h.service.List(c.Request.Context(), page, size)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list manufacturers", "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, gin.H{"items": views, "total": total, "page": page, "size": size})
}

// GetByID 按主键查询
func (h *ManufacturerHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, view)
}

// Rename 重命名制造商
func (h *ManufacturerHandler) Rename(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	view, err := h.service.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to rename manufacturer", "id", id, "error", err)
		response.ErrorWithStatus(c, statusFromError(err), err.Error(), "")
		return
	}

	response.Success(c, view)
}
