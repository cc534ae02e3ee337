package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/metrics"
)

// ProductQueryService 商品读侧应用服务
type ProductQueryService struct {
	products domain.ProductRepository
	metrics  *metrics.Metrics
}

// NewProductQueryService 创建商品读侧服务实例，metrics 可为 nil
func NewProductQueryService(products domain.ProductRepository, metrics *metrics.Metrics) *ProductQueryService {
	return &ProductQueryService{products: products, metrics: metrics}
}

// GetProduct 根据主键获取商品完整视图
func (s *ProductQueryService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return newProductView(product), nil
}

// Search 条件检索，缺省条件不参与过滤，存在的条件取 AND
func (s *ProductQueryService) Search(ctx context.Context, filter domain.ProductFilter, page, size int) ([]*ProductView, int64, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	products, total, err := s.products.Search(ctx, filter, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return newProductViews(products), total, nil
}

// SearchBySpecs 按规格对检索
// 只有首个规格对参与过滤，其余条目被忽略（沿用既有对外契约）
func (s *ProductQueryService) SearchBySpecs(ctx context.Context, pairs []SpecPair, page, size int) ([]*ProductView, int64, error) {
	if len(pairs) == 0 {
		return nil, 0, fmt.Errorf("%w: at least one spec pair is required", domain.ErrInvalidArgument)
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	first := pairs[0]
	products, total, err := s.products.SearchBySpec(ctx, first.Attribute, first.Value, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return newProductViews(products), total, nil
}

// VerifyStocks 校验库存充足性，返回库存不足（严格小于请求量）的商品子集
// 不存在的 id 静默跳过；返回空集表示全部充足
func (s *ProductQueryService) VerifyStocks(ctx context.Context, requests []StockRequest) ([]*ProductView, error) {
	ids := make([]uint, 0, len(requests))
	requested := make(map[uint]int, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ProductID)
		requested[req.ProductID] = req.Units
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	outOfStock := make([]*domain.Product, 0)
	for _, product := range products {
		if product.Stock.Units < requested[product.ID] {
			outOfStock = append(outOfStock, product)
		}
	}
	if s.metrics != nil && len(outOfStock) > 0 {
		s.metrics.OutOfStockChecksTotal.Inc()
	}
	return newProductViews(outOfStock), nil
}

// PriceLookup 批量查询价格，不存在的 id 静默跳过
func (s *ProductQueryService) PriceLookup(ctx context.Context, ids []uint) ([]*ProductPriceView, error) {
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make([]*ProductPriceView, 0, len(products))
	for _, product := range products {
		prices = append(prices, &ProductPriceView{ID: product.ID, Price: product.Price})
	}
	return prices, nil
}
