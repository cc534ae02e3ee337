package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
)

// ManufacturerView 制造商视图
type ManufacturerView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SpecView 商品规格视图
type SpecView struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// StockView 库存视图
type StockView struct {
	Units int `json:"units"`
}

// ProductView 商品完整（反规范化）视图
type ProductView struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Category     string           `json:"category"`
	Stock        StockView        `json:"stock"`
	Manufacturer ManufacturerView `json:"manufacturer"`
	Specs        []SpecView       `json:"specs"`
}

// ProductStockView 库存调整结果视图
type ProductStockView struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
}

// ProductPriceView 商品价格视图
type ProductPriceView struct {
	ID    uint            `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// SpecPair 规格检索条件
type SpecPair struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// StockRequest 库存充足性校验请求项
type StockRequest struct {
	ProductID uint `json:"product_id"`
	Units     int  `json:"units"`
}

// WriteOffItem 库存核销项，Units 为有符号增量，原样透传给库存调整
type WriteOffItem struct {
	ProductID uint `json:"product_id"`
	Units     int  `json:"units"`
}

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Category     string
	StockUnits   int
	Manufacturer string
	Specs        []SpecPair
}

// UpdateProductCommand 部分更新命令，nil 字段保持不变
type UpdateProductCommand struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Category     *string
	Manufacturer *string
}

func newManufacturerView(m *domain.Manufacturer) *ManufacturerView {
	return &ManufacturerView{ID: m.ID, Name: m.Name}
}

func newProductView(p *domain.Product) *ProductView {
	view := &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category.String(),
		Stock:       StockView{Units: p.Stock.Units},
		Specs:       make([]SpecView, 0, len(p.Specs)),
	}
	if p.Manufacturer != nil {
		view.Manufacturer = ManufacturerView{ID: p.Manufacturer.ID, Name: p.Manufacturer.Name}
	}
	for _, spec := range p.Specs {
		view.Specs = append(view.Specs, SpecView{Attribute: spec.Attribute, Value: spec.Value})
	}
	return view
}

func newProductViews(products []*domain.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}
