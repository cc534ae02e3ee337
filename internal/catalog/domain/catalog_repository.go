package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductFilter 商品条件检索的可选过滤器
// 零值字段不参与过滤，存在的条件之间取 AND
type ProductFilter struct {
	// 名称子串，大小写不敏感
	Name string
	// 类别精确匹配
	Category Category
	// 价格下界（含）
	MinPrice *decimal.Decimal
	// 价格上界（含）
	MaxPrice *decimal.Decimal
	// 制造商名称精确匹配，大小写不敏感
	ManufacturerName string
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Create 持久化商品及其库存与规格（同一事务）
	Create(ctx context.Context, product *Product) error
	// Save 保存商品自身字段（不级联关联对象）
	Save(ctx context.Context, product *Product) error
	// SaveAll 在同一事务内保存多个商品，任一失败则整体回滚
	SaveAll(ctx context.Context, products []*Product) error
	// GetByID 根据主键获取商品（含制造商与规格），不存在返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Product, error)
	// FindByIDs 批量按主键获取，缺失的 id 静默跳过
	FindByIDs(ctx context.Context, ids []uint) ([]*Product, error)
	// Search 条件检索，按存储顺序分页返回
	Search(ctx context.Context, filter ProductFilter, offset, limit int) ([]*Product, int64, error)
	// SearchBySpec 返回拥有与给定属性/值完全相等规格项的商品
	SearchBySpec(ctx context.Context, attribute, value string, offset, limit int) ([]*Product, int64, error)
}

// ManufacturerRepository 制造商仓储接口
type ManufacturerRepository interface {
	// Save 保存或更新制造商
	Save(ctx context.Context, manufacturer *Manufacturer) error
	// GetByID 根据主键获取，不存在返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Manufacturer, error)
	// GetByName 根据归一化（大写）名称获取，不存在返回 (nil, nil)
	GetByName(ctx context.Context, name string) (*Manufacturer, error)
	// List 按存储顺序分页返回
	List(ctx context.Context, offset, limit int) ([]*Manufacturer, int64, error)
}
