// 包 domain 商品目录服务的领域模型
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 实体不存在
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidArgument 参数校验失败
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCategory 无法识别的商品类别
	ErrInvalidCategory = errors.New("invalid category")
)

// Stock 库存值对象，作为 Product 的内嵌字段持久化
// 不变式：Units >= 0，扣减越界时收敛到 0 而不是报错
type Stock struct {
	Units int `gorm:"column:stock_units;not null;default:0" json:"units"`
}

// NewStock 创建初始库存，初始数量不允许为负
func NewStock(units int) (Stock, error) {
	if units < 0 {
		return Stock{}, fmt.Errorf("%w: initial stock units must not be negative, got %d", ErrInvalidArgument, units)
	}
	return Stock{Units: units}, nil
}

// Adjust 调整库存数量，delta 为有符号增量
// 扣减结果为负时直接清零（超卖保护策略，不走错误路径）
func (s *Stock) Adjust(delta int) {
	if s.Units+delta < 0 {
		s.Units = 0
		return
	}
	s.Units += delta
}

// ProductSpec 商品规格项（属性/值对），生命周期完全随所属商品
type ProductSpec struct {
	gorm.Model
	ProductID uint   `gorm:"column:product_id;index;not null" json:"-"`
	Attribute string `gorm:"column:attribute;type:varchar(100);not null" json:"attribute"`
	Value     string `gorm:"column:value;type:varchar(255);not null" json:"value"`
}

func (ProductSpec) TableName() string { return "product_specs" }

// Product 商品聚合根
type Product struct {
	gorm.Model
	Name           string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description    string          `gorm:"column:description;type:text;not null" json:"description"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null" json:"price"`
	Category       Category        `gorm:"column:category;type:varchar(32);index;not null" json:"category"`
	Stock          Stock           `gorm:"embedded" json:"stock"`
	ManufacturerID uint            `gorm:"column:manufacturer_id;index;not null" json:"-"`
	Manufacturer   *Manufacturer   `gorm:"foreignKey:ManufacturerID" json:"manufacturer,omitempty"`
	Specs          []ProductSpec   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"specs"`
}

func (Product) TableName() string { return "products" }

// NewProduct 全量校验构造器，外部输入一律走这里
// 更新合并与测试夹具使用字面量构造，不重复这些检查
func NewProduct(name, description string, price decimal.Decimal, category Category, stock Stock, manufacturer *Manufacturer, specs []ProductSpec) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name must not be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: product description must not be blank", ErrInvalidArgument)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: product price must be positive, got %s", ErrInvalidArgument, price)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if manufacturer == nil {
		return nil, fmt.Errorf("%w: product manufacturer is required", ErrInvalidArgument)
	}
	for _, spec := range specs {
		if strings.TrimSpace(spec.Attribute) == "" || strings.TrimSpace(spec.Value) == "" {
			return nil, fmt.Errorf("%w: spec attribute and value must not be blank", ErrInvalidArgument)
		}
	}
	return &Product{
		Name:           name,
		Description:    description,
		Price:          price,
		Category:       category,
		Stock:          stock,
		ManufacturerID: manufacturer.ID,
		Manufacturer:   manufacturer,
		Specs:          specs,
	}, nil
}

// ProductPatch 部分更新补丁，nil 字段表示保持不变
// 空白字符串与非正价格同样视为“不变”，不存在清空字段的语义
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *Category
}

// ApplyUpdate 将补丁中有效的字段合并到商品上
func (p *Product) ApplyUpdate(patch ProductPatch) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		p.Name = *patch.Name
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		p.Description = *patch.Description
	}
	if patch.Price != nil && patch.Price.IsPositive() {
		p.Price = *patch.Price
	}
	if patch.Category != nil && patch.Category.Valid() {
		p.Category = *patch.Category
	}
}

// ReassignManufacturer 把商品挂到新的制造商下
// product -> manufacturer 的外键是唯一权威关联，反向列表只做查询时推导
func (p *Product) ReassignManufacturer(m *Manufacturer) {
	p.ManufacturerID = m.ID
	p.Manufacturer = m
}

// AdjustStock 调整库存，委托给 Stock 的收敛规则
func (p *Product) AdjustStock(delta int) {
	p.Stock.Adjust(delta)
}
