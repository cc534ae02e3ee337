package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct{ db *db.DB }

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *db.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

// Create 持久化商品聚合，GORM 会在同一事务内级联写入库存内嵌列与规格行
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Save 保存商品自身字段，不级联关联对象（规格与制造商不在此路径变更）
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// SaveAll 在同一事务内逐条保存，任一失败则整体回滚
func (r *productRepository) SaveAll(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Specs").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uint) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Specs").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

// Search 条件检索，缺省条件不过滤，存在的条件之间取 AND
func (r *productRepository) Search(ctx context.Context, filter domain.ProductFilter, offset, limit int) ([]*domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Name != "" {
		q = q.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		q = q.Where("products.category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		q = q.Where("products.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("products.price <= ?", filter.MaxPrice)
	}
	if filter.ManufacturerName != "" {
		q = q.Joins("JOIN manufacturers ON manufacturers.id = products.manufacturer_id").
			Where("LOWER(manufacturers.name) = ?", strings.ToLower(filter.ManufacturerName))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := q.Preload("Manufacturer").
		Preload("Specs").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

// SearchBySpec 返回拥有与给定属性/值完全相等规格项的商品
func (r *productRepository) SearchBySpec(ctx context.Context, attribute, value string, offset, limit int) ([]*domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{}).
		Joins("JOIN product_specs ON product_specs.product_id = products.id AND product_specs.deleted_at IS NULL").
		Where("product_specs.attribute = ? AND product_specs.value = ?", attribute, value).
		Group("products.id")

	var total int64
	if err := q.Distinct("products.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := q.Select("products.*").
		Preload("Manufacturer").
		Preload("Specs").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}
