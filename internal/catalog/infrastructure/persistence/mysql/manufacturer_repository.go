package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/db"
	"gorm.io/gorm"
)

type manufacturerRepository struct{ db *db.DB }

// NewManufacturerRepository 创建制造商仓储实例
func NewManufacturerRepository(db *db.DB) domain.ManufacturerRepository {
	return &manufacturerRepository{db: db}
}

func (r *manufacturerRepository) Save(ctx context.Context, manufacturer *domain.Manufacturer) error {
	return r.db.WithContext(ctx).Save(manufacturer).Error
}

func (r *manufacturerRepository) GetByID(ctx context.Context, id uint) (*domain.Manufacturer, error) {
	var manufacturer domain.Manufacturer
	err := r.db.WithContext(ctx).First(&manufacturer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

// GetByName 按名称查找，名称在写入前已大写归一，这里做等值匹配
func (r *manufacturerRepository) GetByName(ctx context.Context, name string) (*domain.Manufacturer, error) {
	var manufacturer domain.Manufacturer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&manufacturer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

func (r *manufacturerRepository) List(ctx context.Context, offset, limit int) ([]*domain.Manufacturer, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.Manufacturer{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var manufacturers []*domain.Manufacturer
	err := q.Offset(offset).Limit(limit).Find(&manufacturers).Error
	return manufacturers, total, err
}
