package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/metrics"
)

// ManufacturerService 制造商目录应用服务
type ManufacturerService struct {
	repo    domain.ManufacturerRepository
	metrics *metrics.Metrics
}

// NewManufacturerService 创建制造商应用服务实例，metrics 可为 nil
func NewManufacturerService(repo domain.ManufacturerRepository, metrics *metrics.Metrics) *ManufacturerService {
	return &ManufacturerService{repo: repo, metrics: metrics}
}

// Create 创建制造商，名称校验非空并大写归一
func (s *ManufacturerService) Create(ctx context.Context, name string) (*ManufacturerView, error) {
	manufacturer, err := domain.NewManufacturer(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, manufacturer); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ManufacturersCreatedTotal.Inc()
	}
	return newManufacturerView(manufacturer), nil
}

// GetByID 根据主键获取制造商
func (s *ManufacturerService) GetByID(ctx context.Context, id uint) (*ManufacturerView, error) {
	manufacturer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, fmt.Errorf("%w: manufacturer %d", domain.ErrNotFound, id)
	}
	return newManufacturerView(manufacturer), nil
}

// List 按存储顺序分页返回制造商
func (s *ManufacturerService) List(ctx context.Context, page, size int) ([]*ManufacturerView, int64, error) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	manufacturers, total, err := s.repo.List(ctx, offset, size)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*ManufacturerView, 0, len(manufacturers))
	for _, m := range manufacturers {
		views = append(views, newManufacturerView(m))
	}
	return views, total, nil
}

// Rename 重命名制造商
func (s *ManufacturerService) Rename(ctx context.Context, id uint, name string) (*ManufacturerView, error) {
	manufacturer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, fmt.Errorf("%w: manufacturer %d", domain.ErrNotFound, id)
	}
	if err := manufacturer.Rename(name); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, manufacturer); err != nil {
		return nil, err
	}
	return newManufacturerView(manufacturer), nil
}
