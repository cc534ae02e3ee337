package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
	"github.com/wyfcoding/productcatalog/pkg/logger"
	"github.com/wyfcoding/productcatalog/pkg/metrics"
)

// Kafka 主题，与下游消费方（搜索、通知）约定
const (
	TopicProductCreated      = "product.created"
	TopicProductUpdated      = "product.updated"
	TopicProductStockChanged = "product.stock.changed"
)

// ProductCommandService 商品写侧应用服务
type ProductCommandService struct {
	products      domain.ProductRepository
	manufacturers domain.ManufacturerRepository
	publisher     domain.EventPublisher
	metrics       *metrics.Metrics
}

// NewProductCommandService 创建商品写侧服务实例，metrics 可为 nil
func NewProductCommandService(
	products domain.ProductRepository,
	manufacturers domain.ManufacturerRepository,
	publisher domain.EventPublisher,
	metrics *metrics.Metrics,
) *ProductCommandService {
	return &ProductCommandService{
		products:      products,
		manufacturers: manufacturers,
		publisher:     publisher,
		metrics:       metrics,
	}
}

// CreateProduct 创建商品
// 制造商必须提前存在，按名称（大小写不敏感）解析，解析失败不落任何数据
func (s *ProductCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductView, error) {
	category, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}
	stock, err := domain.NewStock(cmd.StockUnits)
	if err != nil {
		return nil, err
	}
	manufacturer, err := s.resolveManufacturer(ctx, cmd.Manufacturer)
	if err != nil {
		return nil, err
	}

	specs := make([]domain.ProductSpec, 0, len(cmd.Specs))
	for _, pair := range cmd.Specs {
		specs = append(specs, domain.ProductSpec{Attribute: pair.Attribute, Value: pair.Value})
	}

	product, err := domain.NewProduct(cmd.Name, cmd.Description, cmd.Price, category, stock, manufacturer, specs)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ProductsCreatedTotal.Inc()
	}
	s.publish(ctx, TopicProductCreated, product.Name, domain.ProductCreatedEvent{
		ProductID:    product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Category:     product.Category.String(),
		StockUnits:   product.Stock.Units,
		Manufacturer: manufacturer.Name,
		Timestamp:    time.Now(),
	})

	return newProductView(product), nil
}

// UpdateProduct 部分更新商品
// 补丁里带制造商名称时会重新解析并换挂外键，目标制造商必须已存在
func (s *ProductCommandService) UpdateProduct(ctx context.Context, id uint, cmd UpdateProductCommand) (*ProductView, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	patch := domain.ProductPatch{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
	}
	if cmd.Category != nil {
		category, err := domain.ParseCategory(*cmd.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &category
	}

	if cmd.Manufacturer != nil {
		manufacturer, err := s.resolveManufacturer(ctx, *cmd.Manufacturer)
		if err != nil {
			return nil, err
		}
		product.ReassignManufacturer(manufacturer)
	}

	product.ApplyUpdate(patch)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, TopicProductUpdated, product.Name, domain.ProductUpdatedEvent{
		ProductID:    product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Category:     product.Category.String(),
		Manufacturer: product.Manufacturer.Name,
		Timestamp:    time.Now(),
	})

	return newProductView(product), nil
}

// AdjustStock 调整单个商品库存，delta 为有符号增量，结果收敛到非负
func (s *ProductCommandService) AdjustStock(ctx context.Context, id uint, delta int) (*ProductStockView, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	oldUnits := product.Stock.Units
	product.AdjustStock(delta)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.StockAdjustmentsTotal.Inc()
	}
	s.publishStockChanged(ctx, product, oldUnits)

	return &ProductStockView{
		ProductID: product.ID,
		Name:      product.Name,
		Units:     product.Stock.Units,
	}, nil
}

// BatchWriteOff 批量库存核销，供订单事件消费方调用
// Units 原样透传给 Adjust（有符号），不存在的 id 静默跳过，无返回内容
// 整批在同一事务内落库，部分失败不留下半提交状态
func (s *ProductCommandService) BatchWriteOff(ctx context.Context, items []WriteOffItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(items))
	deltas := make(map[uint]int, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
		deltas[item.ProductID] = item.Units
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) < len(items) {
		logger.Warn(ctx, "stock write-off referenced unknown products",
			"requested", len(items),
			"found", len(products),
		)
	}

	oldUnits := make(map[uint]int, len(products))
	for _, product := range products {
		oldUnits[product.ID] = product.Stock.Units
		product.AdjustStock(deltas[product.ID])
	}
	if err := s.products.SaveAll(ctx, products); err != nil {
		return err
	}

	for _, product := range products {
		if s.metrics != nil {
			s.metrics.StockWriteOffsTotal.Inc()
		}
		s.publishStockChanged(ctx, product, oldUnits[product.ID])
	}
	return nil
}

func (s *ProductCommandService) resolveManufacturer(ctx context.Context, name string) (*domain.Manufacturer, error) {
	normalized, err := domain.NormalizeManufacturerName(name)
	if err != nil {
		return nil, err
	}
	manufacturer, err := s.manufacturers.GetByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, fmt.Errorf("%w: manufacturer %q", domain.ErrNotFound, normalized)
	}
	return manufacturer, nil
}

func (s *ProductCommandService) publishStockChanged(ctx context.Context, product *domain.Product, oldUnits int) {
	if oldUnits == product.Stock.Units {
		return
	}
	s.publish(ctx, TopicProductStockChanged, product.Name, domain.ProductStockChangedEvent{
		ProductID: product.ID,
		OldUnits:  oldUnits,
		NewUnits:  product.Stock.Units,
		Timestamp: time.Now(),
	})
}

// publish 事件发布失败只记日志，不影响主流程
func (s *ProductCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Error(ctx, "failed to publish catalog event", "topic", topic, "error", err)
	}
}
