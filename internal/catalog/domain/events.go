package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	StockUnits   int             `json:"stock_units"`
	Manufacturer string          `json:"manufacturer"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Manufacturer string          `json:"manufacturer"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ProductStockChangedEvent 商品库存变更事件
type ProductStockChangedEvent struct {
	ProductID uint      `json:"product_id"`
	OldUnits  int       `json:"old_units"`
	NewUnits  int       `json:"new_units"`
	Timestamp time.Time `json:"timestamp"`
}
