// 包 events 商品目录服务的消息消费接口层
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wyfcoding/productcatalog/internal/catalog/application"
	"github.com/wyfcoding/productcatalog/pkg/logger"
	"github.com/wyfcoding/productcatalog/pkg/mq"
)

// StockWriteOffEvent 订单侧发来的库存核销事件
// units 为有符号增量，原样透传给库存调整
type StockWriteOffEvent struct {
	ProductID uint `json:"product_id"`
	Units     int  `json:"units"`
}

// StockWriteOffHandler 库存核销事件处理器
type StockWriteOffHandler struct {
	cmd *application.ProductCommandService
	dlq *mq.DeadLetterQueue
}

// NewStockWriteOffHandler 创建库存核销事件处理器实例
func NewStockWriteOffHandler(cmd *application.ProductCommandService, dlq *mq.DeadLetterQueue) *StockWriteOffHandler {
	return &StockWriteOffHandler{cmd: cmd, dlq: dlq}
}

// Handle 解析一条消息（JSON 数组载荷）并转发给批量核销
func (h *StockWriteOffHandler) Handle(ctx context.Context, payload []byte) error {
	var events []StockWriteOffEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		return fmt.Errorf("malformed stock write-off payload: %w", err)
	}

	items := make([]application.WriteOffItem, 0, len(events))
	for _, event := range events {
		items = append(items, application.WriteOffItem{ProductID: event.ProductID, Units: event.Units})
	}
	return h.cmd.BatchWriteOff(ctx, items)
}

// Run 消费循环，ctx 取消时退出
// 处理失败的消息转发死信主题后继续消费，不做本地重试
func (h *StockWriteOffHandler) Run(ctx context.Context, consumer *mq.KafkaConsumer) {
	logger.Info(ctx, "Stock write-off consumer started")
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info(ctx, "Stock write-off consumer stopped")
				return
			}
			logger.Error(ctx, "Failed to read stock write-off message", "error", err)
			continue
		}

		if err := h.Handle(ctx, msg.Value); err != nil {
			logger.Error(ctx, "Failed to process stock write-off message",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
			if h.dlq != nil {
				if dlqErr := h.dlq.Send(ctx, msg, "stock write-off processing failed", err); dlqErr != nil {
					logger.Error(ctx, "Failed to forward message to dead letter queue", "error", dlqErr)
				}
			}
		}
	}
}
