// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/productcatalog/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 业务指标
	ProductsCreatedTotal      prometheus.Counter
	ManufacturersCreatedTotal prometheus.Counter
	StockWriteOffsTotal       prometheus.Counter
	StockAdjustmentsTotal     prometheus.Counter
	OutOfStockChecksTotal     prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ProductsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "products_created_total",
			Help:      "Total products created",
		}),
		ManufacturersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "manufacturers_created_total",
			Help:      "Total manufacturers created",
		}),
		StockWriteOffsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "stock_write_offs_total",
			Help:      "Total stock write-off events consumed",
		}),
		StockAdjustmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "stock_adjustments_total",
			Help:      "Total stock adjustments applied",
		}),
		OutOfStockChecksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: serviceName,
			Name:      "out_of_stock_checks_total",
			Help:      "Total stock sufficiency checks that found shortages",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.ProductsCreatedTotal,
		m.ManufacturersCreatedTotal,
		m.StockWriteOffsTotal,
		m.StockAdjustmentsTotal,
		m.OutOfStockChecksTotal,
	}

	for _, collector := range collectors {
		if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
