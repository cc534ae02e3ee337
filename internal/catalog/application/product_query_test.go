package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
)

func newQueryFixture(t *testing.T) (*ProductQueryService, *ProductCommandService) {
	t.Helper()
	products := newFakeProductRepo()
	manufacturers := newFakeManufacturerRepo()
	manufacturers.seed("AMD")
	manufacturers.seed("Intel")
	cmd := NewProductCommandService(products, manufacturers, &fakePublisher{}, nil)
	return NewProductQueryService(products, nil), cmd
}

func seedProduct(t *testing.T, cmd *ProductCommandService, mutate func(*CreateProductCommand)) *ProductView {
	t.Helper()
	c := validCreateCommand()
	if mutate != nil {
		mutate(&c)
	}
	view, err := cmd.CreateProduct(context.Background(), c)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return view
}

func TestGetProduct(t *testing.T) {
	query, cmd := newQueryFixture(t)
	created := seedProduct(t, cmd, nil)

	view, err := query.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetProduct() unexpected error: %v", err)
	}
	if view.Name != created.Name || view.Manufacturer.Name != "AMD" {
		t.Errorf("view = (%q, %q), want (%q, AMD)", view.Name, view.Manufacturer.Name, created.Name)
	}

	if _, err := query.GetProduct(context.Background(), 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetProduct(9999) error = %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	query, cmd := newQueryFixture(t)
	seedProduct(t, cmd, nil) // Ryzen 9 7950X, cpu, AMD, 599
	seedProduct(t, cmd, func(c *CreateProductCommand) {
		c.Name = "Core i9-14900K"
		c.Manufacturer = "intel"
		c.Price = decimal.NewFromInt(649)
	})
	seedProduct(t, cmd, func(c *CreateProductCommand) {
		c.Name = "Radeon RX 7900"
		c.Category = "gpu"
		c.Price = decimal.NewFromInt(999)
	})

	min := decimal.NewFromInt(600)

	tests := []struct {
		name      string
		filter    domain.ProductFilter
		wantTotal int64
	}{
		{name: "no filter returns all", filter: domain.ProductFilter{}, wantTotal: 3},
		{name: "name substring case-insensitive", filter: domain.ProductFilter{Name: "ryzen"}, wantTotal: 1},
		{name: "category filter", filter: domain.ProductFilter{Category: domain.CategoryCPU}, wantTotal: 2},
		{name: "min price inclusive bound", filter: domain.ProductFilter{MinPrice: &min}, wantTotal: 2},
		{name: "manufacturer filter case-insensitive", filter: domain.ProductFilter{ManufacturerName: "amd"}, wantTotal: 2},
		{name: "combined filters", filter: domain.ProductFilter{Category: domain.CategoryCPU, ManufacturerName: "INTEL"}, wantTotal: 1},
		{name: "no match", filter: domain.ProductFilter{Name: "threadripper"}, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, total, err := query.Search(context.Background(), tt.filter, 1, 10)
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if int64(len(views)) != tt.wantTotal {
				t.Errorf("len(views) = %d, want %d", len(views), tt.wantTotal)
			}
		})
	}
}

func TestSearchBySpecs(t *testing.T) {
	query, cmd := newQueryFixture(t)
	seedProduct(t, cmd, nil) // specs: cores=16, socket=AM5
	seedProduct(t, cmd, func(c *CreateProductCommand) {
		c.Name = "Ryzen 5 7600"
		c.Specs = []SpecPair{{Attribute: "cores", Value: "6"}, {Attribute: "socket", Value: "AM5"}}
	})

	views, total, err := query.SearchBySpecs(context.Background(), []SpecPair{{Attribute: "socket", Value: "AM5"}}, 1, 10)
	if err != nil {
		t.Fatalf("SearchBySpecs() unexpected error: %v", err)
	}
	if total != 2 || len(views) != 2 {
		t.Errorf("got %d/%d results, want 2/2", len(views), total)
	}
}

func TestSearchBySpecsUsesOnlyFirstPair(t *testing.T) {
	query, cmd := newQueryFixture(t)
	seedProduct(t, cmd, nil) // cores=16, socket=AM5

	// 第二个条件对结果无影响，即便没有商品同时满足两者
	views, total, err := query.SearchBySpecs(context.Background(), []SpecPair{
		{Attribute: "cores", Value: "16"},
		{Attribute: "socket", Value: "LGA1700"},
	}, 1, 10)
	if err != nil {
		t.Fatalf("SearchBySpecs() unexpected error: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Errorf("got %d/%d results, want 1/1 (second pair must be ignored)", len(views), total)
	}
}

func TestSearchBySpecsEmptyPairs(t *testing.T) {
	query, _ := newQueryFixture(t)
	if _, _, err := query.SearchBySpecs(context.Background(), nil, 1, 10); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("SearchBySpecs(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestVerifyStocks(t *testing.T) {
	query, cmd := newQueryFixture(t)
	ample := seedProduct(t, cmd, func(c *CreateProductCommand) { c.StockUnits = 100 })
	scarce := seedProduct(t, cmd, func(c *CreateProductCommand) {
		c.Name = "Radeon RX 7900"
		c.Category = "gpu"
		c.StockUnits = 3
	})

	tests := []struct {
		name     string
		requests []StockRequest
		wantIDs  []uint
	}{
		{
			name:     "all sufficient",
			requests: []StockRequest{{ProductID: ample.ID, Units: 100}, {ProductID: scarce.ID, Units: 3}},
			wantIDs:  nil,
		},
		{
			name:     "one short",
			requests: []StockRequest{{ProductID: ample.ID, Units: 10}, {ProductID: scarce.ID, Units: 4}},
			wantIDs:  []uint{scarce.ID},
		},
		{
			name:     "exact stock is sufficient",
			requests: []StockRequest{{ProductID: scarce.ID, Units: 3}},
			wantIDs:  nil,
		},
		{
			name:     "unknown ids silently skipped",
			requests: []StockRequest{{ProductID: 9999, Units: 1}},
			wantIDs:  nil,
		},
		{
			name:     "empty request",
			requests: nil,
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := query.VerifyStocks(context.Background(), tt.requests)
			if err != nil {
				t.Fatalf("VerifyStocks() unexpected error: %v", err)
			}
			if len(views) != len(tt.wantIDs) {
				t.Fatalf("got %d out-of-stock products, want %d", len(views), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if views[i].ID != want {
					t.Errorf("views[%d].ID = %d, want %d", i, views[i].ID, want)
				}
			}
		})
	}
}

func TestPriceLookup(t *testing.T) {
	query, cmd := newQueryFixture(t)
	first := seedProduct(t, cmd, nil)
	second := seedProduct(t, cmd, func(c *CreateProductCommand) {
		c.Name = "Radeon RX 7900"
		c.Category = "gpu"
		c.Price = decimal.NewFromInt(999)
	})

	prices, err := query.PriceLookup(context.Background(), []uint{first.ID, second.ID, 9999})
	if err != nil {
		t.Fatalf("PriceLookup() unexpected error: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2 (unknown id skipped)", len(prices))
	}
	if !prices[0].Price.Equal(decimal.NewFromInt(599)) {
		t.Errorf("prices[0] = %s, want 599", prices[0].Price)
	}
	if !prices[1].Price.Equal(decimal.NewFromInt(999)) {
		t.Errorf("prices[1] = %s, want 999", prices[1].Price)
	}
}
