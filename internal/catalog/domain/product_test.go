package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewStock(t *testing.T) {
	tests := []struct {
		name    string
		units   int
		wantErr bool
	}{
		{name: "zero units", units: 0, wantErr: false},
		{name: "positive units", units: 100, wantErr: false},
		{name: "negative units rejected", units: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock, err := NewStock(tt.units)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewStock(%d) expected error, got nil", tt.units)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("NewStock(%d) error = %v, want ErrInvalidArgument", tt.units, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStock(%d) unexpected error: %v", tt.units, err)
			}
			if stock.Units != tt.units {
				t.Errorf("NewStock(%d).Units = %d, want %d", tt.units, stock.Units, tt.units)
			}
		})
	}
}

func TestStockAdjust(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		delta   int
		want    int
	}{
		{name: "increase", initial: 10, delta: 5, want: 15},
		{name: "decrease within stock", initial: 10, delta: -7, want: 3},
		{name: "decrease to exactly zero", initial: 10, delta: -10, want: 0},
		{name: "overdraw clamps to zero", initial: 10, delta: -15, want: 0},
		{name: "negative delta on empty stock stays zero", initial: 0, delta: -5, want: 0},
		{name: "zero delta is a no-op", initial: 42, delta: 0, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := Stock{Units: tt.initial}
			stock.Adjust(tt.delta)
			if stock.Units != tt.want {
				t.Errorf("Stock{%d}.Adjust(%d) = %d, want %d", tt.initial, tt.delta, stock.Units, tt.want)
			}
		})
	}
}

func TestStockAdjustRepeatedOverdraw(t *testing.T) {
	stock := Stock{Units: 3}
	stock.Adjust(-10)
	if stock.Units != 0 {
		t.Fatalf("after first overdraw Units = %d, want 0", stock.Units)
	}
	// 再次扣减不会把库存打到负数
	stock.Adjust(-10)
	if stock.Units != 0 {
		t.Errorf("after second overdraw Units = %d, want 0", stock.Units)
	}
	stock.Adjust(4)
	if stock.Units != 4 {
		t.Errorf("after restock Units = %d, want 4", stock.Units)
	}
}

func validManufacturer() *Manufacturer {
	m, _ := NewManufacturer("AMD")
	m.ID = 1
	return m
}

func TestNewProduct(t *testing.T) {
	price := decimal.NewFromInt(299)

	tests := []struct {
		name        string
		productName string
		description string
		price       decimal.Decimal
		category    Category
		wantErr     error
	}{
		{name: "valid", productName: "Ryzen 9", description: "16-core CPU", price: price, category: CategoryCPU},
		{name: "blank name", productName: "  ", description: "16-core CPU", price: price, category: CategoryCPU, wantErr: ErrInvalidArgument},
		{name: "blank description", productName: "Ryzen 9", description: "", price: price, category: CategoryCPU, wantErr: ErrInvalidArgument},
		{name: "zero price", productName: "Ryzen 9", description: "16-core CPU", price: decimal.Zero, category: CategoryCPU, wantErr: ErrInvalidArgument},
		{name: "negative price", productName: "Ryzen 9", description: "16-core CPU", price: decimal.NewFromInt(-1), category: CategoryCPU, wantErr: ErrInvalidArgument},
		{name: "unknown category", productName: "Ryzen 9", description: "16-core CPU", price: price, category: Category("toaster"), wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock, _ := NewStock(10)
			product, err := NewProduct(tt.productName, tt.description, tt.price, tt.category, stock, validManufacturer(), nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewProduct() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProduct() unexpected error: %v", err)
			}
			if product.ManufacturerID != 1 {
				t.Errorf("ManufacturerID = %d, want 1", product.ManufacturerID)
			}
			if product.Stock.Units != 10 {
				t.Errorf("Stock.Units = %d, want 10", product.Stock.Units)
			}
		})
	}
}

func TestNewProductRequiresManufacturer(t *testing.T) {
	stock, _ := NewStock(1)
	_, err := NewProduct("Ryzen 9", "16-core CPU", decimal.NewFromInt(299), CategoryCPU, stock, nil, nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewProduct(nil manufacturer) error = %v, want ErrInvalidArgument", err)
	}
}

func TestNewProductRejectsBlankSpec(t *testing.T) {
	stock, _ := NewStock(1)
	specs := []ProductSpec{{Attribute: "cores", Value: " "}}
	_, err := NewProduct("Ryzen 9", "16-core CPU", decimal.NewFromInt(299), CategoryCPU, stock, validManufacturer(), specs)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewProduct(blank spec value) error = %v, want ErrInvalidArgument", err)
	}
}

func baseProduct() *Product {
	return &Product{
		Name:        "Ryzen 9",
		Description: "16-core CPU",
		Price:       decimal.NewFromInt(299),
		Category:    CategoryCPU,
		Stock:       Stock{Units: 10},
	}
}

func TestApplyUpdate(t *testing.T) {
	newName := "Ryzen 9 7950X"
	blank := "   "
	newPrice := decimal.NewFromInt(399)
	zeroPrice := decimal.Zero
	gpu := CategoryGPU

	tests := []struct {
		name  string
		patch ProductPatch
		check func(t *testing.T, p *Product)
	}{
		{
			name:  "empty patch leaves everything unchanged",
			patch: ProductPatch{},
			check: func(t *testing.T, p *Product) {
				if p.Name != "Ryzen 9" || !p.Price.Equal(decimal.NewFromInt(299)) || p.Category != CategoryCPU {
					t.Errorf("product changed by empty patch: %+v", p)
				}
			},
		},
		{
			name:  "name updated",
			patch: ProductPatch{Name: &newName},
			check: func(t *testing.T, p *Product) {
				if p.Name != newName {
					t.Errorf("Name = %q, want %q", p.Name, newName)
				}
			},
		},
		{
			name:  "blank name ignored",
			patch: ProductPatch{Name: &blank},
			check: func(t *testing.T, p *Product) {
				if p.Name != "Ryzen 9" {
					t.Errorf("Name = %q, want unchanged", p.Name)
				}
			},
		},
		{
			name:  "price updated",
			patch: ProductPatch{Price: &newPrice},
			check: func(t *testing.T, p *Product) {
				if !p.Price.Equal(newPrice) {
					t.Errorf("Price = %s, want %s", p.Price, newPrice)
				}
			},
		},
		{
			name:  "non-positive price ignored",
			patch: ProductPatch{Price: &zeroPrice},
			check: func(t *testing.T, p *Product) {
				if !p.Price.Equal(decimal.NewFromInt(299)) {
					t.Errorf("Price = %s, want unchanged", p.Price)
				}
			},
		},
		{
			name:  "category updated",
			patch: ProductPatch{Category: &gpu},
			check: func(t *testing.T, p *Product) {
				if p.Category != CategoryGPU {
					t.Errorf("Category = %q, want %q", p.Category, CategoryGPU)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := baseProduct()
			product.ApplyUpdate(tt.patch)
			tt.check(t, product)
		})
	}
}

func TestReassignManufacturer(t *testing.T) {
	product := baseProduct()
	m := &Manufacturer{Name: "INTEL"}
	m.ID = 7

	product.ReassignManufacturer(m)

	if product.ManufacturerID != 7 {
		t.Errorf("ManufacturerID = %d, want 7", product.ManufacturerID)
	}
	if product.Manufacturer != m {
		t.Errorf("Manufacturer pointer not updated")
	}
}
