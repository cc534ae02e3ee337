package application

import (
	"context"
	"sort"
	"strings"

	"github.com/wyfcoding/productcatalog/internal/catalog/domain"
)

// 内存仓储实现，按主键递增分配 ID，测试专用。

type fakeProductRepo struct {
	products    map[uint]*domain.Product
	nextID      uint
	failSaveAll error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]*domain.Product), nextID: 1}
}

// 读路径返回副本，写回以 Save/SaveAll 为准，贴近真实仓储的提交边界。
func copyProduct(product *domain.Product) *domain.Product {
	if product == nil {
		return nil
	}
	clone := *product
	return &clone
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *domain.Product) error {
	r.products[product.ID] = copyProduct(product)
	return nil
}

func (r *fakeProductRepo) SaveAll(_ context.Context, products []*domain.Product) error {
	if r.failSaveAll != nil {
		return r.failSaveAll
	}
	for _, product := range products {
		r.products[product.ID] = copyProduct(product)
	}
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*domain.Product, error) {
	return copyProduct(r.products[id]), nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uint) ([]*domain.Product, error) {
	found := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, copyProduct(product))
		}
	}
	return found, nil
}

func (r *fakeProductRepo) Search(_ context.Context, filter domain.ProductFilter, offset, limit int) ([]*domain.Product, int64, error) {
	matched := make([]*domain.Product, 0)
	for _, product := range r.sorted() {
		if filter.Name != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && product.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && product.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.ManufacturerName != "" {
			if product.Manufacturer == nil || !strings.EqualFold(product.Manufacturer.Name, filter.ManufacturerName) {
				continue
			}
		}
		matched = append(matched, product)
	}
	return paginate(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeProductRepo) SearchBySpec(_ context.Context, attribute, value string, offset, limit int) ([]*domain.Product, int64, error) {
	matched := make([]*domain.Product, 0)
	for _, product := range r.sorted() {
		for _, spec := range product.Specs {
			if spec.Attribute == attribute && spec.Value == value {
				matched = append(matched, product)
				break
			}
		}
	}
	return paginate(matched, offset, limit), int64(len(matched)), nil
}

func (r *fakeProductRepo) sorted() []*domain.Product {
	all := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		all = append(all, product)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func paginate(products []*domain.Product, offset, limit int) []*domain.Product {
	if offset >= len(products) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

type fakeManufacturerRepo struct {
	manufacturers map[uint]*domain.Manufacturer
	nextID        uint
}

func newFakeManufacturerRepo() *fakeManufacturerRepo {
	return &fakeManufacturerRepo{manufacturers: make(map[uint]*domain.Manufacturer), nextID: 1}
}

func (r *fakeManufacturerRepo) seed(name string) *domain.Manufacturer {
	m, _ := domain.NewManufacturer(name)
	_ = r.Save(context.Background(), m)
	return m
}

func (r *fakeManufacturerRepo) Save(_ context.Context, manufacturer *domain.Manufacturer) error {
	if manufacturer.ID == 0 {
		manufacturer.ID = r.nextID
		r.nextID++
	}
	r.manufacturers[manufacturer.ID] = manufacturer
	return nil
}

func (r *fakeManufacturerRepo) GetByID(_ context.Context, id uint) (*domain.Manufacturer, error) {
	return r.manufacturers[id], nil
}

func (r *fakeManufacturerRepo) GetByName(_ context.Context, name string) (*domain.Manufacturer, error) {
	for _, m := range r.manufacturers {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeManufacturerRepo) List(_ context.Context, offset, limit int) ([]*domain.Manufacturer, int64, error) {
	all := make([]*domain.Manufacturer, 0, len(r.manufacturers))
	for _, m := range r.manufacturers {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic string, key string, event any) error {
	p.events = append(p.events, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (p *fakePublisher) topics() []string {
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.topic)
	}
	return topics
}
