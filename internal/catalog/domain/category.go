package domain

import (
	"fmt"
	"strings"
)

// Category 商品类别，固定的硬件配件枚举
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryRAM         Category = "ram"
	CategoryMobo        Category = "mobo"
	CategorySSD         Category = "ssd"
	CategoryHDD         Category = "hdd"
	CategoryCase        Category = "case"
	CategoryPowerSupply Category = "power_supply"
	CategoryFan         Category = "fan"
	CategoryCooler      Category = "cooler"
)

var categories = map[Category]struct{}{
	CategoryCPU:         {},
	CategoryGPU:         {},
	CategoryRAM:         {},
	CategoryMobo:        {},
	CategorySSD:         {},
	CategoryHDD:         {},
	CategoryCase:        {},
	CategoryPowerSupply: {},
	CategoryFan:         {},
	CategoryCooler:      {},
}

// ParseCategory 解析类别字符串，大小写不敏感
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
	}
	return c, nil
}

// Valid 是否为已知类别
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) String() string { return string(c) }
