package domain

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Manufacturer 制造商实体
// 名称全局唯一（存储层唯一索引兜底），写入前统一转大写
type Manufacturer struct {
	gorm.Model
	Name string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
}

func (Manufacturer) TableName() string { return "manufacturers" }

// NewManufacturer 创建制造商，名称不允许为空白
func NewManufacturer(name string) (*Manufacturer, error) {
	normalized, err := NormalizeManufacturerName(name)
	if err != nil {
		return nil, err
	}
	return &Manufacturer{Name: normalized}, nil
}

// Rename 重命名，重新校验并大写归一
func (m *Manufacturer) Rename(name string) error {
	normalized, err := NormalizeManufacturerName(name)
	if err != nil {
		return err
	}
	m.Name = normalized
	return nil
}

// NormalizeManufacturerName 校验非空白并转大写
// 按名称解析制造商时同样用它归一，保证大小写不敏感匹配
func NormalizeManufacturerName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: manufacturer name must not be blank", ErrInvalidArgument)
	}
	return strings.ToUpper(name), nil
}
