package domain

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// Product is a catalog item. The id is caller-supplied and must be unique;
// there is no auto-increment on this table.
type Product struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Description string  `json:"descricao" gorm:"column:descricao"`
	Price       float64 `json:"valor" gorm:"column:valor"`
	Brand       string  `json:"marca" gorm:"column:marca"`
}

// TableName keeps the table name of the legacy schema.
func (Product) TableName() string { return "produto" }
