package inventory

import (
	"context"
	"errors"
)

const defaultText = "Unknown"

var (
	ErrNotFound   = errors.New("item not found")
	ErrValidation = errors.New("missing required fields")
)

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Barcode     *string `json:"barcode"`
	Ingredients string  `json:"ingredients"`
}

// Store owns the product collection and id assignment.
//
// Insert requires name, quantity and price and returns ErrValidation
// otherwise. Get, Patch and Delete return ErrNotFound for unknown ids.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, error)
	Insert(ctx context.Context, f Fields) (Product, error)
	Patch(ctx context.Context, id int, f Fields) (Product, error)
	Delete(ctx context.Context, id int) error
}

func (p Product) clone() Product {
	if p.Barcode != nil {
		b := *p.Barcode
		p.Barcode = &b
	}
	return p
}
