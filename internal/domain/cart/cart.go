package cart

import (
	"errors"
	"strings"
	"sync"
)

// Product is a grocery catalog entry.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
	Unit     string `json:"unit"`
}

// Item is a cart line: a product plus its quantity.
type Item struct {
	Product
	Quantity int `json:"quantity"`
}

var (
	ErrProductIDRequired = errors.New("product id is required")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrItemNotFound      = errors.New("item not in cart")
)

// Cart holds one user's grocery selections. Adding an existing product
// merges with the line by id, incrementing quantity; setting a quantity
// of zero removes the line.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges the product into the cart, incrementing quantity by one.
func (cart *Cart) Add(product Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return ErrProductIDRequired
	}
	cart.mu.Lock()
	defer cart.mu.Unlock()

	for i := range cart.items {
		if cart.items[i].ID == product.ID {
			cart.items[i].Quantity++
			return nil
		}
	}
	cart.items = append(cart.items, Item{Product: product, Quantity: 1})
	return nil
}

// UpdateQuantity sets the quantity of a line. Zero removes the line.
func (cart *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	cart.mu.Lock()
	defer cart.mu.Unlock()

	for i := range cart.items {
		if cart.items[i].ID == productID {
			if quantity == 0 {
				cart.items = append(cart.items[:i], cart.items[i+1:]...)
				return nil
			}
			cart.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes a line regardless of its quantity.
func (cart *Cart) Remove(productID string) error {
	cart.mu.Lock()
	defer cart.mu.Unlock()

	for i := range cart.items {
		if cart.items[i].ID == productID {
			cart.items = append(cart.items[:i], cart.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Items returns a snapshot of the cart lines in insertion order.
func (cart *Cart) Items() []Item {
	cart.mu.Lock()
	defer cart.mu.Unlock()
	out := make([]Item, len(cart.items))
	copy(out, cart.items)
	return out
}

// Total is the sum of price times quantity over all lines.
func (cart *Cart) Total() int {
	cart.mu.Lock()
	defer cart.mu.Unlock()
	total := 0
	for _, item := range cart.items {
		total += item.Price * item.Quantity
	}
	return total
}

// Count is the total number of units across all lines.
func (cart *Cart) Count() int {
	cart.mu.Lock()
	defer cart.mu.Unlock()
	count := 0
	for _, item := range cart.items {
		count += item.Quantity
	}
	return count
}
