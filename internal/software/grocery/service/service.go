package service

import (
	"context"
	"errors"
	"sync"

	"zorp/internal/domain/cart"
	"zorp/internal/general/logger"
	"zorp/internal/ports"
)

var ErrUnknownProduct = errors.New("unknown product")

// Service implements ports.GroceryService. Carts are per-user and held
// in memory for the session, like the catalog they draw from.
type Service struct {
	logger *logger.Logger

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

// New wires the grocery service.
func New(logger *logger.Logger) *Service {
	return &Service{
		logger: logger,
		carts:  make(map[string]*cart.Cart),
	}
}

var _ ports.GroceryService = (*Service)(nil)

// Products returns the static grocery catalog.
func (service *Service) Products(ctx context.Context) []cart.Product {
	return catalogProducts()
}

// GetCart returns the user's cart, creating an empty one on first touch.
func (service *Service) GetCart(ctx context.Context, userID string) (ports.CartView, error) {
	return cartView(service.cartFor(userID)), nil
}

// AddItem merges one unit of the product into the user's cart.
func (service *Service) AddItem(ctx context.Context, userID, productID string) (ports.CartView, error) {
	product, ok := productByID(productID)
	if !ok {
		return ports.CartView{}, ErrUnknownProduct
	}

	userCart := service.cartFor(userID)
	if err := userCart.Add(product); err != nil {
		return ports.CartView{}, err
	}

	service.logger.Debug(ctx, "cart_item_added", "Product added to cart",
		map[string]any{"user_id": userID, "product_id": productID})

	return cartView(userCart), nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (service *Service) UpdateQuantity(ctx context.Context, userID string, in ports.UpdateQuantityInput) (ports.CartView, error) {
	userCart := service.cartFor(userID)
	if err := userCart.UpdateQuantity(in.ProductID, in.Quantity); err != nil {
		return ports.CartView{}, err
	}
	return cartView(userCart), nil
}

// RemoveItem deletes a line regardless of quantity.
func (service *Service) RemoveItem(ctx context.Context, userID, productID string) (ports.CartView, error) {
	userCart := service.cartFor(userID)
	if err := userCart.Remove(productID); err != nil {
		return ports.CartView{}, err
	}
	return cartView(userCart), nil
}

func (service *Service) cartFor(userID string) *cart.Cart {
	service.mu.Lock()
	defer service.mu.Unlock()

	userCart, ok := service.carts[userID]
	if !ok {
		userCart = cart.New()
		service.carts[userID] = userCart
	}
	return userCart
}

func cartView(userCart *cart.Cart) ports.CartView {
	items := userCart.Items()
	view := ports.CartView{
		Items: make([]ports.CartItemView, 0, len(items)),
		Count: userCart.Count(),
		Total: userCart.Total(),
	}
	for _, item := range items {
		view.Items = append(view.Items, ports.CartItemView{
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}
	return view
}
