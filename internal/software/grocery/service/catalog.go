package service

import "zorp/internal/domain/cart"

// catalogProducts returns the static grocery catalog in display order.
// The slice is freshly allocated so callers cannot mutate the catalog.
func catalogProducts() []cart.Product {
	return []cart.Product{
		{ID: "1", Name: "Fresh Bananas", Category: "fruits", Price: 800, Unit: "bunch"},
		{ID: "2", Name: "Organic Milk", Category: "dairy", Price: 1200, Unit: "1L"},
		{ID: "3", Name: "Free Range Eggs", Category: "dairy", Price: 1500, Unit: "dozen"},
		{ID: "4", Name: "Avocados", Category: "fruits", Price: 1000, Unit: "pack of 3"},
		{ID: "5", Name: "Local Honey", Category: "specialty", Price: 2500, Unit: "500g"},
		{ID: "6", Name: "Fresh Bread", Category: "bakery", Price: 900, Unit: "loaf"},
		{ID: "7", Name: "Premium Coffee", Category: "beverages", Price: 3500, Unit: "250g"},
		{ID: "8", Name: "Artisan Cheese", Category: "dairy", Price: 2000, Unit: "200g"},
	}
}

func productByID(id string) (cart.Product, bool) {
	for _, product := range catalogProducts() {
		if product.ID == id {
			return product, true
		}
	}
	return cart.Product{}, false
}
