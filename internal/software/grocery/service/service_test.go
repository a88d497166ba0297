package service

import (
	"context"
	"errors"
	"testing"

	"zorp/internal/domain/cart"
	"zorp/internal/general/logger"
	"zorp/internal/ports"
)

func newTestGrocery() *Service {
	return New(logger.New("grocery-test"))
}

func TestProductsCatalog(t *testing.T) {
	svc := newTestGrocery()

	products := svc.Products(context.Background())
	if len(products) != 8 {
		t.Fatalf("got %d products, want 8", len(products))
	}
	if products[0].Name != "Fresh Bananas" || products[0].Price != 800 {
		t.Fatalf("first product = %+v", products[0])
	}

	// returned slice is a copy
	products[0].Price = 1
	if svc.Products(context.Background())[0].Price != 800 {
		t.Fatal("catalog mutated through returned slice")
	}
}

func TestAddMergesByProduct(t *testing.T) {
	svc := newTestGrocery()
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "user-1", "1")
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	view, err = svc.AddItem(ctx, "user-1", "1")
	if err != nil {
		t.Fatalf("second AddItem() error = %v", err)
	}

	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("cart = %+v, want one line with quantity 2", view.Items)
	}
	if view.Count != 2 || view.Total != 1600 {
		t.Fatalf("count = %d total = %d", view.Count, view.Total)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newTestGrocery()

	if _, err := svc.AddItem(context.Background(), "user-1", "999"); !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("error = %v, want ErrUnknownProduct", err)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc := newTestGrocery()
	ctx := context.Background()

	svc.AddItem(ctx, "user-1", "1")
	svc.AddItem(ctx, "user-1", "2")

	view, err := svc.UpdateQuantity(ctx, "user-1", ports.UpdateQuantityInput{ProductID: "1", Quantity: 0})
	if err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Product.ID != "2" {
		t.Fatalf("cart = %+v, want only product 2 left", view.Items)
	}

	if _, err := svc.UpdateQuantity(ctx, "user-1", ports.UpdateQuantityInput{ProductID: "2", Quantity: -1}); !errors.Is(err, cart.ErrNegativeQuantity) {
		t.Fatalf("error = %v, want ErrNegativeQuantity", err)
	}

	view, err = svc.UpdateQuantity(ctx, "user-1", ports.UpdateQuantityInput{ProductID: "2", Quantity: 5})
	if err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if view.Items[0].Quantity != 5 || view.Total != 6000 {
		t.Fatalf("quantity = %d total = %d", view.Items[0].Quantity, view.Total)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := newTestGrocery()
	ctx := context.Background()

	svc.AddItem(ctx, "user-1", "1")

	view, err := svc.GetCart(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("user-2 cart = %+v, want empty", view.Items)
	}
}

func TestRemoveMissingLine(t *testing.T) {
	svc := newTestGrocery()

	if _, err := svc.RemoveItem(context.Background(), "user-1", "1"); !errors.Is(err, cart.ErrItemNotFound) {
		t.Fatalf("error = %v, want ErrItemNotFound", err)
	}
}
