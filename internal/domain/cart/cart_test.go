package cart

import (
	"errors"
	"testing"
)

var (
	rice   = Product{ID: "p-rice", Name: "Rice 5kg", Category: "staples", Price: 6500, Unit: "bag"}
	tomato = Product{ID: "p-tomato", Name: "Tomatoes", Category: "produce", Price: 1200, Unit: "basket"}
	garri  = Product{ID: "p-garri", Name: "Garri 2kg", Category: "staples", Price: 1800, Unit: "bag"}
)

func TestAddMergesByID(t *testing.T) {
	c := New()

	if err := c.Add(rice); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(tomato); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(rice); err != nil {
		t.Fatalf("add again: %v", err)
	}

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID != "p-rice" || items[0].Quantity != 2 {
		t.Fatalf("expected merged rice line with quantity 2, got %+v", items[0])
	}
	if c.Count() != 3 {
		t.Fatalf("expected 3 units, got %d", c.Count())
	}
}

func TestAddRequiresProductID(t *testing.T) {
	c := New()
	if err := c.Add(Product{Name: "mystery"}); !errors.Is(err, ErrProductIDRequired) {
		t.Fatalf("expected ErrProductIDRequired, got %v", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	if err := c.Add(rice); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.UpdateQuantity("p-rice", 4); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if items := c.Items(); items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}

	// zero removes the line
	if err := c.UpdateQuantity("p-rice", 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart after zero quantity")
	}

	if err := c.UpdateQuantity("p-rice", 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := c.UpdateQuantity("p-rice", -1); !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	c := New()
	if err := c.Add(rice); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(garri); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.Remove("p-rice"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ID != "p-garri" {
		t.Fatalf("expected only garri left, got %+v", items)
	}

	if err := c.Remove("p-rice"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	if err := c.Add(rice); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(rice); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(tomato); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := c.Total(); got != 2*6500+1200 {
		t.Fatalf("expected total %d, got %d", 2*6500+1200, got)
	}
	if got := c.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}
