package services

import (
	"testing"

	"qr-dine/models"

	"github.com/shopspring/decimal"
)

func menuItem(id, name, price string) models.MenuItem {
	return models.MenuItem{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Available: true,
	}
}

func TestCartAddAndTotal(t *testing.T) {
	var c Cart
	burger := menuItem("item1", "Gourmet Beef Burger", "12.99")
	salad := menuItem("item4", "Caesar Salad", "9.50")

	c.Add(burger)
	c.Add(burger)
	c.Add(salad)

	if len(c.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(c.Entries))
	}
	if c.Entries[0].Quantity != 2 {
		t.Errorf("burger quantity = %d, want 2", c.Entries[0].Quantity)
	}
	want := decimal.RequireFromString("35.48")
	if !c.Total().Equal(want) {
		t.Errorf("total = %s, want %s", c.Total(), want)
	}
}

func TestCartRemove(t *testing.T) {
	var c Cart
	burger := menuItem("item1", "Burger", "12.99")

	c.Add(burger)
	c.Add(burger)
	c.Remove("item1")
	if len(c.Entries) != 1 || c.Entries[0].Quantity != 1 {
		t.Fatalf("after one remove: %+v", c.Entries)
	}

	c.Remove("item1")
	if len(c.Entries) != 0 {
		t.Errorf("entry at zero quantity must be dropped, got %+v", c.Entries)
	}

	// Removing an absent item is a no-op, not an error.
	c.Remove("nope")
	if len(c.Entries) != 0 {
		t.Errorf("remove on empty cart changed entries: %+v", c.Entries)
	}
}

func TestCartQuantityNeverBelowOne(t *testing.T) {
	var c Cart
	item := menuItem("x", "X", "1.00")
	ops := []func(){
		func() { c.Add(item) },
		func() { c.Remove("x") },
		func() { c.Remove("x") },
		func() { c.Add(item) },
		func() { c.Add(item) },
		func() { c.Remove("x") },
	}
	for _, op := range ops {
		op()
		for _, e := range c.Entries {
			if e.Quantity < 1 {
				t.Fatalf("entry with quantity %d retained", e.Quantity)
			}
		}
	}
}

func TestCartSnapshotFreezesPrice(t *testing.T) {
	var c Cart
	c.Add(menuItem("item1", "Burger", "12.99"))
	snapshot := c.Snapshot()

	// A later catalog price change must not affect the snapshot.
	c.Entries[0].Price = decimal.RequireFromString("99.99")
	if !snapshot[0].Price.Equal(decimal.RequireFromString("12.99")) {
		t.Errorf("snapshot price changed: %s", snapshot[0].Price)
	}
}

func TestCartEmptyTotalAndClear(t *testing.T) {
	var c Cart
	if !c.Total().IsZero() {
		t.Errorf("empty cart total = %s, want 0", c.Total())
	}
	c.Add(menuItem("a", "A", "3.00"))
	c.Clear()
	if len(c.Entries) != 0 || !c.Total().IsZero() {
		t.Errorf("clear left entries: %+v", c.Entries)
	}
}

func TestCartSpecialRequest(t *testing.T) {
	var c Cart
	c.Add(menuItem("item1", "Burger", "12.99"))
	c.SetSpecialRequest("item1", "no onions")
	c.SetSpecialRequest("absent", "ignored")

	if c.Entries[0].SpecialRequests != "no onions" {
		t.Errorf("special request = %q", c.Entries[0].SpecialRequests)
	}
	if got := c.Snapshot()[0].SpecialRequests; got != "no onions" {
		t.Errorf("snapshot special request = %q", got)
	}
}

func TestCartStoreSessionsIsolated(t *testing.T) {
	store := NewCartStore()
	store.Add("s1", menuItem("item1", "Burger", "12.99"))
	store.Add("s2", menuItem("item4", "Salad", "9.50"))

	e1, t1 := store.View("s1")
	e2, t2 := store.View("s2")
	if len(e1) != 1 || e1[0].ItemID != "item1" {
		t.Fatalf("s1 entries: %+v", e1)
	}
	if len(e2) != 1 || e2[0].ItemID != "item4" {
		t.Fatalf("s2 entries: %+v", e2)
	}
	if !t1.Equal(decimal.RequireFromString("12.99")) || !t2.Equal(decimal.RequireFromString("9.50")) {
		t.Errorf("totals: %s, %s", t1, t2)
	}

	store.Clear("s1")
	e1, _ = store.View("s1")
	if len(e1) != 0 {
		t.Errorf("s1 not cleared: %+v", e1)
	}
	e2, _ = store.View("s2")
	if len(e2) != 1 {
		t.Errorf("clearing s1 touched s2: %+v", e2)
	}
}
