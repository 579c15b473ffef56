package pricing

import (
	"testing"

	"reidossalgados/models"
)

func TestResolveUnitPrice_PlainItem(t *testing.T) {
	item := models.MenuItem{Price: 500, Available: true}

	for _, qty := range []int{1, 3, 10} {
		got := ResolveUnitPrice(item, models.Selection{Quantity: qty})
		if got != 500 {
			t.Errorf("quantity %d: unit price = %d, want 500", qty, got)
		}
	}
}

func TestResolveUnitPrice_Sizes(t *testing.T) {
	item := models.MenuItem{
		Price: 1000,
		Sizes: map[string]models.Cents{"P": 1000, "G": 1500},
	}

	tests := []struct {
		size string
		want models.Cents
	}{
		{"G", 1500},
		{"P", 1000},
		{"M", 1000}, // unknown size falls back to base price
		{"", 1000},
	}
	for _, tt := range tests {
		got := ResolveUnitPrice(item, models.Selection{Size: tt.size, Quantity: 1})
		if got != tt.want {
			t.Errorf("size %q: unit price = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestResolveUnitPrice_Flavors(t *testing.T) {
	item := models.MenuItem{
		Price: 1000,
		Flavors: []models.Flavor{
			{Name: "Frango", Price: 800, Available: true},
			{Name: "Queijo", Price: 900, Available: false},
		},
	}

	tests := []struct {
		flavor string
		want   models.Cents
	}{
		{"Frango", 800},
		{"Queijo", 1000},    // unavailable flavor must not price as 900
		{"Calabresa", 1000}, // unknown flavor
		{"", 1000},          // no flavor chosen: listed price, not cheapest flavor
	}
	for _, tt := range tests {
		got := ResolveUnitPrice(item, models.Selection{Flavor: tt.flavor, Quantity: 1})
		if got != tt.want {
			t.Errorf("flavor %q: unit price = %d, want %d", tt.flavor, got, tt.want)
		}
	}
}

func TestResolveUnitPrice_FlavorWinsOverSize(t *testing.T) {
	item := models.MenuItem{
		Price: 1000,
		Sizes: map[string]models.Cents{"G": 1500},
		Flavors: []models.Flavor{
			{Name: "Frango", Price: 800, Available: true},
		},
	}

	got := ResolveUnitPrice(item, models.Selection{Size: "G", Flavor: "Frango", Quantity: 1})
	if got != 800 {
		t.Errorf("unit price = %d, want flavor price 800 over size price", got)
	}

	// With flavors present but none selected, the size table is not
	// consulted either: the listed price stands.
	got = ResolveUnitPrice(item, models.Selection{Size: "G", Quantity: 1})
	if got != 1000 {
		t.Errorf("unit price = %d, want listed price 1000", got)
	}
}

func TestResolveUnitPrice_AllFlavorsUnavailableUsesSizes(t *testing.T) {
	item := models.MenuItem{
		Price: 1000,
		Sizes: map[string]models.Cents{"G": 1500},
		Flavors: []models.Flavor{
			{Name: "Queijo", Price: 900, Available: false},
		},
	}

	got := ResolveUnitPrice(item, models.Selection{Size: "G", Quantity: 1})
	if got != 1500 {
		t.Errorf("unit price = %d, want size price 1500 when no flavor is orderable", got)
	}
}

func TestResolveUnitPrice_BorderAndExtras(t *testing.T) {
	item := models.MenuItem{
		Price:   1000,
		Borders: map[string]models.Cents{"Catupiry": 400},
		Extras:  map[string]models.Cents{"Bacon": 200, "Chocolate": 0},
	}
	sel := models.Selection{
		Border:   "Catupiry",
		Extras:   []string{"Bacon", "Chocolate"},
		Quantity: 2,
	}

	unit := ResolveUnitPrice(item, sel)
	if unit != 1600 {
		t.Fatalf("unit price = %d, want 1600", unit)
	}
	if line := LineTotal(unit, sel.Quantity); line != 3200 {
		t.Errorf("line total = %d, want 3200", line)
	}
}

func TestResolveUnitPrice_UnknownModifierKeys(t *testing.T) {
	item := models.MenuItem{
		Price:  1000,
		Extras: map[string]models.Cents{"Bacon": 200},
	}
	sel := models.Selection{
		Border:   "Cheddar",                    // item has no borders at all
		Extras:   []string{"Bacon", "Granola"}, // Granola unknown
		Quantity: 1,
	}

	if got := ResolveUnitPrice(item, sel); got != 1200 {
		t.Errorf("unit price = %d, want 1200 (unknown keys contribute zero)", got)
	}
}

func TestLineTotal_QuantityFloor(t *testing.T) {
	if got := LineTotal(700, 0); got != 700 {
		t.Errorf("line total with quantity 0 = %d, want 700", got)
	}
	if got := LineTotal(700, -3); got != 700 {
		t.Errorf("line total with negative quantity = %d, want 700", got)
	}
}

func TestOrderTotal(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 1600, LineTotal: 3200},
		{UnitPrice: 500, LineTotal: 500},
	}

	if got := OrderTotal(items, 700); got != 4400 {
		t.Errorf("order total = %d, want 4400", got)
	}
	if got := OrderTotal(nil, 0); got != 0 {
		t.Errorf("empty order total = %d, want 0", got)
	}
}
