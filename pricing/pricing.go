package pricing

import "reidossalgados/models"

// ResolveUnitPrice computes the per-unit price of a menu item for one
// selection. Price sources, highest priority first:
//
//  1. the selected flavor, when the item has flavors and the selection names
//     one that is available — a flavor price replaces base and size pricing;
//  2. the selected size, when the item has a size table and the selection
//     names one of its keys;
//  3. the item's own base price.
//
// Border and extra surcharges are then added on top. A modifier that names a
// key the item does not have contributes nothing; it never substitutes a
// different option's price and never errors. Quantity does not affect the
// unit price.
func ResolveUnitPrice(item models.MenuItem, sel models.Selection) models.Cents {
	unit := basePrice(item, sel)

	if sel.Border != "" {
		if surcharge, ok := item.Borders[sel.Border]; ok {
			unit += surcharge
		}
	}
	for _, extra := range sel.Extras {
		if surcharge, ok := item.Extras[extra]; ok {
			unit += surcharge
		}
	}
	return unit
}

func basePrice(item models.MenuItem, sel models.Selection) models.Cents {
	if hasAvailableFlavor(item) {
		if sel.Flavor != "" {
			for _, f := range item.Flavors {
				if f.Available && f.Name == sel.Flavor {
					return f.Price
				}
			}
		}
		// No flavor chosen yet, or the chosen one is unknown/unavailable:
		// the item's listed price stands in, not the cheapest flavor.
		return item.Price
	}
	if sel.Size != "" {
		if p, ok := item.Sizes[sel.Size]; ok {
			return p
		}
	}
	return item.Price
}

func hasAvailableFlavor(item models.MenuItem) bool {
	for _, f := range item.Flavors {
		if f.Available {
			return true
		}
	}
	return false
}

// LineTotal is the stored total for one order line. Quantities below one
// are treated as one so a malformed payload can never zero out a line.
func LineTotal(unit models.Cents, quantity int) models.Cents {
	if quantity < 1 {
		quantity = 1
	}
	return unit * models.Cents(quantity)
}

// OrderTotal sums the line totals of an order and the delivery fee. All
// arithmetic is integer centavos, so the result is exact.
func OrderTotal(items []models.OrderItem, deliveryFee models.Cents) models.Cents {
	total := deliveryFee
	for _, it := range items {
		total += it.LineTotal
	}
	return total
}
