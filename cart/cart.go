// Package cart keeps the quantities a guest wants per menu item and derives
// totals against a catalog snapshot.
//
// A Cart is a value: every operation returns a new Cart and leaves its
// receiver untouched. No entry ever holds a quantity below 1.
package cart

import "github.com/shopspring/decimal"

// Cart maps a menu item id to its quantity.
type Cart map[string]int

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Add returns a cart where itemID's quantity is one higher.
func (c Cart) Add(itemID string) Cart {
	out := c.Clone()
	out[itemID]++
	return out
}

// Remove returns a cart where itemID's quantity is one lower. An entry that
// would drop to zero is deleted. Removing an id that is not in the cart
// returns an equal cart.
func (c Cart) Remove(itemID string) Cart {
	qty, ok := c[itemID]
	if !ok {
		return c.Clone()
	}
	out := c.Clone()
	if qty > 1 {
		out[itemID] = qty - 1
	} else {
		delete(out, itemID)
	}
	return out
}

// Quantity returns 0 for ids not in the cart.
func (c Cart) Quantity(itemID string) int {
	return c[itemID]
}

// ItemCount is the sum of all quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// TotalPrice sums price times quantity over every entry the catalog can
// resolve. Unknown ids add nothing. The result is exact; round for display
// with StringFixed(2).
func (c Cart) TotalPrice(catalog *Catalog) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range c {
		item, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Clone returns an independent copy.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c)+1)
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
