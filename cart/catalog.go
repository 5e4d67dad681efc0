package cart

import (
	"github.com/shopspring/decimal"

	models "restaurant-ordering/model"
)

// Catalog is a read-only snapshot of the menu, indexed by id.
type Catalog struct {
	items []models.MenuItem
	byID  map[string]int
}

// NewCatalog keeps the order of items. When an id repeats, the first
// occurrence wins.
func NewCatalog(items []models.MenuItem) *Catalog {
	c := &Catalog{
		items: make([]models.MenuItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

func (c *Catalog) Lookup(id string) (models.MenuItem, bool) {
	if c == nil {
		return models.MenuItem{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of the snapshot in its original order.
func (c *Catalog) Items() []models.MenuItem {
	if c == nil {
		return nil
	}
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Lines resolves the cart against the catalog in catalog order. Entries the
// catalog does not know are left out.
func Lines(c Cart, catalog *Catalog) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(c))
	for _, item := range catalog.Items() {
		qty := c.Quantity(item.ID)
		if qty == 0 {
			continue
		}
		lines = append(lines, models.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return lines
}
