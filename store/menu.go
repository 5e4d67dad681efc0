package store

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const listMenuItemsSQL = `SELECT id, name, description, price, category, image_url, tags FROM menu_items ORDER BY category ASC, id ASC`

const insertMenuItemSQL = `INSERT INTO menu_items (id, name, description, price, category, image_url, tags) VALUES ($1, $2, $3, $4, $5, $6, $7)`

// ListMenuItems returns the whole menu ordered by category.
func (s *PostgresStore) ListMenuItems(ctx context.Context) ([]MenuItemRow, error) {
	rows, err := s.DB.QueryContext(ctx, listMenuItemsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "query menu items")
	}
	defer rows.Close()

	out := []MenuItemRow{}
	for rows.Next() {
		var m MenuItemRow
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL, pq.Array(&m.Tags)); err != nil {
			return nil, errors.Wrap(err, "scan menu item")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate menu items")
	}
	return out, nil
}

// CreateMenuItem inserts a menu item under a fresh id and returns the id.
func (s *PostgresStore) CreateMenuItem(ctx context.Context, row MenuItemRow) (string, error) {
	id := uuid.NewString()
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := s.DB.ExecContext(ctx, insertMenuItemSQL,
		id, row.Name, row.Description, row.Price, row.Category, row.ImageURL, pq.Array(tags),
	)
	if err != nil {
		return "", errors.Wrap(err, "insert menu item")
	}
	return id, nil
}
