package store

import "context"

// GET  /menu            - menu listing
// POST /menu            - seed a menu item
// POST /contact         - contact form

type Store interface {
	ListMenuItems(ctx context.Context) ([]MenuItemRow, error)
	CreateMenuItem(ctx context.Context, row MenuItemRow) (string, error)

	CreateContact(ctx context.Context, row ContactRow) (ContactRow, error)

	Ping(ctx context.Context) error
	Close() error
}
