package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// MenuItemRow, ContactRow are simple structs representing DB rows
type MenuItemRow struct {
	ID          string
	Name        string
	Description sql.NullString
	Price       decimal.Decimal
	Category    string
	ImageURL    sql.NullString
	Tags        []string
}

type ContactRow struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Message   string
	CreatedAt time.Time
}

// PostgresStore is a Store backed by the hosted Postgres database.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *PostgresStore) Close() error { return s.DB.Close() }

// Migrate runs the schema script. The script must be idempotent.
func (s *PostgresStore) Migrate(ctx context.Context, script string) error {
	if _, err := s.DB.ExecContext(ctx, script); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}

const insertContactSQL = `INSERT INTO contacts (first_name, last_name, email, message) VALUES ($1, $2, $3, $4) RETURNING id, created_at`

// CreateContact inserts a contact form submission and returns the stored row
func (s *PostgresStore) CreateContact(ctx context.Context, row ContactRow) (ContactRow, error) {
	err := s.DB.QueryRowContext(ctx, insertContactSQL,
		row.FirstName, row.LastName, row.Email, row.Message,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return ContactRow{}, errors.Wrap(err, "insert contact")
	}
	return row, nil
}
