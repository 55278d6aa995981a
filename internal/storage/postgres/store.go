package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore  = (*Store)(nil)
	_ storage.ItemStore  = (*Store)(nil)
	_ storage.VisitStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users, items, and visits.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS role TEXT NOT NULL DEFAULT 'user';`,
		`CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			address TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			owner TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS items_owner_idx ON items (owner);`,
		`CREATE TABLE IF NOT EXISTS visits (
			id BIGSERIAL PRIMARY KEY,
			host TEXT NOT NULL,
			visitor TEXT NOT NULL,
			visited_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS visits_host_idx ON visits (host, visited_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. A username collision maps to
// storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, role, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by exact, case-sensitive username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1;
	`
	row := s.pool.QueryRow(ctx, query, username)
	return scanUser(row)
}

// CreateItem inserts an item with a freshly assigned opaque id.
func (s *Store) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	const query = `
		INSERT INTO items (id, title, address, image_url, latitude, longitude, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, address, image_url, latitude, longitude, owner;
	`
	id := uuid.NewString()
	row := s.pool.QueryRow(ctx, query, id, item.Title, item.Address, item.ImageURL, item.Latitude, item.Longitude, item.Owner)
	return scanItem(row)
}

// ListItemsByOwner returns the owner's items, oldest first.
func (s *Store) ListItemsByOwner(ctx context.Context, owner string) ([]models.Item, error) {
	const query = `
		SELECT id, title, address, image_url, latitude, longitude, owner
		FROM items
		WHERE owner = $1
		ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListItems returns every item regardless of owner, oldest first.
func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	const query = `
		SELECT id, title, address, image_url, latitude, longitude, owner
		FROM items
		ORDER BY created_at;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// DeleteItem removes an item by id. A malformed or unknown id maps to
// storage.ErrNotFound.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RecordVisit appends one visit row. There is no dedup.
func (s *Store) RecordVisit(ctx context.Context, visit models.Visit) error {
	const query = `INSERT INTO visits (host, visitor, visited_at) VALUES ($1, $2, $3);`
	_, err := s.pool.Exec(ctx, query, visit.Host, visit.Visitor, visit.VisitedAt)
	return err
}

// ListVisitsForHost returns the host's received visits, newest first.
func (s *Store) ListVisitsForHost(ctx context.Context, host string) ([]models.Visit, error) {
	const query = `
		SELECT host, visitor, visited_at
		FROM visits
		WHERE host = $1
		ORDER BY visited_at DESC;
	`
	rows, err := s.pool.Query(ctx, query, host)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []models.Visit{}
	for rows.Next() {
		var v models.Visit
		if err := rows.Scan(&v.Host, &v.Visitor, &v.VisitedAt); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanItem(row pgx.Row) (models.Item, error) {
	var item models.Item
	if err := row.Scan(&item.ID, &item.Title, &item.Address, &item.ImageURL, &item.Latitude, &item.Longitude, &item.Owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Item{}, storage.ErrNotFound
		}
		return models.Item{}, err
	}
	return item, nil
}

func collectItems(rows pgx.Rows) ([]models.Item, error) {
	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Address, &item.ImageURL, &item.Latitude, &item.Longitude, &item.Owner); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
