package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

func (s *Store) Insert(ctx context.Context, u *User) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO users (full_name, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.FullName, u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.Pool.QueryRow(ctx,
		`SELECT id, full_name, username, email, password_hash, created_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}
