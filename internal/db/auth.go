package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kube-rca/todo/internal/model"
)

// userRow is the store-native shape of a credential.
type userRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (r userRow) toCredential() *model.Credential {
	return &model.Credential{
		ID:           r.ID.String(),
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func (db *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (*model.Credential, error) {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, email, password_hash, created_at
	`
	var row userRow
	err := db.Pool.QueryRow(ctx, query, uuid.New(), email, passwordHash).Scan(
		&row.ID,
		&row.Email,
		&row.PasswordHash,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return row.toCredential(), nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.Credential, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	var row userRow
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&row.ID,
		&row.Email,
		&row.PasswordHash,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return row.toCredential(), nil
}
