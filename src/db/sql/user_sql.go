package db

import (
	"context"
	"errors"
	"fmt"

	"horizon-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetUserByID(ctx context.Context, pool *pgxpool.Pool, id int64) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	err := pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, first_name, last_name, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	err := pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, req models.SignUpRequest, hashedPassword string) (*models.User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	user := models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err := pool.QueryRow(ctx, query, req.Email, req.FirstName, req.LastName, hashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}
