package db

import (
	"context"
	"fmt"

	"horizon-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetBanksByUserID(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.BankLink, error) {
	query := `
		SELECT id, user_id, access_token, account_id, funding_source_id, shareable_id, created_at
		FROM banks
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []models.BankLink
	for rows.Next() {
		var bank models.BankLink
		err := rows.Scan(&bank.ID, &bank.UserID, &bank.AccessToken, &bank.AccountID, &bank.FundingSourceID, &bank.ShareableID, &bank.CreatedAt)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}

	return banks, rows.Err()
}

func GetBankByID(ctx context.Context, pool *pgxpool.Pool, bankID string) (*models.BankLink, error) {
	query := `
		SELECT id, user_id, access_token, account_id, funding_source_id, shareable_id, created_at
		FROM banks
		WHERE id = $1
	`

	var bank models.BankLink
	err := pool.QueryRow(ctx, query, bankID).Scan(&bank.ID, &bank.UserID, &bank.AccessToken, &bank.AccountID, &bank.FundingSourceID, &bank.ShareableID, &bank.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bank %s not found: %w", bankID, err)
	}
	return &bank, nil
}

func GetBankByAccountID(ctx context.Context, pool *pgxpool.Pool, accountID string) (*models.BankLink, error) {
	query := `
		SELECT id, user_id, access_token, account_id, funding_source_id, shareable_id, created_at
		FROM banks
		WHERE account_id = $1
	`

	var bank models.BankLink
	err := pool.QueryRow(ctx, query, accountID).Scan(&bank.ID, &bank.UserID, &bank.AccessToken, &bank.AccountID, &bank.FundingSourceID, &bank.ShareableID, &bank.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bank for account %s not found: %w", accountID, err)
	}
	return &bank, nil
}

func CreateBank(ctx context.Context, pool *pgxpool.Pool, bank models.BankLink) (string, error) {
	query := `
		INSERT INTO banks (user_id, access_token, account_id, funding_source_id, shareable_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err := pool.QueryRow(ctx, query, bank.UserID, bank.AccessToken, bank.AccountID, bank.FundingSourceID, bank.ShareableID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create bank: %w", err)
	}
	return id, nil
}

func ReassignBank(ctx context.Context, pool *pgxpool.Pool, bankID string, newUserID int64) error {
	query := `UPDATE banks SET user_id = $1 WHERE id = $2`
	tag, err := pool.Exec(ctx, query, newUserID, bankID)
	if err != nil {
		return fmt.Errorf("failed to reassign bank %s: %w", bankID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bank %s not found", bankID)
	}
	return nil
}

func ReassignBanksByUser(ctx context.Context, pool *pgxpool.Pool, oldUserID, newUserID int64) (int, error) {
	query := `UPDATE banks SET user_id = $1 WHERE user_id = $2`
	tag, err := pool.Exec(ctx, query, newUserID, oldUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign banks for user %d: %w", oldUserID, err)
	}
	return int(tag.RowsAffected()), nil
}
