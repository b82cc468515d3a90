package db

import (
	"context"
	"fmt"

	"horizon-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetTransfersByBankID returns transfers where the bank is either the
// sender or the receiver; direction is decided at normalization time.
func GetTransfersByBankID(ctx context.Context, pool *pgxpool.Pool, bankID string) ([]models.TransferRecord, error) {
	query := `
		SELECT id, name, amount, channel, category, sender_bank_id, receiver_bank_id, email, created_at
		FROM transfers
		WHERE sender_bank_id = $1 OR receiver_bank_id = $1
		ORDER BY created_at DESC
	`

	rows, err := pool.Query(ctx, query, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []models.TransferRecord
	for rows.Next() {
		var transfer models.TransferRecord
		err := rows.Scan(&transfer.ID, &transfer.Name, &transfer.Amount, &transfer.Channel, &transfer.Category, &transfer.SenderBankID, &transfer.ReceiverBankID, &transfer.Email, &transfer.CreatedAt)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

func CreateTransfer(ctx context.Context, pool *pgxpool.Pool, transfer models.TransferRecord) (string, error) {
	query := `
		INSERT INTO transfers (name, amount, channel, category, sender_bank_id, receiver_bank_id, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := pool.QueryRow(ctx, query,
		transfer.Name,
		transfer.Amount,
		transfer.Channel,
		transfer.Category,
		transfer.SenderBankID,
		transfer.ReceiverBankID,
		transfer.Email,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create transfer: %w", err)
	}
	return id, nil
}
