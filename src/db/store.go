package db

import (
	"context"

	sql "horizon-server/src/db/sql"
	"horizon-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the identity/storage collaborator: document lookups keyed
// by equality filters over the bank-link, transfer, and user tables.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetBanksByUser(ctx context.Context, userID int64) ([]models.BankLink, error) {
	return sql.GetBanksByUserID(ctx, s.pool, userID)
}

func (s *Store) GetBank(ctx context.Context, bankID string) (*models.BankLink, error) {
	return sql.GetBankByID(ctx, s.pool, bankID)
}

func (s *Store) GetBankByAccountID(ctx context.Context, accountID string) (*models.BankLink, error) {
	return sql.GetBankByAccountID(ctx, s.pool, accountID)
}

func (s *Store) CreateBank(ctx context.Context, bank models.BankLink) (string, error) {
	return sql.CreateBank(ctx, s.pool, bank)
}

func (s *Store) ReassignBank(ctx context.Context, bankID string, newUserID int64) error {
	return sql.ReassignBank(ctx, s.pool, bankID, newUserID)
}

func (s *Store) ReassignBanksByUser(ctx context.Context, oldUserID, newUserID int64) (int, error) {
	return sql.ReassignBanksByUser(ctx, s.pool, oldUserID, newUserID)
}

func (s *Store) GetTransfersByBank(ctx context.Context, bankID string) ([]models.TransferRecord, error) {
	return sql.GetTransfersByBankID(ctx, s.pool, bankID)
}

func (s *Store) CreateTransfer(ctx context.Context, transfer models.TransferRecord) (string, error) {
	return sql.CreateTransfer(ctx, s.pool, transfer)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return sql.GetUserByID(ctx, s.pool, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return sql.GetUserByEmail(ctx, s.pool, email)
}

func (s *Store) CreateUser(ctx context.Context, req models.SignUpRequest, hashedPassword string) (*models.User, error) {
	return sql.CreateUser(ctx, s.pool, req, hashedPassword)
}
