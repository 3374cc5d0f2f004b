package repository

import (
	"context"
	"database/sql"

	"github.com/neimd2025/web-ndrop-sub000/core/database"
	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/modules/admin/entity"
)

type AdminRepositoryInterface interface {
	GetByUsername(ctx context.Context, username string) (*entity.AdminAccount, error)
	CreateIfMissing(ctx context.Context, username, passwordHash string, roleID int) (bool, error)
}

type AdminRepository struct {
	db database.Database
}

func NewAdminRepository(db database.Database) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*entity.AdminAccount, error) {
	var account entity.AdminAccount
	err := r.db.GetContext(ctx, &account, `
		SELECT id, username, password_hash, role_id, created_at
		FROM admin_accounts
		WHERE lower(username) = lower($1)
	`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AdminRepository:GetByUsername:Error:", err)
		return nil, err
	}
	return &account, nil
}

// CreateIfMissing inserts the account unless the username is taken.
func (r *AdminRepository) CreateIfMissing(ctx context.Context, username, passwordHash string, roleID int) (bool, error) {
	res, err := r.db.ExecResultContext(ctx, `
		INSERT INTO admin_accounts (username, password_hash, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, username, passwordHash, roleID)
	if err != nil {
		logger.Error("AdminRepository:CreateIfMissing:Error:", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
