package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *db_models.Account) (uuid.UUID, error)
	GetByID(ctx context.Context, id string) (*db_models.Account, error)
	GetByEmail(ctx context.Context, email string) (*db_models.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetLevel(ctx context.Context, id uuid.UUID, level int) error
	ListAll(ctx context.Context, offset int, limit int) ([]db_models.Account, int64, error)
	ListCreditHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.CreditTransaction, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *db_models.Account) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return uuid.Nil, err
	}
	return account.ID, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) SetLevel(ctx context.Context, id uuid.UUID, level int) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Update("level", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) ListAll(ctx context.Context, offset int, limit int) ([]db_models.Account, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []db_models.Account
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *accountRepository) ListCreditHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.CreditTransaction, error) {
	var entries []db_models.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
