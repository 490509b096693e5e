package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Dilshan221/bakery-management/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID           uint       `gorm:"primaryKey"`
	Firstname    string     `gorm:"size:128;not null"`
	Lastname     string     `gorm:"size:128;not null"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `gorm:"column:password;not null"`
	Birthday     *time.Time
	Newsletter   bool
	Role         string         `gorm:"index;size:32"`
	IsActive     bool           `gorm:"index"`
	CreatedAt    time.Time      `gorm:"index"`
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	account.ID = dbAccount.ID
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// List implements domain.AccountRepository, newest first
func (r *AccountRepositoryImpl) List(ctx context.Context) ([]*domain.Account, error) {
	var dbAccounts []DBAccount
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbAccounts).Error; err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(dbAccounts))
	for i := range dbAccounts {
		accounts = append(accounts, r.dbToDomain(&dbAccounts[i]))
	}
	return accounts, nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	err := r.db.WithContext(ctx).
		Model(&DBAccount{ID: account.ID}).
		Select("firstname", "lastname", "email", "password", "birthday", "newsletter", "role", "is_active").
		Updates(dbAccount).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// Delete implements domain.AccountRepository
func (r *AccountRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBAccount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:           account.ID,
		Firstname:    account.Firstname,
		Lastname:     account.Lastname,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Birthday:     account.Birthday,
		Newsletter:   account.Newsletter,
		Role:         account.Role,
		IsActive:     account.IsActive,
	}
}

func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:           dbAccount.ID,
		Firstname:    dbAccount.Firstname,
		Lastname:     dbAccount.Lastname,
		Email:        dbAccount.Email,
		PasswordHash: dbAccount.PasswordHash,
		Birthday:     dbAccount.Birthday,
		Newsletter:   dbAccount.Newsletter,
		Role:         dbAccount.Role,
		IsActive:     dbAccount.IsActive,
		CreatedAt:    dbAccount.CreatedAt,
		UpdatedAt:    dbAccount.UpdatedAt,
	}
}
