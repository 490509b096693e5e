package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Dilshan221/bakery-management/domain"
)

// EmployeeRepositoryImpl implements domain.EmployeeRepository using GORM
type EmployeeRepositoryImpl struct {
	db *gorm.DB
}

// DBBankDetails holds the flattened bank payout columns
type DBBankDetails struct {
	AccountName        string `gorm:"size:255"`
	BankName           string `gorm:"size:255"`
	Branch             string `gorm:"size:255"`
	AccountNumberLast4 string `gorm:"size:4"`
	Swift              string `gorm:"size:16"`
}

// DBCardDetails holds the flattened card payout columns
type DBCardDetails struct {
	Brand       string `gorm:"size:32"`
	Last4       string `gorm:"size:4"`
	ExpMonth    int
	ExpYear     int
	Token       string `gorm:"size:255"`
	BillingName string `gorm:"size:255"`
}

// DBPayout holds the flattened payout columns
type DBPayout struct {
	MethodPreferred string        `gorm:"size:32"`
	Bank            DBBankDetails `gorm:"embedded;embeddedPrefix:bank_"`
	Card            DBCardDetails `gorm:"embedded;embeddedPrefix:card_"`
	ConsentSaveCard bool
}

// DBEmployee represents the database model for Employee (with GORM tags).
// The otp_* columns hold the embedded challenge; they are mapped into the
// domain entity only by FindByIDWithChallenge.
type DBEmployee struct {
	ID            uint     `gorm:"primaryKey"`
	Name          string   `gorm:"size:255;not null"`
	Email         string   `gorm:"uniqueIndex;size:255;not null"`
	Phone         string   `gorm:"index;size:32"`
	PhoneVerified bool     `gorm:"index"`
	Address       string   `gorm:"size:512"`
	Department    string   `gorm:"index;size:128"`
	Position      string   `gorm:"size:128"`
	Salary        float64  `gorm:"check:salary >= 0"`
	Payout        DBPayout `gorm:"embedded;embeddedPrefix:payout_"`

	OTPCode      string     `gorm:"column:otp_code;size:8"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	OTPAttempts  int        `gorm:"column:otp_attempts"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBEmployee) TableName() string {
	return "employees"
}

// challengeColumns are never written by plain record updates; only the
// dedicated challenge mutations touch them.
var challengeColumns = []string{"otp_code", "otp_expires_at", "otp_attempts"}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domain.EmployeeRepository {
	return &EmployeeRepositoryImpl{db: db}
}

// Create implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *domain.Employee) error {
	dbEmp := r.domainToDB(employee)
	if err := r.db.WithContext(ctx).Create(dbEmp).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	employee.ID = dbEmp.ID
	employee.CreatedAt = dbEmp.CreatedAt
	employee.UpdatedAt = dbEmp.UpdatedAt
	return nil
}

// List implements domain.EmployeeRepository, newest first
func (r *EmployeeRepositoryImpl) List(ctx context.Context) ([]*domain.Employee, error) {
	var dbEmps []DBEmployee
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbEmps).Error; err != nil {
		return nil, err
	}

	employees := make([]*domain.Employee, 0, len(dbEmps))
	for i := range dbEmps {
		employees = append(employees, r.dbToDomain(&dbEmps[i], false))
	}
	return employees, nil
}

// FindByID implements domain.EmployeeRepository; the challenge is omitted
func (r *EmployeeRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Employee, error) {
	dbEmp, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.dbToDomain(dbEmp, false), nil
}

// FindByIDWithChallenge implements domain.EmployeeRepository; the stored
// challenge is explicitly requested and mapped
func (r *EmployeeRepositoryImpl) FindByIDWithChallenge(ctx context.Context, id uint) (*domain.Employee, error) {
	dbEmp, err := r.findRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.dbToDomain(dbEmp, true), nil
}

// FindByEmail implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var dbEmp DBEmployee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbEmp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbEmp, false), nil
}

// Update implements domain.EmployeeRepository. Challenge columns are left
// untouched; clearing them on a phone change goes through ClearChallenge.
func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employee *domain.Employee) error {
	dbEmp := r.domainToDB(employee)
	err := r.db.WithContext(ctx).
		Model(&DBEmployee{ID: employee.ID}).
		Select("*").
		Omit(append([]string{"id", "created_at"}, challengeColumns...)...).
		Updates(dbEmp).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// Delete implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBEmployee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// AdoptPhone implements domain.EmployeeRepository; adopting a phone always
// resets the verified flag
func (r *EmployeeRepositoryImpl) AdoptPhone(ctx context.Context, id uint, phone string) error {
	res := r.db.WithContext(ctx).Model(&DBEmployee{}).Where("id = ?", id).Updates(map[string]interface{}{
		"phone":          phone,
		"phone_verified": false,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// StoreChallenge implements domain.EmployeeRepository; any prior challenge
// is replaced in a single update
func (r *EmployeeRepositoryImpl) StoreChallenge(ctx context.Context, id uint, ch domain.OTPChallenge) error {
	expiresAt := ch.ExpiresAt
	res := r.db.WithContext(ctx).Model(&DBEmployee{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_code":       ch.Code,
		"otp_expires_at": &expiresAt,
		"otp_attempts":   ch.Attempts,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// BumpChallengeAttempts implements domain.EmployeeRepository as a single
// conditional update: the swap succeeds only if the stored code and current
// attempt count are unchanged, so concurrent attempts never double-count.
func (r *EmployeeRepositoryImpl) BumpChallengeAttempts(ctx context.Context, id uint, code string, fromAttempts int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBEmployee{}).
		Where("id = ? AND otp_code = ? AND otp_attempts = ?", id, code, fromAttempts).
		Update("otp_attempts", fromAttempts+1)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClearChallenge implements domain.EmployeeRepository
func (r *EmployeeRepositoryImpl) ClearChallenge(ctx context.Context, id uint, markVerified bool) error {
	updates := map[string]interface{}{
		"otp_code":       "",
		"otp_expires_at": nil,
		"otp_attempts":   0,
	}
	if markVerified {
		updates["phone_verified"] = true
	}
	return r.db.WithContext(ctx).Model(&DBEmployee{}).Where("id = ?", id).Updates(updates).Error
}

func (r *EmployeeRepositoryImpl) findRow(ctx context.Context, id uint) (*DBEmployee, error) {
	var dbEmp DBEmployee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbEmp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &dbEmp, nil
}

// domainToDB converts a domain employee to a database employee
func (r *EmployeeRepositoryImpl) domainToDB(emp *domain.Employee) *DBEmployee {
	return &DBEmployee{
		ID:            emp.ID,
		Name:          emp.Name,
		Email:         emp.Email,
		Phone:         emp.Phone,
		PhoneVerified: emp.PhoneVerified,
		Address:       emp.Address,
		Department:    emp.Department,
		Position:      emp.Position,
		Salary:        emp.Salary,
		Payout: DBPayout{
			MethodPreferred: emp.Payout.MethodPreferred,
			Bank: DBBankDetails{
				AccountName:        emp.Payout.Bank.AccountName,
				BankName:           emp.Payout.Bank.BankName,
				Branch:             emp.Payout.Bank.Branch,
				AccountNumberLast4: emp.Payout.Bank.AccountNumberLast4,
				Swift:              emp.Payout.Bank.Swift,
			},
			Card: DBCardDetails{
				Brand:       emp.Payout.Card.Brand,
				Last4:       emp.Payout.Card.Last4,
				ExpMonth:    emp.Payout.Card.ExpMonth,
				ExpYear:     emp.Payout.Card.ExpYear,
				Token:       emp.Payout.Card.Token,
				BillingName: emp.Payout.Card.BillingName,
			},
			ConsentSaveCard: emp.Payout.ConsentSaveCard,
		},
		CreatedAt: emp.CreatedAt,
		UpdatedAt: emp.UpdatedAt,
	}
}

// dbToDomain converts a database employee to a domain employee. The
// challenge is mapped only when explicitly requested.
func (r *EmployeeRepositoryImpl) dbToDomain(dbEmp *DBEmployee, withChallenge bool) *domain.Employee {
	emp := &domain.Employee{
		ID:            dbEmp.ID,
		Name:          dbEmp.Name,
		Email:         dbEmp.Email,
		Phone:         dbEmp.Phone,
		PhoneVerified: dbEmp.PhoneVerified,
		Address:       dbEmp.Address,
		Department:    dbEmp.Department,
		Position:      dbEmp.Position,
		Salary:        dbEmp.Salary,
		Payout: domain.Payout{
			MethodPreferred: dbEmp.Payout.MethodPreferred,
			Bank: domain.BankDetails{
				AccountName:        dbEmp.Payout.Bank.AccountName,
				BankName:           dbEmp.Payout.Bank.BankName,
				Branch:             dbEmp.Payout.Bank.Branch,
				AccountNumberLast4: dbEmp.Payout.Bank.AccountNumberLast4,
				Swift:              dbEmp.Payout.Bank.Swift,
			},
			Card: domain.CardDetails{
				Brand:       dbEmp.Payout.Card.Brand,
				Last4:       dbEmp.Payout.Card.Last4,
				ExpMonth:    dbEmp.Payout.Card.ExpMonth,
				ExpYear:     dbEmp.Payout.Card.ExpYear,
				Token:       dbEmp.Payout.Card.Token,
				BillingName: dbEmp.Payout.Card.BillingName,
			},
			ConsentSaveCard: dbEmp.Payout.ConsentSaveCard,
		},
		CreatedAt: dbEmp.CreatedAt,
		UpdatedAt: dbEmp.UpdatedAt,
	}

	if withChallenge && dbEmp.OTPCode != "" && dbEmp.OTPExpiresAt != nil {
		emp.Challenge = &domain.OTPChallenge{
			Code:      dbEmp.OTPCode,
			ExpiresAt: *dbEmp.OTPExpiresAt,
			Attempts:  dbEmp.OTPAttempts,
		}
	}

	return emp
}
