package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Dilshan221/bakery-management/domain"
)

// AttendanceRepositoryImpl implements domain.AttendanceRepository using GORM
type AttendanceRepositoryImpl struct {
	db *gorm.DB
}

// DBAttendance represents the database model for Attendance. The composite
// unique index enforces one row per employee per calendar day.
type DBAttendance struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"uniqueIndex:idx_attendance_employee_day;not null"`
	Date       time.Time `gorm:"uniqueIndex:idx_attendance_employee_day;not null"`
	CheckIn    string    `gorm:"size:16"`
	CheckOut   string    `gorm:"size:16"`
	Status     string    `gorm:"size:16;index"`
	Note       string    `gorm:"size:512"`
	Employee   *DBEmployee `gorm:"foreignKey:EmployeeID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBAttendance) TableName() string {
	return "attendances"
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) domain.AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

// Create implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) Create(ctx context.Context, att *domain.Attendance) error {
	dbAtt := r.domainToDB(att)
	if err := r.db.WithContext(ctx).Create(dbAtt).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrAttendanceExists
		}
		return err
	}
	att.ID = dbAtt.ID
	att.CreatedAt = dbAtt.CreatedAt
	att.UpdatedAt = dbAtt.UpdatedAt
	return nil
}

// List implements domain.AttendanceRepository, newest day first with the
// employee summary joined
func (r *AttendanceRepositoryImpl) List(ctx context.Context) ([]*domain.Attendance, error) {
	var rows []DBAttendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.rowsToDomain(rows), nil
}

// ListByEmployee implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID uint) ([]*domain.Attendance, error) {
	var rows []DBAttendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.rowsToDomain(rows), nil
}

// FindByID implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Attendance, error) {
	var row DBAttendance
	err := r.db.WithContext(ctx).Preload("Employee").Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// FindByEmployeeAndDate implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) FindByEmployeeAndDate(ctx context.Context, employeeID uint, day time.Time) (*domain.Attendance, error) {
	var row DBAttendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, day).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// Update implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) Update(ctx context.Context, att *domain.Attendance) error {
	res := r.db.WithContext(ctx).
		Model(&DBAttendance{ID: att.ID}).
		Select("employee_id", "date", "check_in", "check_out", "status", "note").
		Updates(r.domainToDB(att))
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return domain.ErrAttendanceExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBAttendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAttendanceNotFound
	}
	return nil
}

func (r *AttendanceRepositoryImpl) rowsToDomain(rows []DBAttendance) []*domain.Attendance {
	out := make([]*domain.Attendance, 0, len(rows))
	for i := range rows {
		out = append(out, r.dbToDomain(&rows[i]))
	}
	return out
}

func (r *AttendanceRepositoryImpl) domainToDB(att *domain.Attendance) *DBAttendance {
	return &DBAttendance{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date,
		CheckIn:    att.CheckIn,
		CheckOut:   att.CheckOut,
		Status:     att.Status,
		Note:       att.Note,
	}
}

func (r *AttendanceRepositoryImpl) dbToDomain(row *DBAttendance) *domain.Attendance {
	att := &domain.Attendance{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		Date:       row.Date,
		CheckIn:    row.CheckIn,
		CheckOut:   row.CheckOut,
		Status:     row.Status,
		Note:       row.Note,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.Employee != nil {
		att.Employee = &domain.EmployeeSummary{
			ID:         row.Employee.ID,
			Name:       row.Employee.Name,
			Email:      row.Employee.Email,
			Department: row.Employee.Department,
			Position:   row.Employee.Position,
		}
	}
	return att
}
