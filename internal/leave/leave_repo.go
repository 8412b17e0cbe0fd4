package leave

import (
	"context"
	"time"

	"hris-leave/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	CompareAndSwapStatus(ctx context.Context, l *LeaveRequest, fromStatus string) (bool, error)
	FindByEmployee(ctx context.Context, employeeID string, year *int) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	LockEmployee(ctx context.Context, employeeID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByIDForUpdate takes a row lock where the dialect supports one.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CompareAndSwapStatus persists the transition carried by l only if the
// stored row still has fromStatus and l.Version. On success l.Version is
// advanced to match the stored row.
func (r *repository) CompareAndSwapStatus(ctx context.Context, l *LeaveRequest, fromStatus string) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ? AND version = ?", l.ID, fromStatus, l.Version).
		Updates(map[string]any{
			"status":           l.Status,
			"approver_id":      l.ApproverID,
			"approved_at":      l.ApprovedAt,
			"rejection_reason": l.RejectionReason,
			"cancelled_by":     l.CancelledBy,
			"cancelled_at":     l.CancelledAt,
			"version":          l.Version + 1,
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	l.Version++
	l.UpdatedAt = now
	return true, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, year *int) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID)
	if year != nil {
		db = db.Where("year = ?", *year)
	}
	err := db.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

// HasOverlappingPeriod reports whether a pending or approved request of the
// employee intersects [startDate, endDate].
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

// LockEmployee row-locks the employee's directory entry until the
// transaction ends, so overlap checks for one employee run one at a time.
func (r *repository) LockEmployee(ctx context.Context, employeeID string) error {
	var e employee.Employee
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&e, "id = ?", employeeID).Error
}

type BalanceRepository interface {
	WithTx(tx *gorm.DB) BalanceRepository
	FindByKey(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error)
	FindByKeyForUpdate(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error)
	Create(ctx context.Context, b *LeaveBalance) error
	UpdateUsedDays(ctx context.Context, id uuid.UUID, expectedVersion, usedDays int) (bool, error)
}

type balanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) WithTx(tx *gorm.DB) BalanceRepository {
	return &balanceRepository{db: tx}
}

func (r *balanceRepository) FindByKey(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	return r.findByKey(r.db.WithContext(ctx), employeeID, leaveTypeID, year)
}

func (r *balanceRepository) FindByKeyForUpdate(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	return r.findByKey(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		employeeID, leaveTypeID, year,
	)
}

func (r *balanceRepository) findByKey(db *gorm.DB, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := db.
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *balanceRepository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// UpdateUsedDays writes usedDays if the row is still at expectedVersion and
// bumps the version. It reports false when another writer got there first.
func (r *balanceRepository) UpdateUsedDays(ctx context.Context, id uuid.UUID, expectedVersion, usedDays int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"used_days":  usedDays,
			"version":    expectedVersion + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
