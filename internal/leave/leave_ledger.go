package leave

import (
	"context"
	"errors"

	"hris-leave/internal/employee"
	leaveerrors "hris-leave/internal/leave/errors"
	"hris-leave/internal/leavetype"
	"hris-leave/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveTypeCatalog is the read side of the leave type catalog.
type LeaveTypeCatalog interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
	FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error)
}

// EmployeeDirectory is the read side of the employee directory projection.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	FindByIDs(ctx context.Context, ids []string) ([]employee.Employee, error)
}

// Ledger is the only writer of leave balances.
type Ledger struct {
	balances  BalanceRepository
	catalog   LeaveTypeCatalog
	directory EmployeeDirectory
	logger    *zap.Logger
}

func NewLedger(balances BalanceRepository, catalog LeaveTypeCatalog, directory EmployeeDirectory, logger ...*zap.Logger) *Ledger {
	l := zap.L().Named("leave.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.ledger")
	}
	return &Ledger{balances: balances, catalog: catalog, directory: directory, logger: l}
}

// WithTx returns a ledger whose balance reads and writes join tx.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{
		balances:  l.balances.WithTx(tx),
		catalog:   l.catalog,
		directory: l.directory,
		logger:    l.logger,
	}
}

// GetBalance returns nil without error when no balance exists yet.
func (l *Ledger) GetBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*LeaveBalance, error) {
	b, err := l.balances.FindByKey(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// ApplyUsageDelta adds delta to the used days of the balance, creating the
// balance on first use. It must run inside the caller's transaction.
func (l *Ledger) ApplyUsageDelta(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year, delta int) (*LeaveBalance, error) {
	fields := []zap.Field{
		zap.String("employee_id", employeeID.String()),
		zap.String("leave_type_id", leaveTypeID.String()),
		zap.Int("year", year),
		zap.Int("delta", delta),
	}

	b, err := l.balances.FindByKeyForUpdate(ctx, employeeID, leaveTypeID, year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.logger.Error("load leave balance failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	if b == nil {
		return l.createBalance(ctx, employeeID, leaveTypeID, year, delta, fields)
	}

	newUsed := b.UsedDays + delta
	if newUsed < 0 {
		l.logger.Error("leave balance invariant violated",
			append(fields, zap.Int("used_days", b.UsedDays), zap.Int("would_be", newUsed))...)
		return nil, leaveerrors.ErrNegativeUsedDays
	}

	ok, err := l.balances.UpdateUsedDays(ctx, b.ID, b.Version, newUsed)
	if err != nil {
		l.logger.Error("update leave balance failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	if !ok {
		l.logger.Warn("leave balance version moved", append(fields, zap.Int("version", b.Version))...)
		return nil, leaveerrors.ErrBalanceConflict
	}

	b.UsedDays = newUsed
	b.Version++
	l.logger.Debug("leave balance updated", append(fields, zap.Int("used_days", b.UsedDays))...)
	return b, nil
}

func (l *Ledger) createBalance(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year, delta int, fields []zap.Field) (*LeaveBalance, error) {
	if delta < 0 {
		// A release against a balance that never existed means the approval
		// that should have created it was lost.
		l.logger.Error("negative delta against missing leave balance", fields...)
	}

	total, err := l.Entitlement(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}

	b := &LeaveBalance{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        year,
		TotalDays:   total,
		UsedDays:    max(0, delta),
	}
	if err := l.balances.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			l.logger.Warn("leave balance created concurrently", fields...)
			return nil, apperror.WithCause(leaveerrors.ErrBalanceConflict, err)
		}
		l.logger.Error("create leave balance failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	l.logger.Info("leave balance created", append(fields, zap.Int("total_days", total))...)
	return b, nil
}

// Entitlement is the total a new balance is seeded with: the annual formula
// for the annual type, zero for every other type.
func (l *Ledger) Entitlement(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (int, error) {
	lt, err := l.catalog.FindByID(ctx, leaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, leaveerrors.ErrLeaveTypeUnavailable
		}
		return 0, err
	}
	if !lt.IsAnnual() {
		return 0, nil
	}

	emp, err := l.directory.FindByID(ctx, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, leaveerrors.ErrEmployeeNotFound
		}
		return 0, err
	}
	return CalculateAnnualLeave(emp.HireDate, year), nil
}
