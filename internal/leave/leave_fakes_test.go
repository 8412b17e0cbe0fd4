package leave_test

import (
	"context"
	"time"

	"hris-leave/internal/employee"
	"hris-leave/internal/leave"
	"hris-leave/internal/leavetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCatalog struct {
	types map[uuid.UUID]leavetype.LeaveType
	err   error
}

func newFakeCatalog(types ...leavetype.LeaveType) *fakeCatalog {
	c := &fakeCatalog{types: map[uuid.UUID]leavetype.LeaveType{}}
	for _, t := range types {
		c.types[t.ID] = t
	}
	return c
}

func (f *fakeCatalog) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.err != nil {
		return nil, f.err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	t, ok := f.types[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeCatalog) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.types {
		if t.Code == code {
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeDirectory struct {
	employees map[uuid.UUID]employee.Employee
	err       error
}

func newFakeDirectory(employees ...employee.Employee) *fakeDirectory {
	d := &fakeDirectory{employees: map[uuid.UUID]employee.Employee{}}
	for _, e := range employees {
		d.employees[e.ID] = e
	}
	return d
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	e, ok := f.employees[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeDirectory) FindByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if e, err := f.FindByID(ctx, id); err == nil {
			out = append(out, *e)
		}
	}
	return out, nil
}

type fakeLeaveRepository struct {
	createFn               func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findByIDForUpdateFn    func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	compareAndSwapFn       func(ctx context.Context, l *leave.LeaveRequest, fromStatus string) (bool, error)
	findByEmployeeFn       func(ctx context.Context, employeeID string, year *int) ([]leave.LeaveRequest, error)
	findByStatusFn         func(ctx context.Context, status string) ([]leave.LeaveRequest, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	lockEmployeeFn         func(ctx context.Context, employeeID string) error
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository {
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) CompareAndSwapStatus(ctx context.Context, l *leave.LeaveRequest, fromStatus string) (bool, error) {
	if f.compareAndSwapFn != nil {
		return f.compareAndSwapFn(ctx, l, fromStatus)
	}
	return true, nil
}

func (f *fakeLeaveRepository) FindByEmployee(ctx context.Context, employeeID string, year *int) ([]leave.LeaveRequest, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID, year)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByStatus(ctx context.Context, status string) ([]leave.LeaveRequest, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) LockEmployee(ctx context.Context, employeeID string) error {
	if f.lockEmployeeFn != nil {
		return f.lockEmployeeFn(ctx, employeeID)
	}
	return nil
}

type fakeBalanceRepository struct {
	findByKeyFn          func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*leave.LeaveBalance, error)
	findByKeyForUpdateFn func(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*leave.LeaveBalance, error)
	createFn             func(ctx context.Context, b *leave.LeaveBalance) error
	updateUsedDaysFn     func(ctx context.Context, id uuid.UUID, expectedVersion, usedDays int) (bool, error)
}

func (f *fakeBalanceRepository) WithTx(tx *gorm.DB) leave.BalanceRepository {
	return f
}

func (f *fakeBalanceRepository) FindByKey(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*leave.LeaveBalance, error) {
	if f.findByKeyFn != nil {
		return f.findByKeyFn(ctx, employeeID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByKeyForUpdate(ctx context.Context, employeeID, leaveTypeID uuid.UUID, year int) (*leave.LeaveBalance, error) {
	if f.findByKeyForUpdateFn != nil {
		return f.findByKeyForUpdateFn(ctx, employeeID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leave.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) UpdateUsedDays(ctx context.Context, id uuid.UUID, expectedVersion, usedDays int) (bool, error) {
	if f.updateUsedDaysFn != nil {
		return f.updateUsedDaysFn(ctx, id, expectedVersion, usedDays)
	}
	return true, nil
}

func annualType() leavetype.LeaveType {
	return leavetype.LeaveType{ID: uuid.New(), Code: leavetype.CodeAnnual, Name: "Annual Leave", IsPaid: true, IsActive: true}
}

func sickType() leavetype.LeaveType {
	return leavetype.LeaveType{ID: uuid.New(), Code: leavetype.CodeSick, Name: "Sick Leave", IsPaid: true, IsActive: true}
}

func activeEmployee(hireDate string) employee.Employee {
	hire, _ := time.Parse("2006-01-02", hireDate)
	return employee.Employee{
		ID:       uuid.New(),
		FullName: "Siti Rahma",
		HireDate: hire,
		Status:   employee.StatusActive,
		EventAt:  time.Now().UTC(),
	}
}
