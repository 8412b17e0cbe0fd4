package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest rows are never deleted. Days and Year are fixed at creation;
// Status moves only through CompareAndSwapStatus.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_year,priority:1"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	Year        int       `gorm:"not null;index:idx_leave_requests_employee_year,priority:2"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Days      int       `gorm:"not null"`
	Reason    *string   `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`
	Version         int        `gorm:"not null"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string    `gorm:"type:text"`
	CancelledBy     *uuid.UUID `gorm:"type:uuid"`
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveBalance is the ledger row for one (employee, leave type, year).
// Remaining days are always derived.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key,priority:1"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key,priority:2"`
	Year        int       `gorm:"not null;uniqueIndex:uq_leave_balances_key,priority:3"`
	TotalDays   int       `gorm:"not null"`
	UsedDays    int       `gorm:"not null"`
	Version     int       `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func (b LeaveBalance) RemainingDays() int {
	return b.TotalDays - b.UsedDays
}
