package leavetype

import (
	"time"

	"github.com/google/uuid"
)

const (
	CodeAnnual = "ANNUAL"
	CodeSick   = "SICK"
	CodeUnpaid = "UNPAID"
)

// LeaveType is reference data; rows never change while a request is open.
type LeaveType struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code     string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_types_code"`
	Name     string    `gorm:"type:varchar(100);not null"`
	IsPaid   bool      `gorm:"not null"`
	IsActive bool      `gorm:"not null;index:idx_leave_types_active"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}

func (t LeaveType) IsAnnual() bool {
	return t.Code == CodeAnnual
}

// DefaultCatalog is seeded at startup when a code is missing.
func DefaultCatalog() []LeaveType {
	return []LeaveType{
		{Code: CodeAnnual, Name: "Annual Leave", IsPaid: true, IsActive: true},
		{Code: CodeSick, Name: "Sick Leave", IsPaid: true, IsActive: true},
		{Code: CodeUnpaid, Name: "Unpaid Leave", IsPaid: false, IsActive: true},
	}
}
