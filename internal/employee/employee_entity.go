package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusResigned = "RESIGNED"
)

// Employee is the local, read-only projection of the HR directory. Rows are
// written only by the lifecycle consumer; EventAt orders competing updates.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName   string    `gorm:"type:varchar(150);not null"`
	HireDate   time.Time `gorm:"type:date;not null"`
	Status     string    `gorm:"type:varchar(20);not null;index:idx_employees_status"`
	ResignedAt *time.Time
	EventAt    time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) IsResigned() bool {
	return e.Status == StatusResigned
}
