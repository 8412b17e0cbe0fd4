package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated  = "employee_created"
	EmployeeUpdated  = "employee_updated"
	EmployeeResigned = "employee_resigned"
)

// EmployeeLifecycleEvent is published by the core HR service. HireDate uses
// the YYYY-MM-DD layout.
type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	HireDate   string    `json:"hire_date"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
