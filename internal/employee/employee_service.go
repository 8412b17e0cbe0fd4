package employee

import (
	"context"
	"strings"
	"time"

	employeeerrors "hris-leave/internal/employee/errors"
	"hris-leave/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const hireDateLayout = "2006-01-02"

// Service maintains the directory projection the leave engine reads from.
type Service interface {
	ApplyLifecycleEvent(ctx context.Context, event events.EmployeeLifecycleEvent) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

// ApplyLifecycleEvent upserts the employee carried by event. It returns false
// when a newer event has already been applied.
func (s *service) ApplyLifecycleEvent(ctx context.Context, event events.EmployeeLifecycleEvent) (bool, error) {
	e, err := employeeFromEvent(event)
	if err != nil {
		s.logger.Warn("invalid employee lifecycle event",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return false, err
	}

	applied, err := s.repo.Upsert(ctx, e)
	if err != nil {
		s.logger.Error("upsert employee failed", zap.String("employee_id", event.EmployeeID), zap.Error(err))
		return false, err
	}

	if applied {
		s.logger.Info("employee directory updated",
			zap.String("employee_id", event.EmployeeID),
			zap.String("event_type", event.EventType),
			zap.String("status", e.Status),
		)
	} else {
		s.logger.Debug("stale employee event ignored", zap.String("employee_id", event.EmployeeID))
	}
	return applied, nil
}

func employeeFromEvent(event events.EmployeeLifecycleEvent) (*Employee, error) {
	id, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	if strings.TrimSpace(event.FullName) == "" || event.HireDate == "" {
		return nil, employeeerrors.ErrMissingRequiredFields
	}
	hireDate, err := time.Parse(hireDateLayout, event.HireDate)
	if err != nil {
		return nil, employeeerrors.ErrInvalidHireDate
	}

	status := strings.ToUpper(strings.TrimSpace(event.Status))
	if event.EventType == events.EmployeeResigned {
		status = StatusResigned
	}
	if status == "" {
		status = StatusActive
	}
	if status != StatusActive && status != StatusResigned {
		return nil, employeeerrors.ErrInvalidEmployeeStatus
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	e := &Employee{
		ID:       id,
		FullName: strings.TrimSpace(event.FullName),
		HireDate: hireDate.UTC(),
		Status:   status,
		EventAt:  occurredAt,
	}
	if status == StatusResigned {
		resignedAt := occurredAt
		e.ResignedAt = &resignedAt
	}
	return e, nil
}
