package leave

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"hris-leave/internal/config"
	"hris-leave/internal/events"
	leaveerrors "hris-leave/internal/leave/errors"
	"hris-leave/internal/leavetype"
	"hris-leave/internal/messaging/kafka"
	"hris-leave/internal/shared/apperror"
	"hris-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "leave_request"

type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, year *int) ([]LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetAnnualLeaveCalculation(ctx context.Context, employeeID string, year int) (AnnualLeaveResponse, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*BalanceResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	ledger    *Ledger
	catalog   LeaveTypeCatalog
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	cfg       config.LeaveConfig
	logger    *zap.Logger
}

// NewService wires the lifecycle. outbox may be nil, in which case no
// lifecycle events are recorded.
func NewService(
	db *gorm.DB,
	repo Repository,
	ledger *Ledger,
	catalog LeaveTypeCatalog,
	directory EmployeeDirectory,
	outbox kafka.OutboxRepository,
	cfg config.LeaveConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
		catalog:   catalog,
		directory: directory,
		outbox:    outbox,
		cfg:       cfg,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	log := s.log(ctx)
	log.Debug("create leave requested",
		zap.String("actor_id", actor.ID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, employeeUUID, leaveTypeUUID, startDate, endDate, err := validateCreateRequest(actor, req)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if actorUUID != employeeUUID && !actor.CanDecide {
		log.Warn("create leave for another employee denied",
			zap.String("actor_id", actor.ID),
			zap.String("employee_id", req.EmployeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrNotOwner
	}

	days := CountDays(startDate, endDate)
	if days < 1 {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	if err := s.ensureLeaveTypeActive(ctx, req.LeaveTypeID); err != nil {
		log.Warn("create leave type check failed", zap.String("leave_type_id", req.LeaveTypeID), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.ensureEmployeeActive(ctx, req.EmployeeID); err != nil {
		log.Warn("create leave employee check failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		LeaveTypeID: leaveTypeUUID,
		Year:        startDate.Year(),
		StartDate:   startDate,
		EndDate:     endDate,
		Days:        days,
		Status:      StatusPending,
		CreatedBy:   actorUUID,
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		l.Reason = &reason
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if s.cfg.RejectOverlap {
			if err := qtx.LockEmployee(ctx, req.EmployeeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return leaveerrors.ErrEmployeeNotFound
				}
				log.Error("create leave employee lock failed", zap.Error(err))
				return err
			}
			overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate)
			if err != nil {
				log.Error("create leave overlap check failed", zap.Error(err))
				return err
			}
			if overlap {
				log.Warn("create leave overlap detected",
					zap.String("employee_id", req.EmployeeID),
					zap.String("start_date", req.StartDate),
					zap.String("end_date", req.EndDate),
				)
				return leaveerrors.ErrLeaveOverlap
			}
		}

		if err := qtx.Create(ctx, l); err != nil {
			log.Error("create leave persist failed", zap.Error(err))
			return err
		}
		return s.recordEvent(ctx, tx, events.LeaveRequested, l, actor.ID, "")
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days", days),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	if !actor.CanDecide {
		s.log(ctx).Warn("approve leave denied", zap.String("actor_id", actor.ID), zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrNotAllowedToDecide
	}
	return s.transition(ctx, actor, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, actor Actor, id, reason string) (LeaveResponse, error) {
	if !actor.CanDecide {
		s.log(ctx).Warn("reject leave denied", zap.String("actor_id", actor.ID), zap.String("leave_id", id))
		return LeaveResponse{}, leaveerrors.ErrNotAllowedToDecide
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, actor, id, StatusRejected, reason)
}

func (s *service) Cancel(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.transition(ctx, actor, id, StatusCancelled, "")
}

// transition moves a request to target, applies the matching ledger delta
// and records the lifecycle event, all in one transaction.
func (s *service) transition(ctx context.Context, actor Actor, id, target, reason string) (LeaveResponse, error) {
	log := s.log(ctx).With(
		zap.String("leave_id", id),
		zap.String("actor_id", actor.ID),
		zap.String("target_status", target),
	)
	log.Debug("transition leave status requested")

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actorUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	var result LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			log.Error("load leave failed", zap.Error(err))
			return err
		}

		if target == StatusCancelled && !actor.CanDecide && l.EmployeeID != actorUUID {
			log.Warn("cancel leave of another employee denied")
			return leaveerrors.ErrNotOwner
		}

		from := l.Status
		delta, ok := usageDelta(from, target, l.Days)
		if !ok {
			log.Warn("transition leave status invalid", zap.String("from_status", from))
			return leaveerrors.ErrInvalidStatusTransition
		}

		now := time.Now().UTC()
		l.Status = target
		switch target {
		case StatusApproved:
			l.ApproverID = &actorUUID
			l.ApprovedAt = &now
		case StatusRejected:
			l.ApproverID = &actorUUID
			l.RejectionReason = &reason
		case StatusCancelled:
			l.CancelledBy = &actorUUID
			l.CancelledAt = &now
		}

		swapped, err := qtx.CompareAndSwapStatus(ctx, l, from)
		if err != nil {
			log.Error("transition leave status persist failed", zap.Error(err))
			return err
		}
		if !swapped {
			log.Warn("transition leave status lost race", zap.String("from_status", from))
			return leaveerrors.ErrConcurrentUpdate
		}

		if delta != 0 {
			if _, err := s.ledger.WithTx(tx).ApplyUsageDelta(ctx, l.EmployeeID, l.LeaveTypeID, l.Year, delta); err != nil {
				return err
			}
		}

		if err := s.recordEvent(ctx, tx, lifecycleEventType(target), l, actor.ID, reason); err != nil {
			return err
		}

		result = *l
		return nil
	})
	if err != nil {
		if apperror.IsKind(err, apperror.CodeInvariantViolation) {
			log.Error("transition leave status aborted on invariant violation", zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	log.Info("transition leave status success", zap.Int("days", result.Days))
	return mapToResponse(result), nil
}

// usageDelta returns the ledger change for a transition and whether the
// transition is allowed at all.
func usageDelta(from, to string, days int) (int, bool) {
	switch {
	case from == StatusPending && to == StatusApproved:
		return days, true
	case from == StatusPending && to == StatusRejected:
		return 0, true
	case from == StatusPending && to == StatusCancelled:
		return 0, true
	case from == StatusApproved && to == StatusCancelled:
		return -days, true
	default:
		return 0, false
	}
}

func lifecycleEventType(status string) string {
	switch status {
	case StatusApproved:
		return events.LeaveApproved
	case StatusRejected:
		return events.LeaveRejected
	case StatusCancelled:
		return events.LeaveCancelled
	default:
		return events.LeaveRequested
	}
}

func (s *service) recordEvent(ctx context.Context, tx *gorm.DB, eventType string, l *LeaveRequest, actorID, reason string) error {
	if s.outbox == nil {
		return nil
	}

	payload := events.LeaveLifecycleEvent{
		EventType:   eventType,
		LeaveID:     l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		Year:        l.Year,
		Days:        l.Days,
		Status:      l.Status,
		ActorID:     actorID,
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		aggregateType,
		l.ID.String(),
		events.LeaveLifecycleTopic,
		eventType,
		payload,
	)
	if err == nil {
		err = s.outbox.WithTx(tx).Create(ctx, &event)
	}
	if err != nil {
		s.log(ctx).Error("record leave event failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.CodeInternalError, "record leave event failed", http.StatusInternalServerError)
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, year *int) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if year != nil && !validYear(*year) {
		return nil, leaveerrors.ErrInvalidYear
	}
	leaves, err := s.repo.FindByEmployee(ctx, employeeID, year)
	if err != nil {
		s.log(ctx).Error("list employee leaves failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// GetPending lists pending requests oldest first, leaving out requests of
// resigned employees.
func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		s.log(ctx).Error("list pending leaves failed", zap.Error(err))
		return nil, err
	}
	if len(leaves) == 0 {
		return []LeaveResponse{}, nil
	}

	seen := make(map[string]struct{}, len(leaves))
	ids := make([]string, 0, len(leaves))
	for _, l := range leaves {
		id := l.EmployeeID.String()
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	employees, err := s.directory.FindByIDs(ctx, ids)
	if err != nil {
		s.log(ctx).Error("load employees for pending leaves failed", zap.Error(err))
		return nil, err
	}
	resigned := make(map[uuid.UUID]bool, len(employees))
	for _, e := range employees {
		resigned[e.ID] = e.IsResigned()
	}

	active := make([]LeaveRequest, 0, len(leaves))
	for _, l := range leaves {
		if !resigned[l.EmployeeID] {
			active = append(active, l)
		}
	}
	return mapToListResponse(active), nil
}

func (s *service) GetAnnualLeaveCalculation(ctx context.Context, employeeID string, year int) (AnnualLeaveResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AnnualLeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !validYear(year) {
		return AnnualLeaveResponse{}, leaveerrors.ErrInvalidYear
	}

	emp, err := s.directory.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnualLeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return AnnualLeaveResponse{}, err
	}

	annual, err := s.catalog.FindByCode(ctx, leavetype.CodeAnnual)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AnnualLeaveResponse{}, leaveerrors.ErrLeaveTypeUnavailable
		}
		return AnnualLeaveResponse{}, err
	}

	resp := AnnualLeaveResponse{EmployeeID: employeeID, Year: year}
	b, err := s.ledger.GetBalance(ctx, empUUID, annual.ID, year)
	if err != nil {
		s.log(ctx).Error("load annual balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AnnualLeaveResponse{}, err
	}
	if b != nil {
		resp.TotalDays = b.TotalDays
		resp.UsedDays = b.UsedDays
	} else {
		resp.TotalDays = CalculateAnnualLeave(emp.HireDate, year)
	}
	resp.RemainingDays = resp.TotalDays - resp.UsedDays
	return resp, nil
}

// GetBalance returns nil without error when the balance has not been
// created yet.
func (s *service) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (*BalanceResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveTypeID
	}
	if !validYear(year) {
		return nil, leaveerrors.ErrInvalidYear
	}

	b, err := s.ledger.GetBalance(ctx, empUUID, typeUUID, year)
	if err != nil {
		s.log(ctx).Error("load leave balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	resp := mapToBalanceResponse(*b)
	return &resp, nil
}

func (s *service) ensureLeaveTypeActive(ctx context.Context, id string) error {
	lt, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveTypeUnavailable
		}
		return err
	}
	if !lt.IsActive {
		return leaveerrors.ErrLeaveTypeUnavailable
	}
	return nil
}

func (s *service) ensureEmployeeActive(ctx context.Context, id string) error {
	emp, err := s.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrEmployeeNotFound
		}
		return err
	}
	if emp.IsResigned() {
		return leaveerrors.ErrEmployeeResigned
	}
	return nil
}

// log prefers the request-scoped logger installed by the HTTP middleware.
func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func validateCreateRequest(actor Actor, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	actorUUID, err := uuid.Parse(actor.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return actorUUID, employeeUUID, leaveTypeUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func validYear(year int) bool {
	return year >= 1900 && year <= 9999
}
