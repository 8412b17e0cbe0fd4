package leave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-leave/internal/config"
	"hris-leave/internal/employee"
	"hris-leave/internal/events"
	"hris-leave/internal/leave"
	leaveerrors "hris-leave/internal/leave/errors"
	"hris-leave/internal/leavetype"
	"hris-leave/internal/messaging/kafka"
	kafkamock "hris-leave/internal/messaging/kafka/mock"
	"hris-leave/internal/shared/apperror"
	"hris-leave/internal/shared/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	t         *testing.T
	mock      sqlmock.Sqlmock
	repo      *fakeLeaveRepository
	balances  *fakeBalanceRepository
	catalog   *fakeCatalog
	directory *fakeDirectory
	outbox    *kafkamock.MockOutboxRepository
	annual    leavetype.LeaveType
	emp       employee.Employee
	svc       leave.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, _, mock := dbtest.OpenSQLMock(t)
	ctrl := gomock.NewController(t)

	d := &serviceDeps{
		t:        t,
		mock:     mock,
		repo:     &fakeLeaveRepository{},
		balances: &fakeBalanceRepository{},
		outbox:   kafkamock.NewMockOutboxRepository(ctrl),
		annual:   annualType(),
		emp:      activeEmployee("2020-01-01"),
	}
	d.catalog = newFakeCatalog(d.annual)
	d.directory = newFakeDirectory(d.emp)

	ledger := leave.NewLedger(d.balances, d.catalog, d.directory, zap.NewNop())
	d.svc = leave.NewService(db, d.repo, ledger, d.catalog, d.directory, d.outbox, config.LeaveConfig{RejectOverlap: true}, zap.NewNop())

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return d
}

// expectEvent registers one outbox write and returns the captured event.
func (d *serviceDeps) expectEvent(eventType string) *kafka.OutboxEvent {
	captured := &kafka.OutboxEvent{}
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e *kafka.OutboxEvent) error {
		assert.Equal(d.t, eventType, e.EventType)
		assert.Equal(d.t, events.LeaveLifecycleTopic, e.Topic)
		*captured = *e
		return nil
	})
	return captured
}

func (d *serviceDeps) pendingLeave(days int) *leave.LeaveRequest {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	return &leave.LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  d.emp.ID,
		LeaveTypeID: d.annual.ID,
		Year:        2024,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days-1),
		Days:        days,
		Status:      leave.StatusPending,
		CreatedBy:   d.emp.ID,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	validReq := func(d *serviceDeps) leave.CreateLeaveRequest {
		return leave.CreateLeaveRequest{
			EmployeeID:  d.emp.ID.String(),
			LeaveTypeID: d.annual.ID.String(),
			StartDate:   "2024-06-10",
			EndDate:     "2024-06-12",
			Reason:      "  family trip  ",
		}
	}

	t.Run("success", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)

		var created *leave.LeaveRequest
		d.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			created = l
			return nil
		}
		event := d.expectEvent(events.LeaveRequested)

		resp, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, validReq(d))

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.Days)
		assert.Equal(t, 2024, resp.Year)
		assert.Equal(t, "2024-06-10", resp.StartDate)
		require.NotNil(t, resp.Reason)
		assert.Equal(t, "family trip", *resp.Reason)
		assert.Equal(t, d.emp.ID.String(), resp.CreatedBy)
		assert.Equal(t, created.ID.String(), event.AggregateID)
	})

	t.Run("decider may file for another employee", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		d.expectEvent(events.LeaveRequested)

		hr := uuid.New().String()
		resp, err := d.svc.Create(ctx, leave.Actor{ID: hr, CanDecide: true}, validReq(d))

		require.NoError(t, err)
		assert.Equal(t, hr, resp.CreatedBy)
		assert.Equal(t, d.emp.ID.String(), resp.EmployeeID)
	})

	t.Run("request spanning year end belongs to the start year", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		d.expectEvent(events.LeaveRequested)

		req := validReq(d)
		req.StartDate, req.EndDate = "2024-12-30", "2025-01-02"
		resp, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, req)

		require.NoError(t, err)
		assert.Equal(t, 2024, resp.Year)
		assert.Equal(t, 4, resp.Days)
	})

	t.Run("overlap is rejected", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		d.repo.hasOverlappingPeriodFn = func(ctx context.Context, employeeID string, s, e time.Time) (bool, error) {
			return true, nil
		}
		d.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			t.Fatal("create must not be called")
			return nil
		}

		_, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, validReq(d))
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("employee is locked before the overlap check", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		d.expectEvent(events.LeaveRequested)

		var calls []string
		d.repo.lockEmployeeFn = func(ctx context.Context, employeeID string) error {
			assert.Equal(t, d.emp.ID.String(), employeeID)
			calls = append(calls, "lock")
			return nil
		}
		d.repo.hasOverlappingPeriodFn = func(ctx context.Context, employeeID string, s, e time.Time) (bool, error) {
			calls = append(calls, "overlap")
			return false, nil
		}
		d.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			calls = append(calls, "create")
			return nil
		}

		_, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, validReq(d))

		require.NoError(t, err)
		assert.Equal(t, []string{"lock", "overlap", "create"}, calls)
	})

	t.Run("employee gone before lock", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		d.repo.lockEmployeeFn = func(ctx context.Context, employeeID string) error {
			return gorm.ErrRecordNotFound
		}

		_, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, validReq(d))
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		diskFull := errors.New("disk full")
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(diskFull)

		_, err := d.svc.Create(ctx, leave.Actor{ID: d.emp.ID.String()}, validReq(d))
		assert.ErrorIs(t, err, diskFull)
		assert.True(t, apperror.IsKind(err, apperror.CodeInternalError))
	})

	failures := []struct {
		name    string
		mutate  func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest)
		wantErr error
	}{
		{
			name:    "invalid actor",
			mutate:  func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) { actor.ID = "nope" },
			wantErr: leaveerrors.ErrInvalidActorID,
		},
		{
			name:    "invalid employee id",
			mutate:  func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) { req.EmployeeID = "x" },
			wantErr: leaveerrors.ErrInvalidEmployeeID,
		},
		{
			name:    "bad date format",
			mutate:  func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) { req.StartDate = "10/06/2024" },
			wantErr: leaveerrors.ErrInvalidDateFormat,
		},
		{
			name:    "end before start",
			mutate:  func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) { req.EndDate = "2024-06-09" },
			wantErr: leaveerrors.ErrInvalidDateRange,
		},
		{
			name: "other employee without decide capability",
			mutate: func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) {
				actor.ID = uuid.New().String()
			},
			wantErr: leaveerrors.ErrNotOwner,
		},
		{
			name: "unknown leave type",
			mutate: func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) {
				req.LeaveTypeID = uuid.New().String()
			},
			wantErr: leaveerrors.ErrLeaveTypeUnavailable,
		},
		{
			name: "inactive leave type",
			mutate: func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) {
				lt := d.catalog.types[d.annual.ID]
				lt.IsActive = false
				d.catalog.types[d.annual.ID] = lt
			},
			wantErr: leaveerrors.ErrLeaveTypeUnavailable,
		},
		{
			name: "unknown employee",
			mutate: func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) {
				id := uuid.New().String()
				actor.ID, req.EmployeeID = id, id
			},
			wantErr: leaveerrors.ErrEmployeeNotFound,
		},
		{
			name: "resigned employee",
			mutate: func(d *serviceDeps, actor *leave.Actor, req *leave.CreateLeaveRequest) {
				e := d.directory.employees[d.emp.ID]
				e.Status = employee.StatusResigned
				d.directory.employees[d.emp.ID] = e
			},
			wantErr: leaveerrors.ErrEmployeeResigned,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			d := setupServiceTest(t)
			actor := leave.Actor{ID: d.emp.ID.String()}
			req := validReq(d)
			tt.mutate(d, &actor, &req)

			_, err := d.svc.Create(ctx, actor, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()
	hr := leave.Actor{ID: uuid.New().String(), CanDecide: true}

	t.Run("success consumes balance", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)

		l := d.pendingLeave(3)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.repo.compareAndSwapFn = func(ctx context.Context, got *leave.LeaveRequest, from string) (bool, error) {
			assert.Equal(t, leave.StatusPending, from)
			assert.Equal(t, leave.StatusApproved, got.Status)
			return true, nil
		}
		balanceID := uuid.New()
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{ID: balanceID, EmployeeID: e, LeaveTypeID: lt, Year: year, TotalDays: 18, UsedDays: 2, Version: 1}, nil
		}
		var wrote int
		d.balances.updateUsedDaysFn = func(ctx context.Context, id uuid.UUID, version, used int) (bool, error) {
			assert.Equal(t, balanceID, id)
			assert.Equal(t, 1, version)
			wrote = used
			return true, nil
		}
		d.expectEvent(events.LeaveApproved)

		resp, err := d.svc.Approve(ctx, hr, l.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		require.NotNil(t, resp.ApproverID)
		assert.Equal(t, hr.ID, *resp.ApproverID)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, 5, wrote)
	})

	t.Run("requires decide capability", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.Approve(ctx, leave.Actor{ID: d.emp.ID.String()}, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotAllowedToDecide)
	})

	t.Run("invalid id", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.Approve(ctx, hr, "abc")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})

	t.Run("not found", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		_, err := d.svc.Approve(ctx, hr, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		for _, status := range []string{leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled} {
			d := setupServiceTest(t)
			dbtest.ExpectTx(d.mock, false)
			l := d.pendingLeave(2)
			l.Status = status
			d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
				return l, nil
			}

			_, err := d.svc.Approve(ctx, hr, l.ID.String())
			assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition, status)
			assert.True(t, apperror.IsKind(err, apperror.CodeConflict))
		}
	})

	t.Run("lost race", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		l := d.pendingLeave(2)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.repo.compareAndSwapFn = func(ctx context.Context, got *leave.LeaveRequest, from string) (bool, error) {
			return false, nil
		}
		d.balances.updateUsedDaysFn = func(ctx context.Context, id uuid.UUID, version, used int) (bool, error) {
			t.Fatal("balance must not change")
			return false, nil
		}

		_, err := d.svc.Approve(ctx, hr, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrConcurrentUpdate)
	})

	t.Run("balance conflict rolls back", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		l := d.pendingLeave(2)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{ID: uuid.New(), TotalDays: 18}, nil
		}
		d.balances.updateUsedDaysFn = func(ctx context.Context, id uuid.UUID, version, used int) (bool, error) {
			return false, nil
		}

		_, err := d.svc.Approve(ctx, hr, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrBalanceConflict)
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()
	hr := leave.Actor{ID: uuid.New().String(), CanDecide: true}

	t.Run("success leaves balance alone", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		l := d.pendingLeave(2)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			t.Fatal("ledger must not be touched")
			return nil, nil
		}
		event := d.expectEvent(events.LeaveRejected)

		resp, err := d.svc.Reject(ctx, hr, l.ID.String(), "  busy quarter ")

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "busy quarter", *resp.RejectionReason)
		require.NotNil(t, resp.ApproverID)
		assert.Equal(t, hr.ID, *resp.ApproverID)
		assert.Contains(t, string(event.Payload), "busy quarter")
	})

	t.Run("blank reason", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.Reject(ctx, hr, uuid.New().String(), "   ")
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})

	t.Run("requires decide capability", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.Reject(ctx, leave.Actor{ID: d.emp.ID.String()}, uuid.New().String(), "no")
		assert.ErrorIs(t, err, leaveerrors.ErrNotAllowedToDecide)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels pending without ledger change", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		l := d.pendingLeave(2)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			t.Fatal("ledger must not be touched")
			return nil, nil
		}
		d.expectEvent(events.LeaveCancelled)

		resp, err := d.svc.Cancel(ctx, leave.Actor{ID: d.emp.ID.String()}, l.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, d.emp.ID.String(), *resp.CancelledBy)
	})

	t.Run("cancelling approved releases days", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, true)
		l := d.pendingLeave(3)
		l.Status = leave.StatusApproved
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{ID: uuid.New(), TotalDays: 18, UsedDays: 5, Version: 2}, nil
		}
		var wrote int
		d.balances.updateUsedDaysFn = func(ctx context.Context, id uuid.UUID, version, used int) (bool, error) {
			wrote = used
			return true, nil
		}
		d.expectEvent(events.LeaveCancelled)

		_, err := d.svc.Cancel(ctx, leave.Actor{ID: uuid.New().String(), CanDecide: true}, l.ID.String())

		require.NoError(t, err)
		assert.Equal(t, 2, wrote)
	})

	t.Run("release below zero aborts", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		l := d.pendingLeave(3)
		l.Status = leave.StatusApproved
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		d.balances.findByKeyForUpdateFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{ID: uuid.New(), TotalDays: 18, UsedDays: 1}, nil
		}

		_, err := d.svc.Cancel(ctx, leave.Actor{ID: d.emp.ID.String()}, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNegativeUsedDays)
	})

	t.Run("other employee is refused", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		l := d.pendingLeave(2)
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		_, err := d.svc.Cancel(ctx, leave.Actor{ID: uuid.New().String()}, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
	})

	t.Run("rejected cannot be cancelled", func(t *testing.T) {
		d := setupServiceTest(t)
		dbtest.ExpectTx(d.mock, false)
		l := d.pendingLeave(2)
		l.Status = leave.StatusRejected
		d.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		_, err := d.svc.Cancel(ctx, leave.Actor{ID: d.emp.ID.String()}, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID not found", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("GetByEmployee validates year", func(t *testing.T) {
		d := setupServiceTest(t)
		year := 12
		_, err := d.svc.GetByEmployee(ctx, d.emp.ID.String(), &year)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidYear)
	})

	t.Run("GetByEmployee passes year filter", func(t *testing.T) {
		d := setupServiceTest(t)
		year := 2024
		d.repo.findByEmployeeFn = func(ctx context.Context, employeeID string, y *int) ([]leave.LeaveRequest, error) {
			require.NotNil(t, y)
			assert.Equal(t, 2024, *y)
			return []leave.LeaveRequest{*d.pendingLeave(1)}, nil
		}
		resp, err := d.svc.GetByEmployee(ctx, d.emp.ID.String(), &year)
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("GetPending skips resigned employees", func(t *testing.T) {
		d := setupServiceTest(t)
		resigned := activeEmployee("2019-01-01")
		resigned.Status = employee.StatusResigned
		d.directory.employees[resigned.ID] = resigned

		kept := d.pendingLeave(1)
		dropped := d.pendingLeave(2)
		dropped.EmployeeID = resigned.ID
		unknown := d.pendingLeave(3)
		unknown.EmployeeID = uuid.New()

		d.repo.findByStatusFn = func(ctx context.Context, status string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, leave.StatusPending, status)
			return []leave.LeaveRequest{*kept, *dropped, *unknown}, nil
		}

		resp, err := d.svc.GetPending(ctx)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, kept.ID.String(), resp[0].ID)
		assert.Equal(t, unknown.ID.String(), resp[1].ID)
	})

	t.Run("GetPending empty", func(t *testing.T) {
		d := setupServiceTest(t)
		resp, err := d.svc.GetPending(ctx)
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("annual calculation without balance uses formula", func(t *testing.T) {
		d := setupServiceTest(t)
		resp, err := d.svc.GetAnnualLeaveCalculation(ctx, d.emp.ID.String(), 2024)
		require.NoError(t, err)
		assert.Equal(t, 18, resp.TotalDays)
		assert.Equal(t, 0, resp.UsedDays)
		assert.Equal(t, 18, resp.RemainingDays)
	})

	t.Run("annual calculation reads the ledger", func(t *testing.T) {
		d := setupServiceTest(t)
		d.balances.findByKeyFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			assert.Equal(t, d.annual.ID, lt)
			return &leave.LeaveBalance{TotalDays: 18, UsedDays: 4}, nil
		}
		resp, err := d.svc.GetAnnualLeaveCalculation(ctx, d.emp.ID.String(), 2024)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.UsedDays)
		assert.Equal(t, 14, resp.RemainingDays)
	})

	t.Run("annual calculation unknown employee", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.GetAnnualLeaveCalculation(ctx, uuid.New().String(), 2024)
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("GetBalance absent", func(t *testing.T) {
		d := setupServiceTest(t)
		resp, err := d.svc.GetBalance(ctx, d.emp.ID.String(), d.annual.ID.String(), 2024)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("GetBalance present", func(t *testing.T) {
		d := setupServiceTest(t)
		d.balances.findByKeyFn = func(ctx context.Context, e, lt uuid.UUID, year int) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{EmployeeID: e, LeaveTypeID: lt, Year: year, TotalDays: 18, UsedDays: 3}, nil
		}
		resp, err := d.svc.GetBalance(ctx, d.emp.ID.String(), d.annual.ID.String(), 2024)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 15, resp.RemainingDays)
	})

	t.Run("GetBalance invalid leave type", func(t *testing.T) {
		d := setupServiceTest(t)
		_, err := d.svc.GetBalance(ctx, d.emp.ID.String(), "x", 2024)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveTypeID)
	})
}
