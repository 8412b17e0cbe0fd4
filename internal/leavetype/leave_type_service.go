package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	leavetypeerrors "hris-leave/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const LeaveTypeAllKey = "leave_types:all"

const defaultCacheTTL = 30 * time.Minute

type Service interface {
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the catalog service. rdb may be nil, in which case every
// read goes to the repository.
func NewService(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &service{repo: repo, rdb: rdb, ttl: ttl, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, LeaveTypeAllKey).Result()
		if err == nil {
			var resp []LeaveTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
			s.logger.Warn("leave type cache entry is corrupt", zap.String("key", LeaveTypeAllKey))
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("leave type cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(LeaveTypeAllKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, LeaveTypeAllKey, jsonData, s.ttl).Err(); err != nil {
					s.logger.Warn("leave type cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get leave types failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*t), nil
}

// SeedDefaults inserts every default code that is not present yet and
// returns how many rows were created.
func (s *service) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, def := range DefaultCatalog() {
		_, err := s.repo.FindByCode(ctx, def.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		t := def
		t.ID = uuid.New()
		if err := s.repo.Create(ctx, &t); err != nil {
			s.logger.Error("seed leave type failed", zap.String("code", t.Code), zap.Error(err))
			return created, err
		}
		created++
	}

	if created > 0 {
		s.invalidate(ctx)
		s.logger.Info("leave type catalog seeded", zap.Int("created", created))
	}
	return created, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, LeaveTypeAllKey).Err(); err != nil {
		s.logger.Error("invalidate leave type cache failed", zap.String("key", LeaveTypeAllKey), zap.Error(err))
	}
}
