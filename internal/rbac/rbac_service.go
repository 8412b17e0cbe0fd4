package rbac

import (
	"context"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// DefaultPolicies are always loaded in addition to the stored ones.
func DefaultPolicies() []PolicyRow {
	return []PolicyRow{
		{Role: RoleAdmin, Resource: "leave", Action: "approve"},
		{Role: RoleAdmin, Resource: "rbac", Action: "manage"},
		{Role: RoleHR, Resource: "leave", Action: "approve"},
	}
}

type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	loaded   bool
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the enforcer's policy with the defaults plus the
// stored policies.
func (s *service) LoadPolicy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked(ctx)
}

func (s *service) loadPolicyUnlocked(ctx context.Context) error {
	stored, err := s.repo.ListPolicies(ctx)
	if err != nil {
		s.logger.Error("rbac load policy failed", zap.Error(err))
		return err
	}

	s.enforcer.ClearPolicy()
	for _, p := range append(DefaultPolicies(), stored...) {
		if _, err := s.enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return err
		}
	}
	s.loaded = true

	s.logger.Info("rbac policy loaded",
		zap.Int("defaults", len(DefaultPolicies())),
		zap.Int("stored", len(stored)),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		s.mu.Lock()
		if !s.loaded {
			if err := s.loadPolicyUnlocked(context.Background()); err != nil {
				s.mu.Unlock()
				return false, err
			}
		}
		s.mu.Unlock()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
