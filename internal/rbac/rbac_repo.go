package rbac

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PolicyRow grants one action on one resource to a role.
type PolicyRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_rbac_policy,priority:1"`
	Resource string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_rbac_policy,priority:2"`
	Action   string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_rbac_policy,priority:3"`
}

func (PolicyRow) TableName() string {
	return "rbac_policies"
}

type Repository interface {
	ListPolicies(ctx context.Context) ([]PolicyRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPolicies(ctx context.Context) ([]PolicyRow, error) {
	var result []PolicyRow
	err := r.db.WithContext(ctx).
		Order("role, resource, action").
		Find(&result).Error
	return result, err
}
