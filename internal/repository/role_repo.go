package repository

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"borrowdesk/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type RoleRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	Assign(ctx context.Context, role *model.UserRole) error
	Revoke(ctx context.Context, userID uuid.UUID, roleName string) error
}

type roleRepository struct {
	db *gorm.DB

	// Older deployments predate the department_id column on user_roles.
	// The first query that hits an undefined-column error flips this and
	// the minimal select is used for the rest of the process lifetime.
	noDepartmentID atomic.Bool
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// undefinedColumn reports whether err is Postgres 42703 for department_id.
func undefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42703" {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "department_id")
}

func (r *roleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	var roles []model.UserRole

	if !r.noDepartmentID.Load() {
		err := GetDB(ctx, r.db).
			Select("id", "user_id", "role", "department", "department_id").
			Where("user_id = ?", userID).
			Find(&roles).Error
		if err == nil {
			return roles, nil
		}
		if !undefinedColumn(err) {
			return nil, err
		}
		r.noDepartmentID.Store(true)
	}

	if err := GetDB(ctx, r.db).
		Select("id", "user_id", "role", "department").
		Where("user_id = ?", userID).
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ListDepartments(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	if err := GetDB(ctx, r.db).Order("name").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *roleRepository) Assign(ctx context.Context, role *model.UserRole) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepository) Revoke(ctx context.Context, userID uuid.UUID, roleName string) error {
	res := GetDB(ctx, r.db).Delete(&model.UserRole{}, "user_id = ? AND role = ?", userID, roleName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
