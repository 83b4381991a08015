package service

import (
	"context"
	"fmt"

	"borrowdesk/internal/model"
	"borrowdesk/internal/repository"

	"github.com/google/uuid"
)

type AuditService interface {
	List(ctx context.Context, actorID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	audit repository.AuditRepository
	roles RoleService
}

func NewAuditService(audit repository.AuditRepository, roles RoleService) AuditService {
	return &auditService{audit: audit, roles: roles}
}

// List returns the audit trail, admins only.
func (s *auditService) List(ctx context.Context, actorID uuid.UUID, action string, page, limit int) ([]model.AuditLog, int64, error) {
	if !s.roles.Resolve(ctx, actorID).IsAdmin() {
		return nil, 0, fmt.Errorf("audit list: %w", model.ErrUnauthorized)
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.audit.List(ctx, action, (page-1)*limit, limit)
}
