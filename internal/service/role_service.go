package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"borrowdesk/internal/model"
	"borrowdesk/internal/repository"

	"github.com/google/uuid"
)

// RoleSet is the resolved authority of one user: their role rows plus the
// department directory needed to resolve an owner's department name to an
// ID. It is a plain value so capability checks stay testable without a
// database.
type RoleSet struct {
	UserID      uuid.UUID          `json:"user_id"`
	Roles       []model.UserRole   `json:"roles"`
	Departments []model.Department `json:"departments"`
	// ResolveError records a resolver failure. Callers must treat a set
	// with an error exactly like one with no roles: no special
	// capabilities, not an unauthenticated state.
	ResolveError string `json:"resolve_error,omitempty"`
}

func (s RoleSet) HasRole(name string) bool {
	for _, r := range s.Roles {
		if r.Role == name {
			return true
		}
	}
	return false
}

func (s RoleSet) IsBorrower() bool   { return s.HasRole(model.RoleBorrower) }
func (s RoleSet) IsOwner() bool      { return s.HasRole(model.RoleOwner) }
func (s RoleSet) IsHeadmaster() bool { return s.HasRole(model.RoleHeadmaster) }
func (s RoleSet) IsAdmin() bool      { return s.HasRole(model.RoleAdmin) }

func (s RoleSet) CanManageInventory() bool {
	return s.IsAdmin() || s.IsOwner()
}

func (s RoleSet) CanApproveRequests() bool {
	return s.IsAdmin() || s.IsOwner() || s.IsHeadmaster()
}

// OwnerDepartment returns the department name attached to the user's owner
// role, or "" for unscoped owners.
func (s RoleSet) OwnerDepartment() string {
	for _, r := range s.Roles {
		if r.Role == model.RoleOwner {
			return r.Department
		}
	}
	return ""
}

// OwnerDepartmentID resolves the owner role's department to an ID. An
// explicit department_id on the role row wins; otherwise the first
// department whose name matches is used (names are unique).
func (s RoleSet) OwnerDepartmentID() *uuid.UUID {
	for _, r := range s.Roles {
		if r.Role != model.RoleOwner {
			continue
		}
		if r.DepartmentID != nil {
			return r.DepartmentID
		}
		if r.Department == "" {
			return nil
		}
		for _, d := range s.Departments {
			if d.Name == r.Department {
				id := d.ID
				return &id
			}
		}
		return nil
	}
	return nil
}

// RoleLabels returns display labels for the user's roles.
func (s RoleSet) RoleLabels() []string {
	labelMap := map[string]string{
		model.RoleBorrower:   "Peminjam",
		model.RoleOwner:      "Pemilik Alat",
		model.RoleHeadmaster: "Kepala Sekolah",
		model.RoleAdmin:      "Administrator",
	}
	labels := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		if label, ok := labelMap[r.Role]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, r.Role)
		}
	}
	return labels
}

type AssignRoleDTO struct {
	UserID     string `json:"user_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
}

// RoleService resolves who may do what. Resolve never fails hard: on a
// query error the app keeps running in a degraded read-only mode.
type RoleService interface {
	Resolve(ctx context.Context, userID uuid.UUID) RoleSet
	Departments(ctx context.Context) ([]model.Department, error)
	AssignRole(ctx context.Context, actorID uuid.UUID, req AssignRoleDTO) (*model.UserRole, error)
	RevokeRole(ctx context.Context, actorID, userID uuid.UUID, roleName string) error
}

type roleService struct {
	roles repository.RoleRepository
	audit repository.AuditRepository
}

func NewRoleService(roles repository.RoleRepository, audit repository.AuditRepository) RoleService {
	return &roleService{roles: roles, audit: audit}
}

func (s *roleService) Resolve(ctx context.Context, userID uuid.UUID) RoleSet {
	set := RoleSet{UserID: userID}

	roles, err := s.roles.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("role resolve failed for %s: %v", userID, err)
		set.ResolveError = err.Error()
		return set
	}
	set.Roles = roles

	departments, err := s.roles.ListDepartments(ctx)
	if err != nil {
		// Roles still work without the directory; only name-based department lookup degrades.
		log.Printf("department fetch failed: %v", err)
		set.ResolveError = err.Error()
		return set
	}
	set.Departments = departments
	return set
}

func (s *roleService) Departments(ctx context.Context) ([]model.Department, error) {
	return s.roles.ListDepartments(ctx)
}

func (s *roleService) AssignRole(ctx context.Context, actorID uuid.UUID, req AssignRoleDTO) (*model.UserRole, error) {
	if !s.Resolve(ctx, actorID).IsAdmin() {
		return nil, fmt.Errorf("assign role: %w", model.ErrUnauthorized)
	}
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("assign role: unknown role %q: %w", req.Role, model.ErrInvalidInput)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("assign role: invalid user id: %w", model.ErrInvalidInput)
	}

	role := &model.UserRole{
		UserID:     userID,
		Role:       req.Role,
		Department: req.Department,
	}
	if req.Department != "" {
		departments, deptErr := s.roles.ListDepartments(ctx)
		if deptErr == nil {
			for _, d := range departments {
				if d.Name == req.Department {
					id := d.ID
					role.DepartmentID = &id
					break
				}
			}
		}
	}

	if err := s.roles.Assign(ctx, role); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	details, _ := json.Marshal(map[string]any{"role": req.Role, "department": req.Department})
	s.writeAudit(ctx, actorID, model.ActionAssignRole, userID.String(), string(details))
	return role, nil
}

func (s *roleService) RevokeRole(ctx context.Context, actorID, userID uuid.UUID, roleName string) error {
	if !s.Resolve(ctx, actorID).IsAdmin() {
		return fmt.Errorf("revoke role: %w", model.ErrUnauthorized)
	}
	if err := s.roles.Revoke(ctx, userID, roleName); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}

	details, _ := json.Marshal(map[string]any{"role": roleName})
	s.writeAudit(ctx, actorID, model.ActionRevokeRole, userID.String(), string(details))
	return nil
}

func (s *roleService) writeAudit(ctx context.Context, actorID uuid.UUID, action, entityID, details string) {
	entry := &model.AuditLog{
		UserID:   &actorID,
		Action:   action,
		EntityID: entityID,
		Details:  details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("audit write failed for %s: %v", action, err)
	}
}
