package service

import (
	"testing"

	"borrowdesk/internal/model"

	"github.com/google/uuid"
)

func TestRoleSetCapabilities(t *testing.T) {
	tests := []struct {
		name        string
		roles       []string
		manage      bool
		approve     bool
	}{
		{"no roles", nil, false, false},
		{"borrower", []string{model.RoleBorrower}, false, false},
		{"owner", []string{model.RoleOwner}, true, true},
		{"headmaster", []string{model.RoleHeadmaster}, false, true},
		{"admin", []string{model.RoleAdmin}, true, true},
		{"borrower and owner", []string{model.RoleBorrower, model.RoleOwner}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := roleSetWith(uuid.New(), tt.roles...)
			if got := set.CanManageInventory(); got != tt.manage {
				t.Errorf("CanManageInventory() = %v, want %v", got, tt.manage)
			}
			if got := set.CanApproveRequests(); got != tt.approve {
				t.Errorf("CanApproveRequests() = %v, want %v", got, tt.approve)
			}
		})
	}
}

func TestRoleSetWithResolveErrorHasNoCapabilities(t *testing.T) {
	set := RoleSet{UserID: uuid.New(), ResolveError: "connection refused"}
	if set.CanApproveRequests() || set.CanManageInventory() {
		t.Error("degraded role set must grant no capabilities")
	}
	if set.IsBorrower() || set.IsAdmin() {
		t.Error("degraded role set must hold no roles")
	}
}

func TestOwnerDepartmentIDPrefersExplicitID(t *testing.T) {
	userID := uuid.New()
	explicitID := uuid.New()
	directoryID := uuid.New()

	set := RoleSet{
		UserID: userID,
		Roles: []model.UserRole{{
			UserID:       userID,
			Role:         model.RoleOwner,
			Department:   "Laboratorium IPA",
			DepartmentID: &explicitID,
		}},
		Departments: []model.Department{{ID: directoryID, Name: "Laboratorium IPA"}},
	}

	got := set.OwnerDepartmentID()
	if got == nil || *got != explicitID {
		t.Errorf("OwnerDepartmentID() = %v, want explicit %v", got, explicitID)
	}
}

func TestOwnerDepartmentIDResolvesByName(t *testing.T) {
	userID := uuid.New()
	directoryID := uuid.New()

	set := RoleSet{
		UserID: userID,
		Roles: []model.UserRole{{
			UserID:     userID,
			Role:       model.RoleOwner,
			Department: "Laboratorium IPA",
		}},
		Departments: []model.Department{
			{ID: uuid.New(), Name: "Olahraga"},
			{ID: directoryID, Name: "Laboratorium IPA"},
		},
	}

	got := set.OwnerDepartmentID()
	if got == nil || *got != directoryID {
		t.Errorf("OwnerDepartmentID() = %v, want %v resolved by name", got, directoryID)
	}
}

func TestOwnerDepartmentIDNilForUnscopedOwner(t *testing.T) {
	set := roleSetWith(uuid.New(), model.RoleOwner)
	if got := set.OwnerDepartmentID(); got != nil {
		t.Errorf("OwnerDepartmentID() = %v, want nil for unscoped owner", got)
	}

	borrowerOnly := roleSetWith(uuid.New(), model.RoleBorrower)
	if got := borrowerOnly.OwnerDepartmentID(); got != nil {
		t.Errorf("OwnerDepartmentID() = %v, want nil without owner role", got)
	}
}

func TestRoleLabels(t *testing.T) {
	set := roleSetWith(uuid.New(), model.RoleBorrower, model.RoleHeadmaster)
	got := set.RoleLabels()
	want := []string{"Peminjam", "Kepala Sekolah"}
	if !equalStrings(got, want) {
		t.Errorf("RoleLabels() = %v, want %v", got, want)
	}

	unknown := roleSetWith(uuid.New(), "auditor")
	if got := unknown.RoleLabels(); !equalStrings(got, []string{"auditor"}) {
		t.Errorf("RoleLabels() for unknown role = %v, want raw name", got)
	}
}
