package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"borrowdesk/internal/model"

	"github.com/google/uuid"
)

// --- fakes ---

type fakeRequestRepo struct {
	requests map[uuid.UUID]*model.BorrowRequest

	// raceTo simulates a concurrent transition: TransitionStatus reports
	// zero affected rows and the stored request ends up in this status.
	raceTo string

	counts        map[string]int64
	unreadCount   int64
	borrowerCount int64
	createdToday  int64

	transitionCalls int
	letterViews     int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[uuid.UUID]*model.BorrowRequest),
		counts:   make(map[string]int64),
	}
}

func (f *fakeRequestRepo) add(req *model.BorrowRequest) *model.BorrowRequest {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	f.requests[req.ID] = req
	return req
}

func (f *fakeRequestRepo) Create(_ context.Context, req *model.BorrowRequest) error {
	f.add(req)
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BorrowRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, model.ErrNotFound)
	}
	return req, nil
}

func (f *fakeRequestRepo) ListByStatus(_ context.Context, status string, _, limit int) ([]model.BorrowRequest, error) {
	var out []model.BorrowRequest
	for _, req := range f.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatusForDepartment(ctx context.Context, status string, _ uuid.UUID, offset, limit int) ([]model.BorrowRequest, error) {
	return f.ListByStatus(ctx, status, offset, limit)
}

func (f *fakeRequestRepo) ListByBorrower(_ context.Context, borrowerID uuid.UUID, _, _ int) ([]model.BorrowRequest, int64, error) {
	var out []model.BorrowRequest
	for _, req := range f.requests {
		if req.BorrowerID == borrowerID {
			out = append(out, *req)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListRecent(_ context.Context, _ time.Time, _ int) ([]model.BorrowRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	return f.counts[status], nil
}

func (f *fakeRequestRepo) CountByStatusForDepartment(_ context.Context, status string, _ uuid.UUID) (int64, error) {
	return f.counts[status], nil
}

func (f *fakeRequestRepo) CountByBorrower(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.borrowerCount, nil
}

func (f *fakeRequestRepo) CountUnreadApproved(_ context.Context, _ uuid.UUID) (int64, error) {
	return f.unreadCount, nil
}

func (f *fakeRequestRepo) CountCreatedSince(_ context.Context, _ time.Time) (int64, error) {
	return f.createdToday, nil
}

func (f *fakeRequestRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to string, _ map[string]any) (int64, error) {
	f.transitionCalls++
	req, ok := f.requests[id]
	if !ok {
		return 0, nil
	}
	if f.raceTo != "" {
		req.Status = f.raceTo
		return 0, nil
	}
	if req.Status != from {
		return 0, nil
	}
	req.Status = to
	return 1, nil
}

func (f *fakeRequestRepo) MarkLetterViewed(_ context.Context, id, _ uuid.UUID, viewedAt time.Time) (int64, error) {
	req, ok := f.requests[id]
	if !ok || req.LetterViewedAt != nil {
		return 0, nil
	}
	req.LetterViewedAt = &viewedAt
	f.letterViews++
	return 1, nil
}

func (f *fakeRequestRepo) SetLetterArtifact(_ context.Context, id uuid.UUID, pdfURL string, generatedAt time.Time) error {
	if req, ok := f.requests[id]; ok {
		req.LetterPDFURL = pdfURL
		req.LetterGeneratedPDFAt = &generatedAt
	}
	return nil
}

func (f *fakeRequestRepo) AssignLetterNumber(_ context.Context, id uuid.UUID, prefix string) (string, error) {
	req, ok := f.requests[id]
	if !ok {
		return "", model.ErrNotFound
	}
	if req.LetterNumber == "" {
		req.LetterNumber = fmt.Sprintf("%s%05d", prefix, 1)
	}
	return req.LetterNumber, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]model.Item
	total int64
}

func (f *fakeItemRepo) List(_ context.Context, _ *uuid.UUID, _, _ int) ([]model.Item, int64, error) {
	return nil, 0, nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &item, nil
}

func (f *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Item, error) {
	var out []model.Item
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) CountAll(_ context.Context) (int64, error) {
	return f.total, nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ string, _, _ int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeRoleService returns a fixed RoleSet per user.
type fakeRoleService struct {
	sets        map[uuid.UUID]RoleSet
	departments []model.Department
}

func (f *fakeRoleService) Resolve(_ context.Context, userID uuid.UUID) RoleSet {
	if set, ok := f.sets[userID]; ok {
		return set
	}
	return RoleSet{UserID: userID}
}

func (f *fakeRoleService) Departments(_ context.Context) ([]model.Department, error) {
	return f.departments, nil
}

func (f *fakeRoleService) AssignRole(_ context.Context, _ uuid.UUID, _ AssignRoleDTO) (*model.UserRole, error) {
	return nil, nil
}

func (f *fakeRoleService) RevokeRole(_ context.Context, _, _ uuid.UUID, _ string) error {
	return nil
}

func roleSetWith(userID uuid.UUID, roles ...string) RoleSet {
	set := RoleSet{UserID: userID}
	for _, role := range roles {
		set.Roles = append(set.Roles, model.UserRole{UserID: userID, Role: role})
	}
	return set
}

type fixture struct {
	repo    *fakeRequestRepo
	items   *fakeItemRepo
	audit   *fakeAuditRepo
	roles   *fakeRoleService
	service RequestService
}

func newFixture() *fixture {
	repo := newFakeRequestRepo()
	items := &fakeItemRepo{items: make(map[uuid.UUID]model.Item)}
	audit := &fakeAuditRepo{}
	roles := &fakeRoleService{sets: make(map[uuid.UUID]RoleSet)}
	svc := NewRequestService(repo, items, audit, fakeTxManager{}, roles, nil, nil)
	return &fixture{repo: repo, items: items, audit: audit, roles: roles, service: svc}
}

func (f *fixture) grantRoles(userID uuid.UUID, roles ...string) {
	f.roles.sets[userID] = roleSetWith(userID, roles...)
}

// --- create / submit ---

func TestCreateRejectsBadDates(t *testing.T) {
	f := newFixture()
	itemID := uuid.New()
	f.items.items[itemID] = model.Item{ID: itemID, Name: "Proyektor"}
	borrower := uuid.New()

	base := CreateRequestDTO{
		Purpose:   "praktikum",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Items:     []RequestItemDTO{{ItemID: itemID.String(), Quantity: 1}},
	}

	cases := []struct {
		name   string
		mutate func(*CreateRequestDTO)
	}{
		{"garbled start date", func(r *CreateRequestDTO) { r.StartDate = "01-09-2026" }},
		{"garbled end date", func(r *CreateRequestDTO) { r.EndDate = "soon" }},
		{"end before start", func(r *CreateRequestDTO) { r.EndDate = "2026-08-30" }},
		{"zero quantity", func(r *CreateRequestDTO) { r.Items[0].Quantity = 0 }},
		{"negative quantity", func(r *CreateRequestDTO) { r.Items[0].Quantity = -2 }},
		{"no items", func(r *CreateRequestDTO) { r.Items = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			req.Items = []RequestItemDTO{{ItemID: itemID.String(), Quantity: 1}}
			tc.mutate(&req)
			if _, err := f.service.Create(context.Background(), borrower, req); !errors.Is(err, model.ErrInvalidInput) {
				t.Fatalf("Create() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateRejectsUnknownItem(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	req := CreateRequestDTO{
		Purpose:   "praktikum",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Items:     []RequestItemDTO{{ItemID: uuid.NewString(), Quantity: 1}},
	}
	if _, err := f.service.Create(context.Background(), borrower, req); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Create() error = %v, want ErrNotFound", err)
	}
}

func TestCreateStartsAsDraft(t *testing.T) {
	f := newFixture()
	itemID := uuid.New()
	f.items.items[itemID] = model.Item{ID: itemID, Name: "Proyektor"}
	borrower := uuid.New()

	created, err := f.service.Create(context.Background(), borrower, CreateRequestDTO{
		Purpose:   "praktikum fisika",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-03",
		Items:     []RequestItemDTO{{ItemID: itemID.String(), Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Status != model.StatusDraft {
		t.Errorf("new request status = %q, want %q", created.Status, model.StatusDraft)
	}
	if len(f.audit.entries) != 1 || f.audit.entries[0].Action != model.ActionCreateRequest {
		t.Errorf("audit entries = %+v, want one %s entry", f.audit.entries, model.ActionCreateRequest)
	}
}

func TestSubmitOnlyByBorrower(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	someoneElse := uuid.New()
	f.grantRoles(someoneElse, model.RoleAdmin)

	req := f.repo.add(&model.BorrowRequest{
		Status:     model.StatusDraft,
		BorrowerID: borrower,
		Items:      []model.RequestItem{{ItemID: uuid.New(), Quantity: 1}},
	})

	if _, err := f.service.Submit(context.Background(), someoneElse, req.ID); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("Submit() by non-borrower error = %v, want ErrUnauthorized", err)
	}
	if req.Status != model.StatusDraft {
		t.Errorf("request status = %q, want unchanged draft", req.Status)
	}

	updated, err := f.service.Submit(context.Background(), borrower, req.ID)
	if err != nil {
		t.Fatalf("Submit() by borrower error = %v", err)
	}
	if updated.Status != model.StatusPendingOwner {
		t.Errorf("request status = %q, want %q", updated.Status, model.StatusPendingOwner)
	}
}

func TestSubmitTwiceFails(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	req := f.repo.add(&model.BorrowRequest{
		Status:     model.StatusPendingOwner,
		BorrowerID: borrower,
		Items:      []model.RequestItem{{ItemID: uuid.New(), Quantity: 1}},
	})
	if _, err := f.service.Submit(context.Background(), borrower, req.ID); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("Submit() of pending request error = %v, want ErrInvalidTransition", err)
	}
}

// --- owner review ---

func TestOwnerReviewRequiresOwnerRole(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	// Status is draft, so the transition would also be invalid; the
	// missing capability must win.
	req := f.repo.add(&model.BorrowRequest{Status: model.StatusDraft, BorrowerID: borrower})

	f.grantRoles(borrower, model.RoleBorrower)
	_, err := f.service.OwnerReview(context.Background(), borrower, req.ID, DecisionDTO{Approve: true})
	if !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("OwnerReview() error = %v, want ErrUnauthorized", err)
	}
	if errors.Is(err, model.ErrInvalidTransition) {
		t.Fatal("capability check must run before the transition check")
	}
}

func TestOwnerReviewApproveAndReject(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	approve := f.repo.add(&model.BorrowRequest{Status: model.StatusPendingOwner, BorrowerID: uuid.New()})
	updated, err := f.service.OwnerReview(context.Background(), owner, approve.ID, DecisionDTO{Approve: true})
	if err != nil {
		t.Fatalf("OwnerReview(approve) error = %v", err)
	}
	if updated.Status != model.StatusPendingHeadmaster {
		t.Errorf("approved request status = %q, want %q", updated.Status, model.StatusPendingHeadmaster)
	}

	reject := f.repo.add(&model.BorrowRequest{Status: model.StatusPendingOwner, BorrowerID: uuid.New()})
	updated, err = f.service.OwnerReview(context.Background(), owner, reject.ID, DecisionDTO{Approve: false, Reason: "bentrok jadwal"})
	if err != nil {
		t.Fatalf("OwnerReview(reject) error = %v", err)
	}
	if updated.Status != model.StatusRejected {
		t.Errorf("rejected request status = %q, want %q", updated.Status, model.StatusRejected)
	}
}

func TestOwnerReviewScopedToDepartment(t *testing.T) {
	f := newFixture()
	deptA := uuid.New()
	deptB := uuid.New()

	owner := uuid.New()
	set := roleSetWith(owner, model.RoleOwner)
	set.Roles[0].DepartmentID = &deptA
	f.roles.sets[owner] = set

	outside := f.repo.add(&model.BorrowRequest{
		Status:     model.StatusPendingOwner,
		BorrowerID: uuid.New(),
		Items: []model.RequestItem{
			{ItemID: uuid.New(), Quantity: 1, Item: &model.Item{DepartmentID: deptB}},
		},
	})
	if _, err := f.service.OwnerReview(context.Background(), owner, outside.ID, DecisionDTO{Approve: true}); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("OwnerReview() outside department error = %v, want ErrUnauthorized", err)
	}

	inside := f.repo.add(&model.BorrowRequest{
		Status:     model.StatusPendingOwner,
		BorrowerID: uuid.New(),
		Items: []model.RequestItem{
			{ItemID: uuid.New(), Quantity: 1, Item: &model.Item{DepartmentID: deptB}},
			{ItemID: uuid.New(), Quantity: 1, Item: &model.Item{DepartmentID: deptA}},
		},
	})
	if _, err := f.service.OwnerReview(context.Background(), owner, inside.ID, DecisionDTO{Approve: true}); err != nil {
		t.Fatalf("OwnerReview() with one in-department item error = %v", err)
	}
}

func TestOwnerReviewAdminBypassesDepartmentScope(t *testing.T) {
	f := newFixture()
	admin := uuid.New()
	f.grantRoles(admin, model.RoleAdmin)

	req := f.repo.add(&model.BorrowRequest{
		Status:     model.StatusPendingOwner,
		BorrowerID: uuid.New(),
		Items: []model.RequestItem{
			{ItemID: uuid.New(), Quantity: 1, Item: &model.Item{DepartmentID: uuid.New()}},
		},
	})
	if _, err := f.service.OwnerReview(context.Background(), admin, req.ID, DecisionDTO{Approve: true}); err != nil {
		t.Fatalf("OwnerReview() as admin error = %v", err)
	}
}

// --- headmaster decision ---

func TestHeadmasterDecideRequiresRole(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusPendingHeadmaster, BorrowerID: uuid.New()})
	if _, err := f.service.HeadmasterDecide(context.Background(), owner, req.ID, DecisionDTO{Approve: true}); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("HeadmasterDecide() as owner error = %v, want ErrUnauthorized", err)
	}
}

func TestHeadmasterApproveAndReject(t *testing.T) {
	f := newFixture()
	headmaster := uuid.New()
	f.grantRoles(headmaster, model.RoleHeadmaster)

	approve := f.repo.add(&model.BorrowRequest{Status: model.StatusPendingHeadmaster, BorrowerID: uuid.New()})
	updated, err := f.service.HeadmasterDecide(context.Background(), headmaster, approve.ID, DecisionDTO{Approve: true})
	if err != nil {
		t.Fatalf("HeadmasterDecide(approve) error = %v", err)
	}
	if updated.Status != model.StatusApproved {
		t.Errorf("approved request status = %q, want %q", updated.Status, model.StatusApproved)
	}

	reject := f.repo.add(&model.BorrowRequest{Status: model.StatusPendingHeadmaster, BorrowerID: uuid.New()})
	updated, err = f.service.HeadmasterDecide(context.Background(), headmaster, reject.ID, DecisionDTO{Approve: false, Reason: "anggaran"})
	if err != nil {
		t.Fatalf("HeadmasterDecide(reject) error = %v", err)
	}
	if updated.Status != model.StatusRejected {
		t.Errorf("rejected request status = %q, want %q", updated.Status, model.StatusRejected)
	}
}

func TestHeadmasterCannotDecideTwice(t *testing.T) {
	f := newFixture()
	headmaster := uuid.New()
	f.grantRoles(headmaster, model.RoleHeadmaster)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	if _, err := f.service.HeadmasterDecide(context.Background(), headmaster, req.ID, DecisionDTO{Approve: false}); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("HeadmasterDecide() on approved request error = %v, want ErrInvalidTransition", err)
	}
}

// --- activation ---

func TestActivateHappyPath(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	result, err := f.service.Activate(context.Background(), owner, req.ID)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if !result.Activated {
		t.Error("Activated = false, want true")
	}
	if result.Request.Status != model.StatusActive {
		t.Errorf("request status = %q, want %q", result.Request.Status, model.StatusActive)
	}
}

func TestActivateLostRaceIsBenign(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	f.repo.raceTo = model.StatusActive

	result, err := f.service.Activate(context.Background(), owner, req.ID)
	if err != nil {
		t.Fatalf("Activate() after lost race error = %v", err)
	}
	if result.Activated {
		t.Error("Activated = true after lost race, want false")
	}
	if result.Request.Status != model.StatusActive {
		t.Errorf("request status = %q, want %q", result.Request.Status, model.StatusActive)
	}
}

func TestActivateConflictOnForeignTransition(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	f.repo.raceTo = model.StatusCompleted

	if _, err := f.service.Activate(context.Background(), owner, req.ID); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("Activate() error = %v, want ErrConflict", err)
	}
}

func TestActivateRequiresOwnerRole(t *testing.T) {
	f := newFixture()
	headmaster := uuid.New()
	f.grantRoles(headmaster, model.RoleHeadmaster)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	if _, err := f.service.Activate(context.Background(), headmaster, req.ID); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("Activate() as headmaster error = %v, want ErrUnauthorized", err)
	}
}

func TestCompleteClosesActiveLoan(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	req := f.repo.add(&model.BorrowRequest{Status: model.StatusActive, BorrowerID: uuid.New()})
	updated, err := f.service.Complete(context.Background(), owner, req.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("request status = %q, want %q", updated.Status, model.StatusCompleted)
	}

	if _, err := f.service.Complete(context.Background(), owner, req.ID); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("Complete() of completed loan error = %v, want ErrInvalidTransition", err)
	}
}

// --- letter viewed ---

func TestMarkLetterViewedOnce(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: borrower})

	if err := f.service.MarkLetterViewed(context.Background(), borrower, req.ID); err != nil {
		t.Fatalf("MarkLetterViewed() error = %v", err)
	}
	first := req.LetterViewedAt
	if first == nil {
		t.Fatal("LetterViewedAt not set after first view")
	}

	if err := f.service.MarkLetterViewed(context.Background(), borrower, req.ID); err != nil {
		t.Fatalf("MarkLetterViewed() second call error = %v", err)
	}
	if req.LetterViewedAt != first {
		t.Error("LetterViewedAt changed on repeat view")
	}
	if f.repo.letterViews != 1 {
		t.Errorf("letter view writes = %d, want 1", f.repo.letterViews)
	}
}

func TestMarkLetterViewedOnlyByBorrower(t *testing.T) {
	f := newFixture()
	req := f.repo.add(&model.BorrowRequest{Status: model.StatusApproved, BorrowerID: uuid.New()})
	stranger := uuid.New()
	if err := f.service.MarkLetterViewed(context.Background(), stranger, req.ID); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("MarkLetterViewed() by stranger error = %v, want ErrUnauthorized", err)
	}
}

// --- inboxes and counts ---

func TestOwnerInboxRequiresRole(t *testing.T) {
	f := newFixture()
	borrower := uuid.New()
	f.grantRoles(borrower, model.RoleBorrower)
	if _, err := f.service.OwnerInbox(context.Background(), borrower, 5); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("OwnerInbox() error = %v, want ErrUnauthorized", err)
	}
}

func TestCountsStayExact(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.grantRoles(owner, model.RoleOwner)

	// More pending requests than any widget page shows.
	f.repo.counts[model.StatusPendingOwner] = 12
	f.repo.counts[model.StatusApproved] = 7
	f.repo.unreadCount = 3

	counts, err := f.service.Counts(context.Background(), owner)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts.PendingOwner != 12 {
		t.Errorf("PendingOwner = %d, want 12", counts.PendingOwner)
	}
	if counts.AwaitingActivation != 7 {
		t.Errorf("AwaitingActivation = %d, want 7", counts.AwaitingActivation)
	}
	if counts.UnreadApproved != 3 {
		t.Errorf("UnreadApproved = %d, want 3", counts.UnreadApproved)
	}
	// No headmaster role, so that badge stays zero.
	if counts.PendingHeadmaster != 0 {
		t.Errorf("PendingHeadmaster = %d, want 0", counts.PendingHeadmaster)
	}
}

func TestBuildTabs(t *testing.T) {
	counts := InboxCounts{PendingOwner: 2, PendingHeadmaster: 1, AwaitingActivation: 4, UnreadApproved: 1}

	keys := func(tabs []Tab) []string {
		out := make([]string, len(tabs))
		for i, tab := range tabs {
			out[i] = tab.Key
		}
		return out
	}

	borrower := BuildTabs(roleSetWith(uuid.New(), model.RoleBorrower), counts)
	wantBorrower := []string{"my_requests", "realtime"}
	if got := keys(borrower); !equalStrings(got, wantBorrower) {
		t.Errorf("borrower tabs = %v, want %v", got, wantBorrower)
	}

	owner := BuildTabs(roleSetWith(uuid.New(), model.RoleOwner), counts)
	wantOwner := []string{"my_requests", "owner_inbox", "awaiting_activation", "realtime"}
	if got := keys(owner); !equalStrings(got, wantOwner) {
		t.Errorf("owner tabs = %v, want %v", got, wantOwner)
	}

	admin := BuildTabs(roleSetWith(uuid.New(), model.RoleAdmin), counts)
	wantAdmin := []string{"my_requests", "owner_inbox", "headmaster_inbox", "awaiting_activation", "realtime"}
	if got := keys(admin); !equalStrings(got, wantAdmin) {
		t.Errorf("admin tabs = %v, want %v", got, wantAdmin)
	}

	for _, tab := range owner {
		if tab.Key == "owner_inbox" && tab.Badge != 2 {
			t.Errorf("owner_inbox badge = %d, want 2", tab.Badge)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
