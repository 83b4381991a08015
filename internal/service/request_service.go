package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"borrowdesk/internal/model"
	"borrowdesk/internal/realtime"
	"borrowdesk/internal/repository"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// requestsTable is the change-feed table name for borrow requests.
const requestsTable = "borrow_requests"

// --- DTOs ---

type RequestItemDTO struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateRequestDTO struct {
	Purpose       string           `json:"purpose" binding:"required"`
	StartDate     string           `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate       string           `json:"end_date" binding:"required"`   // YYYY-MM-DD
	LocationUsage string           `json:"location_usage"`
	PICName       string           `json:"pic_name"`
	PICContact    string           `json:"pic_contact"`
	Items         []RequestItemDTO `json:"items" binding:"required,min=1,dive"`
}

type DecisionDTO struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// ActivationResult tells the caller whether this call did the activation or
// another actor got there first. A lost race is not an error.
type ActivationResult struct {
	Request   *model.BorrowRequest `json:"request"`
	Activated bool                 `json:"activated"`
}

// InboxCounts are the exact badge numbers for each role-scoped inbox,
// independent of any page bound on the displayed lists.
type InboxCounts struct {
	PendingOwner       int64 `json:"pending_owner"`
	PendingHeadmaster  int64 `json:"pending_headmaster"`
	AwaitingActivation int64 `json:"awaiting_activation"`
	UnreadApproved     int64 `json:"unread_approved"`
}

// Tab is one entry of the role-driven dashboard navigation.
type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Badge int64  `json:"badge,omitempty"`
}

// BuildTabs derives the ordered dashboard tab list from the actor's roles
// and the badge counts. Pure function, no I/O.
func BuildTabs(set RoleSet, counts InboxCounts) []Tab {
	tabs := []Tab{
		{Key: "my_requests", Label: "Pengajuan Saya", Badge: counts.UnreadApproved},
	}
	if set.IsOwner() || set.IsAdmin() {
		tabs = append(tabs, Tab{Key: "owner_inbox", Label: "Review Owner", Badge: counts.PendingOwner})
	}
	if set.IsHeadmaster() || set.IsAdmin() {
		tabs = append(tabs, Tab{Key: "headmaster_inbox", Label: "Persetujuan Kepsek", Badge: counts.PendingHeadmaster})
	}
	if set.CanApproveRequests() {
		tabs = append(tabs, Tab{Key: "awaiting_activation", Label: "Menunggu Aktivasi", Badge: counts.AwaitingActivation})
	}
	tabs = append(tabs, Tab{Key: "realtime", Label: "Aktivitas"})
	return tabs
}

type DashboardSummary struct {
	TotalItems       int64   `json:"total_items"`
	TotalDepartments int64   `json:"total_departments"`
	MyRequests       int64   `json:"my_requests"`
	ActiveLoans      int64   `json:"active_loans"`
	TodayRequests    int64   `json:"today_requests"`
	Counts           InboxCounts `json:"counts"`
	Tabs             []Tab   `json:"tabs"`
	RoleLabels       []string `json:"role_labels"`
}

type RealtimeBoard struct {
	ActiveLoans  []model.BorrowRequest `json:"active_loans"`
	Recent       []model.BorrowRequest `json:"recent"`
	TotalActive  int64                 `json:"total_active"`
	TotalToday   int64                 `json:"total_today"`
	MostBorrowed string                `json:"most_borrowed"`
}

// LetterGenerator is the slice of the letter bridge the state machine needs
// to trigger generation after headmaster approval.
type LetterGenerator interface {
	Generate(ctx context.Context, requestID uuid.UUID, letterType string) (*LetterResult, error)
}

// --- Interface ---

// RequestService owns the borrow-request lifecycle. Every transition
// validates the actor's capability and the lifecycle edge before touching
// the store, and applies the change as one conditional update so partial
// mutations cannot happen.
type RequestService interface {
	Create(ctx context.Context, borrowerID uuid.UUID, req CreateRequestDTO) (*model.BorrowRequest, error)
	Submit(ctx context.Context, actorID, requestID uuid.UUID) (*model.BorrowRequest, error)
	OwnerReview(ctx context.Context, actorID, requestID uuid.UUID, decision DecisionDTO) (*model.BorrowRequest, error)
	HeadmasterDecide(ctx context.Context, actorID, requestID uuid.UUID, decision DecisionDTO) (*model.BorrowRequest, error)
	Activate(ctx context.Context, actorID, requestID uuid.UUID) (*ActivationResult, error)
	Complete(ctx context.Context, actorID, requestID uuid.UUID) (*model.BorrowRequest, error)
	MarkLetterViewed(ctx context.Context, actorID, requestID uuid.UUID) error

	Detail(ctx context.Context, requestID uuid.UUID) (*model.BorrowRequest, error)
	ListMine(ctx context.Context, borrowerID uuid.UUID, page, limit int) ([]model.BorrowRequest, int64, error)
	OwnerInbox(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error)
	HeadmasterInbox(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error)
	AwaitingActivation(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error)
	Counts(ctx context.Context, actorID uuid.UUID) (*InboxCounts, error)
	Dashboard(ctx context.Context, actorID uuid.UUID) (*DashboardSummary, error)
	Realtime(ctx context.Context) (*RealtimeBoard, error)
}

type requestService struct {
	requests repository.RequestRepository
	items    repository.ItemRepository
	audit    repository.AuditRepository
	txm      repository.TransactionManager
	roles    RoleService
	letters  LetterGenerator
	feed     *realtime.Feed
}

func NewRequestService(
	requests repository.RequestRepository,
	items repository.ItemRepository,
	audit repository.AuditRepository,
	txm repository.TransactionManager,
	roles RoleService,
	letters LetterGenerator,
	feed *realtime.Feed,
) RequestService {
	return &requestService{
		requests: requests,
		items:    items,
		audit:    audit,
		txm:      txm,
		roles:    roles,
		letters:  letters,
		feed:     feed,
	}
}

// --- Lifecycle ---

func (s *requestService) Create(ctx context.Context, borrowerID uuid.UUID, req CreateRequestDTO) (*model.BorrowRequest, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", model.ErrInvalidInput)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", model.ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date before start_date: %w", model.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("request needs at least one item: %w", model.ErrInvalidInput)
	}

	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	lines := make([]model.RequestItem, 0, len(req.Items))
	for _, line := range req.Items {
		itemID, parseErr := uuid.Parse(line.ItemID)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", line.ItemID, model.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive: %w", model.ErrInvalidInput)
		}
		itemIDs = append(itemIDs, itemID)
		lines = append(lines, model.RequestItem{ItemID: itemID, Quantity: line.Quantity})
	}

	found, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	if len(found) != len(itemIDs) {
		return nil, fmt.Errorf("unknown item in request: %w", model.ErrNotFound)
	}

	request := &model.BorrowRequest{
		Status:        model.StatusDraft,
		Purpose:       req.Purpose,
		StartDate:     start,
		EndDate:       end,
		LocationUsage: req.LocationUsage,
		PICName:       req.PICName,
		PICContact:    req.PICContact,
		BorrowerID:    borrowerID,
		Items:         lines,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requests.Create(txCtx, request); createErr != nil {
			return fmt.Errorf("failed to create request: %w", createErr)
		}
		return s.writeAudit(txCtx, borrowerID, model.ActionCreateRequest, request, map[string]any{
			"purpose": req.Purpose,
			"items":   len(req.Items),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(realtime.EventInsert, request)
	return s.requests.FindByID(ctx, request.ID)
}

func (s *requestService) Submit(ctx context.Context, actorID, requestID uuid.UUID) (*model.BorrowRequest, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	// Only the borrower submits their own draft; no role grants this.
	if request.BorrowerID != actorID {
		return nil, fmt.Errorf("submit: not the borrower: %w", model.ErrUnauthorized)
	}
	if !model.CanTransition(request.Status, model.StatusPendingOwner) {
		return nil, fmt.Errorf("submit from %s: %w", request.Status, model.ErrInvalidTransition)
	}
	if len(request.Items) == 0 {
		return nil, fmt.Errorf("submit: request has no items: %w", model.ErrInvalidInput)
	}

	now := time.Now()
	if err := s.transition(ctx, actorID, request, model.StatusPendingOwner,
		map[string]any{"submitted_at": now},
		model.ActionSubmitRequest, nil); err != nil {
		return nil, err
	}
	return s.requests.FindByID(ctx, requestID)
}

// OwnerReview moves a pending_owner request forward or rejects it. A
// department-scoped owner may only review requests containing at least one
// item of their department; admins and unscoped owners review anything.
func (s *requestService) OwnerReview(ctx context.Context, actorID, requestID uuid.UUID, decision DecisionDTO) (*model.BorrowRequest, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsOwner() && !set.IsAdmin() {
		return nil, fmt.Errorf("owner review: %w", model.ErrUnauthorized)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !set.IsAdmin() {
		if deptID := set.OwnerDepartmentID(); deptID != nil && !requestHasDepartment(request, *deptID) {
			return nil, fmt.Errorf("owner review: request outside department: %w", model.ErrUnauthorized)
		}
	}

	target := model.StatusPendingHeadmaster
	action := model.ActionOwnerApprove
	sets := map[string]any{"owner_reviewed_by": actorID}
	if !decision.Approve {
		target = model.StatusRejected
		action = model.ActionOwnerReject
		sets["rejection_reason"] = decision.Reason
	}
	if !model.CanTransition(request.Status, target) {
		return nil, fmt.Errorf("owner review from %s: %w", request.Status, model.ErrInvalidTransition)
	}

	if err := s.transition(ctx, actorID, request, target, sets, action,
		map[string]any{"reason": decision.Reason}); err != nil {
		return nil, err
	}
	return s.requests.FindByID(ctx, requestID)
}

// HeadmasterDecide gives or denies final approval. On approval the borrow
// letter is generated asynchronously; a generation failure is logged and
// left for manual re-trigger, it never rolls the approval back.
func (s *requestService) HeadmasterDecide(ctx context.Context, actorID, requestID uuid.UUID, decision DecisionDTO) (*model.BorrowRequest, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsHeadmaster() && !set.IsAdmin() {
		return nil, fmt.Errorf("headmaster decision: %w", model.ErrUnauthorized)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	target := model.StatusApproved
	action := model.ActionHeadmasterApprove
	sets := map[string]any{"headmaster_approved_by": actorID}
	if !decision.Approve {
		target = model.StatusRejected
		action = model.ActionHeadmasterReject
		sets["rejection_reason"] = decision.Reason
	}
	if !model.CanTransition(request.Status, target) {
		return nil, fmt.Errorf("headmaster decision from %s: %w", request.Status, model.ErrInvalidTransition)
	}

	if err := s.transition(ctx, actorID, request, target, sets, action,
		map[string]any{"reason": decision.Reason}); err != nil {
		return nil, err
	}

	if decision.Approve && s.letters != nil {
		go func() {
			genCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, genErr := s.letters.Generate(genCtx, requestID, model.LetterInternal); genErr != nil {
				log.Printf("letter generation for %s failed, manual retry available: %v", requestID, genErr)
			}
		}()
	}

	return s.requests.FindByID(ctx, requestID)
}

// Activate starts the loan. The update is conditioned on the stored status
// still being approved, so of N racing activations exactly one wins; the
// losers get Activated=false and the already-active request back.
func (s *requestService) Activate(ctx context.Context, actorID, requestID uuid.UUID) (*ActivationResult, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsOwner() && !set.IsAdmin() {
		return nil, fmt.Errorf("activate: %w", model.ErrUnauthorized)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(request.Status, model.StatusActive) {
		return nil, fmt.Errorf("activate from %s: %w", request.Status, model.ErrInvalidTransition)
	}

	now := time.Now()
	affected, err := s.requests.TransitionStatus(ctx, requestID, model.StatusApproved, model.StatusActive,
		map[string]any{"activated_at": now})
	if err != nil {
		return nil, fmt.Errorf("activate: %w", err)
	}

	current, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		// Another actor raced us. Already active means the work is done;
		// anything else is a real conflict.
		if current.Status == model.StatusActive {
			return &ActivationResult{Request: current, Activated: false}, nil
		}
		return nil, fmt.Errorf("activate: status changed to %s: %w", current.Status, model.ErrConflict)
	}

	if err := s.writeAudit(ctx, actorID, model.ActionActivateLoan, current, nil); err != nil {
		log.Printf("audit write failed for %s: %v", model.ActionActivateLoan, err)
	}
	s.publish(realtime.EventUpdate, current)
	return &ActivationResult{Request: current, Activated: true}, nil
}

func (s *requestService) Complete(ctx context.Context, actorID, requestID uuid.UUID) (*model.BorrowRequest, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsOwner() && !set.IsAdmin() {
		return nil, fmt.Errorf("complete: %w", model.ErrUnauthorized)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(request.Status, model.StatusCompleted) {
		return nil, fmt.Errorf("complete from %s: %w", request.Status, model.ErrInvalidTransition)
	}

	now := time.Now()
	if err := s.transition(ctx, actorID, request, model.StatusCompleted,
		map[string]any{"returned_at": now},
		model.ActionCompleteLoan, nil); err != nil {
		return nil, err
	}
	return s.requests.FindByID(ctx, requestID)
}

// MarkLetterViewed records the borrower's first opening of the approved
// letter. Idempotent: repeat calls match zero rows and succeed.
func (s *requestService) MarkLetterViewed(ctx context.Context, actorID, requestID uuid.UUID) error {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.BorrowerID != actorID {
		return fmt.Errorf("mark letter viewed: not the borrower: %w", model.ErrUnauthorized)
	}

	affected, err := s.requests.MarkLetterViewed(ctx, requestID, actorID, time.Now())
	if err != nil {
		return fmt.Errorf("mark letter viewed: %w", err)
	}
	if affected > 0 {
		// No status change, but unread-letter badges listen for updates.
		s.publish(realtime.EventUpdate, request)
	}
	return nil
}

// transition applies one validated edge as a conditional update plus audit
// log in a single transaction, then publishes the change event.
func (s *requestService) transition(ctx context.Context, actorID uuid.UUID, request *model.BorrowRequest, target string, sets map[string]any, action string, details map[string]any) error {
	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		affected, txErr := s.requests.TransitionStatus(txCtx, request.ID, request.Status, target, sets)
		if txErr != nil {
			return fmt.Errorf("transition to %s: %w", target, txErr)
		}
		if affected == 0 {
			return fmt.Errorf("transition to %s lost a race: %w", target, model.ErrConflict)
		}
		return s.writeAudit(txCtx, actorID, action, request, details)
	})
	if err != nil {
		return err
	}

	request.Status = target
	s.publish(realtime.EventUpdate, request)
	return nil
}

// --- Projections ---

func (s *requestService) Detail(ctx context.Context, requestID uuid.UUID) (*model.BorrowRequest, error) {
	return s.requests.FindByID(ctx, requestID)
}

func (s *requestService) ListMine(ctx context.Context, borrowerID uuid.UUID, page, limit int) ([]model.BorrowRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.requests.ListByBorrower(ctx, borrowerID, (page-1)*limit, limit)
}

func (s *requestService) OwnerInbox(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsOwner() && !set.IsAdmin() {
		return nil, fmt.Errorf("owner inbox: %w", model.ErrUnauthorized)
	}
	if !set.IsAdmin() {
		if deptID := set.OwnerDepartmentID(); deptID != nil {
			return s.requests.ListByStatusForDepartment(ctx, model.StatusPendingOwner, *deptID, 0, limit)
		}
	}
	return s.requests.ListByStatus(ctx, model.StatusPendingOwner, 0, limit)
}

func (s *requestService) HeadmasterInbox(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error) {
	set := s.roles.Resolve(ctx, actorID)
	if !set.IsHeadmaster() && !set.IsAdmin() {
		return nil, fmt.Errorf("headmaster inbox: %w", model.ErrUnauthorized)
	}
	return s.requests.ListByStatus(ctx, model.StatusPendingHeadmaster, 0, limit)
}

// AwaitingActivation lists approved-but-not-started loans. Borrowers see it
// to know their letter is ready; owners see it with the activation
// affordance.
func (s *requestService) AwaitingActivation(ctx context.Context, actorID uuid.UUID, limit int) ([]model.BorrowRequest, error) {
	return s.requests.ListByStatus(ctx, model.StatusApproved, 0, limit)
}

func (s *requestService) Counts(ctx context.Context, actorID uuid.UUID) (*InboxCounts, error) {
	set := s.roles.Resolve(ctx, actorID)
	counts := &InboxCounts{}

	var err error
	if set.IsOwner() || set.IsAdmin() {
		if deptID := set.OwnerDepartmentID(); deptID != nil && !set.IsAdmin() {
			counts.PendingOwner, err = s.requests.CountByStatusForDepartment(ctx, model.StatusPendingOwner, *deptID)
		} else {
			counts.PendingOwner, err = s.requests.CountByStatus(ctx, model.StatusPendingOwner)
		}
		if err != nil {
			return nil, fmt.Errorf("count pending owner: %w", err)
		}
	}
	if set.IsHeadmaster() || set.IsAdmin() {
		if counts.PendingHeadmaster, err = s.requests.CountByStatus(ctx, model.StatusPendingHeadmaster); err != nil {
			return nil, fmt.Errorf("count pending headmaster: %w", err)
		}
	}
	if counts.AwaitingActivation, err = s.requests.CountByStatus(ctx, model.StatusApproved); err != nil {
		return nil, fmt.Errorf("count awaiting activation: %w", err)
	}
	if counts.UnreadApproved, err = s.requests.CountUnreadApproved(ctx, actorID); err != nil {
		return nil, fmt.Errorf("count unread approved: %w", err)
	}
	return counts, nil
}

func (s *requestService) Dashboard(ctx context.Context, actorID uuid.UUID) (*DashboardSummary, error) {
	set := s.roles.Resolve(ctx, actorID)

	counts, err := s.Counts(ctx, actorID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		Counts:     *counts,
		Tabs:       BuildTabs(set, *counts),
		RoleLabels: set.RoleLabels(),
	}

	if summary.TotalItems, err = s.items.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	departments, err := s.roles.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count departments: %w", err)
	}
	summary.TotalDepartments = int64(len(departments))

	if summary.MyRequests, err = s.requests.CountByBorrower(ctx, actorID); err != nil {
		return nil, fmt.Errorf("count my requests: %w", err)
	}
	if summary.ActiveLoans, err = s.requests.CountByStatus(ctx, model.StatusActive); err != nil {
		return nil, fmt.Errorf("count active loans: %w", err)
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	if summary.TodayRequests, err = s.requests.CountCreatedSince(ctx, midnight); err != nil {
		return nil, fmt.Errorf("count today requests: %w", err)
	}
	return summary, nil
}

func (s *requestService) Realtime(ctx context.Context) (*RealtimeBoard, error) {
	active, err := s.requests.ListByStatus(ctx, model.StatusActive, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}

	recent, err := s.requests.ListRecent(ctx, time.Now().Add(-24*time.Hour), 10)
	if err != nil {
		return nil, fmt.Errorf("list recent requests: %w", err)
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	today, err := s.requests.CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("count today requests: %w", err)
	}

	return &RealtimeBoard{
		ActiveLoans:  active,
		Recent:       recent,
		TotalActive:  int64(len(active)),
		TotalToday:   today,
		MostBorrowed: mostBorrowedItem(active),
	}, nil
}

// --- Helpers ---

func requestHasDepartment(request *model.BorrowRequest, departmentID uuid.UUID) bool {
	for _, line := range request.Items {
		if line.Item != nil && line.Item.DepartmentID == departmentID {
			return true
		}
	}
	return false
}

func mostBorrowedItem(loans []model.BorrowRequest) string {
	freq := make(map[string]int)
	for _, loan := range loans {
		for _, line := range loan.Items {
			if line.Item != nil {
				freq[line.Item.Name] += line.Quantity
			}
		}
	}
	best, bestCount := "-", 0
	for name, count := range freq {
		if count > bestCount {
			best, bestCount = name, count
		}
	}
	return best
}

func (s *requestService) writeAudit(ctx context.Context, actorID uuid.UUID, action string, request *model.BorrowRequest, extra map[string]any) error {
	payload := map[string]any{"status": request.Status}
	for k, v := range extra {
		payload[k] = v
	}
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityID:   request.ID.String(),
		EntityName: request.Purpose,
		Details:    string(details),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *requestService) publish(event string, request *model.BorrowRequest) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(realtime.ChangeEvent{
		Event: event,
		Table: requestsTable,
		Row: map[string]any{
			"id":          request.ID,
			"status":      request.Status,
			"borrower_id": request.BorrowerID,
		},
	})
}
