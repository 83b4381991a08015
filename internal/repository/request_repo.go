package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"borrowdesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository persists borrow requests. Status transitions go through
// TransitionStatus, a conditional update keyed on the current status, so a
// lost race shows up as zero affected rows instead of a double transition.
type RequestRepository interface {
	Create(ctx context.Context, req *model.BorrowRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BorrowRequest, error)

	ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.BorrowRequest, error)
	ListByStatusForDepartment(ctx context.Context, status string, departmentID uuid.UUID, offset, limit int) ([]model.BorrowRequest, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID, offset, limit int) ([]model.BorrowRequest, int64, error)
	ListRecent(ctx context.Context, since time.Time, limit int) ([]model.BorrowRequest, error)

	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByStatusForDepartment(ctx context.Context, status string, departmentID uuid.UUID) (int64, error)
	CountByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error)
	CountUnreadApproved(ctx context.Context, borrowerID uuid.UUID) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, sets map[string]any) (int64, error)
	MarkLetterViewed(ctx context.Context, id, borrowerID uuid.UUID, viewedAt time.Time) (int64, error)
	SetLetterArtifact(ctx context.Context, id uuid.UUID, pdfURL string, generatedAt time.Time) error
	AssignLetterNumber(ctx context.Context, id uuid.UUID, prefix string) (string, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.BorrowRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BorrowRequest, error) {
	var req model.BorrowRequest
	err := GetDB(ctx, r.db).
		Preload("Items.Item.Department").
		Preload("Borrower").
		Preload("OwnerReviewer").
		Preload("HeadmasterApprover").
		First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Inbox queries order oldest-first so earlier requests get reviewed first.
// limit <= 0 means no page bound (full-list views).
func (r *requestRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	query := GetDB(ctx, r.db).
		Preload("Items.Item").
		Preload("Borrower").
		Where("status = ?", status).
		Order("created_at ASC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListByStatusForDepartment(ctx context.Context, status string, departmentID uuid.UUID, offset, limit int) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	query := GetDB(ctx, r.db).
		Preload("Items.Item").
		Preload("Borrower").
		Where("borrow_requests.status = ?", status).
		Where("EXISTS (SELECT 1 FROM request_items ri JOIN items i ON i.id = ri.item_id"+
			" WHERE ri.request_id = borrow_requests.id AND i.department_id = ?)", departmentID).
		Order("borrow_requests.created_at ASC").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID, offset, limit int) ([]model.BorrowRequest, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.BorrowRequest{}).Where("borrower_id = ?", borrowerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.BorrowRequest
	if err := db.
		Preload("Items.Item").
		Where("borrower_id = ?", borrowerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *requestRepository) ListRecent(ctx context.Context, since time.Time, limit int) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	if err := GetDB(ctx, r.db).
		Preload("Items.Item.Department").
		Preload("Borrower").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).Where("status = ?", status).Count(&total).Error
	return total, err
}

func (r *requestRepository) CountByStatusForDepartment(ctx context.Context, status string, departmentID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("borrow_requests.status = ?", status).
		Where("EXISTS (SELECT 1 FROM request_items ri JOIN items i ON i.id = ri.item_id"+
			" WHERE ri.request_id = borrow_requests.id AND i.department_id = ?)", departmentID).
		Count(&total).Error
	return total, err
}

func (r *requestRepository) CountByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).Where("borrower_id = ?", borrowerID).Count(&total).Error
	return total, err
}

// CountUnreadApproved backs the borrower's unread-letter badge: approved
// requests whose letter has never been opened. Exact count, never
// page-bounded.
func (r *requestRepository) CountUnreadApproved(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("borrower_id = ? AND status = ? AND letter_viewed_at IS NULL", borrowerID, model.StatusApproved).
		Count(&total).Error
	return total, err
}

func (r *requestRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}

// TransitionStatus applies one edge of the lifecycle graph as a single
// conditional UPDATE. The returned affected-row count is 0 when the request
// was no longer in the expected status; the caller decides whether that is
// a benign lost race or a conflict to surface.
func (r *requestRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, sets map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for col, val := range sets {
		updates[col] = val
	}
	res := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// MarkLetterViewed sets letter_viewed_at exactly once. Repeat calls match
// zero rows and are silently idempotent.
func (r *requestRepository) MarkLetterViewed(ctx context.Context, id, borrowerID uuid.UUID, viewedAt time.Time) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("id = ? AND borrower_id = ? AND letter_viewed_at IS NULL", id, borrowerID).
		Update("letter_viewed_at", viewedAt)
	return res.RowsAffected, res.Error
}

func (r *requestRepository) SetLetterArtifact(ctx context.Context, id uuid.UUID, pdfURL string, generatedAt time.Time) error {
	return GetDB(ctx, r.db).Model(&model.BorrowRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"letter_pdf_url":          pdfURL,
			"letter_generated_pdf_at": generatedAt,
		}).Error
}

// AssignLetterNumber gives the request its letter number on first call and
// returns the existing one afterwards. The advisory lock serialises
// concurrent generations so two requests never share a sequence slot.
func (r *requestRepository) AssignLetterNumber(ctx context.Context, id uuid.UUID, prefix string) (string, error) {
	db := GetDB(ctx, r.db)

	var req model.BorrowRequest
	if err := db.Select("id", "letter_number").First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", model.ErrNotFound
		}
		return "", err
	}
	if req.LetterNumber != "" {
		return req.LetterNumber, nil
	}

	db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix)

	var count int64
	if err := db.Model(&model.BorrowRequest{}).
		Where("letter_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	number := fmt.Sprintf("%s%05d", prefix, count+1)
	if err := db.Model(&model.BorrowRequest{}).
		Where("id = ? AND (letter_number IS NULL OR letter_number = '')", id).
		Update("letter_number", number).Error; err != nil {
		return "", err
	}
	return number, nil
}
