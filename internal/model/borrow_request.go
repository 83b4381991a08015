package model

import (
	"time"

	"github.com/google/uuid"
)

// Borrow request status constants. Requests only move forward through the
// graph below; "rejected" is a terminal sink reachable from the two pending
// stages.
//
//	draft → pending_owner → pending_headmaster → approved → active → completed
//	                  ↘ rejected          ↘ rejected
const (
	StatusDraft             = "draft"
	StatusPendingOwner      = "pending_owner"
	StatusPendingHeadmaster = "pending_headmaster"
	StatusApproved          = "approved"
	StatusActive            = "active"
	StatusCompleted         = "completed"
	StatusRejected          = "rejected"
)

// transitions is the single source of truth for the lifecycle graph.
var transitions = map[string][]string{
	StatusDraft:             {StatusPendingOwner},
	StatusPendingOwner:      {StatusPendingHeadmaster, StatusRejected},
	StatusPendingHeadmaster: {StatusApproved, StatusRejected},
	StatusApproved:          {StatusActive},
	StatusActive:            {StatusCompleted},
}

// CanTransition reports whether from → to is an edge of the lifecycle graph.
// Skipping stages and moving backwards are never allowed.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether a request in this status can never move again.
// Letter fields stay mutable on completed requests (the borrower may still
// open the letter); everything else is frozen.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

// LetterType constants for generated borrow letters.
const (
	LetterInternal = "internal"
	LetterOfficial = "official"
)

// BorrowRequest is the aggregate root of a loan: who borrows what, for which
// period, and how far through the approval chain it has come.
type BorrowRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Status        string    `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Purpose       string    `gorm:"type:text;not null" json:"purpose"`
	StartDate     time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date"`
	LocationUsage string    `gorm:"type:text" json:"location_usage"`
	PICName       string    `gorm:"type:varchar(255)" json:"pic_name"`
	PICContact    string    `gorm:"type:varchar(50)" json:"pic_contact"`

	BorrowerID uuid.UUID `gorm:"type:uuid;not null;index" json:"borrower_id"`
	Borrower   *User     `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`

	// Stage actors, set exactly once when their stage completes.
	OwnerReviewedBy      *uuid.UUID `gorm:"type:uuid" json:"owner_reviewed_by"`
	OwnerReviewer        *User      `gorm:"foreignKey:OwnerReviewedBy" json:"owner_reviewer,omitempty"`
	HeadmasterApprovedBy *uuid.UUID `gorm:"type:uuid" json:"headmaster_approved_by"`
	HeadmasterApprover   *User      `gorm:"foreignKey:HeadmasterApprovedBy" json:"headmaster_approver,omitempty"`
	RejectionReason      string     `gorm:"type:text" json:"rejection_reason"`

	// Letter artifact. LetterNumber is assigned once, on first successful
	// generation. LetterViewedAt is null until the borrower first opens the
	// letter and never reverts.
	LetterNumber         string     `gorm:"type:varchar(50)" json:"letter_number"`
	LetterPDFURL         string     `gorm:"type:text" json:"letter_pdf_url"`
	LetterGeneratedPDFAt *time.Time `json:"letter_generated_pdf_at"`
	LetterViewedAt       *time.Time `json:"letter_viewed_at"`

	SubmittedAt *time.Time `json:"submitted_at"`
	ActivatedAt *time.Time `json:"activated_at"`
	ReturnedAt  *time.Time `json:"returned_at"`

	Items []RequestItem `gorm:"foreignKey:RequestID" json:"request_items"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RequestItem is one line of a borrow request. Quantity is bound at
// submission and never mutated afterwards; changing a request means
// cancelling and re-submitting a new one.
type RequestItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Item      *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
