package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"borrowdesk/internal/model"
	"borrowdesk/internal/realtime"
	"borrowdesk/internal/repository"

	"github.com/google/uuid"
)

// LetterResult is the outcome of one generation call.
type LetterResult struct {
	Success      bool   `json:"success"`
	PDFURL       string `json:"pdf_url,omitempty"`
	LetterNumber string `json:"letter_number,omitempty"`
	Error        string `json:"error,omitempty"`
}

// LetterService bridges to the external document service that renders
// borrow letters. Generation is one-shot: a failure is surfaced to the
// caller for a manual re-trigger, never silently retried, since the remote
// side only guarantees idempotency through file-path overwrite.
type LetterService interface {
	LetterGenerator
	Fetch(ctx context.Context, requestID uuid.UUID) (io.ReadCloser, string, error)
}

type letterService struct {
	requests repository.RequestRepository
	audit    repository.AuditRepository
	txm      repository.TransactionManager
	feed     *realtime.Feed

	baseURL string
	client  *http.Client
}

// NewLetterService builds the bridge. timeout bounds every remote call so a
// stuck document service surfaces as a recoverable error instead of a hang.
func NewLetterService(
	requests repository.RequestRepository,
	audit repository.AuditRepository,
	txm repository.TransactionManager,
	feed *realtime.Feed,
	baseURL string,
	timeout time.Duration,
) LetterService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &letterService{
		requests: requests,
		audit:    audit,
		txm:      txm,
		feed:     feed,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

type generateLetterRequest struct {
	RequestID  string `json:"requestId"`
	LetterType string `json:"letterType"`
}

type generateLetterResponse struct {
	Success bool   `json:"success"`
	PDFURL  string `json:"pdfUrl"`
	Error   string `json:"error"`
}

func (s *letterService) Generate(ctx context.Context, requestID uuid.UUID, letterType string) (*LetterResult, error) {
	if letterType != model.LetterInternal && letterType != model.LetterOfficial {
		return nil, fmt.Errorf("unknown letter type %q: %w", letterType, model.ErrInvalidInput)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	switch request.Status {
	case model.StatusApproved, model.StatusActive, model.StatusCompleted:
	default:
		return nil, fmt.Errorf("letter for %s request: %w", request.Status, model.ErrInvalidTransition)
	}

	body, _ := json.Marshal(generateLetterRequest{
		RequestID:  requestID.String(),
		LetterType: letterType,
	})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/generate-letter", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("document service unreachable: %w", model.ErrRemoteFailure)
	}
	defer resp.Body.Close()

	var result generateLetterResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("document service returned malformed response: %w", model.ErrRemoteFailure)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("letter generation failed: %s: %w", msg, model.ErrRemoteFailure)
	}

	now := time.Now()
	prefix := fmt.Sprintf("SPB/%d/", now.Year())
	var letterNumber string
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		if letterNumber, txErr = s.requests.AssignLetterNumber(txCtx, requestID, prefix); txErr != nil {
			return fmt.Errorf("assign letter number: %w", txErr)
		}
		if txErr = s.requests.SetLetterArtifact(txCtx, requestID, result.PDFURL, now); txErr != nil {
			return fmt.Errorf("store letter url: %w", txErr)
		}

		details, _ := json.Marshal(map[string]any{
			"letter_number": letterNumber,
			"letter_type":   letterType,
		})
		entry := &model.AuditLog{
			Action:     model.ActionGenerateLetter,
			EntityID:   requestID.String(),
			EntityName: letterNumber,
			Details:    string(details),
		}
		if txErr = s.audit.Create(txCtx, entry); txErr != nil {
			return fmt.Errorf("failed to write audit log: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish(realtime.ChangeEvent{
			Event: realtime.EventUpdate,
			Table: requestsTable,
			Row: map[string]any{
				"id":          requestID,
				"status":      request.Status,
				"borrower_id": request.BorrowerID,
			},
		})
	}

	return &LetterResult{
		Success:      true,
		PDFURL:       result.PDFURL,
		LetterNumber: letterNumber,
	}, nil
}

// Fetch streams the generated letter PDF for the public verify endpoint.
// The caller owns the returned body.
func (s *letterService) Fetch(ctx context.Context, requestID uuid.UUID) (io.ReadCloser, string, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	if request.LetterPDFURL == "" {
		return nil, "", fmt.Errorf("letter not generated yet: %w", model.ErrNotFound)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, request.LetterPDFURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build letter fetch: %w", err)
	}
	httpReq.Header.Set("Accept", "application/pdf")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("letter store unreachable: %w", model.ErrRemoteFailure)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("letter fetch returned %s: %w", resp.Status, model.ErrRemoteFailure)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return resp.Body, contentType, nil
}
