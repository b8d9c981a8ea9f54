package receipt

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/request"
)

// Repository defines the data access methods for receipts
type Repository interface {
	Create(rec *Receipt) error
	GetByRequestID(requestID int64) (*Receipt, error)
	Exists(requestID int64) (bool, error)
	ListAll() ([]*Receipt, error)
}

// RequestReader exposes the request lookups the receipt flow depends on.
type RequestReader interface {
	GetByID(id int64) (*request.CashRequest, error)
	ListByStatus(status string) ([]*request.CashRequest, error)
}

// Service enforces the receipt rules: only approved requests take a
// receipt, and each request takes at most one.
type Service struct {
	repo     Repository
	requests RequestReader
	logger   *slog.Logger
}

func NewService(repo Repository, requests RequestReader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		requests: requests,
		logger:   logger,
	}
}

// Attach records a receipt against an approved request. filePath is the
// stored upload location, empty when only metadata was supplied.
func (s *Service) Attach(requestID, uploadedBy int64, filePath string, dto AttachReceiptDTO) (*Receipt, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("receipt validation failed", "error", err, "request_id", requestID)
		return nil, err
	}

	req, err := s.requests.GetByID(requestID)
	if err != nil {
		s.logger.Error("request not found for receipt", "error", err, "request_id", requestID)
		return nil, errors.ErrRequestNotFound
	}

	if req.Status != request.StatusApproved {
		s.logger.Warn("receipt attach on non-approved request",
			"request_id", requestID, "status", req.Status)
		return nil, errors.ErrInvalidStateTransition
	}

	exists, err := s.repo.Exists(requestID)
	if err != nil {
		s.logger.Error("failed to check existing receipt", "error", err, "request_id", requestID)
		return nil, errors.NewStorageError(err)
	}
	if exists {
		s.logger.Warn("duplicate receipt attach", "request_id", requestID)
		return nil, errors.ErrDuplicateReceipt
	}

	rec := &Receipt{
		RequestID:  requestID,
		FilePath:   filePath,
		Amount:     dto.Amount,
		Merchant:   dto.Merchant,
		Notes:      dto.Notes,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now(),
	}

	if err := s.repo.Create(rec); err != nil {
		s.logger.Error("failed to create receipt", "error", err, "request_id", requestID)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("receipt attached",
		"receipt_id", rec.ID,
		"request_id", requestID,
		"uploaded_by", uploadedBy)

	return rec, nil
}

func (s *Service) GetByRequestID(requestID int64) (*Receipt, error) {
	rec, err := s.repo.GetByRequestID(requestID)
	if err != nil {
		s.logger.Error("receipt not found", "error", err, "request_id", requestID)
		return nil, errors.NewNotFoundError("receipt not found", errors.ErrCodeRequestNotFound)
	}
	return rec, nil
}

// ListPendingReceipts returns approved requests that still have no
// receipt attached.
func (s *Service) ListPendingReceipts() ([]*PendingReceipt, error) {
	approved, err := s.requests.ListByStatus(request.StatusApproved)
	if err != nil {
		s.logger.Error("failed to list approved requests", "error", err)
		return nil, errors.NewStorageError(err)
	}

	receipts, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list receipts", "error", err)
		return nil, errors.NewStorageError(err)
	}

	covered := make(map[int64]struct{}, len(receipts))
	for _, rec := range receipts {
		covered[rec.RequestID] = struct{}{}
	}

	pending := make([]*PendingReceipt, 0)
	for _, req := range approved {
		if _, ok := covered[req.ID]; ok {
			continue
		}
		pending = append(pending, &PendingReceipt{
			RequestID:    req.ID,
			RequesterID:  req.RequesterID,
			Amount:       req.Amount,
			Purpose:      req.Purpose,
			CurrencyCode: req.CurrencyCode,
		})
	}
	return pending, nil
}
