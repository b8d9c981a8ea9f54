package request

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/core/events"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

// Repository defines the data access methods for cash requests
type Repository interface {
	Create(req *CashRequest) error
	GetByID(id int64) (*CashRequest, error)
	ListAll() ([]*CashRequest, error)
	ListByRequester(requesterID int64) ([]*CashRequest, error)
	ListByStatus(status string) ([]*CashRequest, error)
	// TransitionStatus moves a pending request to a terminal status. It
	// must only touch rows still in the pending state and report whether
	// a row was actually updated, so concurrent decisions cannot both win.
	TransitionStatus(id int64, status string, approvedBy int64, approvedAt time.Time) (bool, error)
}

// ApproverResolver yields the users eligible to approve a given amount.
type ApproverResolver interface {
	EligibleApprovers(amount float64) ([]*user.User, error)
}

// UserDirectory resolves user records for notification addressing.
type UserDirectory interface {
	GetUserByID(id int64) (*user.User, error)
}

// EventPublisher is the outbound boundary for notification intents.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service orchestrates the cash request lifecycle: submission, decision
// and the notification intents both emit.
type Service struct {
	repo     Repository
	resolver ApproverResolver
	users    UserDirectory
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo Repository, resolver ApproverResolver, users UserDirectory, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		users:    users,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Submit validates and persists a new pending request, then emits a
// notification intent for every eligible approver. Notification problems
// never fail the submission.
func (s *Service) Submit(ctx context.Context, requesterID int64, dto SubmitRequestDTO) (*CashRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err, "requester_id", requesterID)
		return nil, err
	}

	now := time.Now()
	req := &CashRequest{
		RequesterID:  requesterID,
		Amount:       dto.Amount,
		Purpose:      strings.TrimSpace(dto.Purpose),
		Description:  dto.Description,
		CurrencyCode: dto.CurrencyCode,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "requester_id", requesterID)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("request submitted",
		"request_id", req.ID,
		"requester_id", requesterID,
		"amount", req.Amount,
		"purpose", req.Purpose)

	s.notifyApprovers(ctx, req)

	return req, nil
}

// notifyApprovers resolves the eligible approver set and publishes the
// submitted event. Best effort only.
func (s *Service) notifyApprovers(ctx context.Context, req *CashRequest) {
	approvers, err := s.resolver.EligibleApprovers(req.Amount)
	if err != nil {
		s.logger.Error("approver resolution failed, request stays pending unnotified",
			"error", err, "request_id", req.ID)
		return
	}

	if len(approvers) == 0 {
		// No rule covers this amount: nobody is notified and the request
		// stays pending until a matching rule appears.
		s.logger.Warn("no eligible approvers for request",
			"request_id", req.ID, "amount", req.Amount)
		return
	}

	requesterName := s.lookupUserName(req.RequesterID)

	recipients := make([]events.Recipient, 0, len(approvers))
	for _, a := range approvers {
		recipients = append(recipients, events.Recipient{Email: a.Email, Name: a.Name})
	}

	event := events.NewRequestSubmittedEvent(
		req.ID, requesterName, req.Amount, req.CurrencyCode, req.Purpose, req.Description, recipients)

	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish submitted event", "error", err, "request_id", req.ID)
	}
}

// Decide moves a pending request to approved or rejected, stamping the
// acting approver and decision time. Terminal requests cannot move again.
// Whether the actor was an eligible approver for this amount is enforced
// at the route layer, not here.
func (s *Service) Decide(ctx context.Context, requestID, actorID int64, dto DecideRequestDTO) (*CashRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("decision validation failed", "error", err, "request_id", requestID)
		return nil, err
	}

	req, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("request not found for decision", "error", err, "request_id", requestID)
		return nil, errors.ErrRequestNotFound
	}

	if !req.CanBeDecided() {
		s.logger.Warn("cannot decide request in current status",
			"request_id", requestID,
			"current_status", req.Status)
		return nil, errors.ErrInvalidStateTransition
	}

	status := StatusApproved
	if dto.Decision == DecisionReject {
		status = StatusRejected
	}

	decidedAt := time.Now()
	updated, err := s.repo.TransitionStatus(requestID, status, actorID, decidedAt)
	if err != nil {
		s.logger.Error("failed to transition request status", "error", err, "request_id", requestID)
		return nil, errors.NewStorageError(err)
	}
	if !updated {
		// lost the race against a concurrent decision
		s.logger.Warn("request already decided concurrently", "request_id", requestID)
		return nil, errors.ErrInvalidStateTransition
	}

	req.Status = status
	req.ApprovedBy = &actorID
	req.ApprovedAt = &decidedAt

	s.logger.Info("request decided",
		"request_id", requestID,
		"decision", dto.Decision,
		"decided_by", actorID,
		"amount", req.Amount)

	s.notifyRequester(ctx, req, dto.Decision, actorID)

	return req, nil
}

// notifyRequester publishes the decided event toward the original
// requester. Best effort only.
func (s *Service) notifyRequester(ctx context.Context, req *CashRequest, decision string, actorID int64) {
	requester, err := s.users.GetUserByID(req.RequesterID)
	if err != nil {
		s.logger.Error("failed to load requester for notification",
			"error", err, "request_id", req.ID, "requester_id", req.RequesterID)
		return
	}

	event := events.NewRequestDecidedEvent(
		req.ID,
		events.Recipient{Email: requester.Email, Name: requester.Name},
		req.Amount,
		req.Purpose,
		decision,
		s.lookupUserName(actorID),
	)

	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish decided event", "error", err, "request_id", req.ID)
	}
}

func (s *Service) lookupUserName(userID int64) string {
	u, err := s.users.GetUserByID(userID)
	if err != nil {
		s.logger.Warn("failed to resolve user name", "error", err, "user_id", userID)
		return ""
	}
	return u.Name
}

func (s *Service) GetByID(requestID int64) (*CashRequest, error) {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("failed to get request", "error", err, "request_id", requestID)
		return nil, errors.ErrRequestNotFound
	}
	return req, nil
}

func (s *Service) ListAll() ([]*CashRequest, error) {
	requests, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list requests", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return requests, nil
}

func (s *Service) ListByRequester(requesterID int64) ([]*CashRequest, error) {
	requests, err := s.repo.ListByRequester(requesterID)
	if err != nil {
		s.logger.Error("failed to list requests for requester", "error", err, "requester_id", requesterID)
		return nil, errors.NewStorageError(err)
	}
	return requests, nil
}

func (s *Service) ListPending() ([]*CashRequest, error) {
	requests, err := s.repo.ListByStatus(StatusPending)
	if err != nil {
		s.logger.Error("failed to list pending requests", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return requests, nil
}

// Summary aggregates request counts and amounts per status for the
// reports screen.
func (s *Service) Summary() ([]StatusSummary, error) {
	requests, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to load requests for summary", "error", err)
		return nil, errors.NewStorageError(err)
	}

	byStatus := map[string]*StatusSummary{}
	for _, req := range requests {
		entry, ok := byStatus[req.Status]
		if !ok {
			entry = &StatusSummary{Status: req.Status}
			byStatus[req.Status] = entry
		}
		entry.Count++
		entry.Total += req.Amount
	}

	summaries := make([]StatusSummary, 0, len(byStatus))
	for _, status := range []string{StatusPending, StatusApproved, StatusRejected} {
		if entry, ok := byStatus[status]; ok {
			summaries = append(summaries, *entry)
		}
	}
	return summaries, nil
}
