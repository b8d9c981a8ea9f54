package rule

import (
	"log/slog"
	"time"

	errors "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

// Repository defines the data access methods for approval rules
type Repository interface {
	GetByID(id int64) (*ApprovalRule, error)
	ListAll() ([]*ApprovalRule, error)
	ListActive() ([]*ApprovalRule, error)
	Save(rule *ApprovalRule) error
}

// UserDirectory is the slice of the user store the resolver needs.
type UserDirectory interface {
	ListUsers() ([]*user.User, error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// EligibleApprovers resolves which users should be notified for a request
// of the given amount, using the full active rule set.
func (s *Service) EligibleApprovers(amount float64) ([]*user.User, error) {
	rules, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list active rules", "error", err)
		return nil, errors.NewStorageError(err)
	}

	users, err := s.users.ListUsers()
	if err != nil {
		s.logger.Error("failed to list users for resolution", "error", err)
		return nil, errors.NewStorageError(err)
	}

	resolved := ResolveApprovers(amount, rules, users)
	s.logger.Info("resolved eligible approvers",
		"amount", amount,
		"rules", len(rules),
		"approvers", len(resolved))

	return resolved, nil
}

func (s *Service) ListRules() ([]*ApprovalRule, error) {
	rules, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list rules", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return rules, nil
}

func (s *Service) ListActiveRules() ([]*ApprovalRule, error) {
	rules, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list active rules", "error", err)
		return nil, errors.NewStorageError(err)
	}
	return rules, nil
}

// SaveRule upserts a rule: ID present means update, absent means create.
// Rules are never deleted, only deactivated.
func (s *Service) SaveRule(dto SaveRuleDTO) (*ApprovalRule, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("rule validation failed", "error", err, "approver_id", dto.ApproverID)
		return nil, err
	}

	now := time.Now()
	var r *ApprovalRule

	if dto.ID > 0 {
		existing, err := s.repo.GetByID(dto.ID)
		if err != nil {
			s.logger.Error("rule not found for update", "error", err, "rule_id", dto.ID)
			return nil, errors.ErrRuleNotFound
		}
		existing.ApproverID = dto.ApproverID
		existing.AmountThreshold = dto.AmountThreshold
		existing.ApproveAll = dto.ApproveAll
		existing.IsActive = dto.Active()
		existing.UpdatedAt = now
		r = existing
	} else {
		r = &ApprovalRule{
			ApproverID:      dto.ApproverID,
			AmountThreshold: dto.AmountThreshold,
			ApproveAll:      dto.ApproveAll,
			IsActive:        dto.Active(),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	if dto.ApproveAll {
		// threshold is meaningless for unlimited authority
		r.AmountThreshold = 0
	}

	if err := s.repo.Save(r); err != nil {
		s.logger.Error("failed to save rule", "error", err, "approver_id", dto.ApproverID)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("rule saved",
		"rule_id", r.ID,
		"approver_id", r.ApproverID,
		"approve_all", r.ApproveAll,
		"threshold", r.AmountThreshold)

	return r, nil
}

// DeactivateRule turns a rule off without removing it.
func (s *Service) DeactivateRule(ruleID int64) (*ApprovalRule, error) {
	r, err := s.repo.GetByID(ruleID)
	if err != nil {
		s.logger.Error("rule not found for deactivation", "error", err, "rule_id", ruleID)
		return nil, errors.ErrRuleNotFound
	}

	r.Deactivate()
	if err := s.repo.Save(r); err != nil {
		s.logger.Error("failed to deactivate rule", "error", err, "rule_id", ruleID)
		return nil, errors.NewStorageError(err)
	}

	s.logger.Info("rule deactivated", "rule_id", ruleID)
	return r, nil
}
