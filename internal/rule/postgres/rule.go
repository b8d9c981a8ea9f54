package postgres

import (
	"errors"

	"gorm.io/gorm"

	ruleDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/rule"
	"github.com/frahmantamala/petty-cash-management/internal/rule"
)

// RuleRepository implements the rule.Repository interface using GORM
type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) rule.Repository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) GetByID(id int64) (*rule.ApprovalRule, error) {
	var record ruleDatamodel.ApprovalRule
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("rule not found")
		}
		return nil, err
	}
	return rule.FromDataModel(&record), nil
}

func (r *RuleRepository) ListAll() ([]*rule.ApprovalRule, error) {
	var records []*ruleDatamodel.ApprovalRule
	err := r.db.Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return rule.FromDataModelSlice(records), nil
}

func (r *RuleRepository) ListActive() ([]*rule.ApprovalRule, error) {
	var records []*ruleDatamodel.ApprovalRule
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return rule.FromDataModelSlice(records), nil
}

func (r *RuleRepository) Save(ar *rule.ApprovalRule) error {
	record := rule.ToDataModel(ar)
	if err := r.db.Save(record).Error; err != nil {
		return err
	}
	ar.ID = record.ID
	return nil
}
