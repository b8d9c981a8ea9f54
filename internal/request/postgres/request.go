package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	requestDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/request"
	"github.com/frahmantamala/petty-cash-management/internal/request"
)

// RequestRepository implements the request.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *request.CashRequest) error {
	record := request.ToDataModel(req)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	req.ID = record.ID
	return nil
}

func (r *RequestRepository) GetByID(id int64) (*request.CashRequest, error) {
	var record requestDatamodel.CashRequest
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("request not found")
		}
		return nil, err
	}
	return request.FromDataModel(&record), nil
}

func (r *RequestRepository) ListAll() ([]*request.CashRequest, error) {
	var records []*requestDatamodel.CashRequest
	err := r.db.Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(records), nil
}

func (r *RequestRepository) ListByRequester(requesterID int64) ([]*request.CashRequest, error) {
	var records []*requestDatamodel.CashRequest
	err := r.db.Where("requester_id = ?", requesterID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(records), nil
}

func (r *RequestRepository) ListByStatus(status string) ([]*request.CashRequest, error) {
	var records []*requestDatamodel.CashRequest
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelSlice(records), nil
}

// TransitionStatus flips a pending request to its terminal status. The
// pending guard in the WHERE clause makes the update a compare-and-swap,
// so only one of two racing decisions reports success.
func (r *RequestRepository) TransitionStatus(id int64, status string, approvedBy int64, approvedAt time.Time) (bool, error) {
	result := r.db.Model(&requestDatamodel.CashRequest{}).
		Where("id = ? AND status = ?", id, request.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
