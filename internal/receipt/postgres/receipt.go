package postgres

import (
	"errors"

	"gorm.io/gorm"

	receiptDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/receipt"
	"github.com/frahmantamala/petty-cash-management/internal/receipt"
)

// ReceiptRepository implements the receipt.Repository interface using GORM
type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) receipt.Repository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(rec *receipt.Receipt) error {
	record := receipt.ToDataModel(rec)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	rec.ID = record.ID
	return nil
}

func (r *ReceiptRepository) GetByRequestID(requestID int64) (*receipt.Receipt, error) {
	var record receiptDatamodel.Receipt
	err := r.db.Where("request_id = ?", requestID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("receipt not found")
		}
		return nil, err
	}
	return receipt.FromDataModel(&record), nil
}

func (r *ReceiptRepository) Exists(requestID int64) (bool, error) {
	var count int64
	err := r.db.Model(&receiptDatamodel.Receipt{}).
		Where("request_id = ?", requestID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReceiptRepository) ListAll() ([]*receipt.Receipt, error) {
	var records []*receiptDatamodel.Receipt
	err := r.db.Order("uploaded_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return receipt.FromDataModelSlice(records), nil
}
