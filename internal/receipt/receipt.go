package receipt

import (
	"time"

	receiptDatamodel "github.com/frahmantamala/petty-cash-management/internal/core/datamodel/receipt"
)

// Receipt documents how approved petty cash was actually spent. Exactly
// one receipt may exist per request.
type Receipt struct {
	ID         int64     `json:"id"`
	RequestID  int64     `json:"request_id"`
	FilePath   string    `json:"file_path,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	Merchant   string    `json:"merchant,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	UploadedBy int64     `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func ToDataModel(r *Receipt) *receiptDatamodel.Receipt {
	return &receiptDatamodel.Receipt{
		ID:         r.ID,
		RequestID:  r.RequestID,
		FilePath:   r.FilePath,
		Amount:     r.Amount,
		Merchant:   r.Merchant,
		Notes:      r.Notes,
		UploadedBy: r.UploadedBy,
		UploadedAt: r.UploadedAt,
	}
}

func FromDataModel(r *receiptDatamodel.Receipt) *Receipt {
	return &Receipt{
		ID:         r.ID,
		RequestID:  r.RequestID,
		FilePath:   r.FilePath,
		Amount:     r.Amount,
		Merchant:   r.Merchant,
		Notes:      r.Notes,
		UploadedBy: r.UploadedBy,
		UploadedAt: r.UploadedAt,
	}
}

func FromDataModelSlice(receipts []*receiptDatamodel.Receipt) []*Receipt {
	result := make([]*Receipt, len(receipts))
	for i, r := range receipts {
		result[i] = FromDataModel(r)
	}
	return result
}
