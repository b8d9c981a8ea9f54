package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRequestSubmitted = "request.submitted"
	EventTypeRequestDecided   = "request.decided"
)

// Recipient identifies who a notification intent is addressed to.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type RequestSubmittedEvent struct {
	BaseEvent
	RequestID     int64       `json:"request_id"`
	RequesterName string      `json:"requester_name"`
	Amount        float64     `json:"amount"`
	CurrencyCode  string      `json:"currency_code"`
	Purpose       string      `json:"purpose"`
	Description   string      `json:"description"`
	Approvers     []Recipient `json:"approvers"`
}

func NewRequestSubmittedEvent(requestID int64, requesterName string, amount float64, currencyCode, purpose, description string, approvers []Recipient) *RequestSubmittedEvent {
	return &RequestSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":     requestID,
				"requester_name": requesterName,
				"amount":         amount,
				"currency_code":  currencyCode,
				"purpose":        purpose,
			},
		},
		RequestID:     requestID,
		RequesterName: requesterName,
		Amount:        amount,
		CurrencyCode:  currencyCode,
		Purpose:       purpose,
		Description:   description,
		Approvers:     approvers,
	}
}

type RequestDecidedEvent struct {
	BaseEvent
	RequestID int64     `json:"request_id"`
	Requester Recipient `json:"requester"`
	Amount    float64   `json:"amount"`
	Purpose   string    `json:"purpose"`
	Decision  string    `json:"decision"`
	DecidedBy string    `json:"decided_by"`
}

func NewRequestDecidedEvent(requestID int64, requester Recipient, amount float64, purpose, decision, decidedBy string) *RequestDecidedEvent {
	return &RequestDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"amount":     amount,
				"purpose":    purpose,
				"decision":   decision,
			},
		},
		RequestID: requestID,
		Requester: requester,
		Amount:    amount,
		Purpose:   purpose,
		Decision:  decision,
		DecidedBy: decidedBy,
	}
}
