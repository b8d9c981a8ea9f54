package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/petty-cash-management/internal/core/events"
)

// Enqueuer accepts messages for background delivery.
type Enqueuer interface {
	Enqueue(msg Message)
}

// EventHandler turns request lifecycle events into emails.
type EventHandler struct {
	dispatcher Enqueuer
	logger     *slog.Logger
}

func NewEventHandler(dispatcher Enqueuer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Register subscribes the handler to the request lifecycle events.
func (h *EventHandler) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeRequestSubmitted, h.HandleRequestSubmitted)
	bus.Subscribe(events.EventTypeRequestDecided, h.HandleRequestDecided)
}

func (h *EventHandler) HandleRequestSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.RequestSubmittedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType(), "event_id", event.EventID())
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}

	subject := fmt.Sprintf("Petty cash request #%d awaiting approval", submitted.RequestID)
	body := h.submittedBody(submitted)

	for _, approver := range submitted.Approvers {
		h.dispatcher.Enqueue(Message{
			To:      approver.Email,
			ToName:  approver.Name,
			Subject: subject,
			Body:    body,
		})
	}

	h.logger.Info("approval notifications queued",
		"request_id", submitted.RequestID,
		"recipients", len(submitted.Approvers))
	return nil
}

func (h *EventHandler) HandleRequestDecided(ctx context.Context, event events.Event) error {
	decided, ok := event.(*events.RequestDecidedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType(), "event_id", event.EventID())
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}

	verb := "approved"
	if decided.Decision == "reject" {
		verb = "rejected"
	}

	h.dispatcher.Enqueue(Message{
		To:      decided.Requester.Email,
		ToName:  decided.Requester.Name,
		Subject: fmt.Sprintf("Your petty cash request #%d was %s", decided.RequestID, verb),
		Body:    h.decidedBody(decided, verb),
	})

	h.logger.Info("decision notification queued",
		"request_id", decided.RequestID,
		"decision", decided.Decision,
		"to", decided.Requester.Email)
	return nil
}

func (h *EventHandler) submittedBody(e *events.RequestSubmittedEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A new petty cash request needs your approval.\n\n")
	fmt.Fprintf(&sb, "Request:   #%d\n", e.RequestID)
	if e.RequesterName != "" {
		fmt.Fprintf(&sb, "Requester: %s\n", e.RequesterName)
	}
	fmt.Fprintf(&sb, "Amount:    %.2f %s\n", e.Amount, e.CurrencyCode)
	fmt.Fprintf(&sb, "Purpose:   %s\n", e.Purpose)
	if e.Description != "" {
		fmt.Fprintf(&sb, "Details:   %s\n", e.Description)
	}
	return sb.String()
}

func (h *EventHandler) decidedBody(e *events.RequestDecidedEvent, verb string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your petty cash request was %s.\n\n", verb)
	fmt.Fprintf(&sb, "Request: #%d\n", e.RequestID)
	fmt.Fprintf(&sb, "Amount:  %.2f\n", e.Amount)
	fmt.Fprintf(&sb, "Purpose: %s\n", e.Purpose)
	if e.DecidedBy != "" {
		fmt.Fprintf(&sb, "Decided by: %s\n", e.DecidedBy)
	}
	if e.Decision == "approve" {
		fmt.Fprintf(&sb, "\nPlease upload a receipt for this request once the money is spent.\n")
	}
	return sb.String()
}
