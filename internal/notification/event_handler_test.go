package notification_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/petty-cash-management/internal/core/events"
	"github.com/frahmantamala/petty-cash-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

type capturingEnqueuer struct {
	messages []notification.Message
}

func (c *capturingEnqueuer) Enqueue(msg notification.Message) {
	c.messages = append(c.messages, msg)
}

var _ = Describe("EventHandler", func() {
	var (
		handler  *notification.EventHandler
		enqueuer *capturingEnqueuer
		ctx      context.Context
	)

	BeforeEach(func() {
		enqueuer = &capturingEnqueuer{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = notification.NewEventHandler(enqueuer, logger)
		ctx = context.Background()
	})

	Describe("HandleRequestSubmitted", func() {
		It("should queue one message per approver", func() {
			event := events.NewRequestSubmittedEvent(42, "Dimas", 250000, "IDR", "office supplies", "", []events.Recipient{
				{Email: "budi@mail.com", Name: "Budi"},
				{Email: "ayu@mail.com", Name: "Ayu"},
			})

			err := handler.HandleRequestSubmitted(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(enqueuer.messages).To(HaveLen(2))
			Expect(enqueuer.messages[0].To).To(Equal("budi@mail.com"))
			Expect(enqueuer.messages[0].Subject).To(ContainSubstring("#42"))
			Expect(enqueuer.messages[0].Body).To(ContainSubstring("office supplies"))
			Expect(enqueuer.messages[1].To).To(Equal("ayu@mail.com"))
		})

		It("should queue nothing when the approver list is empty", func() {
			event := events.NewRequestSubmittedEvent(42, "Dimas", 250000, "IDR", "office supplies", "", nil)

			err := handler.HandleRequestSubmitted(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(enqueuer.messages).To(BeEmpty())
		})

		It("should fail on an unexpected payload", func() {
			event := events.NewRequestDecidedEvent(42, events.Recipient{}, 100, "snacks", "approve", "Budi")

			err := handler.HandleRequestSubmitted(ctx, event)

			Expect(err).To(HaveOccurred())
			Expect(enqueuer.messages).To(BeEmpty())
		})
	})

	Describe("HandleRequestDecided", func() {
		It("should notify the requester about an approval", func() {
			event := events.NewRequestDecidedEvent(42, events.Recipient{Email: "dimas@mail.com", Name: "Dimas"}, 250000, "office supplies", "approve", "Budi")

			err := handler.HandleRequestDecided(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(enqueuer.messages).To(HaveLen(1))
			Expect(enqueuer.messages[0].To).To(Equal("dimas@mail.com"))
			Expect(enqueuer.messages[0].Subject).To(ContainSubstring("approved"))
			Expect(enqueuer.messages[0].Body).To(ContainSubstring("Budi"))
		})

		It("should instruct the requester to upload a receipt on approval", func() {
			event := events.NewRequestDecidedEvent(42, events.Recipient{Email: "dimas@mail.com", Name: "Dimas"}, 250000, "office supplies", "approve", "Budi")

			err := handler.HandleRequestDecided(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(enqueuer.messages[0].Body).To(ContainSubstring("upload a receipt"))
		})

		It("should word a rejection as rejected", func() {
			event := events.NewRequestDecidedEvent(42, events.Recipient{Email: "dimas@mail.com", Name: "Dimas"}, 250000, "office supplies", "reject", "Budi")

			err := handler.HandleRequestDecided(ctx, event)

			Expect(err).ToNot(HaveOccurred())
			Expect(enqueuer.messages[0].Subject).To(ContainSubstring("rejected"))
			Expect(enqueuer.messages[0].Body).ToNot(ContainSubstring("upload a receipt"))
		})
	})
})
