package notification_test

import (
	"log/slog"
	"os"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/petty-cash-management/internal/notification"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (m *recordingMailer) Send(msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var _ = Describe("Dispatcher", func() {
	var mailer *recordingMailer

	newDispatcher := func() *notification.Dispatcher {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		return notification.NewDispatcher(mailer, notification.DispatcherConfig{MaxWorkers: 2, JobQueueSize: 10}, logger)
	}

	BeforeEach(func() {
		mailer = &recordingMailer{}
	})

	It("should deliver queued messages through the worker pool", func() {
		dispatcher := newDispatcher()
		defer dispatcher.Shutdown()

		dispatcher.Enqueue(notification.Message{To: "budi@mail.com", Subject: "hello"})
		dispatcher.Enqueue(notification.Message{To: "ayu@mail.com", Subject: "hello"})

		Eventually(mailer.sentCount).Should(Equal(2))
	})

	It("should shut down cleanly right after startup", func() {
		dispatcher := newDispatcher()

		done := make(chan struct{})
		go func() {
			dispatcher.Shutdown()
			close(done)
		}()

		Eventually(done).Should(BeClosed())
	})
})
