package request_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/core/events"
	"github.com/frahmantamala/petty-cash-management/internal/request"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

func TestRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Suite")
}

type mockRequestRepository struct {
	requests        map[int64]*request.CashRequest
	createError     error
	transitionError error
	nextID          int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests: make(map[int64]*request.CashRequest),
		nextID:   1,
	}
}

func (m *mockRequestRepository) Create(req *request.CashRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.CashRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, errors.New("request not found")
	}
	return req, nil
}

func (m *mockRequestRepository) ListAll() ([]*request.CashRequest, error) {
	result := make([]*request.CashRequest, 0, len(m.requests))
	for _, req := range m.requests {
		result = append(result, req)
	}
	return result, nil
}

func (m *mockRequestRepository) ListByRequester(requesterID int64) ([]*request.CashRequest, error) {
	result := make([]*request.CashRequest, 0)
	for _, req := range m.requests {
		if req.RequesterID == requesterID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockRequestRepository) ListByStatus(status string) ([]*request.CashRequest, error) {
	result := make([]*request.CashRequest, 0)
	for _, req := range m.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockRequestRepository) TransitionStatus(id int64, status string, approvedBy int64, approvedAt time.Time) (bool, error) {
	if m.transitionError != nil {
		return false, m.transitionError
	}
	req, ok := m.requests[id]
	if !ok || req.Status != request.StatusPending {
		return false, nil
	}
	req.Status = status
	req.ApprovedBy = &approvedBy
	req.ApprovedAt = &approvedAt
	return true, nil
}

type mockApproverResolver struct {
	approvers    []*user.User
	resolveError error
}

func (m *mockApproverResolver) EligibleApprovers(amount float64) ([]*user.User, error) {
	if m.resolveError != nil {
		return nil, m.resolveError
	}
	return m.approvers, nil
}

type mockUserDirectory struct {
	users map[int64]*user.User
}

func (m *mockUserDirectory) GetUserByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type capturingPublisher struct {
	events       []events.Event
	publishError error
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	if p.publishError != nil {
		return p.publishError
	}
	p.events = append(p.events, event)
	return nil
}

var _ = Describe("RequestService", func() {
	var (
		service   *request.Service
		mockRepo  *mockRequestRepository
		resolver  *mockApproverResolver
		directory *mockUserDirectory
		publisher *capturingPublisher
		ctx       context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		resolver = &mockApproverResolver{
			approvers: []*user.User{
				{ID: 10, Name: "Budi", Email: "budi@mail.com", Role: auth.RoleApprover, IsActive: true},
			},
		}
		directory = &mockUserDirectory{
			users: map[int64]*user.User{
				1:  {ID: 1, Name: "Dimas", Email: "dimas@mail.com", Role: auth.RoleUser, IsActive: true},
				10: {ID: 10, Name: "Budi", Email: "budi@mail.com", Role: auth.RoleApprover, IsActive: true},
			},
		}
		publisher = &capturingPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = request.NewService(mockRepo, resolver, directory, publisher, logger)
		ctx = context.Background()
	})

	Describe("Submit", func() {
		It("should persist a pending request and notify eligible approvers", func() {
			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "office supplies",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Status).To(Equal(request.StatusPending))
			Expect(result.RequesterID).To(Equal(int64(1)))

			Expect(publisher.events).To(HaveLen(1))
			submitted, ok := publisher.events[0].(*events.RequestSubmittedEvent)
			Expect(ok).To(BeTrue())
			Expect(submitted.RequestID).To(Equal(result.ID))
			Expect(submitted.Approvers).To(HaveLen(1))
			Expect(submitted.Approvers[0].Email).To(Equal("budi@mail.com"))
		})

		It("should trim whitespace from the purpose", func() {
			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "  taxi fare  ",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Purpose).To(Equal("taxi fare"))
		})

		It("should reject a non-positive amount without persisting", func() {
			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  0,
				Purpose: "office supplies",
			})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(mockRepo.requests).To(BeEmpty())
			Expect(publisher.events).To(BeEmpty())
		})

		It("should reject a blank purpose without persisting", func() {
			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "   ",
			})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(mockRepo.requests).To(BeEmpty())
		})

		It("should still submit when approver resolution fails", func() {
			resolver.resolveError = errors.New("rules unavailable")

			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "office supplies",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(request.StatusPending))
			Expect(publisher.events).To(BeEmpty())
		})

		It("should publish nothing when no approver is eligible", func() {
			resolver.approvers = nil

			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "office supplies",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(request.StatusPending))
			Expect(publisher.events).To(BeEmpty())
		})

		It("should still submit when event publishing fails", func() {
			publisher.publishError = errors.New("bus down")

			result, err := service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "office supplies",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(request.StatusPending))
		})
	})

	Describe("Decide", func() {
		var pending *request.CashRequest

		BeforeEach(func() {
			var err error
			pending, err = service.Submit(ctx, 1, request.SubmitRequestDTO{
				Amount:  250,
				Purpose: "office supplies",
			})
			Expect(err).ToNot(HaveOccurred())
			publisher.events = nil
		})

		It("should approve a pending request and stamp the approver", func() {
			result, err := service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: request.DecisionApprove})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(request.StatusApproved))
			Expect(result.ApprovedBy).ToNot(BeNil())
			Expect(*result.ApprovedBy).To(Equal(int64(10)))
			Expect(result.ApprovedAt).ToNot(BeNil())
		})

		It("should reject a pending request", func() {
			result, err := service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: request.DecisionReject})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(request.StatusRejected))
		})

		It("should notify the requester about the decision", func() {
			_, err := service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: request.DecisionApprove})

			Expect(err).ToNot(HaveOccurred())
			Expect(publisher.events).To(HaveLen(1))
			decided, ok := publisher.events[0].(*events.RequestDecidedEvent)
			Expect(ok).To(BeTrue())
			Expect(decided.Requester.Email).To(Equal("dimas@mail.com"))
			Expect(decided.Decision).To(Equal(request.DecisionApprove))
			Expect(decided.DecidedBy).To(Equal("Budi"))
		})

		It("should return not found for a missing request", func() {
			_, err := service.Decide(ctx, 999, 10, request.DecideRequestDTO{Decision: request.DecisionApprove})

			Expect(err).To(Equal(internal.ErrRequestNotFound))
		})

		It("should refuse to decide an already approved request", func() {
			_, err := service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: request.DecisionApprove})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: request.DecisionReject})

			Expect(err).To(Equal(internal.ErrInvalidStateTransition))
		})

		It("should reject an unknown decision value", func() {
			_, err := service.Decide(ctx, pending.ID, 10, request.DecideRequestDTO{Decision: "maybe"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Summary", func() {
		It("should aggregate counts and totals per status", func() {
			first, err := service.Submit(ctx, 1, request.SubmitRequestDTO{Amount: 100, Purpose: "snacks"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Submit(ctx, 1, request.SubmitRequestDTO{Amount: 300, Purpose: "stationery"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Decide(ctx, first.ID, 10, request.DecideRequestDTO{Decision: request.DecisionApprove})
			Expect(err).ToNot(HaveOccurred())

			summary, err := service.Summary()

			Expect(err).ToNot(HaveOccurred())
			Expect(summary).To(HaveLen(2))
			Expect(summary[0].Status).To(Equal(request.StatusPending))
			Expect(summary[0].Count).To(Equal(1))
			Expect(summary[0].Total).To(Equal(300.0))
			Expect(summary[1].Status).To(Equal(request.StatusApproved))
			Expect(summary[1].Count).To(Equal(1))
			Expect(summary[1].Total).To(Equal(100.0))
		})
	})
})
