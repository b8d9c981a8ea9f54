package rule_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/rule"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

type mockRuleRepository struct {
	rules     map[int64]*rule.ApprovalRule
	order     []int64
	saveError error
	listError error
	nextID    int64
}

func newMockRuleRepository() *mockRuleRepository {
	return &mockRuleRepository{
		rules:  make(map[int64]*rule.ApprovalRule),
		nextID: 1,
	}
}

func (m *mockRuleRepository) GetByID(id int64) (*rule.ApprovalRule, error) {
	r, ok := m.rules[id]
	if !ok {
		return nil, errors.New("rule not found")
	}
	return r, nil
}

func (m *mockRuleRepository) ListAll() ([]*rule.ApprovalRule, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*rule.ApprovalRule, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.rules[id])
	}
	return result, nil
}

func (m *mockRuleRepository) ListActive() ([]*rule.ApprovalRule, error) {
	all, err := m.ListAll()
	if err != nil {
		return nil, err
	}
	active := make([]*rule.ApprovalRule, 0)
	for _, r := range all {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (m *mockRuleRepository) Save(r *rule.ApprovalRule) error {
	if m.saveError != nil {
		return m.saveError
	}
	if r.ID == 0 {
		r.ID = m.nextID
		m.nextID++
		m.order = append(m.order, r.ID)
	}
	m.rules[r.ID] = r
	return nil
}

type mockUserDirectory struct {
	users     []*user.User
	listError error
}

func (m *mockUserDirectory) ListUsers() ([]*user.User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.users, nil
}

var _ = Describe("RuleService", func() {
	var (
		service  *rule.Service
		mockRepo *mockRuleRepository
		mockDir  *mockUserDirectory
	)

	BeforeEach(func() {
		mockRepo = newMockRuleRepository()
		mockDir = &mockUserDirectory{
			users: []*user.User{
				{ID: 1, Name: "budi", Email: "budi@mail.com", Role: auth.RoleApprover, IsActive: true},
				{ID: 2, Name: "ayu", Email: "ayu@mail.com", Role: auth.RoleAdmin, IsActive: true},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rule.NewService(mockRepo, mockDir, logger)
	})

	Describe("SaveRule", func() {
		It("should create a new threshold rule", func() {
			result, err := service.SaveRule(rule.SaveRuleDTO{
				ApproverID:      1,
				AmountThreshold: 500,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.AmountThreshold).To(Equal(500.0))
			Expect(result.IsActive).To(BeTrue())
		})

		It("should zero the threshold for approve-all rules", func() {
			result, err := service.SaveRule(rule.SaveRuleDTO{
				ApproverID:      1,
				AmountThreshold: 500,
				ApproveAll:      true,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ApproveAll).To(BeTrue())
			Expect(result.AmountThreshold).To(Equal(0.0))
		})

		It("should reject a non-positive threshold without approve-all", func() {
			result, err := service.SaveRule(rule.SaveRuleDTO{
				ApproverID:      1,
				AmountThreshold: 0,
			})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should update an existing rule in place", func() {
			created, err := service.SaveRule(rule.SaveRuleDTO{ApproverID: 1, AmountThreshold: 100})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.SaveRule(rule.SaveRuleDTO{
				ID:              created.ID,
				ApproverID:      2,
				AmountThreshold: 900,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.ApproverID).To(Equal(int64(2)))
			Expect(updated.AmountThreshold).To(Equal(900.0))
		})

		It("should fail updating a missing rule", func() {
			_, err := service.SaveRule(rule.SaveRuleDTO{ID: 77, ApproverID: 1, AmountThreshold: 100})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeactivateRule", func() {
		It("should keep the rule but mark it inactive", func() {
			created, err := service.SaveRule(rule.SaveRuleDTO{ApproverID: 1, AmountThreshold: 100})
			Expect(err).ToNot(HaveOccurred())

			result, err := service.DeactivateRule(created.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.IsActive).To(BeFalse())

			all, err := service.ListRules()
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})
	})

	Describe("EligibleApprovers", func() {
		BeforeEach(func() {
			_, err := service.SaveRule(rule.SaveRuleDTO{ApproverID: 1, AmountThreshold: 500})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.SaveRule(rule.SaveRuleDTO{ApproverID: 2, ApproveAll: true})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should resolve the full eligible set for a small amount", func() {
			resolved, err := service.EligibleApprovers(200)

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(HaveLen(2))
		})

		It("should resolve only unlimited approvers for a large amount", func() {
			resolved, err := service.EligibleApprovers(100000)

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(HaveLen(1))
			Expect(resolved[0].ID).To(Equal(int64(2)))
		})

		It("should ignore deactivated rules", func() {
			all, err := service.ListRules()
			Expect(err).ToNot(HaveOccurred())
			_, err = service.DeactivateRule(all[1].ID)
			Expect(err).ToNot(HaveOccurred())

			resolved, err := service.EligibleApprovers(100000)

			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(BeEmpty())
		})

		It("should propagate a user directory failure", func() {
			mockDir.listError = errors.New("boom")

			_, err := service.EligibleApprovers(200)

			Expect(err).To(HaveOccurred())
		})
	})
})
