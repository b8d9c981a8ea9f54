package rule_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/rule"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

func TestRule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rule Suite")
}

func approverUser(id int64, name string) *user.User {
	return &user.User{ID: id, Name: name, Email: name + "@mail.com", Role: auth.RoleApprover, IsActive: true}
}

var _ = Describe("ResolveApprovers", func() {
	var (
		budi  *user.User
		citra *user.User
		dewa  *user.User
	)

	BeforeEach(func() {
		budi = approverUser(1, "budi")
		citra = approverUser(2, "citra")
		dewa = approverUser(3, "dewa")
	})

	Context("with threshold rules", func() {
		It("should include only rules whose threshold covers the amount", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: budi.ID, AmountThreshold: 100, IsActive: true},
				{ID: 2, ApproverID: citra.ID, AmountThreshold: 500, IsActive: true},
			}

			resolved := rule.ResolveApprovers(250, rules, []*user.User{budi, citra})

			Expect(resolved).To(HaveLen(1))
			Expect(resolved[0].ID).To(Equal(citra.ID))
		})

		It("should treat an amount equal to the threshold as covered", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: budi.ID, AmountThreshold: 100, IsActive: true},
			}

			resolved := rule.ResolveApprovers(100, rules, []*user.User{budi})

			Expect(resolved).To(HaveLen(1))
		})

		It("should return nothing when no rule covers the amount", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: budi.ID, AmountThreshold: 100, IsActive: true},
			}

			resolved := rule.ResolveApprovers(1000, rules, []*user.User{budi})

			Expect(resolved).To(BeEmpty())
		})
	})

	Context("with approve-all rules", func() {
		It("should match any amount regardless of threshold", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: budi.ID, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(9999999, rules, []*user.User{budi})

			Expect(resolved).To(HaveLen(1))
			Expect(resolved[0].ID).To(Equal(budi.ID))
		})
	})

	Context("deduplication and ordering", func() {
		It("should list each approver once, in rule insertion order", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: citra.ID, AmountThreshold: 500, IsActive: true},
				{ID: 2, ApproverID: budi.ID, ApproveAll: true, IsActive: true},
				{ID: 3, ApproverID: citra.ID, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(100, rules, []*user.User{budi, citra})

			Expect(resolved).To(HaveLen(2))
			Expect(resolved[0].ID).To(Equal(citra.ID))
			Expect(resolved[1].ID).To(Equal(budi.ID))
		})
	})

	Context("filtering out ineligible users", func() {
		It("should skip inactive rules", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: budi.ID, ApproveAll: true, IsActive: false},
			}

			resolved := rule.ResolveApprovers(10, rules, []*user.User{budi})

			Expect(resolved).To(BeEmpty())
		})

		It("should skip rules pointing at unknown users", func() {
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: 99, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(10, rules, []*user.User{budi})

			Expect(resolved).To(BeEmpty())
		})

		It("should skip inactive users", func() {
			dewa.IsActive = false
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: dewa.ID, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(10, rules, []*user.User{dewa})

			Expect(resolved).To(BeEmpty())
		})

		It("should skip users whose role cannot approve", func() {
			dewa.Role = auth.RoleUser
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: dewa.ID, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(10, rules, []*user.User{dewa})

			Expect(resolved).To(BeEmpty())
		})

		It("should allow admins to approve", func() {
			dewa.Role = auth.RoleAdmin
			rules := []*rule.ApprovalRule{
				{ID: 1, ApproverID: dewa.ID, ApproveAll: true, IsActive: true},
			}

			resolved := rule.ResolveApprovers(10, rules, []*user.User{dewa})

			Expect(resolved).To(HaveLen(1))
		})
	})

	Context("with no rules", func() {
		It("should resolve nobody", func() {
			resolved := rule.ResolveApprovers(10, nil, []*user.User{budi, citra})

			Expect(resolved).To(BeEmpty())
		})
	})
})
