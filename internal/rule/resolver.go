package rule

import (
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

// ResolveApprovers returns the users eligible to approve a request of the
// given amount. A rule matches when it is active and either grants
// unlimited authority or its threshold covers the amount. Rules referencing
// unknown users, inactive users, or users that cannot approve are skipped.
// Each user appears at most once, in rule insertion order, so notification
// fan-out stays deterministic.
func ResolveApprovers(amount float64, rules []*ApprovalRule, approvers []*user.User) []*user.User {
	byID := make(map[int64]*user.User, len(approvers))
	for _, u := range approvers {
		byID[u.ID] = u
	}

	seen := make(map[int64]bool)
	var resolved []*user.User
	for _, r := range rules {
		if !r.Matches(amount) {
			continue
		}
		u, ok := byID[r.ApproverID]
		if !ok || !u.CanApprove() {
			continue
		}
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		resolved = append(resolved, u)
	}

	return resolved
}
