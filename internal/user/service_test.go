package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/petty-cash-management/internal"
	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	users       map[int64]*user.User
	hashes      map[int64]string
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*user.User),
		hashes: make(map[int64]string),
		nextID: 1,
	}
}

func (m *mockUserRepository) addUser(email, name string, role auth.Role, active bool) *user.User {
	u := &user.User{ID: m.nextID, Email: email, Name: name, Role: role, IsActive: active}
	m.nextID++
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) ListAll() ([]*user.User, error) {
	result := make([]*user.User, 0, len(m.users))
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepository) Create(u *user.User, passwordHash string) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	m.hashes[u.ID] = passwordHash
	return nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return errors.New("user not found")
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) EmailExists(email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, plainHasher{}, logger)
	})

	Describe("CreateUser", func() {
		It("should create an active user with a hashed password", func() {
			created, err := service.CreateUser(user.CreateUserDTO{
				Email:    "citra@mail.com",
				Name:     "Citra",
				Password: "long-enough-password",
				Role:     "cashier",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Role).To(Equal(auth.RoleCashier))
			Expect(created.IsActive).To(BeTrue())
			Expect(mockRepo.hashes[created.ID]).To(Equal("hashed:long-enough-password"))
		})

		It("should reject a taken email", func() {
			mockRepo.addUser("citra@mail.com", "Citra", auth.RoleCashier, true)

			_, err := service.CreateUser(user.CreateUserDTO{
				Email:    "citra@mail.com",
				Name:     "Impostor",
				Password: "long-enough-password",
				Role:     "user",
			})

			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should reject an unknown role", func() {
			_, err := service.CreateUser(user.CreateUserDTO{
				Email:    "citra@mail.com",
				Name:     "Citra",
				Password: "long-enough-password",
				Role:     "superuser",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a short password", func() {
			_, err := service.CreateUser(user.CreateUserDTO{
				Email:    "citra@mail.com",
				Name:     "Citra",
				Password: "short",
				Role:     "user",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateUser", func() {
		var existing *user.User

		BeforeEach(func() {
			existing = mockRepo.addUser("dimas@mail.com", "Dimas", auth.RoleUser, true)
		})

		It("should patch only the provided fields", func() {
			role := "approver"

			updated, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{Role: &role})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(auth.RoleApprover))
			Expect(updated.Name).To(Equal("Dimas"))
			Expect(updated.IsActive).To(BeTrue())
		})

		It("should reject an invalid role", func() {
			role := "root"

			_, err := service.UpdateUser(existing.ID, user.UpdateUserDTO{Role: &role})

			Expect(err).To(HaveOccurred())
		})

		It("should return not found for a missing user", func() {
			name := "Ghost"

			_, err := service.UpdateUser(999, user.UpdateUserDTO{Name: &name})

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("DeactivateUser", func() {
		It("should disable the account without deleting it", func() {
			existing := mockRepo.addUser("dimas@mail.com", "Dimas", auth.RoleUser, true)

			updated, err := service.DeactivateUser(existing.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.IsActive).To(BeFalse())

			all, err := service.ListUsers()
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})
	})

	Describe("ListApprovers", func() {
		It("should include only active approver and admin accounts", func() {
			mockRepo.addUser("ayu@mail.com", "Ayu", auth.RoleAdmin, true)
			mockRepo.addUser("budi@mail.com", "Budi", auth.RoleApprover, true)
			mockRepo.addUser("citra@mail.com", "Citra", auth.RoleCashier, true)
			mockRepo.addUser("gone@mail.com", "Gone", auth.RoleApprover, false)

			approvers, err := service.ListApprovers()

			Expect(err).ToNot(HaveOccurred())
			Expect(approvers).To(HaveLen(2))
			Expect(approvers[0].Email).To(Equal("ayu@mail.com"))
			Expect(approvers[1].Email).To(Equal("budi@mail.com"))
		})
	})
})
