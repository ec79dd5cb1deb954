package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/simplefinance/simplefinance/internal/auth"
)

var _ = Describe("AccessPolicy", func() {
	var (
		owner *auth.Actor
		other *auth.Actor
		admin *auth.Actor
	)

	BeforeEach(func() {
		owner = &auth.Actor{ID: 1, Username: "maria", Role: auth.RoleStandard}
		other = &auth.Actor{ID: 2, Username: "pedro", Role: auth.RoleStandard}
		admin = &auth.Actor{ID: 3, Username: "admin", Role: auth.RoleAdmin}
	})

	Describe("CanViewExpense", func() {
		It("allows the owner", func() {
			Expect(auth.CanViewExpense(owner, 1)).To(BeTrue())
		})

		It("denies any other user", func() {
			Expect(auth.CanViewExpense(other, 1)).To(BeFalse())
		})

		It("denies admins on foreign expenses", func() {
			Expect(auth.CanViewExpense(admin, 1)).To(BeFalse())
		})

		It("denies anonymous", func() {
			Expect(auth.CanViewExpense(nil, 1)).To(BeFalse())
		})
	})

	Describe("CanMutateExpense", func() {
		It("allows only the owner", func() {
			Expect(auth.CanMutateExpense(owner, 1)).To(BeTrue())
			Expect(auth.CanMutateExpense(other, 1)).To(BeFalse())
			Expect(auth.CanMutateExpense(admin, 1)).To(BeFalse())
		})
	})

	Describe("IsAdmin", func() {
		It("recognizes the admin role only", func() {
			Expect(auth.IsAdmin(admin)).To(BeTrue())
			Expect(auth.IsAdmin(owner)).To(BeFalse())
			Expect(auth.IsAdmin(nil)).To(BeFalse())
		})
	})

	Describe("CanDeleteUser", func() {
		It("allows an admin to delete another user", func() {
			Expect(auth.CanDeleteUser(admin, owner.ID)).To(BeTrue())
		})

		It("rejects admin self-deletion", func() {
			Expect(auth.CanDeleteUser(admin, admin.ID)).To(BeFalse())
		})

		It("rejects standard users entirely", func() {
			Expect(auth.CanDeleteUser(owner, other.ID)).To(BeFalse())
		})
	})
})
