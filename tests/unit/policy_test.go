package unit

import (
	"testing"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestBorrowPolicy_CanIssue(t *testing.T) {
	policy := service.NewBorrowPolicy(testLibraryConfig())

	book := &domain.Book{Title: "Physics", AvailableCopies: 1}

	t.Run("Allows Within Cap", func(t *testing.T) {
		assert.NoError(t, policy.CanIssue(book, domain.BorrowerRoleStudent, 2))
		assert.NoError(t, policy.CanIssue(book, domain.BorrowerRoleTeacher, 4))
	})

	t.Run("Reference Only Wins Over Other Denials", func(t *testing.T) {
		ref := &domain.Book{Title: "Encyclopedia", IsReferenceOnly: true, AvailableCopies: 0}
		err := policy.CanIssue(ref, domain.BorrowerRoleStudent, 3)
		assert.True(t, domain.IsBusinessRuleViolation(err, domain.ReasonReferenceOnly))
	})

	t.Run("No Copies Before Cap", func(t *testing.T) {
		empty := &domain.Book{Title: "Physics", AvailableCopies: 0}
		err := policy.CanIssue(empty, domain.BorrowerRoleStudent, 3)
		assert.True(t, domain.IsBusinessRuleViolation(err, domain.ReasonNoCopiesAvailable))
	})

	t.Run("Role Caps", func(t *testing.T) {
		err := policy.CanIssue(book, domain.BorrowerRoleStudent, 3)
		assert.True(t, domain.IsBusinessRuleViolation(err, domain.ReasonBorrowerAtCap))

		// A teacher with the same load is still under the cap
		assert.NoError(t, policy.CanIssue(book, domain.BorrowerRoleTeacher, 3))
		err = policy.CanIssue(book, domain.BorrowerRoleTeacher, 5)
		assert.True(t, domain.IsBusinessRuleViolation(err, domain.ReasonBorrowerAtCap))
	})
}

func TestBorrowPolicy_ComputeDueDate(t *testing.T) {
	policy := service.NewBorrowPolicy(testLibraryConfig())

	t.Run("Uses Book Window", func(t *testing.T) {
		assert.Equal(t, day(7), policy.ComputeDueDate(day(0), 7))
	})

	t.Run("Falls Back To Default", func(t *testing.T) {
		assert.Equal(t, day(14), policy.ComputeDueDate(day(0), 0))
	})
}

func TestBorrowPolicy_RenewalDays(t *testing.T) {
	policy := service.NewBorrowPolicy(testLibraryConfig())

	assert.Equal(t, int32(7), policy.RenewalDays(7, 21))
	assert.Equal(t, int32(21), policy.RenewalDays(0, 21))
	assert.Equal(t, int32(14), policy.RenewalDays(0, 0))
}
