package domain

import "time"

type BorrowerRole string

const (
	BorrowerRoleStudent BorrowerRole = "STUDENT"
	BorrowerRoleTeacher BorrowerRole = "TEACHER"
)

func ParseBorrowerRole(s string) (BorrowerRole, error) {
	switch BorrowerRole(s) {
	case BorrowerRoleStudent, BorrowerRoleTeacher:
		return BorrowerRole(s), nil
	}
	return "", &InvalidArgumentError{Field: "role", Value: s}
}

// Borrower is a role-tagged school member eligible to borrow books. The
// role decides the concurrent-loan cap.
type Borrower struct {
	ID        int32        `json:"id"`
	OwnerID   int32        `json:"owner_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      BorrowerRole `json:"role"`
	CreatedOn time.Time    `json:"created_on"`
}
