package unit

import (
	"testing"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestLateFeeCents(t *testing.T) {
	assert.Equal(t, int64(0), service.LateFeeCents(0, 500))
	assert.Equal(t, int64(0), service.LateFeeCents(-3, 500))
	assert.Equal(t, int64(500), service.LateFeeCents(1, 500))
	assert.Equal(t, int64(3000), service.LateFeeCents(6, 500))
}

func TestTotalAndPendingFineCents(t *testing.T) {
	loan := &domain.LoanRecord{LateFeeCents: 3000, DamageFeeCents: 2000}
	assert.Equal(t, int64(5000), service.TotalFineCents(loan))
	assert.Equal(t, int64(5000), service.PendingFineCents(loan))

	loan.FineCollected = true
	assert.Equal(t, int64(5000), service.TotalFineCents(loan))
	assert.Equal(t, int64(0), service.PendingFineCents(loan))
}
