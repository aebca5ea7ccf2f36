package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pesanet/kopa_lending/internal/pkg/models"
)

func TestStampCashDraft_ForcesDraftStatus(t *testing.T) {
	tests := []struct {
		name   string
		status models.ApplicationStatus
	}{
		{"submitted cannot be smuggled in", models.ApplicationStatusSubmitted},
		{"approved cannot be smuggled in", models.ApplicationStatusApproved},
		{"draft stays draft", models.ApplicationStatusDraft},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stale := time.Now().Add(-time.Hour)
			in := models.CashLoanApplication{
				UserID:     "user-1",
				LoanAmount: 500,
				Status:     tc.status,
				UpdatedAt:  stale,
			}

			out := stampCashDraft(in)

			assert.Equal(t, models.ApplicationStatusDraft, out.Status)
			assert.True(t, out.UpdatedAt.After(stale))
			assert.Equal(t, in.UserID, out.UserID)
			assert.Equal(t, in.LoanAmount, out.LoanAmount)
		})
	}
}

func TestStampPayGoDraft_ForcesDraftStatus(t *testing.T) {
	stale := time.Now().Add(-time.Hour)
	in := models.PayGoLoanApplication{
		UserID:    "user-1",
		DeviceID:  "dev-1",
		Status:    models.ApplicationStatusSubmitted,
		UpdatedAt: stale,
	}

	out := stampPayGoDraft(in)

	assert.Equal(t, models.ApplicationStatusDraft, out.Status)
	assert.True(t, out.UpdatedAt.After(stale))
	assert.Equal(t, "dev-1", out.DeviceID)
}
