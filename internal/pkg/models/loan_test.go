package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLoanType(t *testing.T) {
	assert.Equal(t, LoanTypePayGo, ParseLoanType("paygo"))
	assert.Equal(t, LoanTypePayGo, ParseLoanType(" PAYGO "))
	assert.Equal(t, LoanTypeCash, ParseLoanType("CASH"))
	assert.Equal(t, LoanTypeCash, ParseLoanType("device"))
	assert.Equal(t, LoanTypeCash, ParseLoanType(""))
}

func TestParseLoanStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want LoanStatus
	}{
		{"active", LoanStatusActive},
		{"PENDING_DISBURSEMENT", LoanStatusPendingDisbursement},
		{"completed ", LoanStatusCompleted},
		{"DEFAULTED", LoanStatusDefaulted},
		{"written_off", LoanStatusWrittenOff},
		{"suspended", LoanStatusUnknown},
		{"", LoanStatusUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLoanStatus(tc.raw), tc.raw)
	}
}

func TestLoanRecordPayment(t *testing.T) {
	loan := Loan{
		RemainingBalance:  100,
		PaymentsCompleted: 3,
		TotalPayments:     12,
		Status:            LoanStatusActive,
		UpdatedAt:         time.Now().Add(-time.Hour),
	}

	loan.RecordPayment(40)

	assert.InDelta(t, 60.0, loan.RemainingBalance, 0.001)
	assert.Equal(t, 4, loan.PaymentsCompleted)
	assert.Equal(t, LoanStatusActive, loan.Status)
	assert.WithinDuration(t, time.Now(), loan.UpdatedAt, 5*time.Second)
}

func TestLoanRecordPayment_ClampsAndCompletes(t *testing.T) {
	loan := Loan{
		RemainingBalance:  50,
		PaymentsCompleted: 11,
		TotalPayments:     12,
		Status:            LoanStatusActive,
	}

	loan.RecordPayment(80)

	assert.Zero(t, loan.RemainingBalance)
	assert.Equal(t, 12, loan.PaymentsCompleted)
	assert.Equal(t, LoanStatusCompleted, loan.Status)

	// The completed counter never passes the total even if more payments land.
	loan.RecordPayment(10)
	assert.Equal(t, 12, loan.PaymentsCompleted)
	assert.Zero(t, loan.RemainingBalance)
}
