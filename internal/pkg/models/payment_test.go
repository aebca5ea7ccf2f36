package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PaymentStatus
	}{
		{"pending", PaymentStatusPending},
		{"PROCESSING", PaymentStatusProcessing},
		{" success ", PaymentStatusSuccess},
		{"FAILED", PaymentStatusFailed},
		{"cancelled", PaymentStatusCancelled},
		{"REVERSED", PaymentStatusReversed},
		{"settled", PaymentStatusUnknown},
		{"", PaymentStatusUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParsePaymentStatus(tc.raw), tc.raw)
	}
}

func TestParseReportType(t *testing.T) {
	assert.Equal(t, ReportTypeDetailed, ParseReportType("DETAILED"))
	assert.Equal(t, ReportTypeAnalytics, ParseReportType("ANALYTICS"))
	assert.Equal(t, ReportTypeSummary, ParseReportType("SUMMARY"))
	assert.Equal(t, ReportTypeSummary, ParseReportType("detailed"))
	assert.Equal(t, ReportTypeSummary, ParseReportType(""))
}
