package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"pesanet/kopa_lending/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() models.PaymentReport {
	return models.PaymentReport{
		UserID:      "user-1",
		Type:        models.ReportTypeSummary,
		StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		GeneratedAt: time.Date(2026, 9, 2, 10, 30, 0, 0, time.UTC),
		Summary: models.PaymentReportSummary{
			TotalPayments: 3,
			TotalAmount:   180,
			AverageAmount: 60,
			CountByStatus: map[models.PaymentStatus]int{
				models.PaymentStatusSuccess: 2,
				models.PaymentStatusFailed:  1,
			},
			AmountByStatus: map[models.PaymentStatus]float64{
				models.PaymentStatusSuccess: 150,
				models.PaymentStatusFailed:  30,
			},
		},
	}
}

func TestExportPaymentReport_ArchivesUnderReports(t *testing.T) {
	storage := &fakeObjectStorage{}
	sftp := &fakeSFTP{}
	service := NewReportExportService(storage, sftp)

	objectURL, err := service.ExportPaymentReport(context.Background(), sampleReport())

	require.NoError(t, err)
	assert.Equal(t, "gs://test-bucket/reports/payment_report_user-1_SUMMARY_20260902.csv", objectURL)
	require.Len(t, sftp.paths, 1)
	assert.True(t, strings.HasSuffix(sftp.paths[0], "payment_report_user-1_SUMMARY_20260902.csv"))

	content := string(storage.uploads["reports/payment_report_user-1_SUMMARY_20260902.csv"])
	assert.Contains(t, content, "user_id,user-1")
	assert.Contains(t, content, "total_payments,3")
	assert.Contains(t, content, "status_FAILED,1,30.00")
	assert.Contains(t, content, "status_SUCCESS,2,150.00")
}

func TestExportPaymentReport_SftpFailureIsNotFatal(t *testing.T) {
	storage := &fakeObjectStorage{}
	sftp := &fakeSFTP{err: errStub}
	service := NewReportExportService(storage, sftp)

	objectURL, err := service.ExportPaymentReport(context.Background(), sampleReport())

	require.NoError(t, err)
	assert.NotEmpty(t, objectURL)
}

func TestExportPaymentReport_StorageFailureFails(t *testing.T) {
	storage := &fakeObjectStorage{err: errStub}
	service := NewReportExportService(storage, &fakeSFTP{})

	_, err := service.ExportPaymentReport(context.Background(), sampleReport())

	require.Error(t, err)
}

func TestRenderCSV_DetailAndAnalyticsSections(t *testing.T) {
	report := sampleReport()
	report.Type = models.ReportTypeAnalytics
	report.Detail = &models.PaymentReportDetail{
		AmountByMethod: map[string]float64{"ECOCASH": 160},
		CountByMethod:  map[string]int{"ECOCASH": 2},
		AmountByDay:    map[string]float64{"2026-08-02": 160},
		CountByDay:     map[string]int{"2026-08-02": 2},
	}
	report.Analytics = &models.PaymentReportAnalytics{
		SuccessRate:        0.6667,
		FailureReasons:     map[string]int{"INSUFFICIENT_FUNDS": 1},
		HourlyDistribution: map[int]int{9: 2, 14: 1},
		AmountRanges:       map[string]int{"0-50": 2, "51-100": 1},
	}
	service := NewReportExportService(&fakeObjectStorage{}, &fakeSFTP{})

	buf, err := service.renderCSV(report)

	require.NoError(t, err)
	content := buf.String()
	assert.Contains(t, content, "method_ECOCASH,2,160.00")
	assert.Contains(t, content, "day_2026-08-02,2,160.00")
	assert.Contains(t, content, "success_rate,0.6667")
	assert.Contains(t, content, "range_0-50,2")
	assert.Contains(t, content, "failure_INSUFFICIENT_FUNDS,1")
	assert.Contains(t, content, "hour_9,2")
	assert.Contains(t, content, "hour_14,1")
}
