package services

import (
	"context"
	"time"

	"pesanet/kopa_lending/internal/pkg/models"
)

// ReportService aggregates the local payment cache into the three report
// shapes. An empty window yields a report of zeroes, never an error.
type ReportService struct {
	payments PaymentsRepoInterface
}

func NewReportService(payments PaymentsRepoInterface) *ReportService {
	return &ReportService{payments: payments}
}

func (s *ReportService) GeneratePaymentReport(ctx context.Context, userID string, reportType models.ReportType, start, end time.Time) (models.PaymentReport, error) {
	payments, err := s.payments.PaymentsByUserBetween(ctx, userID, start, end)
	if err != nil {
		return models.PaymentReport{}, err
	}

	report := models.PaymentReport{
		UserID:      userID,
		Type:        reportType,
		StartDate:   start,
		EndDate:     end,
		GeneratedAt: time.Now(),
		Summary:     buildSummary(payments),
	}

	switch reportType {
	case models.ReportTypeDetailed:
		detail := buildDetail(payments)
		report.Detail = &detail
	case models.ReportTypeAnalytics:
		analytics := buildAnalytics(payments)
		report.Analytics = &analytics
	}
	return report, nil
}

func buildSummary(payments []models.Payment) models.PaymentReportSummary {
	summary := models.PaymentReportSummary{
		CountByStatus:  map[models.PaymentStatus]int{},
		AmountByStatus: map[models.PaymentStatus]float64{},
	}
	for _, p := range payments {
		summary.TotalPayments++
		summary.TotalAmount += p.Amount
		summary.CountByStatus[p.Status]++
		summary.AmountByStatus[p.Status] += p.Amount
	}
	if summary.TotalPayments > 0 {
		summary.AverageAmount = summary.TotalAmount / float64(summary.TotalPayments)
	}
	return summary
}

func buildDetail(payments []models.Payment) models.PaymentReportDetail {
	detail := models.PaymentReportDetail{
		AmountByMethod: map[string]float64{},
		CountByMethod:  map[string]int{},
		AmountByDay:    map[string]float64{},
		CountByDay:     map[string]int{},
	}
	for _, p := range payments {
		detail.AmountByMethod[p.Method] += p.Amount
		detail.CountByMethod[p.Method]++
		day := p.CreatedAt.Format("2006-01-02")
		detail.AmountByDay[day] += p.Amount
		detail.CountByDay[day]++
	}
	return detail
}

func buildAnalytics(payments []models.Payment) models.PaymentReportAnalytics {
	analytics := models.PaymentReportAnalytics{
		FailureReasons:     map[string]int{},
		HourlyDistribution: map[int]int{},
		AmountRanges:       map[string]int{},
	}
	successCount := 0
	for _, p := range payments {
		if p.Status == models.PaymentStatusSuccess {
			successCount++
		}
		if p.Status == models.PaymentStatusFailed && p.FailureReason != "" {
			analytics.FailureReasons[p.FailureReason]++
		}
		analytics.HourlyDistribution[p.CreatedAt.Hour()]++
		analytics.AmountRanges[amountBucket(p.Amount)]++
	}
	if len(payments) > 0 {
		analytics.SuccessRate = float64(successCount) / float64(len(payments))
	}
	return analytics
}

// amountBucket bins a payment amount; bucket edges are inclusive on the
// upper bound, so 50 lands in "0-50" and 51 in "51-100".
func amountBucket(amount float64) string {
	switch {
	case amount <= 50:
		return "0-50"
	case amount <= 100:
		return "51-100"
	case amount <= 200:
		return "101-200"
	case amount <= 500:
		return "201-500"
	default:
		return "500+"
	}
}
