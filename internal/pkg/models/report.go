package models

import "time"

type ReportType string

const (
	ReportTypeSummary   ReportType = "SUMMARY"
	ReportTypeDetailed  ReportType = "DETAILED"
	ReportTypeAnalytics ReportType = "ANALYTICS"
)

func ParseReportType(s string) ReportType {
	switch ReportType(s) {
	case ReportTypeDetailed:
		return ReportTypeDetailed
	case ReportTypeAnalytics:
		return ReportTypeAnalytics
	default:
		return ReportTypeSummary
	}
}

// PaymentReportSummary is the base aggregation every report type carries.
type PaymentReportSummary struct {
	TotalPayments int                   `json:"total_payments"`
	TotalAmount   float64               `json:"total_amount"`
	AverageAmount float64               `json:"average_amount"`
	CountByStatus map[PaymentStatus]int `json:"count_by_status"`
	AmountByStatus map[PaymentStatus]float64 `json:"amount_by_status"`
}

type PaymentReportDetail struct {
	AmountByMethod map[string]float64 `json:"amount_by_method"`
	CountByMethod  map[string]int     `json:"count_by_method"`
	AmountByDay    map[string]float64 `json:"amount_by_day"`
	CountByDay     map[string]int     `json:"count_by_day"`
}

type PaymentReportAnalytics struct {
	SuccessRate        float64        `json:"success_rate"`
	FailureReasons     map[string]int `json:"failure_reasons"`
	HourlyDistribution map[int]int    `json:"hourly_distribution"`
	AmountRanges       map[string]int `json:"amount_ranges"`
}

type PaymentReport struct {
	UserID      string                  `json:"user_id"`
	Type        ReportType              `json:"type"`
	StartDate   time.Time               `json:"start_date"`
	EndDate     time.Time               `json:"end_date"`
	GeneratedAt time.Time               `json:"generated_at"`
	Summary     PaymentReportSummary    `json:"summary"`
	Detail      *PaymentReportDetail    `json:"detail,omitempty"`
	Analytics   *PaymentReportAnalytics `json:"analytics,omitempty"`
}
