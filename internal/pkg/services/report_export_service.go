package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"sort"
	"strconv"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
)

// ReportExportService renders a payment report to CSV, archives it in the
// bucket and drops a copy on the partner SFTP server.
type ReportExportService struct {
	storage ObjectStorageInterface
	sftp    SFTPClientInterface
}

func NewReportExportService(storage ObjectStorageInterface, sftp SFTPClientInterface) *ReportExportService {
	return &ReportExportService{
		storage: storage,
		sftp:    sftp,
	}
}

// ExportPaymentReport returns the bucket URL of the archived file. SFTP
// delivery failure is logged but does not fail the export; the archive copy
// is the system of record.
func (s *ReportExportService) ExportPaymentReport(ctx context.Context, report models.PaymentReport) (string, error) {
	buf, err := s.renderCSV(report)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("payment_report_%s_%s_%s.csv",
		report.UserID,
		string(report.Type),
		report.GeneratedAt.Format(consts.ReportFileNameDateFormat))
	objectName := "reports/" + fileName

	objectURL, err := s.storage.Upload(ctx, objectName, buf)
	if err != nil {
		return "", err
	}

	remotePath := path.Join(configs.SFTP_REMOTE_FILE_PATH, fileName)
	if err := s.sftp.UploadFileToSFTP(buf, remotePath); err != nil {
		logger.Error(ctx, "sftp delivery failed for %s: %v", fileName, err)
	}

	return objectURL, nil
}

func (s *ReportExportService) renderCSV(report models.PaymentReport) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	rows := [][]string{
		{"user_id", report.UserID},
		{"report_type", string(report.Type)},
		{"start_date", report.StartDate.Format(consts.ReportDateTimeFormat)},
		{"end_date", report.EndDate.Format(consts.ReportDateTimeFormat)},
		{"generated_at", report.GeneratedAt.Format(consts.ReportDateTimeFormat)},
		{},
		{"total_payments", strconv.Itoa(report.Summary.TotalPayments)},
		{"total_amount", formatAmount(report.Summary.TotalAmount)},
		{"average_amount", formatAmount(report.Summary.AverageAmount)},
	}
	for _, status := range sortedStatusKeys(report.Summary.CountByStatus) {
		rows = append(rows, []string{
			"status_" + string(status),
			strconv.Itoa(report.Summary.CountByStatus[status]),
			formatAmount(report.Summary.AmountByStatus[status]),
		})
	}

	if report.Detail != nil {
		rows = append(rows, []string{})
		for _, method := range sortedStringKeys(report.Detail.CountByMethod) {
			rows = append(rows, []string{
				"method_" + method,
				strconv.Itoa(report.Detail.CountByMethod[method]),
				formatAmount(report.Detail.AmountByMethod[method]),
			})
		}
		for _, day := range sortedStringKeys(report.Detail.CountByDay) {
			rows = append(rows, []string{
				"day_" + day,
				strconv.Itoa(report.Detail.CountByDay[day]),
				formatAmount(report.Detail.AmountByDay[day]),
			})
		}
	}

	if report.Analytics != nil {
		rows = append(rows, []string{})
		rows = append(rows, []string{"success_rate", fmt.Sprintf("%.4f", report.Analytics.SuccessRate)})
		for _, bucket := range sortedStringKeys(report.Analytics.AmountRanges) {
			rows = append(rows, []string{"range_" + bucket, strconv.Itoa(report.Analytics.AmountRanges[bucket])})
		}
		for _, reason := range sortedStringKeys(report.Analytics.FailureReasons) {
			rows = append(rows, []string{"failure_" + reason, strconv.Itoa(report.Analytics.FailureReasons[reason])})
		}
		for hour := 0; hour < 24; hour++ {
			if count, ok := report.Analytics.HourlyDistribution[hour]; ok {
				rows = append(rows, []string{"hour_" + strconv.Itoa(hour), strconv.Itoa(count)})
			}
		}
	}

	for _, row := range rows {
		if len(row) == 0 {
			row = []string{""}
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStatusKeys(m map[models.PaymentStatus]int) []models.PaymentStatus {
	keys := make([]models.PaymentStatus, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
