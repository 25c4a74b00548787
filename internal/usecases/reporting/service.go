package reporting

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adlink-api/infrastructure/integrator/backend/backendclient"
	"github.com/vfg2006/adlink-api/internal/domain"
	"github.com/vfg2006/adlink-api/internal/usecases/linking"
	"github.com/vfg2006/adlink-api/pkg/apiErrors"
	"github.com/vfg2006/adlink-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const dateLayout = "2006-01-02"

type ReportingService interface {
	AdSpendReport(ctx context.Context, userID string, filters domain.AdSpendFilters) (*domain.AdSpendReport, error)
}

type Service struct {
	linking linking.LinkingService
	backend backendclient.Client
}

func NewService(linkingService linking.LinkingService, backend backendclient.Client) ReportingService {
	return &Service{
		linking: linkingService,
		backend: backend,
	}
}

// AdSpendReport busca os lançamentos da empresa do usuário e consolida o período.
// O filtro inclui o dia final inteiro.
func (s *Service) AdSpendReport(ctx context.Context, userID string, filters domain.AdSpendFilters) (*domain.AdSpendReport, error) {
	from, to := normalizeRange(filters)
	if from != nil && to != nil && from.After(*to) {
		return nil, &ReportError{Err: ErrInvalidRange, Code: apiErrors.ErrInvalidFormat}
	}

	token, err := s.linking.BackendToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	info, err := s.linking.ResolveBusinessInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.backend.GetAdSpend(ctx, token, info.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":          userID,
			"business_info_id": info.ID,
			"error":            err.Error(),
		}).Error("Erro ao buscar lançamentos de investimento")
		return nil, fromBackend(err)
	}

	report := &domain.AdSpendReport{
		BusinessInfoID: info.ID,
		Entries:        FilterByDate(entries, from, to),
	}
	if filters.From != nil {
		report.From = filters.From.Format(dateLayout)
	}
	if filters.To != nil {
		report.To = filters.To.Format(dateLayout)
	}

	Summarize(report)
	return report, nil
}

func normalizeRange(filters domain.AdSpendFilters) (*time.Time, *time.Time) {
	var from, to *time.Time
	if filters.From != nil && !filters.From.IsZero() {
		start := startOfDay(*filters.From)
		from = &start
	}
	if filters.To != nil && !filters.To.IsZero() {
		end := startOfDay(*filters.To).Add(24*time.Hour - time.Millisecond)
		to = &end
	}
	return from, to
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FilterByDate mantém os lançamentos dentro do intervalo fechado [from, to].
// Datas ilegíveis só entram quando não há filtro.
func FilterByDate(entries []domain.AdSpendEntry, from, to *time.Time) []domain.AdSpendEntry {
	filtered := make([]domain.AdSpendEntry, 0, len(entries))
	for _, entry := range entries {
		if from == nil && to == nil {
			filtered = append(filtered, entry)
			continue
		}

		date, ok := parseEntryDate(entry.Date)
		if !ok {
			logrus.WithFields(logrus.Fields{"entry_id": entry.ID, "date": entry.Date}).Warn("Lançamento com data ilegível ignorado")
			continue
		}
		if from != nil && date.Before(*from) {
			continue
		}
		if to != nil && date.After(*to) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func parseEntryDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// Summarize calcula totais e indicadores. Indicadores sem denominador ficam nulos.
func Summarize(report *domain.AdSpendReport) {
	totals := domain.AdSpendTotals{}
	for _, entry := range report.Entries {
		totals.Spend += entry.Spend
		totals.Clicks += entry.Clicks
		totals.Conversions += entry.Conversions
		totals.Revenue += entry.Revenue
	}

	report.Count = len(report.Entries)
	report.ROI, report.CPC, report.CostPerConversion = nil, nil, nil

	if totals.Spend > 0 {
		roi := utils.RoundWithTwoDecimalPlace((totals.Revenue - totals.Spend) / totals.Spend * 100)
		report.ROI = &roi
	}
	if totals.Clicks > 0 {
		cpc := utils.RoundWithTwoDecimalPlace(totals.Spend / float64(totals.Clicks))
		report.CPC = &cpc
	}
	if totals.Conversions > 0 {
		costPerConversion := utils.RoundWithTwoDecimalPlace(totals.Spend / float64(totals.Conversions))
		report.CostPerConversion = &costPerConversion
	}

	totals.Spend = utils.RoundWithTwoDecimalPlace(totals.Spend)
	totals.Revenue = utils.RoundWithTwoDecimalPlace(totals.Revenue)
	report.Totals = totals
}

// WriteCSV exporta os lançamentos com as colunas Date, Spend, Clicks, Conversions, Revenue, CPC e Link
func WriteCSV(w io.Writer, entries []domain.AdSpendEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Spend", "Clicks", "Conversions", "Revenue", "CPC", "Link"}); err != nil {
		return err
	}

	for _, entry := range entries {
		date := entry.Date
		if parsed, ok := parseEntryDate(entry.Date); ok {
			date = parsed.Format(dateLayout)
		}

		cpc := "N/A"
		if entry.Clicks > 0 {
			cpc = strconv.FormatFloat(entry.Spend/float64(entry.Clicks), 'f', 2, 64)
		}

		record := []string{
			date,
			strconv.FormatFloat(entry.Spend, 'f', 2, 64),
			strconv.Itoa(entry.Clicks),
			strconv.Itoa(entry.Conversions),
			strconv.FormatFloat(entry.Revenue, 'f', 2, 64),
			cpc,
			entry.InstagramPermalink,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func fromBackend(err error) error {
	if remoteErr, ok := domain.AsRemoteError(err); ok {
		code := apiErrors.ErrRemoteRejected
		switch remoteErr.Status {
		case http.StatusNotFound:
			code = apiErrors.ErrNotFound
		case http.StatusUnauthorized:
			code = apiErrors.ErrExpiredToken
		}
		return &ReportError{Err: err, Code: code, Details: fmt.Sprintf("status %d", remoteErr.Status)}
	}
	if domain.IsTransportError(err) {
		return &ReportError{Err: err, Code: apiErrors.ErrCommunication}
	}
	if domain.IsValidationError(err) {
		return &ReportError{Err: err, Code: apiErrors.ErrMissingRequiredData}
	}
	return &ReportError{Err: fmt.Errorf("%w: %v", ErrFetchAdSpend, err), Code: apiErrors.ErrExternalService}
}
