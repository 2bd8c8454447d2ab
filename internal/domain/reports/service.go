package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/hms/hms/internal/domain/orders"
	"github.com/hms/hms/internal/platform/ai"
	"github.com/hms/hms/internal/report"
)

// OrderLookup resolves the order display names a rendered report needs.
// Satisfied by orders.Repository.
type OrderLookup interface {
	GetSummary(ctx context.Context, id int64) (*orders.OrderSummary, error)
}

// Summarizer runs the AI provider chain. Satisfied by *ai.Chain.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*ai.Result, error)
}

// Service provides business logic for the service-test-reports domain.
type Service struct {
	reports    Repository
	orders     OrderLookup
	summarizer Summarizer
}

// NewService creates a new reports domain service. The summarizer may be nil
// when no AI provider is configured.
func NewService(reports Repository, orders OrderLookup, summarizer Summarizer) *Service {
	return &Service{reports: reports, orders: orders, summarizer: summarizer}
}

// CreateReport stores a new report, enforcing one report per order.
func (s *Service) CreateReport(ctx context.Context, rep *ServiceTestReport) error {
	if rep.OrderID <= 0 {
		return fmt.Errorf("order_id is required")
	}
	if existing, err := s.reports.GetByOrderID(ctx, rep.OrderID); err == nil && existing != nil {
		return fmt.Errorf("order %d already has report %d", rep.OrderID, existing.ID)
	}
	if rep.ReportDate.IsZero() {
		rep.ReportDate = time.Now().UTC()
	}
	return s.reports.Create(ctx, rep)
}

func (s *Service) GetReport(ctx context.Context, id int64) (*ServiceTestReport, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) GetReportByOrder(ctx context.Context, orderID int64) (*ServiceTestReport, error) {
	return s.reports.GetByOrderID(ctx, orderID)
}

func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]*ServiceTestReport, int, error) {
	return s.reports.List(ctx, limit, offset)
}

func (s *Service) UpdateReport(ctx context.Context, rep *ServiceTestReport) error {
	existing, err := s.reports.GetByID(ctx, rep.ID)
	if err != nil {
		return fmt.Errorf("report %d not found", rep.ID)
	}
	// order_id is immutable once the report exists
	rep.OrderID = existing.OrderID
	if rep.ReportDate.IsZero() {
		rep.ReportDate = existing.ReportDate
	}
	return s.reports.Update(ctx, rep)
}

func (s *Service) DeleteReport(ctx context.Context, id int64) error {
	return s.reports.Delete(ctx, id)
}

// SummarizeReport runs the AI chain over the report's actual result text and
// persists the summary along with the provider that produced it.
func (s *Service) SummarizeReport(ctx context.Context, id int64) (*ServiceTestReport, error) {
	if s.summarizer == nil {
		return nil, fmt.Errorf("no summarization provider configured")
	}
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("report %d not found", id)
	}
	text := strVal(rep.ActualResult)
	if text == "" {
		return nil, fmt.Errorf("report %d has no result text to summarize", id)
	}
	res, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarize report %d: %w", id, err)
	}
	if err := s.reports.SetAISummary(ctx, id, res.Summary, res.Provider); err != nil {
		return nil, fmt.Errorf("persist summary for report %d: %w", id, err)
	}
	rep.AISummary = &res.Summary
	rep.AIProvider = &res.Provider
	return rep, nil
}

// RenderPDF typesets the report as a paginated A4 PDF. It returns the bytes
// plus the download filename. A failed render yields no partial output.
func (s *Service) RenderPDF(ctx context.Context, id int64) ([]byte, string, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("report %d not found", id)
	}
	summary, err := s.orders.GetSummary(ctx, rep.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve order %d for report %d: %w", rep.OrderID, id, err)
	}

	data, err := report.ComposePDF(report.Report{
		ID:           rep.ID,
		OrderID:      rep.OrderID,
		PatientName:  summary.PatientName,
		ServiceName:  summary.ServiceName,
		ReportDate:   rep.ReportDate,
		ActualResult: strVal(rep.ActualResult),
		Findings:     strVal(rep.Findings),
		Comments:     strVal(rep.Comments),
		AISummary:    strVal(rep.AISummary),
		AIProvider:   strVal(rep.AIProvider),
	})
	if err != nil {
		return nil, "", fmt.Errorf("render report %d: %w", id, err)
	}
	return data, fmt.Sprintf("report-%d.pdf", id), nil
}
