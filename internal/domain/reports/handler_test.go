package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/orders"
)

func newTestHandler() (*Handler, *Service, *mockOrderLookup, *echo.Echo) {
	svc, _, lookup, _ := newTestService()
	return NewHandler(svc), svc, lookup, echo.New()
}

func TestHandler_CreateReport(t *testing.T) {
	h, _, _, e := newTestHandler()
	body := `{"order_id":5,"actual_result":"WBC 7.0 x10^9/L"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_CreateReport_Duplicate(t *testing.T) {
	h, svc, _, e := newTestHandler()
	svc.CreateReport(context.Background(), &ServiceTestReport{OrderID: 5})

	body := `{"order_id":5}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateReport(c); err == nil {
		t.Error("expected error for second report on same order")
	}
}

func TestHandler_GetReport(t *testing.T) {
	h, svc, _, e := newTestHandler()
	rep := &ServiceTestReport{OrderID: 5, Findings: str("clear")}
	svc.CreateReport(context.Background(), rep)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rep.ID, 10))

	if err := h.GetReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got ServiceTestReport
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.OrderID != 5 || strVal(got.Findings) != "clear" {
		t.Errorf("unexpected report %+v", got)
	}
}

func TestHandler_GetReport_NotFound(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	if err := h.GetReport(c); err == nil {
		t.Error("expected error for missing report")
	}
}

func TestHandler_ListReports_ByOrder(t *testing.T) {
	h, svc, _, e := newTestHandler()
	svc.CreateReport(context.Background(), &ServiceTestReport{OrderID: 5})
	svc.CreateReport(context.Background(), &ServiceTestReport{OrderID: 6})

	req := httptest.NewRequest(http.MethodGet, "/?order_id=6", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListReports(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []ServiceTestReport `json:"data"`
		Total int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].OrderID != 6 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandler_DeleteReport(t *testing.T) {
	h, svc, _, e := newTestHandler()
	rep := &ServiceTestReport{OrderID: 5}
	svc.CreateReport(context.Background(), rep)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rep.ID, 10))

	if err := h.DeleteReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if _, err := svc.GetReport(context.Background(), rep.ID); err == nil {
		t.Error("expected report to be gone")
	}
}

func TestHandler_GetReportPDF(t *testing.T) {
	h, svc, lookup, e := newTestHandler()
	rep := &ServiceTestReport{
		OrderID:      7,
		ActualResult: str("Test Name    Result    Reference Range    Status\nWBC    11.2    4.0-11.0    High"),
	}
	svc.CreateReport(context.Background(), rep)
	lookup.summaries[7] = &orders.OrderSummary{OrderID: 7, PatientName: "Jane Doe", ServiceName: "Full Blood Count"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rep.ID, 10))

	if err := h.GetReportPDF(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "inline") || !strings.Contains(cd, "report-1.pdf") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("expected PDF magic bytes in body")
	}
}

func TestHandler_GetReportPDF_NotFound(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	err := h.GetReportPDF(c)
	if err == nil {
		t.Fatal("expected error for missing report")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetReportPDF_RenderFailure(t *testing.T) {
	h, svc, _, e := newTestHandler()
	// Order summary missing, so the render fails after the report resolves
	rep := &ServiceTestReport{OrderID: 7, ActualResult: str("text")}
	svc.CreateReport(context.Background(), rep)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rep.ID, 10))

	err := h.GetReportPDF(c)
	if err == nil {
		t.Fatal("expected error for failed render")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Error("expected no partial body on render failure")
	}
}

func TestHandler_SummarizeReport(t *testing.T) {
	h, svc, _, e := newTestHandler()
	rep := &ServiceTestReport{OrderID: 5, ActualResult: str("Hb 10.2 g/dL")}
	svc.CreateReport(context.Background(), rep)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(rep.ID, 10))

	if err := h.SummarizeReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got ServiceTestReport
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strVal(got.AISummary) == "" || strVal(got.AIProvider) != "gemini" {
		t.Errorf("expected summary persisted in response, got %+v", got)
	}
}

func TestHandler_SummarizeReport_NotFound(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	err := h.SummarizeReport(c)
	if err == nil {
		t.Fatal("expected error for missing report")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
