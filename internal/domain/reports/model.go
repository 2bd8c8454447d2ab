package reports

import "time"

// ServiceTestReport maps to the service_test_reports table. Each service
// order carries at most one report.
type ServiceTestReport struct {
	ID           int64     `db:"id" json:"id"`
	OrderID      int64     `db:"order_id" json:"order_id"`
	ReportDate   time.Time `db:"report_date" json:"report_date"`
	Findings     *string   `db:"findings" json:"findings,omitempty"`
	Comments     *string   `db:"comments" json:"comments,omitempty"`
	ActualResult *string   `db:"actual_result" json:"actual_result,omitempty"`
	FilePath     *string   `db:"file_path" json:"file_path,omitempty"`
	ReportBase64 *string   `db:"report_base64" json:"report_base64,omitempty"`
	AISummary    *string   `db:"ai_summary" json:"ai_summary,omitempty"`
	AIProvider   *string   `db:"ai_provider" json:"ai_provider,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
