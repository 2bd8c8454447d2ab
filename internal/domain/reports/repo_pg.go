package reports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &reportRepoPG{pool: pool}
}

func (r *reportRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const reportCols = `id, order_id, report_date, findings, comments, actual_result,
	file_path, report_base64, ai_summary, ai_provider, created_at, updated_at`

func (r *reportRepoPG) scanReport(row pgx.Row) (*ServiceTestReport, error) {
	var rep ServiceTestReport
	err := row.Scan(&rep.ID, &rep.OrderID, &rep.ReportDate,
		&rep.Findings, &rep.Comments, &rep.ActualResult,
		&rep.FilePath, &rep.ReportBase64, &rep.AISummary, &rep.AIProvider,
		&rep.CreatedAt, &rep.UpdatedAt)
	return &rep, err
}

func (r *reportRepoPG) Create(ctx context.Context, rep *ServiceTestReport) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO service_test_reports (order_id, report_date, findings, comments,
			actual_result, file_path, report_base64)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		rep.OrderID, rep.ReportDate, rep.Findings, rep.Comments,
		rep.ActualResult, rep.FilePath, rep.ReportBase64,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *reportRepoPG) GetByID(ctx context.Context, id int64) (*ServiceTestReport, error) {
	return r.scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM service_test_reports WHERE id = $1`, id))
}

func (r *reportRepoPG) GetByOrderID(ctx context.Context, orderID int64) (*ServiceTestReport, error) {
	return r.scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM service_test_reports WHERE order_id = $1`, orderID))
}

func (r *reportRepoPG) Update(ctx context.Context, rep *ServiceTestReport) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service_test_reports SET report_date=$2, findings=$3, comments=$4,
			actual_result=$5, file_path=$6, report_base64=$7, updated_at=NOW()
		WHERE id = $1`,
		rep.ID, rep.ReportDate, rep.Findings, rep.Comments,
		rep.ActualResult, rep.FilePath, rep.ReportBase64)
	return err
}

func (r *reportRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM service_test_reports WHERE id = $1`, id)
	return err
}

func (r *reportRepoPG) List(ctx context.Context, limit, offset int) ([]*ServiceTestReport, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM service_test_reports`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reportCols+` FROM service_test_reports ORDER BY report_date DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ServiceTestReport
	for rows.Next() {
		rep, err := r.scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *reportRepoPG) SetAISummary(ctx context.Context, id int64, summary, provider string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service_test_reports SET ai_summary=$2, ai_provider=$3, updated_at=NOW()
		WHERE id = $1`, id, summary, provider)
	return err
}
