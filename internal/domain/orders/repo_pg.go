package orders

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

type orderRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &orderRepoPG{pool: pool}
}

func (r *orderRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const orderCols = `id, patient_id, service_id, service_package_id, status,
	order_date, notes, created_at, updated_at`

func (r *orderRepoPG) scanOrder(row pgx.Row) (*ServiceOrder, error) {
	var o ServiceOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.ServiceID, &o.ServicePackageID,
		&o.Status, &o.OrderDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *orderRepoPG) GetByID(ctx context.Context, id int64) (*ServiceOrder, error) {
	return r.scanOrder(r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM service_orders WHERE id = $1`, id))
}

func (r *orderRepoPG) List(ctx context.Context, limit, offset int) ([]*ServiceOrder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM service_orders`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+orderCols+` FROM service_orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ServiceOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *orderRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*ServiceOrder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM service_orders WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+orderCols+` FROM service_orders WHERE patient_id = $1 ORDER BY order_date DESC, id DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ServiceOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetSummary resolves the display names a rendered report needs. Orders can
// reference a service or a service package; whichever is present supplies
// the name, with a generic fallback when neither row still exists.
func (r *orderRepoPG) GetSummary(ctx context.Context, id int64) (*OrderSummary, error) {
	var s OrderSummary
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT o.id,
		       TRIM(p.first_name || ' ' || p.last_name),
		       COALESCE(s.name, sp.name, 'General Service'),
		       o.status, o.order_date
		FROM service_orders o
		JOIN patients p ON p.id = o.patient_id
		LEFT JOIN services s ON s.id = o.service_id
		LEFT JOIN service_packages sp ON sp.id = o.service_package_id
		WHERE o.id = $1`, id,
	).Scan(&s.OrderID, &s.PatientName, &s.ServiceName, &s.Status, &s.OrderDate)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
