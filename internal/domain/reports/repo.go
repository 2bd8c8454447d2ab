package reports

import "context"

// Repository defines CRUD operations for service test reports.
type Repository interface {
	Create(ctx context.Context, r *ServiceTestReport) error
	GetByID(ctx context.Context, id int64) (*ServiceTestReport, error)
	GetByOrderID(ctx context.Context, orderID int64) (*ServiceTestReport, error)
	Update(ctx context.Context, r *ServiceTestReport) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*ServiceTestReport, int, error)
	SetAISummary(ctx context.Context, id int64, summary, provider string) error
}
