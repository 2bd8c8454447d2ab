package orders

import "context"

// Repository defines read operations for service orders.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*ServiceOrder, error)
	List(ctx context.Context, limit, offset int) ([]*ServiceOrder, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*ServiceOrder, int, error)
	GetSummary(ctx context.Context, id int64) (*OrderSummary, error)
}
