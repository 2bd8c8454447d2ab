package orders

import "context"

// Service provides business logic for the service-orders domain.
type Service struct {
	orders Repository
}

// NewService creates a new orders domain service.
func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*ServiceOrder, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*ServiceOrder, int, error) {
	return s.orders.List(ctx, limit, offset)
}

func (s *Service) ListOrdersByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*ServiceOrder, int, error) {
	return s.orders.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) GetOrderSummary(ctx context.Context, id int64) (*OrderSummary, error) {
	return s.orders.GetSummary(ctx, id)
}
