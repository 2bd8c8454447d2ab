package orders

import "time"

// ServiceOrder maps to the service_orders table. An order references either
// a single service or a service package, never both.
type ServiceOrder struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        int64     `db:"patient_id" json:"patient_id"`
	ServiceID        *int64    `db:"service_id" json:"service_id,omitempty"`
	ServicePackageID *int64    `db:"service_package_id" json:"service_package_id,omitempty"`
	Status           string    `db:"status" json:"status"`
	OrderDate        time.Time `db:"order_date" json:"order_date"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// OrderSummary is the denormalized view a rendered report header needs:
// the patient display name and the ordered service (or package) name.
type OrderSummary struct {
	OrderID     int64     `json:"order_id"`
	PatientName string    `json:"patient_name"`
	ServiceName string    `json:"service_name"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"order_date"`
}
