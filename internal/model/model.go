package model

import "time"

// Courier is a delivery person with exactly one transport capability.
type Courier struct {
	ID            int          `json:"id"`
	FullName      string       `json:"full_name"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"password_hash"`
	Active        bool         `json:"active"`
	Type          DeliveryType `json:"type"`
	EmployedAt    time.Time    `json:"employed_at"`
	MaxDistanceKm *float64     `json:"max_distance_km,omitempty"`
}

func (c Courier) Key() int             { return c.ID }
func (c Courier) WithKey(id int) Courier { c.ID = id; return c }

// Order is a permanent record of a customer request. It carries no status
// field; status is always derived from the order's deliveries.
type Order struct {
	ID            int       `json:"id"`
	Type          OrderType `json:"type"`
	Address       string    `json:"address"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Fragile       bool      `json:"fragile"`
	Volume        *float64  `json:"volume,omitempty"`
	Weight        *float64  `json:"weight,omitempty"`
	Description   string    `json:"description,omitempty"`
	PlacedAt      time.Time `json:"placed_at"`
}

func (o Order) Key() int           { return o.ID }
func (o Order) WithKey(id int) Order { o.ID = id; return o }

// Delivery links an order to a courier attempt. CourierID 0 marks the
// synthetic record written when an open order is canceled before
// assignment.
type Delivery struct {
	ID          int          `json:"id"`
	OrderID     int          `json:"order_id"`
	CourierID   int          `json:"courier_id"`
	Type        DeliveryType `json:"type"`
	StartedAt   time.Time    `json:"started_at"`
	DistanceKm  *float64     `json:"distance_km,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Outcome     *Outcome     `json:"outcome,omitempty"`
}

func (d Delivery) Key() int              { return d.ID }
func (d Delivery) WithKey(id int) Delivery { d.ID = id; return d }

// Active reports whether the delivery has not been completed yet.
func (d Delivery) Active() bool { return d.CompletedAt == nil }

// Config is the singleton, process-wide business configuration. The
// application clock lives here and is advanced explicitly, never from the
// wall clock.
type Config struct {
	Clock time.Time `json:"clock"`

	ManagerID           int    `json:"manager_id"`
	ManagerPasswordHash string `json:"manager_password_hash"`

	CompanyAddress string   `json:"company_address,omitempty"`
	CompanyLat     float64  `json:"company_lat"`
	CompanyLon     float64  `json:"company_lon"`
	MaxRangeKm     *float64 `json:"max_range_km,omitempty"`

	SpeedCarKmh        float64 `json:"speed_car_kmh"`
	SpeedMotorcycleKmh float64 `json:"speed_motorcycle_kmh"`
	SpeedBicycleKmh    float64 `json:"speed_bicycle_kmh"`
	SpeedFootKmh       float64 `json:"speed_foot_kmh"`

	MaxDeliveryTime  time.Duration `json:"max_delivery_time"`
	RiskWindow       time.Duration `json:"risk_window"`
	InactivityWindow time.Duration `json:"inactivity_window"`

	RiskRule RiskRule `json:"risk_rule"`
}

// DefaultConfig returns the configuration a fresh or reset data set starts
// with.
func DefaultConfig(now time.Time) Config {
	return Config{
		Clock:              now,
		ManagerID:          1,
		SpeedCarKmh:        50,
		SpeedMotorcycleKmh: 40,
		SpeedBicycleKmh:    15,
		SpeedFootKmh:       5,
		MaxDeliveryTime:    2 * time.Hour,
		RiskWindow:         30 * time.Minute,
		InactivityWindow:   30 * 24 * time.Hour,
		RiskRule:           RiskByDeadline,
	}
}
