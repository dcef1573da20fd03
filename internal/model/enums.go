package model

// OrderType classifies what kind of goods an order carries.
type OrderType string

const (
	OrderRegular      OrderType = "regular"
	OrderExpress      OrderType = "express"
	OrderHeavy        OrderType = "heavy"
	OrderFragile      OrderType = "fragile"
	OrderRefrigerated OrderType = "refrigerated"
)

// DeliveryType is the single transport capability of a courier and the
// transport actually used for a delivery.
type DeliveryType string

const (
	ByCar        DeliveryType = "car"
	ByMotorcycle DeliveryType = "motorcycle"
	ByBicycle    DeliveryType = "bicycle"
	OnFoot       DeliveryType = "on_foot"
)

// Outcome records how a delivery ended. A delivery without an outcome is
// still active.
type Outcome string

const (
	OutcomeSupplied          Outcome = "supplied"
	OutcomeFailed            Outcome = "failed"
	OutcomeCanceled          Outcome = "canceled"
	OutcomeRefusedByCustomer Outcome = "refused_by_customer"
	OutcomeCustomerNotFound  Outcome = "customer_not_found"
)

// OrderStatus is never stored; it is derived from the order's latest
// delivery on every read.
type OrderStatus string

const (
	StatusOpen       OrderStatus = "open"
	StatusInProgress OrderStatus = "in_progress"
	StatusDelivered  OrderStatus = "delivered"
	StatusDeclined   OrderStatus = "declined_by_customer"
	StatusCanceled   OrderStatus = "canceled"
)

// ScheduleStatus classifies an order's timeliness against its deadline.
type ScheduleStatus string

const (
	OnTime ScheduleStatus = "on_time"
	InRisk ScheduleStatus = "in_risk"
	Late   ScheduleStatus = "late"
)

// TimeUnit is the granularity for advancing the application clock.
type TimeUnit string

const (
	UnitMinute TimeUnit = "minute"
	UnitHour   TimeUnit = "hour"
	UnitDay    TimeUnit = "day"
	UnitYear   TimeUnit = "year"
)

// Role is the access level resolved by Login.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

// RiskRule selects how an unfinished order is flagged InRisk; see
// status.Schedule.
type RiskRule string

const (
	// RiskByDeadline flags InRisk only once the clock passes
	// deadline minus the risk window.
	RiskByDeadline RiskRule = "by_deadline"
	// RiskByEstimate flags InRisk as soon as the clock passes the
	// expected completion of the active delivery.
	RiskByEstimate RiskRule = "by_estimate"
)
