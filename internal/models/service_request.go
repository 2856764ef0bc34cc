package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceStatus string
type ServiceType string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusAccepted   ServiceStatus = "accepted"
	ServiceStatusInProgress ServiceStatus = "in_progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"

	ServiceTypeFuel        ServiceType = "fuel"
	ServiceTypeBattery     ServiceType = "battery"
	ServiceTypeTire        ServiceType = "tire"
	ServiceTypeTow         ServiceType = "tow"
	ServiceTypeLockout     ServiceType = "lockout"
	ServiceTypeDashcam     ServiceType = "dashcam"
	ServiceTypeMultimedia  ServiceType = "multimedia"
	ServiceTypeFitment     ServiceType = "fitment"
	ServiceTypeInspection  ServiceType = "inspection"
	ServiceTypeRepair      ServiceType = "repair"
	ServiceTypeBikeService ServiceType = "bike_service"
	ServiceTypeOther       ServiceType = "other"
)

const (
	FuelTypeGasoline = "gasoline"
	FuelTypeDiesel   = "diesel"

	LockoutTypeKeysLockedIn = "keys_locked_in"
	LockoutTypeLostKeys     = "lost_keys"
	LockoutTypeBrokenKey    = "broken_key"
	LockoutTypeFaultyLock   = "faulty_lock"
	LockoutTypeOther        = "other"
)

type ServiceRequest struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID            primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	VehicleID         primitive.ObjectID  `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	ServiceType       ServiceType         `json:"service_type" bson:"service_type" validate:"required"`
	Status            ServiceStatus       `json:"status" bson:"status" default:"pending"`
	Location          Location            `json:"location" bson:"location" validate:"required"`
	Description       string              `json:"description" bson:"description"`
	Price             *float64            `json:"price" bson:"price"`
	EstimatedArrival  *time.Time          `json:"estimated_arrival_time" bson:"estimated_arrival_time"`
	ServiceProviderID *primitive.ObjectID `json:"service_provider_id" bson:"service_provider_id"`

	// Fuel delivery
	FuelType   string  `json:"fuel_type,omitempty" bson:"fuel_type,omitempty"`
	FuelAmount float64 `json:"fuel_amount,omitempty" bson:"fuel_amount,omitempty"`

	// Battery service
	BatteryType  string `json:"battery_type,omitempty" bson:"battery_type,omitempty"`
	BatteryIssue string `json:"battery_issue,omitempty" bson:"battery_issue,omitempty"`

	// Tire service
	TireIssue    string `json:"tire_issue,omitempty" bson:"tire_issue,omitempty"`
	TireLocation string `json:"tire_location,omitempty" bson:"tire_location,omitempty"`
	HasSpareTire *bool  `json:"has_spare_tire,omitempty" bson:"has_spare_tire,omitempty"`

	// Towing
	TowReason          string  `json:"tow_reason,omitempty" bson:"tow_reason,omitempty"`
	DestinationType    string  `json:"destination_type,omitempty" bson:"destination_type,omitempty"`
	DestinationAddress string  `json:"destination_address,omitempty" bson:"destination_address,omitempty"`
	TowDistanceKM      float64 `json:"tow_distance_km,omitempty" bson:"tow_distance_km,omitempty"`

	// Lockout
	LockoutType string `json:"lockout_type,omitempty" bson:"lockout_type,omitempty"`
	HasSpareKey *bool  `json:"has_spare_key,omitempty" bson:"has_spare_key,omitempty"`

	AcceptedAt  *time.Time `json:"accepted_at" bson:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at" bson:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether the request lifecycle has ended. Records are
// never hard-deleted; completed and cancelled are final.
func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceStatusCompleted || s == ServiceStatusCancelled
}

// CanTransitionTo encodes the allowed status machine:
// pending -> accepted|cancelled, accepted -> in_progress|cancelled,
// in_progress -> completed|cancelled.
func (s ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	switch s {
	case ServiceStatusPending:
		return next == ServiceStatusAccepted || next == ServiceStatusCancelled
	case ServiceStatusAccepted:
		return next == ServiceStatusInProgress || next == ServiceStatusCancelled
	case ServiceStatusInProgress:
		return next == ServiceStatusCompleted || next == ServiceStatusCancelled
	default:
		return false
	}
}

func IsValidServiceType(t ServiceType) bool {
	switch t {
	case ServiceTypeFuel, ServiceTypeBattery, ServiceTypeTire, ServiceTypeTow,
		ServiceTypeLockout, ServiceTypeDashcam, ServiceTypeMultimedia,
		ServiceTypeFitment, ServiceTypeInspection, ServiceTypeRepair,
		ServiceTypeBikeService, ServiceTypeOther:
		return true
	}
	return false
}

// PriceFactors is the per-type input to the price estimator. Only the types
// with an additive adjustment have a variant; the rest price at base.
type PriceFactors interface {
	isPriceFactors()
}

type FuelFactors struct {
	Amount float64
}

type TireFactors struct {
	HasSpareTire bool
}

type TowFactors struct {
	DistanceKM float64
}

type LockoutFactors struct {
	LockoutType string
}

func (FuelFactors) isPriceFactors()    {}
func (TireFactors) isPriceFactors()    {}
func (TowFactors) isPriceFactors()     {}
func (LockoutFactors) isPriceFactors() {}

// PriceFactors derives the estimator input from the stored record, so that
// re-pricing a persisted request uses the same fields the creation call did.
func (r *ServiceRequest) PriceFactors() PriceFactors {
	switch r.ServiceType {
	case ServiceTypeFuel:
		return FuelFactors{Amount: r.FuelAmount}
	case ServiceTypeTire:
		hasSpare := r.HasSpareTire != nil && *r.HasSpareTire
		return TireFactors{HasSpareTire: hasSpare}
	case ServiceTypeTow:
		return TowFactors{DistanceKM: r.TowDistanceKM}
	case ServiceTypeLockout:
		return LockoutFactors{LockoutType: r.LockoutType}
	default:
		return nil
	}
}
