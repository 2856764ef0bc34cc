package validators

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadassist/internal/models"
	"roadassist/internal/utils"
)

var validate = validator.New()

type CreateServiceRequest struct {
	VehicleID   primitive.ObjectID `json:"vehicle_id" validate:"required"`
	ServiceType string             `json:"service_type" validate:"required"`
	Location    LocationRequest    `json:"location" validate:"required"`
	Description string             `json:"description" validate:"omitempty,max=1000"`

	// Fuel delivery
	FuelType   string  `json:"fuel_type" validate:"omitempty,oneof=gasoline diesel"`
	FuelAmount float64 `json:"fuel_amount" validate:"omitempty,gt=0"`

	// Battery service
	BatteryType  string `json:"battery_type" validate:"omitempty,max=100"`
	BatteryIssue string `json:"battery_issue" validate:"omitempty,oneof=dead_battery corroded_terminals faulty_alternator other"`

	// Tire service
	TireIssue    string `json:"tire_issue" validate:"omitempty,oneof=flat_tire puncture blowout other"`
	TireLocation string `json:"tire_location" validate:"omitempty,oneof=front_left front_right rear_left rear_right spare"`
	HasSpareTire *bool  `json:"has_spare_tire"`

	// Towing
	TowReason          string  `json:"tow_reason" validate:"omitempty,oneof=accident mechanical_failure illegal_parking other"`
	DestinationType    string  `json:"destination_type" validate:"omitempty,oneof=repair_shop home dealer other"`
	DestinationAddress string  `json:"destination_address" validate:"omitempty,max=255"`
	TowDistanceKM      float64 `json:"tow_distance_km" validate:"omitempty,gt=0"`

	// Lockout
	LockoutType string `json:"lockout_type" validate:"omitempty,oneof=keys_locked_in lost_keys broken_key faulty_lock other"`
	HasSpareKey *bool  `json:"has_spare_key"`
}

type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Address   string  `json:"address" validate:"required,min=5,max=255"`
}

type UpdateServiceStatusRequest struct {
	Status            string  `json:"status" validate:"required,oneof=accepted in_progress completed cancelled"`
	ServiceProviderID *string `json:"service_provider_id" validate:"omitempty,len=24"`
}

// Coordinates are pointers so an absent parameter is distinguishable from a
// legitimate 0.0 (the equator and the prime meridian are valid places to
// break down).
type NearbyServicesRequest struct {
	Longitude   *float64 `form:"longitude" validate:"required,min=-180,max=180"`
	Latitude    *float64 `form:"latitude" validate:"required,min=-90,max=90"`
	MaxDistance float64  `form:"max_distance" validate:"omitempty,gt=0"`
	ServiceType string   `form:"type" validate:"omitempty"`
}

// ValidateCreateService checks the structural tags plus the per-type
// conditional requirements the type system cannot express: each service type
// requires exactly its own detail fields.
func ValidateCreateService(req *CreateServiceRequest) error {
	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError("", err.Error())
	}

	serviceType := models.ServiceType(req.ServiceType)
	if !models.IsValidServiceType(serviceType) {
		return utils.NewValidationError("service_type", "unknown service type "+req.ServiceType)
	}

	if !utils.IsValidCoordinates(req.Location.Latitude, req.Location.Longitude) {
		return utils.NewValidationError("location", "coordinates out of range")
	}

	switch serviceType {
	case models.ServiceTypeFuel:
		if req.FuelType == "" {
			return utils.NewValidationError("fuel_type", "required for fuel delivery")
		}
		if req.FuelAmount <= 0 {
			return utils.NewValidationError("fuel_amount", "required for fuel delivery")
		}
		if req.FuelAmount > utils.MaxFuelAmount {
			return utils.NewValidationError("fuel_amount", "exceeds maximum deliverable amount")
		}

	case models.ServiceTypeBattery:
		if req.BatteryType == "" {
			return utils.NewValidationError("battery_type", "required for battery service")
		}
		if req.BatteryIssue == "" {
			return utils.NewValidationError("battery_issue", "required for battery service")
		}

	case models.ServiceTypeTire:
		if req.TireIssue == "" {
			return utils.NewValidationError("tire_issue", "required for tire service")
		}
		if req.TireLocation == "" {
			return utils.NewValidationError("tire_location", "required for tire service")
		}
		if req.HasSpareTire == nil {
			return utils.NewValidationError("has_spare_tire", "required for tire service")
		}

	case models.ServiceTypeTow:
		if req.TowReason == "" {
			return utils.NewValidationError("tow_reason", "required for towing")
		}
		if req.DestinationType == "" {
			return utils.NewValidationError("destination_type", "required for towing")
		}
		if req.DestinationAddress == "" {
			return utils.NewValidationError("destination_address", "required for towing")
		}
		if req.TowDistanceKM > utils.MaxTowDistanceKM {
			return utils.NewValidationError("tow_distance_km", "exceeds maximum tow distance")
		}

	case models.ServiceTypeLockout:
		if req.LockoutType == "" {
			return utils.NewValidationError("lockout_type", "required for lockout assistance")
		}
		if req.HasSpareKey == nil {
			return utils.NewValidationError("has_spare_key", "required for lockout assistance")
		}
	}

	return nil
}

// ValidateNearbyServices bounds the geo query inputs before they reach the
// store.
func ValidateNearbyServices(req *NearbyServicesRequest) error {
	if req.Longitude == nil || req.Latitude == nil {
		return utils.NewValidationError("coordinates", "longitude and latitude are required")
	}

	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError("", err.Error())
	}

	if !utils.IsValidCoordinates(*req.Latitude, *req.Longitude) {
		return utils.NewValidationError("coordinates", "out of range")
	}

	if req.MaxDistance > utils.MaxSearchRadiusMeters {
		return utils.NewValidationError("max_distance", "exceeds maximum search radius")
	}

	if req.ServiceType != "" && !models.IsValidServiceType(models.ServiceType(req.ServiceType)) {
		return utils.NewValidationError("type", "unknown service type "+req.ServiceType)
	}

	return nil
}

func ValidateUpdateServiceStatus(req *UpdateServiceStatusRequest) error {
	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError("", err.Error())
	}

	return nil
}
