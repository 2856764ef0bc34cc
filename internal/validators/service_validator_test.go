package validators

import (
	"testing"

	"roadassist/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func baseRequest(serviceType string) *CreateServiceRequest {
	return &CreateServiceRequest{
		VehicleID:   primitive.NewObjectID(),
		ServiceType: serviceType,
		Location: LocationRequest{
			Latitude:  40.7128,
			Longitude: -74.0060,
			Address:   "350 5th Ave, New York",
		},
	}
}

func TestValidateCreateServicePerType(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name    string
		build   func() *CreateServiceRequest
		wantErr bool
	}{
		{
			name: "valid fuel",
			build: func() *CreateServiceRequest {
				r := baseRequest("fuel")
				r.FuelType = "gasoline"
				r.FuelAmount = 10
				return r
			},
		},
		{
			name: "fuel without type",
			build: func() *CreateServiceRequest {
				r := baseRequest("fuel")
				r.FuelAmount = 10
				return r
			},
			wantErr: true,
		},
		{
			name: "fuel amount over the cap",
			build: func() *CreateServiceRequest {
				r := baseRequest("fuel")
				r.FuelType = "diesel"
				r.FuelAmount = utils.MaxFuelAmount + 1
				return r
			},
			wantErr: true,
		},
		{
			name: "valid battery",
			build: func() *CreateServiceRequest {
				r := baseRequest("battery")
				r.BatteryType = "AGM"
				r.BatteryIssue = "dead_battery"
				return r
			},
		},
		{
			name: "battery without issue",
			build: func() *CreateServiceRequest {
				r := baseRequest("battery")
				r.BatteryType = "AGM"
				return r
			},
			wantErr: true,
		},
		{
			name: "valid tire",
			build: func() *CreateServiceRequest {
				r := baseRequest("tire")
				r.TireIssue = "flat_tire"
				r.TireLocation = "front_left"
				r.HasSpareTire = boolPtr(true)
				return r
			},
		},
		{
			name: "tire without spare flag",
			build: func() *CreateServiceRequest {
				r := baseRequest("tire")
				r.TireIssue = "flat_tire"
				r.TireLocation = "front_left"
				return r
			},
			wantErr: true,
		},
		{
			name: "valid tow",
			build: func() *CreateServiceRequest {
				r := baseRequest("tow")
				r.TowReason = "mechanical_failure"
				r.DestinationType = "repair_shop"
				r.DestinationAddress = "12 Mechanic St"
				r.TowDistanceKM = 12
				return r
			},
		},
		{
			name: "tow without destination",
			build: func() *CreateServiceRequest {
				r := baseRequest("tow")
				r.TowReason = "accident"
				r.DestinationType = "repair_shop"
				return r
			},
			wantErr: true,
		},
		{
			name: "tow distance over the cap",
			build: func() *CreateServiceRequest {
				r := baseRequest("tow")
				r.TowReason = "accident"
				r.DestinationType = "repair_shop"
				r.DestinationAddress = "12 Mechanic St"
				r.TowDistanceKM = utils.MaxTowDistanceKM + 1
				return r
			},
			wantErr: true,
		},
		{
			name: "valid lockout",
			build: func() *CreateServiceRequest {
				r := baseRequest("lockout")
				r.LockoutType = "keys_locked_in"
				r.HasSpareKey = boolPtr(false)
				return r
			},
		},
		{
			name: "lockout without type",
			build: func() *CreateServiceRequest {
				r := baseRequest("lockout")
				r.HasSpareKey = boolPtr(false)
				return r
			},
			wantErr: true,
		},
		{
			name:  "inspection needs no detail fields",
			build: func() *CreateServiceRequest { return baseRequest("inspection") },
		},
		{
			name:    "unknown service type",
			build:   func() *CreateServiceRequest { return baseRequest("jetpack") },
			wantErr: true,
		},
		{
			name: "latitude out of range",
			build: func() *CreateServiceRequest {
				r := baseRequest("inspection")
				r.Location.Latitude = 91
				return r
			},
			wantErr: true,
		},
		{
			name: "address too short",
			build: func() *CreateServiceRequest {
				r := baseRequest("inspection")
				r.Location.Address = "x"
				return r
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateService(tt.build())
			if tt.wantErr && !utils.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateNearbyServices(t *testing.T) {
	coord := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		req     NearbyServicesRequest
		wantErr bool
	}{
		{"valid", NearbyServicesRequest{Latitude: coord(40.7), Longitude: coord(-74.0), MaxDistance: 5000}, false},
		{"valid with type", NearbyServicesRequest{Latitude: coord(40.7), Longitude: coord(-74.0), ServiceType: "tow"}, false},
		{"zero coordinates are a real place", NearbyServicesRequest{Latitude: coord(0), Longitude: coord(0)}, false},
		{"empty query", NearbyServicesRequest{}, true},
		{"missing latitude", NearbyServicesRequest{Longitude: coord(-74.0)}, true},
		{"missing longitude", NearbyServicesRequest{Latitude: coord(40.7)}, true},
		{"radius over cap", NearbyServicesRequest{Latitude: coord(40.7), Longitude: coord(-74.0), MaxDistance: utils.MaxSearchRadiusMeters + 1}, true},
		{"longitude out of range", NearbyServicesRequest{Latitude: coord(40.7), Longitude: coord(-181)}, true},
		{"unknown type", NearbyServicesRequest{Latitude: coord(40.7), Longitude: coord(-74.0), ServiceType: "jetpack"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNearbyServices(&tt.req)
			if tt.wantErr && !utils.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateUpdateServiceStatus(t *testing.T) {
	providerID := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		req     UpdateServiceStatusRequest
		wantErr bool
	}{
		{"accepted with provider", UpdateServiceStatusRequest{Status: "accepted", ServiceProviderID: &providerID}, false},
		{"cancelled without provider", UpdateServiceStatusRequest{Status: "cancelled"}, false},
		{"unknown status", UpdateServiceStatusRequest{Status: "teleported"}, true},
		{"pending is not a transition target", UpdateServiceStatusRequest{Status: "pending"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdateServiceStatus(&tt.req)
			if tt.wantErr && !utils.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
