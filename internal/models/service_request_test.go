package models

import "testing"

func TestPriceFactorsDerivation(t *testing.T) {
	hasSpare := true

	tests := []struct {
		name    string
		request ServiceRequest
		want    PriceFactors
	}{
		{
			name:    "fuel",
			request: ServiceRequest{ServiceType: ServiceTypeFuel, FuelAmount: 12},
			want:    FuelFactors{Amount: 12},
		},
		{
			name:    "tire with spare",
			request: ServiceRequest{ServiceType: ServiceTypeTire, HasSpareTire: &hasSpare},
			want:    TireFactors{HasSpareTire: true},
		},
		{
			name:    "tire spare unknown counts as none",
			request: ServiceRequest{ServiceType: ServiceTypeTire},
			want:    TireFactors{HasSpareTire: false},
		},
		{
			name:    "tow",
			request: ServiceRequest{ServiceType: ServiceTypeTow, TowDistanceKM: 18},
			want:    TowFactors{DistanceKM: 18},
		},
		{
			name:    "lockout",
			request: ServiceRequest{ServiceType: ServiceTypeLockout, LockoutType: LockoutTypeLostKeys},
			want:    LockoutFactors{LockoutType: LockoutTypeLostKeys},
		},
		{
			name:    "battery has no factors",
			request: ServiceRequest{ServiceType: ServiceTypeBattery},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.request.PriceFactors(); got != tt.want {
				t.Errorf("PriceFactors() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	if !ServiceStatusCompleted.IsTerminal() || !ServiceStatusCancelled.IsTerminal() {
		t.Error("completed and cancelled are terminal")
	}
	if ServiceStatusPending.IsTerminal() || ServiceStatusAccepted.IsTerminal() || ServiceStatusInProgress.IsTerminal() {
		t.Error("active statuses are not terminal")
	}
}
