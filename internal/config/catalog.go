package config

import (
	"roadassist/internal/models"
)

// CatalogEntry is the static registry record for one service type: nominal
// price, per-unit pricing rules, and nominal fulfillment time in minutes.
type CatalogEntry struct {
	BasePrice           float64 `yaml:"base_price"`
	PricePerUnit        float64 `yaml:"price_per_unit"`        // fuel only, per liter
	SpareTirePrice      float64 `yaml:"spare_tire_price"`      // tire only
	KeyReplacementPrice float64 `yaml:"key_replacement_price"` // lockout only
	EstimatedTime       int     `yaml:"estimated_time"`        // minutes
}

// ServiceCatalog maps each service type to its catalog entry. Immutable after
// Load; concurrent reads need no locking.
type ServiceCatalog map[models.ServiceType]CatalogEntry

// LoadServiceCatalog builds the catalog from static defaults. Prices for the
// emergency services allow per-environment overrides since they vary by market.
func LoadServiceCatalog() ServiceCatalog {
	return ServiceCatalog{
		models.ServiceTypeFuel: {
			BasePrice:     getEnvAsFloat64("CATALOG_FUEL_BASE_PRICE", 50),
			PricePerUnit:  getEnvAsFloat64("CATALOG_FUEL_PRICE_PER_UNIT", 5),
			EstimatedTime: 30,
		},
		models.ServiceTypeBattery: {
			BasePrice:     getEnvAsFloat64("CATALOG_BATTERY_BASE_PRICE", 75),
			EstimatedTime: 25,
		},
		models.ServiceTypeTire: {
			BasePrice:      getEnvAsFloat64("CATALOG_TIRE_BASE_PRICE", 65),
			SpareTirePrice: getEnvAsFloat64("CATALOG_SPARE_TIRE_PRICE", 40),
			EstimatedTime:  35,
		},
		models.ServiceTypeTow: {
			BasePrice:     getEnvAsFloat64("CATALOG_TOW_BASE_PRICE", 100),
			EstimatedTime: 45,
		},
		models.ServiceTypeLockout: {
			BasePrice:           getEnvAsFloat64("CATALOG_LOCKOUT_BASE_PRICE", 60),
			KeyReplacementPrice: getEnvAsFloat64("CATALOG_KEY_REPLACEMENT_PRICE", 40),
			EstimatedTime:       20,
		},
		models.ServiceTypeDashcam: {
			BasePrice:     getEnvAsFloat64("CATALOG_DASHCAM_BASE_PRICE", 150),
			EstimatedTime: 60,
		},
		models.ServiceTypeMultimedia: {
			BasePrice:     getEnvAsFloat64("CATALOG_MULTIMEDIA_BASE_PRICE", 300),
			EstimatedTime: 90,
		},
		models.ServiceTypeFitment: {
			BasePrice:     getEnvAsFloat64("CATALOG_FITMENT_BASE_PRICE", 200),
			EstimatedTime: 75,
		},
		models.ServiceTypeInspection: {
			BasePrice:     getEnvAsFloat64("CATALOG_INSPECTION_BASE_PRICE", 80),
			EstimatedTime: 50,
		},
		models.ServiceTypeRepair: {
			BasePrice:     getEnvAsFloat64("CATALOG_REPAIR_BASE_PRICE", 120),
			EstimatedTime: 60,
		},
		models.ServiceTypeBikeService: {
			BasePrice:     getEnvAsFloat64("CATALOG_BIKE_SERVICE_BASE_PRICE", 45),
			EstimatedTime: 30,
		},
		models.ServiceTypeOther: {
			BasePrice:     getEnvAsFloat64("CATALOG_OTHER_BASE_PRICE", 50),
			EstimatedTime: 40,
		},
	}
}

// Entry returns the catalog record for the given type and whether it exists.
func (c ServiceCatalog) Entry(serviceType models.ServiceType) (CatalogEntry, bool) {
	entry, ok := c[serviceType]
	return entry, ok
}
