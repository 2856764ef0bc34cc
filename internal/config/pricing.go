package config

// PricingConfig holds the dynamic-pricing rule set. Loaded once at process
// start and treated as read-only for the life of the process.
type PricingConfig struct {
	Time     TimePricing     `yaml:"time"`
	Distance DistancePricing `yaml:"distance"`
	Demand   DemandPricing   `yaml:"demand"`
	Weather  WeatherPricing  `yaml:"weather"`
}

type TimePricing struct {
	PeakHourMultiplier float64 `yaml:"peak_hour_multiplier"` // > 1
	PeakHours          []int   `yaml:"peak_hours"`           // hour-of-day, 0-23
	OffPeakDiscount    float64 `yaml:"off_peak_discount"`    // < 1
}

type DistancePricing struct {
	BaseDistanceKM  float64 `yaml:"base_distance_km"` // included before extra-distance charges
	PricePerExtraKM float64 `yaml:"price_per_extra_km"`
}

// DemandPricing is carried in the rule set but not yet applied; the demand
// term in the estimator is a no-op until real-time request data feeds it.
type DemandPricing struct {
	HighDemandMultiplier float64 `yaml:"high_demand_multiplier"`
	LowDemandDiscount    float64 `yaml:"low_demand_discount"`
}

type WeatherPricing struct {
	RainMultiplier float64 `yaml:"rain_multiplier"`
	SnowMultiplier float64 `yaml:"snow_multiplier"`
}

func loadPricingConfig() *PricingConfig {
	return &PricingConfig{
		Time: TimePricing{
			PeakHourMultiplier: getEnvAsFloat64("PRICING_PEAK_MULTIPLIER", 1.25),
			PeakHours:          getEnvAsIntSlice("PRICING_PEAK_HOURS", []int{7, 8, 9, 17, 18, 19}),
			OffPeakDiscount:    getEnvAsFloat64("PRICING_OFF_PEAK_DISCOUNT", 0.9),
		},
		Distance: DistancePricing{
			BaseDistanceKM:  getEnvAsFloat64("PRICING_BASE_DISTANCE_KM", 5),
			PricePerExtraKM: getEnvAsFloat64("PRICING_PER_EXTRA_KM", 2),
		},
		Demand: DemandPricing{
			HighDemandMultiplier: getEnvAsFloat64("PRICING_HIGH_DEMAND_MULTIPLIER", 1.3),
			LowDemandDiscount:    getEnvAsFloat64("PRICING_LOW_DEMAND_DISCOUNT", 0.85),
		},
		Weather: WeatherPricing{
			RainMultiplier: getEnvAsFloat64("PRICING_RAIN_MULTIPLIER", 1.2),
			SnowMultiplier: getEnvAsFloat64("PRICING_SNOW_MULTIPLIER", 1.4),
		},
	}
}

// IsPeakHour reports whether the given hour-of-day falls in the configured
// peak set. An hour is either peak or off-peak, never both.
func (p *PricingConfig) IsPeakHour(hour int) bool {
	for _, h := range p.Time.PeakHours {
		if h == hour {
			return true
		}
	}
	return false
}
