package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"roadassist/internal/config"
	"roadassist/internal/models"
	"roadassist/internal/utils"
	"roadassist/pkg/logger"
	"roadassist/pkg/weather"
)

// Clock supplies the current time. Injected so estimates are repeatable
// under test.
type Clock func() time.Time

type PricingService interface {
	// EstimatePrice returns the dynamic price for a service at a location:
	// catalog base price, plus the service-specific additive adjustment,
	// times the time-of-day and weather multipliers, rounded half-up to the
	// nearest whole currency unit.
	EstimatePrice(ctx context.Context, serviceType models.ServiceType, factors models.PriceFactors, location utils.Point) (float64, error)

	// EstimateArrival returns the estimated provider arrival time: now plus
	// the catalog nominal time, plus weather and peak-hour delays. The
	// result is never earlier than now plus the nominal time.
	EstimateArrival(ctx context.Context, serviceType models.ServiceType, location utils.Point) (time.Time, error)
}

// multiplierTerm is one factor of the price multiplier. Terms compose by
// multiplication, so adding a demand term later needs no restructuring.
type multiplierTerm func(now time.Time, condition weather.Condition) float64

type pricingService struct {
	catalog        config.ServiceCatalog
	rules          *config.PricingConfig
	weatherLookup  weather.Provider
	weatherTimeout time.Duration
	logger         *logger.Logger
	now            Clock
	terms          []multiplierTerm
}

func NewPricingService(
	catalog config.ServiceCatalog,
	rules *config.PricingConfig,
	weatherLookup weather.Provider,
	weatherTimeout time.Duration,
	log *logger.Logger,
	clock Clock,
) PricingService {
	if clock == nil {
		clock = time.Now
	}
	if weatherTimeout <= 0 {
		weatherTimeout = utils.WeatherLookupTimeout
	}

	s := &pricingService{
		catalog:        catalog,
		rules:          rules,
		weatherLookup:  weatherLookup,
		weatherTimeout: weatherTimeout,
		logger:         log,
		now:            clock,
	}

	s.terms = []multiplierTerm{
		s.timeFactor,
		s.weatherFactor,
		s.demandFactor,
	}

	return s
}

func (s *pricingService) EstimatePrice(ctx context.Context, serviceType models.ServiceType, factors models.PriceFactors, location utils.Point) (float64, error) {
	entry, ok := s.catalog.Entry(serviceType)
	if !ok {
		return 0, utils.NewValidationError("service_type", fmt.Sprintf("unknown service type %q", serviceType))
	}

	if !utils.IsValidCoordinates(location.Lat, location.Lng) {
		return 0, utils.NewValidationError("coordinates", location.String()+" out of range")
	}

	basePrice, err := s.adjustedBasePrice(entry, serviceType, factors)
	if err != nil {
		return 0, err
	}

	condition := s.currentCondition(ctx, location)

	multiplier := 1.0
	now := s.now()
	for _, term := range s.terms {
		multiplier *= term(now, condition)
	}

	return roundHalfUp(basePrice * multiplier), nil
}

func (s *pricingService) EstimateArrival(ctx context.Context, serviceType models.ServiceType, location utils.Point) (time.Time, error) {
	entry, ok := s.catalog.Entry(serviceType)
	if !ok {
		return time.Time{}, utils.NewValidationError("service_type", fmt.Sprintf("unknown service type %q", serviceType))
	}

	if !utils.IsValidCoordinates(location.Lat, location.Lng) {
		return time.Time{}, utils.NewValidationError("coordinates", location.String()+" out of range")
	}

	arrival := s.now().Add(time.Duration(entry.EstimatedTime) * time.Minute)

	condition := s.currentCondition(ctx, location)
	if strings.Contains(condition, "rain") {
		arrival = arrival.Add(utils.RainDelayMinutes * time.Minute)
	} else if strings.Contains(condition, "snow") {
		arrival = arrival.Add(utils.SnowDelayMinutes * time.Minute)
	}

	// Traffic delay is judged on the weather-delayed timestamp, not on the
	// request time.
	if s.rules.IsPeakHour(arrival.Hour()) {
		arrival = arrival.Add(utils.PeakHourDelayMinutes * time.Minute)
	}

	return arrival, nil
}

// adjustedBasePrice applies the per-type additive adjustment. The factors
// variant must match the service type; types without an adjustment take nil.
func (s *pricingService) adjustedBasePrice(entry config.CatalogEntry, serviceType models.ServiceType, factors models.PriceFactors) (float64, error) {
	basePrice := entry.BasePrice

	switch serviceType {
	case models.ServiceTypeFuel:
		f, ok := factors.(models.FuelFactors)
		if !ok {
			return 0, utils.NewValidationError("factors", "fuel request requires fuel factors")
		}
		basePrice += f.Amount * entry.PricePerUnit

	case models.ServiceTypeTire:
		f, ok := factors.(models.TireFactors)
		if !ok {
			return 0, utils.NewValidationError("factors", "tire request requires tire factors")
		}
		if !f.HasSpareTire {
			basePrice += entry.SpareTirePrice
		}

	case models.ServiceTypeTow:
		f, ok := factors.(models.TowFactors)
		if !ok {
			return 0, utils.NewValidationError("factors", "tow request requires tow factors")
		}
		if f.DistanceKM > s.rules.Distance.BaseDistanceKM {
			extraDistance := f.DistanceKM - s.rules.Distance.BaseDistanceKM
			basePrice += extraDistance * s.rules.Distance.PricePerExtraKM
		}

	case models.ServiceTypeLockout:
		f, ok := factors.(models.LockoutFactors)
		if !ok {
			return 0, utils.NewValidationError("factors", "lockout request requires lockout factors")
		}
		if f.LockoutType == models.LockoutTypeLostKeys {
			basePrice += entry.KeyReplacementPrice
		}

	default:
		// No additive adjustment for the remaining types.
	}

	return basePrice, nil
}

func (s *pricingService) timeFactor(now time.Time, _ weather.Condition) float64 {
	if s.rules.IsPeakHour(now.Hour()) {
		return s.rules.Time.PeakHourMultiplier
	}
	return s.rules.Time.OffPeakDiscount
}

// weatherFactor checks rain before snow. The upstream category vocabulary
// keeps the two mutually exclusive; the ordering only matters if that ever
// stops being true.
func (s *pricingService) weatherFactor(_ time.Time, condition weather.Condition) float64 {
	if strings.Contains(condition, "rain") {
		return s.rules.Weather.RainMultiplier
	}
	if strings.Contains(condition, "snow") {
		return s.rules.Weather.SnowMultiplier
	}
	return 1
}

// demandFactor is the extension seam for demand-based pricing. It stays a
// no-op until real-time request volume feeds it.
func (s *pricingService) demandFactor(_ time.Time, _ weather.Condition) float64 {
	return 1
}

// currentCondition looks up the weather at the given point. Any failure is
// recovered with a clear-condition fallback; estimation never hard-fails on
// weather availability.
func (s *pricingService) currentCondition(ctx context.Context, location utils.Point) weather.Condition {
	if s.weatherLookup == nil {
		return weather.ConditionClear
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.weatherTimeout)
	defer cancel()

	condition, err := s.weatherLookup.GetCondition(lookupCtx, location.Lat, location.Lng)
	if err != nil {
		if s.logger != nil {
			s.logger.LogWeatherFallback(location.Lat, location.Lng, err)
		}
		return weather.ConditionClear
	}

	return condition
}

// roundHalfUp rounds to the nearest whole currency unit, ties away from
// zero upward: 67.5 rounds to 68.
func roundHalfUp(value float64) float64 {
	return math.Floor(value + 0.5)
}
