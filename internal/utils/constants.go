package utils

import "time"

// Application Constants
const (
	AppName    = "RoadAssist"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "en"
	DefaultCurrency    = "USD"
	DefaultCountryCode = "+1"
	DefaultTimeZone    = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Service Request Constants
	DefaultSearchRadiusMeters = 5000.0  // meters
	MaxSearchRadiusMeters     = 50000.0 // meters
	MaxTowDistanceKM          = 500.0   // kilometers
	MaxFuelAmount             = 50.0    // liters / gallons, provider dependent

	// Weather Constants
	WeatherLookupTimeout = 3 * time.Second
	WeatherCacheTTL      = 5 * time.Minute
	WeatherClear         = "clear"

	// ETA Delays
	RainDelayMinutes     = 10
	SnowDelayMinutes     = 20
	PeakHourDelayMinutes = 15
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrTokenExpired     = "token expired"
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrConflict         = "conflict"
	ErrValidationFailed = "validation failed"
	ErrServiceNotFound  = "service request not found"
)

// Cache Keys
const (
	CacheWeatherPrefix   = "weather:"
	CacheUserPrefix      = "user:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
)

// Geographic Constants
const (
	EarthRadiusKM    = 6371.0
	EarthRadiusMiles = 3959.0
)
