package services

import (
	"context"
	"time"

	"roadassist/internal/models"
	"roadassist/internal/repositories/interfaces"
	"roadassist/internal/utils"
	"roadassist/internal/validators"
	"roadassist/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRequestService interface {
	// CreateService validates the draft, computes the initial price and ETA,
	// persists the request and returns the populated record. An estimation
	// failure aborts the whole operation; a request is never persisted
	// without a price.
	CreateService(ctx context.Context, userID primitive.ObjectID, req *validators.CreateServiceRequest) (*models.ServiceRequest, error)

	// UpdateServiceStatus applies a status transition. On the transition to
	// accepted the ETA is recomputed once, reflecting conditions at
	// acceptance time; it is never recomputed after that.
	UpdateServiceStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus, providerID *primitive.ObjectID) (*models.ServiceRequest, error)

	// GetNearbyServices returns pending requests within the radius, each
	// re-priced at query time so callers never see a stale price. Stored
	// prices and ETAs are left untouched.
	GetNearbyServices(ctx context.Context, longitude, latitude, maxDistanceMeters float64, serviceType *models.ServiceType) ([]*models.ServiceRequest, error)

	// GetServiceDetails returns one request. While the request is pending
	// its price and ETA are recomputed for current conditions; once the
	// status leaves pending the stored values are returned unchanged.
	GetServiceDetails(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error)

	// GetUserServices lists a user's requests, newest first by default.
	GetUserServices(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ServiceRequest, int64, error)
}

type serviceRequestService struct {
	requestRepo interfaces.ServiceRequestRepository
	pricing     PricingService
	logger      *logger.Logger
}

func NewServiceRequestService(
	requestRepo interfaces.ServiceRequestRepository,
	pricing PricingService,
	log *logger.Logger,
) ServiceRequestService {
	return &serviceRequestService{
		requestRepo: requestRepo,
		pricing:     pricing,
		logger:      log,
	}
}

func (s *serviceRequestService) CreateService(ctx context.Context, userID primitive.ObjectID, req *validators.CreateServiceRequest) (*models.ServiceRequest, error) {
	if err := validators.ValidateCreateService(req); err != nil {
		return nil, err
	}

	request := buildServiceRequest(userID, req)
	point := utils.NewPointFromCoordinates(request.Location.Coordinates)

	price, err := s.pricing.EstimatePrice(ctx, request.ServiceType, request.PriceFactors(), point)
	if err != nil {
		return nil, err
	}

	arrival, err := s.pricing.EstimateArrival(ctx, request.ServiceType, point)
	if err != nil {
		return nil, err
	}

	request.Price = &price
	request.EstimatedArrival = &arrival

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.LogServiceEvent(request.ID, "created", map[string]interface{}{
			"service_type": request.ServiceType,
			"price":        price,
		})
	}

	return request, nil
}

func (s *serviceRequestService) UpdateServiceStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus, providerID *primitive.ObjectID) (*models.ServiceRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !request.Status.CanTransitionTo(status) {
		return nil, utils.NewValidationError("status", string(request.Status)+" cannot transition to "+string(status))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status": status,
	}
	if providerID != nil {
		updates["service_provider_id"] = *providerID
		request.ServiceProviderID = providerID
	}

	switch status {
	case models.ServiceStatusAccepted:
		// ETA is recomputed exactly once here, then frozen for the rest of
		// the lifecycle.
		point := utils.NewPointFromCoordinates(request.Location.Coordinates)
		arrival, err := s.pricing.EstimateArrival(ctx, request.ServiceType, point)
		if err != nil {
			return nil, err
		}
		updates["estimated_arrival_time"] = arrival
		updates["accepted_at"] = now
		request.EstimatedArrival = &arrival
		request.AcceptedAt = &now

	case models.ServiceStatusCompleted:
		updates["completed_at"] = now
		request.CompletedAt = &now

	case models.ServiceStatusCancelled:
		updates["cancelled_at"] = now
		request.CancelledAt = &now
	}

	if err := s.requestRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	request.Status = status
	request.UpdatedAt = now

	if s.logger != nil {
		s.logger.LogServiceEvent(id, "status_changed", map[string]interface{}{
			"status": status,
		})
	}

	return request, nil
}

func (s *serviceRequestService) GetNearbyServices(ctx context.Context, longitude, latitude, maxDistanceMeters float64, serviceType *models.ServiceType) ([]*models.ServiceRequest, error) {
	if !utils.IsValidCoordinates(latitude, longitude) {
		return nil, utils.NewValidationError("coordinates", "out of range")
	}
	if maxDistanceMeters <= 0 || maxDistanceMeters > utils.MaxSearchRadiusMeters {
		return nil, utils.NewValidationError("max_distance", "must be positive and within the maximum search radius")
	}

	requests, err := s.requestRepo.GetNearbyPending(ctx, longitude, latitude, maxDistanceMeters, serviceType)
	if err != nil {
		return nil, err
	}

	// Every returned request carries a price for current time and weather,
	// not the price stored at creation. The stored record is not updated.
	for _, request := range requests {
		point := utils.NewPointFromCoordinates(request.Location.Coordinates)
		price, err := s.pricing.EstimatePrice(ctx, request.ServiceType, request.PriceFactors(), point)
		if err != nil {
			return nil, err
		}
		request.Price = &price
	}

	return requests, nil
}

func (s *serviceRequestService) GetServiceDetails(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Status == models.ServiceStatusPending {
		point := utils.NewPointFromCoordinates(request.Location.Coordinates)

		price, err := s.pricing.EstimatePrice(ctx, request.ServiceType, request.PriceFactors(), point)
		if err != nil {
			return nil, err
		}

		arrival, err := s.pricing.EstimateArrival(ctx, request.ServiceType, point)
		if err != nil {
			return nil, err
		}

		request.Price = &price
		request.EstimatedArrival = &arrival
	}

	return request, nil
}

func (s *serviceRequestService) GetUserServices(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ServiceRequest, int64, error) {
	return s.requestRepo.GetByUser(ctx, userID, params)
}

func buildServiceRequest(userID primitive.ObjectID, req *validators.CreateServiceRequest) *models.ServiceRequest {
	return &models.ServiceRequest{
		UserID:      userID,
		VehicleID:   req.VehicleID,
		ServiceType: models.ServiceType(req.ServiceType),
		Status:      models.ServiceStatusPending,
		Location:    models.NewLocation(req.Location.Longitude, req.Location.Latitude, req.Location.Address),
		Description: req.Description,

		FuelType:   req.FuelType,
		FuelAmount: req.FuelAmount,

		BatteryType:  req.BatteryType,
		BatteryIssue: req.BatteryIssue,

		TireIssue:    req.TireIssue,
		TireLocation: req.TireLocation,
		HasSpareTire: req.HasSpareTire,

		TowReason:          req.TowReason,
		DestinationType:    req.DestinationType,
		DestinationAddress: req.DestinationAddress,
		TowDistanceKM:      req.TowDistanceKM,

		LockoutType: req.LockoutType,
		HasSpareKey: req.HasSpareKey,
	}
}
