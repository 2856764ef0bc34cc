package services

import (
	"context"
	"testing"
	"time"

	"roadassist/internal/config"
	"roadassist/internal/models"
	"roadassist/internal/utils"
	"roadassist/internal/validators"
	"roadassist/pkg/weather"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRequestRepo struct {
	byID    map[primitive.ObjectID]*models.ServiceRequest
	nearby  []*models.ServiceRequest
	updates map[primitive.ObjectID]map[string]interface{}
	created []*models.ServiceRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		byID:    make(map[primitive.ObjectID]*models.ServiceRequest),
		updates: make(map[primitive.ObjectID]map[string]interface{}),
	}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *models.ServiceRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.byID[request.ID] = request
	f.created = append(f.created, request)
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	request, ok := f.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("service request", id.Hex())
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.byID[id]; !ok {
		return utils.NewNotFoundError("service request", id.Hex())
	}
	f.updates[id] = updates
	return nil
}

func (f *fakeRequestRepo) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ServiceRequest, int64, error) {
	var result []*models.ServiceRequest
	for _, request := range f.byID {
		if request.UserID == userID {
			result = append(result, request)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRequestRepo) GetNearbyPending(ctx context.Context, longitude, latitude, maxDistanceMeters float64, serviceType *models.ServiceType) ([]*models.ServiceRequest, error) {
	var result []*models.ServiceRequest
	for _, request := range f.nearby {
		if request.Status != models.ServiceStatusPending {
			continue
		}
		if serviceType != nil && request.ServiceType != *serviceType {
			continue
		}
		distance := utils.CalculateDistanceMeters(
			latitude, longitude,
			request.Location.Latitude(), request.Location.Longitude(),
		)
		if distance <= maxDistanceMeters {
			result = append(result, request)
		}
	}
	return result, nil
}

func newTestService(repo *fakeRequestRepo, condition weather.Condition, now time.Time) ServiceRequestService {
	pricing := NewPricingService(
		config.LoadServiceCatalog(),
		testPricingRules(),
		&stubWeather{condition: condition},
		time.Second,
		nil,
		fixedClock(now),
	)
	return NewServiceRequestService(repo, pricing, nil)
}

func validFuelRequest() *validators.CreateServiceRequest {
	return &validators.CreateServiceRequest{
		VehicleID:   primitive.NewObjectID(),
		ServiceType: "fuel",
		Location: validators.LocationRequest{
			Latitude:  40.7128,
			Longitude: -74.0060,
			Address:   "350 5th Ave, New York",
		},
		FuelType:   "gasoline",
		FuelAmount: 5,
	}
}

func pendingRequestAt(lat, lng float64, serviceType models.ServiceType) *models.ServiceRequest {
	stale := 999.0
	return &models.ServiceRequest{
		ID:          primitive.NewObjectID(),
		UserID:      primitive.NewObjectID(),
		ServiceType: serviceType,
		Status:      models.ServiceStatusPending,
		Location:    models.NewLocation(lng, lat, "somewhere"),
		Price:       &stale,
	}
}

func TestCreateServiceComputesPriceAndArrival(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	svc := newTestService(repo, weather.ConditionClear, now)

	created, err := svc.CreateService(context.Background(), primitive.NewObjectID(), validFuelRequest())
	if err != nil {
		t.Fatalf("CreateService() error = %v", err)
	}

	if created.Price == nil || *created.Price != 68 { // (50 + 5x5) x 0.9 = 67.5
		t.Errorf("price = %v, want 68", created.Price)
	}
	if created.EstimatedArrival == nil || !created.EstimatedArrival.Equal(now.Add(30*time.Minute)) {
		t.Errorf("estimated arrival = %v, want %v", created.EstimatedArrival, now.Add(30*time.Minute))
	}
	if created.Status != models.ServiceStatusPending {
		t.Errorf("status = %v, want pending", created.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("persisted %d requests, want 1", len(repo.created))
	}
}

func TestCreateServiceRejectsInvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	svc := newTestService(repo, weather.ConditionClear, now)

	tests := []struct {
		name   string
		mutate func(*validators.CreateServiceRequest)
	}{
		{"unknown type", func(r *validators.CreateServiceRequest) { r.ServiceType = "jetpack" }},
		{"missing fuel amount", func(r *validators.CreateServiceRequest) { r.FuelAmount = 0 }},
		{"latitude out of range", func(r *validators.CreateServiceRequest) { r.Location.Latitude = 95 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFuelRequest()
			tt.mutate(req)

			_, err := svc.CreateService(context.Background(), primitive.NewObjectID(), req)
			if !utils.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if len(repo.created) != 0 {
		t.Errorf("invalid requests were persisted: %d", len(repo.created))
	}
}

func TestUpdateServiceStatusTransitions(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    models.ServiceStatus
		to      models.ServiceStatus
		allowed bool
	}{
		{"pending to accepted", models.ServiceStatusPending, models.ServiceStatusAccepted, true},
		{"pending to cancelled", models.ServiceStatusPending, models.ServiceStatusCancelled, true},
		{"pending to completed", models.ServiceStatusPending, models.ServiceStatusCompleted, false},
		{"accepted to in_progress", models.ServiceStatusAccepted, models.ServiceStatusInProgress, true},
		{"accepted to pending", models.ServiceStatusAccepted, models.ServiceStatusPending, false},
		{"in_progress to completed", models.ServiceStatusInProgress, models.ServiceStatusCompleted, true},
		{"completed is terminal", models.ServiceStatusCompleted, models.ServiceStatusCancelled, false},
		{"cancelled is terminal", models.ServiceStatusCancelled, models.ServiceStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRequestRepo()
			request := pendingRequestAt(40.7128, -74.0060, models.ServiceTypeBattery)
			request.Status = tt.from
			repo.byID[request.ID] = request

			svc := newTestService(repo, weather.ConditionClear, now)

			updated, err := svc.UpdateServiceStatus(context.Background(), request.ID, tt.to, nil)
			if tt.allowed {
				if err != nil {
					t.Fatalf("UpdateServiceStatus() error = %v", err)
				}
				if updated.Status != tt.to {
					t.Errorf("status = %v, want %v", updated.Status, tt.to)
				}
			} else {
				if !utils.IsValidationError(err) {
					t.Errorf("expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestUpdateServiceStatusAcceptRecomputesArrival(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	request := pendingRequestAt(40.7128, -74.0060, models.ServiceTypeBattery)
	staleArrival := now.Add(-time.Hour)
	request.EstimatedArrival = &staleArrival
	repo.byID[request.ID] = request

	svc := newTestService(repo, "rain", now)

	providerID := primitive.NewObjectID()
	updated, err := svc.UpdateServiceStatus(context.Background(), request.ID, models.ServiceStatusAccepted, &providerID)
	if err != nil {
		t.Fatalf("UpdateServiceStatus() error = %v", err)
	}

	want := now.Add(35 * time.Minute) // 25 nominal + 10 rain
	if updated.EstimatedArrival == nil || !updated.EstimatedArrival.Equal(want) {
		t.Errorf("estimated arrival = %v, want %v", updated.EstimatedArrival, want)
	}
	if updated.AcceptedAt == nil {
		t.Error("accepted_at not set")
	}
	if updated.ServiceProviderID == nil || *updated.ServiceProviderID != providerID {
		t.Errorf("provider = %v, want %v", updated.ServiceProviderID, providerID)
	}

	persisted := repo.updates[request.ID]
	if _, ok := persisted["estimated_arrival_time"]; !ok {
		t.Error("recomputed arrival not persisted")
	}
}

func TestUpdateServiceStatusCompleteDoesNotTouchArrival(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	request := pendingRequestAt(40.7128, -74.0060, models.ServiceTypeBattery)
	request.Status = models.ServiceStatusInProgress
	frozen := now.Add(25 * time.Minute)
	request.EstimatedArrival = &frozen
	repo.byID[request.ID] = request

	svc := newTestService(repo, "snow", now)

	updated, err := svc.UpdateServiceStatus(context.Background(), request.ID, models.ServiceStatusCompleted, nil)
	if err != nil {
		t.Fatalf("UpdateServiceStatus() error = %v", err)
	}

	if !updated.EstimatedArrival.Equal(frozen) {
		t.Errorf("arrival changed on completion: %v, want %v", updated.EstimatedArrival, frozen)
	}
	if updated.CompletedAt == nil {
		t.Error("completed_at not set")
	}
	if _, ok := repo.updates[request.ID]["estimated_arrival_time"]; ok {
		t.Error("arrival should not be rewritten after acceptance")
	}
}

func TestGetNearbyServicesFiltersAndReprices(t *testing.T) {
	now := time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC) // peak
	repo := newFakeRequestRepo()

	// Center on lower Manhattan; one request ~2km away, one ~8km away.
	near := pendingRequestAt(40.7308, -74.0060, models.ServiceTypeBattery)
	far := pendingRequestAt(40.7850, -74.0060, models.ServiceTypeBattery)
	accepted := pendingRequestAt(40.7308, -74.0060, models.ServiceTypeBattery)
	accepted.Status = models.ServiceStatusAccepted
	repo.nearby = []*models.ServiceRequest{near, far, accepted}

	svc := newTestService(repo, weather.ConditionClear, now)

	results, err := svc.GetNearbyServices(context.Background(), -74.0060, 40.7128, 5000, nil)
	if err != nil {
		t.Fatalf("GetNearbyServices() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ID != near.ID {
		t.Errorf("wrong request returned")
	}
	if results[0].Price == nil || *results[0].Price != 94 { // 75 x 1.25 peak, not the stale 999
		t.Errorf("price = %v, want freshly computed 94", results[0].Price)
	}
}

func TestGetNearbyServicesTypeFilter(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	repo.nearby = []*models.ServiceRequest{
		pendingRequestAt(40.7308, -74.0060, models.ServiceTypeBattery),
		pendingRequestAt(40.7308, -74.0060, models.ServiceTypeTow),
	}

	svc := newTestService(repo, weather.ConditionClear, now)

	towType := models.ServiceTypeTow
	results, err := svc.GetNearbyServices(context.Background(), -74.0060, 40.7128, 5000, &towType)
	if err != nil {
		t.Fatalf("GetNearbyServices() error = %v", err)
	}

	if len(results) != 1 || results[0].ServiceType != models.ServiceTypeTow {
		t.Errorf("type filter not applied: %+v", results)
	}
}

func TestGetNearbyServicesRejectsBadQuery(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRequestRepo(), weather.ConditionClear, now)

	_, err := svc.GetNearbyServices(context.Background(), -74.0060, 95, 5000, nil)
	if !utils.IsValidationError(err) {
		t.Errorf("expected validation error for bad latitude, got %v", err)
	}

	_, err = svc.GetNearbyServices(context.Background(), -74.0060, 40.7, utils.MaxSearchRadiusMeters+1, nil)
	if !utils.IsValidationError(err) {
		t.Errorf("expected validation error for oversized radius, got %v", err)
	}
}

func TestGetServiceDetailsRefreshesWhilePending(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	request := pendingRequestAt(40.7128, -74.0060, models.ServiceTypeBattery)
	repo.byID[request.ID] = request

	svc := newTestService(repo, weather.ConditionClear, now)

	got, err := svc.GetServiceDetails(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("GetServiceDetails() error = %v", err)
	}

	if got.Price == nil || *got.Price != 68 { // 75 x 0.9, not the stale 999
		t.Errorf("price = %v, want refreshed 68", got.Price)
	}
	if got.EstimatedArrival == nil || !got.EstimatedArrival.Equal(now.Add(25*time.Minute)) {
		t.Errorf("arrival = %v, want refreshed %v", got.EstimatedArrival, now.Add(25*time.Minute))
	}
}

func TestGetServiceDetailsKeepsStoredValuesAfterPending(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	repo := newFakeRequestRepo()
	request := pendingRequestAt(40.7128, -74.0060, models.ServiceTypeBattery)
	request.Status = models.ServiceStatusAccepted
	storedPrice := 123.0
	storedArrival := now.Add(40 * time.Minute)
	request.Price = &storedPrice
	request.EstimatedArrival = &storedArrival
	repo.byID[request.ID] = request

	svc := newTestService(repo, "snow", now)

	got, err := svc.GetServiceDetails(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("GetServiceDetails() error = %v", err)
	}

	if *got.Price != storedPrice {
		t.Errorf("price = %v, want stored %v", *got.Price, storedPrice)
	}
	if !got.EstimatedArrival.Equal(storedArrival) {
		t.Errorf("arrival = %v, want stored %v", got.EstimatedArrival, storedArrival)
	}
}

func TestGetServiceDetailsNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRequestRepo(), weather.ConditionClear, now)

	_, err := svc.GetServiceDetails(context.Background(), primitive.NewObjectID())
	if !utils.IsNotFoundError(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}
