package interfaces

import (
	"context"

	"roadassist/internal/models"
	"roadassist/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceRequestRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, request *models.ServiceRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Search and filtering
	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ServiceRequest, int64, error)

	// Geo queries. GetNearbyPending returns pending requests within
	// maxDistanceMeters of the point, in $near order (distance ascending),
	// optionally restricted to one service type.
	GetNearbyPending(ctx context.Context, longitude, latitude, maxDistanceMeters float64, serviceType *models.ServiceType) ([]*models.ServiceRequest, error)
}
