package mongodb

import (
	"context"
	"time"

	"roadassist/internal/models"
	"roadassist/internal/repositories/interfaces"
	"roadassist/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type serviceRequestRepository struct {
	collection *mongo.Collection
}

func NewServiceRequestRepository(db *mongo.Database) interfaces.ServiceRequestRepository {
	return &serviceRequestRepository{
		collection: db.Collection("service_requests"),
	}
}

func (r *serviceRequestRepository) Create(ctx context.Context, request *models.ServiceRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return utils.NewStorageError("create service request", err)
	}

	return nil
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("service request", id.Hex())
		}
		return nil, utils.NewStorageError("get service request", err)
	}

	return &request, nil
}

func (r *serviceRequestRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return utils.NewStorageError("update service request", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("service request", id.Hex())
	}

	return nil
}

func (r *serviceRequestRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ServiceRequest, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, utils.NewStorageError("count user service requests", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, utils.NewStorageError("list user service requests", err)
	}
	defer cursor.Close(ctx)

	requests, err := decodeServiceRequests(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *serviceRequestRepository) GetNearbyPending(ctx context.Context, longitude, latitude, maxDistanceMeters float64, serviceType *models.ServiceType) ([]*models.ServiceRequest, error) {
	center := utils.Point{Lat: latitude, Lng: longitude}
	filter := bson.M{
		"status": models.ServiceStatusPending,
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": center.ToCoordinates(),
				},
				"$maxDistance": maxDistanceMeters,
			},
		},
	}

	if serviceType != nil {
		filter["service_type"] = *serviceType
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, utils.NewStorageError("find nearby service requests", err)
	}
	defer cursor.Close(ctx)

	return decodeServiceRequests(ctx, cursor)
}

func decodeServiceRequests(ctx context.Context, cursor *mongo.Cursor) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	for cursor.Next(ctx) {
		var request models.ServiceRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, utils.NewStorageError("decode service request", err)
		}
		requests = append(requests, &request)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewStorageError("iterate service requests", err)
	}

	return requests, nil
}
