package handlers

import (
	"roadassist/internal/models"
	"roadassist/internal/services"
	"roadassist/internal/utils"
	"roadassist/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceHandler struct {
	serviceRequestService services.ServiceRequestService
}

func NewServiceHandler(serviceRequestService services.ServiceRequestService) *ServiceHandler {
	return &ServiceHandler{
		serviceRequestService: serviceRequestService,
	}
}

// CreateService creates a new roadside assistance request with an upfront
// price and estimated arrival time
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var request validators.CreateServiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	userObjectID, ok := currentUserID(c)
	if !ok {
		return
	}

	created, err := h.serviceRequestService.CreateService(c.Request.Context(), userObjectID, &request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Service request created successfully", created)
}

// GetUserServices retrieves the authenticated user's service requests
func (h *ServiceHandler) GetUserServices(c *gin.Context) {
	userObjectID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.serviceRequestService.GetUserServices(c.Request.Context(), userObjectID, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	response := map[string]interface{}{
		"services": requests,
	}

	utils.SuccessResponseWithMeta(c, "Service requests retrieved successfully", response, meta)
}

// GetNearbyServices retrieves pending requests near a point, re-priced for
// current conditions
func (h *ServiceHandler) GetNearbyServices(c *gin.Context) {
	var query validators.NearbyServicesRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}

	if err := validators.ValidateNearbyServices(&query); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	maxDistance := query.MaxDistance
	if maxDistance == 0 {
		maxDistance = utils.DefaultSearchRadiusMeters
	}

	var serviceType *models.ServiceType
	if query.ServiceType != "" {
		t := models.ServiceType(query.ServiceType)
		serviceType = &t
	}

	requests, err := h.serviceRequestService.GetNearbyServices(c.Request.Context(), *query.Longitude, *query.Latitude, maxDistance, serviceType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	response := map[string]interface{}{
		"services": requests,
		"count":    len(requests),
	}

	utils.SuccessResponse(c, "Nearby service requests retrieved successfully", response)
}

// GetServiceDetails retrieves a single request; pending requests come back
// with price and arrival time refreshed
func (h *ServiceHandler) GetServiceDetails(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid service ID")
		return
	}

	request, err := h.serviceRequestService.GetServiceDetails(c.Request.Context(), serviceID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Service request retrieved successfully", request)
}

// UpdateServiceStatus moves a request through its lifecycle
func (h *ServiceHandler) UpdateServiceStatus(c *gin.Context) {
	serviceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid service ID")
		return
	}

	var request validators.UpdateServiceStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := validators.ValidateUpdateServiceStatus(&request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var providerID *primitive.ObjectID
	if request.ServiceProviderID != nil {
		id, err := primitive.ObjectIDFromHex(*request.ServiceProviderID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid service provider ID")
			return
		}
		providerID = &id
	}

	updated, err := h.serviceRequestService.UpdateServiceStatus(c.Request.Context(), serviceID, models.ServiceStatus(request.Status), providerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Service status updated successfully", updated)
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return userObjectID, true
}
