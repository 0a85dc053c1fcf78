package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// DeviceTokenHandler handles push notification device token requests.
type DeviceTokenHandler struct {
	deviceTokenService services.DeviceTokenServicer
}

// NewDeviceTokenHandler creates a new DeviceTokenHandler.
func NewDeviceTokenHandler(deviceTokenService services.DeviceTokenServicer) *DeviceTokenHandler {
	return &DeviceTokenHandler{deviceTokenService: deviceTokenService}
}

// RegisterDeviceTokenRequest represents the device token registration payload
type RegisterDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required,max=500"`
	DeviceID    string `json:"device_id" binding:"required,max=255"`
	DeviceName  string `json:"device_name" binding:"max=255"`
	DeviceType  string `json:"device_type" binding:"omitempty,device_type"`
}

// UpdateDeviceTokenRequest represents the device token update payload
type UpdateDeviceTokenRequest struct {
	DeviceToken *string `json:"device_token" binding:"omitempty,max=500"`
	DeviceName  *string `json:"device_name" binding:"omitempty,max=255"`
	DeviceType  *string `json:"device_type" binding:"omitempty,device_type"`
	IsActive    *bool   `json:"is_active"`
}

// RegisterDeviceToken registers or refreshes a device token
// @Summary     Register a device token
// @Description Register a device token, replacing any prior one for the same device
// @Tags        device-tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RegisterDeviceTokenRequest true "Device token details"
// @Success     201 {object} models.UserDeviceToken "Device token registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /device-tokens [post]
func (h *DeviceTokenHandler) RegisterDeviceToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, err := h.deviceTokenService.RegisterDeviceToken(userID, services.DeviceTokenRegister{
		DeviceToken: req.DeviceToken,
		DeviceID:    req.DeviceID,
		DeviceName:  req.DeviceName,
		DeviceType:  req.DeviceType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"device_token": token})
}

// ListDeviceTokens lists the user's device tokens
// @Summary     List device tokens
// @Description List the user's device tokens, most recently used first
// @Tags        device-tokens
// @Produce     json
// @Security    BearerAuth
// @Param       active_only query bool false "Only return active tokens"
// @Success     200 {array} models.UserDeviceToken "Device tokens"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /device-tokens [get]
func (h *DeviceTokenHandler) ListDeviceTokens(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activeOnly := c.Query("active_only") == "true"

	tokens, err := h.deviceTokenService.ListDeviceTokens(userID, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_tokens": tokens})
}

// GetDeviceToken retrieves a single device token
// @Summary     Get a device token
// @Description Get a device token by ID
// @Tags        device-tokens
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Device token ID"
// @Success     200 {object} models.UserDeviceToken "Device token"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Device token not found"
// @Router      /device-tokens/{id} [get]
func (h *DeviceTokenHandler) GetDeviceToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.deviceTokenService.GetDeviceTokenByID(userID, tokenID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_token": token})
}

// UpdateDeviceToken applies a partial update to a device token
// @Summary     Update a device token
// @Description Update token value, device metadata or active flag
// @Tags        device-tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Device token ID"
// @Param       request body UpdateDeviceTokenRequest true "Fields to update"
// @Success     200 {object} models.UserDeviceToken "Updated device token"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Device token not found"
// @Router      /device-tokens/{id} [put]
func (h *DeviceTokenHandler) UpdateDeviceToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, err := h.deviceTokenService.UpdateDeviceToken(userID, tokenID, services.DeviceTokenUpdate{
		DeviceToken: req.DeviceToken,
		DeviceName:  req.DeviceName,
		DeviceType:  req.DeviceType,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_token": token})
}

// DeactivateDeviceToken marks a device token inactive
// @Summary     Deactivate a device token
// @Description Mark a device token inactive without deleting it
// @Tags        device-tokens
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Device token ID"
// @Success     200 {object} models.UserDeviceToken "Deactivated device token"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Device token not found"
// @Router      /device-tokens/{id}/deactivate [post]
func (h *DeviceTokenHandler) DeactivateDeviceToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.deviceTokenService.DeactivateDeviceToken(userID, tokenID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"device_token": token})
}

// DeleteDeviceToken removes a device token
// @Summary     Delete a device token
// @Description Permanently delete a device token registration
// @Tags        device-tokens
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Device token ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Device token not found"
// @Router      /device-tokens/{id} [delete]
func (h *DeviceTokenHandler) DeleteDeviceToken(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.deviceTokenService.DeleteDeviceToken(userID, tokenID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token deleted successfully"})
}
