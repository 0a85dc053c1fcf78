package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// deviceTokenService handles push notification device token management.
type deviceTokenService struct {
	db *gorm.DB
}

// NewDeviceTokenService creates a new DeviceTokenServicer.
func NewDeviceTokenService(db *gorm.DB) DeviceTokenServicer {
	return &deviceTokenService{db: db}
}

// RegisterDeviceToken registers a device token, or refreshes the existing
// registration when the user already has one for the device.
func (s *deviceTokenService) RegisterDeviceToken(userID string, in DeviceTokenRegister) (*models.UserDeviceToken, error) {
	if in.DeviceToken == "" || in.DeviceID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "device_token and device_id are required")
	}

	now := time.Now().UTC()

	var existing models.UserDeviceToken
	err := s.db.Where("user_id = ? AND device_id = ?", userID, in.DeviceID).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"device_token": in.DeviceToken,
			"device_name":  in.DeviceName,
			"device_type":  in.DeviceType,
			"is_active":    true,
			"last_used_at": now,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.getByID(userID, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	token := &models.UserDeviceToken{
		UserID:      userID,
		DeviceID:    in.DeviceID,
		DeviceToken: in.DeviceToken,
		DeviceName:  in.DeviceName,
		DeviceType:  in.DeviceType,
		IsActive:    true,
		LastUsedAt:  now,
	}
	if err := s.db.Create(token).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, nil
}

// ListDeviceTokens returns the user's device tokens, most recently used
// first.
func (s *deviceTokenService) ListDeviceTokens(userID string, activeOnly bool) ([]models.UserDeviceToken, error) {
	q := s.db.Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var tokens []models.UserDeviceToken
	if err := q.Order("last_used_at DESC").Find(&tokens).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tokens, nil
}

// GetDeviceTokenByID retrieves a device token by ID for a specific user.
func (s *deviceTokenService) GetDeviceTokenByID(userID, tokenID string) (*models.UserDeviceToken, error) {
	return s.getByID(userID, tokenID)
}

func (s *deviceTokenService) getByID(userID, tokenID string) (*models.UserDeviceToken, error) {
	var token models.UserDeviceToken
	if err := s.db.Where("id = ? AND user_id = ?", tokenID, userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDeviceTokenNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &token, nil
}

// UpdateDeviceToken applies a partial update and refreshes the last used
// timestamp.
func (s *deviceTokenService) UpdateDeviceToken(userID, tokenID string, fields DeviceTokenUpdate) (*models.UserDeviceToken, error) {
	token, err := s.getByID(userID, tokenID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"last_used_at": time.Now().UTC(),
	}
	if fields.DeviceToken != nil {
		updates["device_token"] = *fields.DeviceToken
	}
	if fields.DeviceName != nil {
		updates["device_name"] = *fields.DeviceName
	}
	if fields.DeviceType != nil {
		updates["device_type"] = *fields.DeviceType
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if err := s.db.Model(token).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.getByID(userID, tokenID)
}

// DeactivateDeviceToken marks a device token inactive without deleting it.
func (s *deviceTokenService) DeactivateDeviceToken(userID, tokenID string) (*models.UserDeviceToken, error) {
	token, err := s.getByID(userID, tokenID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(token).Update("is_active", false).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.getByID(userID, tokenID)
}

// DeleteDeviceToken removes a device token registration.
func (s *deviceTokenService) DeleteDeviceToken(userID, tokenID string) error {
	token, err := s.getByID(userID, tokenID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(token).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
