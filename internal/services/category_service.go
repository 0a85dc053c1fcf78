package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// visibleCategories limits a query to categories the user can see: global
// ones (no user_categories rows at all) plus the ones linked to this user.
const visibleCategories = `(NOT EXISTS (SELECT 1 FROM user_categories uc WHERE uc.category_id = categories.id)
OR EXISTS (SELECT 1 FROM user_categories uc WHERE uc.category_id = categories.id AND uc.user_id = ?))`

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category and links it to the creating user.
// (name, type) is unique across the whole system.
func (s *categoryService) CreateCategory(userID, name string, categoryType models.CategoryType, description, color, icon string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND type = ?", name, categoryType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		Type:        categoryType,
		Color:       color,
		Icon:        icon,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		link := &models.UserCategory{UserID: userID, CategoryID: category.ID}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories retrieves a cursor-paginated list of categories visible to
// the user, newest first.
func (s *categoryService) ListCategories(userID string, page pagination.Request, filter CategoryFilter) (*pagination.Page[models.Category], error) {
	page.Clamp()

	q := s.db.Model(&models.Category{}).Where(visibleCategories, userID)
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}

	var categories []models.Category
	if err := q.Scopes(pagination.Scope(page, "id", true, "")).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.BuildPage(categories, page.Limit, func(c models.Category) string { return c.ID })
	return &result, nil
}

// GetCategoryByID retrieves a category by ID if it is visible to the user.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).Where(visibleCategories, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update to a category visible to the user.
func (s *categoryService) UpdateCategory(userID, categoryID string, fields CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory removes a category that is visible to the user and not
// referenced by any transaction.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.UserCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
