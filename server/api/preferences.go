package api

import (
	"strings"

	"github.com/newsdeck/newsdeck/fixture"
	"github.com/newsdeck/newsdeck/model"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// customCategoryQuota caps user-defined categories per user.
const customCategoryQuota = 10

// SetVisibility upserts the user's preference for a system category.
// On insert a missing display order defaults to 0; on update the order is
// only overwritten when explicitly provided. Concurrent updates for the
// same (user, category) pair are last-write-wins.
func SetVisibility(db *gorm.DB, userID string, categoryID uint, isVisible bool, displayOrder *int) error {
	var existing model.CategoryPreference
	result := db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&existing)
	if result.RowsAffected == 0 {
		order := 0
		if displayOrder != nil {
			order = *displayOrder
		}
		pref := model.CategoryPreference{
			UserID:       userID,
			CategoryID:   categoryID,
			IsVisible:    isVisible,
			DisplayOrder: order,
		}
		if err := db.Create(&pref).Error; err != nil {
			return errors.Wrap(err, "create category preference")
		}
		return nil
	}

	updates := map[string]interface{}{"is_visible": isVisible}
	if displayOrder != nil {
		updates["display_order"] = *displayOrder
	}
	err := db.Model(&model.CategoryPreference{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Updates(updates).Error
	if err != nil {
		return errors.Wrap(err, "update category preference")
	}
	return nil
}

// AddCustomCategory creates a user-private category. The name is trimmed
// and must be non-empty, unique among the user's own custom categories
// (exact case-sensitive match) and within the quota. Display order is
// assigned as current count + 1.
func AddCustomCategory(db *gorm.DB, userID string, name string) (*model.CustomCategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var count int64
	if err := db.Model(&model.CustomCategory{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "count custom categories")
	}
	if count >= customCategoryQuota {
		return nil, ErrQuotaExceeded
	}

	var duplicates int64
	if err := db.Model(&model.CustomCategory{}).Where("user_id = ? AND name = ?", userID, name).Count(&duplicates).Error; err != nil {
		return nil, errors.Wrap(err, "check custom category name")
	}
	if duplicates > 0 {
		return nil, ErrDuplicateName
	}

	category := model.CustomCategory{
		UserID:       userID,
		Name:         name,
		DisplayOrder: int(count) + 1,
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, errors.Wrap(err, "create custom category")
	}

	return &model.CustomCategoryView{
		Id:           category.Id,
		Name:         category.Name,
		DisplayOrder: category.DisplayOrder,
	}, nil
}

// GetCategories lists all system categories left-joined with the user's
// preference rows (nil visibility/order where no preference exists yet),
// ordered by display order then category name, plus the user's custom
// categories by display order. Serves the fixture listing when the
// category schema is absent.
func GetCategories(db *gorm.DB, userID string) ([]model.CategoryView, []model.CustomCategoryView, error) {
	if !CheckStoreAvailability(db).Categories {
		Log.Warn("category schema absent, serving fixture categories")
		return fixture.Categories(), []model.CustomCategoryView{}, nil
	}

	categories := []model.CategoryView{}
	err := db.Model(&model.Category{}).
		Select("categories.id, categories.name, categories.slug, ucp.is_visible, ucp.display_order").
		Joins("LEFT JOIN category_preferences ucp ON categories.id = ucp.category_id AND ucp.user_id = ?", userID).
		Order("ucp.display_order ASC, categories.name ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "list categories")
	}

	custom := []model.CustomCategoryView{}
	err = db.Model(&model.CustomCategory{}).
		Select("id, name, display_order").
		Where("user_id = ?", userID).
		Order("display_order ASC").
		Scan(&custom).Error
	if err != nil {
		return nil, nil, errors.Wrap(err, "list custom categories")
	}

	return categories, custom, nil
}
