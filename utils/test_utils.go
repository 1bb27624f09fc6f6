package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/newsdeck/newsdeck/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestCreateUser inserts a user and returns its id.
func TestCreateUser(t *testing.T, db *gorm.DB, username string, isGuest bool) string {
	t.Helper()
	user := model.User{
		Id:       uuid.New().String(),
		Username: username,
		IsGuest:  isGuest,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.Id
}

// TestCreateCategory inserts a system category and returns its id.
func TestCreateCategory(t *testing.T, db *gorm.DB, name string, isDefault bool) uint {
	t.Helper()
	category := model.Category{
		Name:      name,
		Slug:      fmt.Sprintf("slug-%s", name),
		IsDefault: isDefault,
	}
	require.NoError(t, db.Create(&category).Error)
	return category.Id
}

// TestCreateArticle inserts an article with the given popularity and
// publication time, linked to the given categories, and returns its id.
func TestCreateArticle(t *testing.T, db *gorm.DB, title string, bookmarkCount int, publishedAt time.Time, categoryIDs ...uint) uint {
	t.Helper()
	article := model.Article{
		Title:         title,
		Url:           fmt.Sprintf("https://example.com/%s", title),
		SourceSite:    "example.com",
		BookmarkCount: bookmarkCount,
		PublishedAt:   publishedAt,
	}
	require.NoError(t, db.Create(&article).Error)
	for _, categoryID := range categoryIDs {
		edge := model.ArticleCategory{ArticleID: article.Id, CategoryID: categoryID}
		require.NoError(t, db.Create(&edge).Error)
	}
	return article.Id
}

// TestRecordViewAt inserts a view history row with a controlled
// timestamp, bypassing the upsert path so tests can shape the history
// tail precisely.
func TestRecordViewAt(t *testing.T, db *gorm.DB, userID string, articleID uint, viewedAt time.Time) {
	t.Helper()
	row := model.ViewHistory{UserID: userID, ArticleID: articleID, ViewedAt: viewedAt}
	require.NoError(t, db.Create(&row).Error)
}
