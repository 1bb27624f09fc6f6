package api

import (
	"time"

	"github.com/newsdeck/newsdeck/model"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultHistoryLimit = 10

// RecordView upserts the (user, article) view row with a fresh timestamp.
// Calling it repeatedly for the same pair leaves exactly one row carrying
// the latest time. When the history table is unprovisioned it succeeds as
// a no-op: browsing must not fail over missing optional infrastructure.
func RecordView(db *gorm.DB, userID string, articleID uint) error {
	if !CheckStoreAvailability(db).History {
		Log.Warn("view history schema absent, dropping view record for user ", userID)
		return nil
	}

	row := model.ViewHistory{
		UserID:    userID,
		ArticleID: articleID,
		ViewedAt:  time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": row.ViewedAt}),
	}).Create(&row).Error
	if err != nil {
		return errors.Wrap(err, "record article view")
	}
	return nil
}

// GetHistory lists the user's most recent views joined against current
// article data, newest first. History rows whose article has since been
// deleted drop out of the join silently.
func GetHistory(db *gorm.DB, userID string, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	avail := CheckStoreAvailability(db)
	if !avail.History || !avail.Articles {
		return []model.HistoryEntry{}, nil
	}

	entries := []model.HistoryEntry{}
	err := db.Model(&model.ViewHistory{}).
		Select("articles.id AS article_id, articles.title, articles.url, articles.source_site, articles.thumbnail_url, view_histories.viewed_at").
		Joins("JOIN articles ON articles.id = view_histories.article_id").
		Where("view_histories.user_id = ?", userID).
		Order("view_histories.viewed_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "fetch view history")
	}
	return entries, nil
}
