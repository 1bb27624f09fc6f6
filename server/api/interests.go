package api

import (
	"github.com/newsdeck/newsdeck/model"
	"gorm.io/gorm"
)

// maxInferredInterests caps how many recently viewed categories bias the
// top feed.
const maxInferredInterests = 5

// InferInterests derives the user's recently relevant categories from the
// tail of their view history: distinct category ids of viewed articles,
// most recent view first, at most maxInferredInterests. An empty result
// means "no bias" and callers fall back to the unfiltered feed.
func InferInterests(db *gorm.DB, userID string) ([]uint, error) {
	avail := CheckStoreAvailability(db)
	if !avail.History || !avail.Articles {
		return nil, nil
	}

	var categoryIDs []uint
	err := db.Model(&model.ViewHistory{}).
		Joins("JOIN article_categories ON article_categories.article_id = view_histories.article_id").
		Where("view_histories.user_id = ?", userID).
		Order("view_histories.viewed_at DESC").
		Pluck("article_categories.category_id", &categoryIDs).Error
	if err != nil {
		return nil, err
	}

	// Deduplicate preserving first-seen (= most recent) order. DISTINCT
	// can't be used in the query because postgres rejects ordering by a
	// column that is not selected.
	seen := make(map[uint]bool)
	interests := []uint{}
	for _, id := range categoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		interests = append(interests, id)
		if len(interests) == maxInferredInterests {
			break
		}
	}
	return interests, nil
}
