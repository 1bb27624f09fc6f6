package api

import (
	"github.com/newsdeck/newsdeck/fixture"
	"github.com/newsdeck/newsdeck/model"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultFeedLimit = 60
	maxFeedLimit     = 100
)

// GetFeed composes the filter predicates for a feed request, counts the
// matching articles and returns one page ordered by the fixed
// popularity-then-recency rule (bookmark_count desc, published_at desc).
//
// An explicit category filter and the top-page interest bias may both
// contribute predicates: interests are OR'ed among themselves and AND'ed
// with the category filter. When the article schema is absent the
// deterministic fixture page is returned with the same response shape.
func GetFeed(db *gorm.DB, userID string, query model.FeedQuery) (model.FeedPage, error) {
	limit, offset := clampPage(query.Limit, query.Offset)

	if !CheckStoreAvailability(db).Articles {
		Log.Warn("article schema absent, serving fixture feed")
		return fixture.FeedPage(offset), nil
	}

	preds := []Predicate{}
	if query.CategoryID != nil {
		preds = append(preds, ByCategory(*query.CategoryID))
	}
	if query.ForTopPage {
		interests, err := InferInterests(db, userID)
		if err != nil {
			// Inference is a bias, not a prerequisite. Serve the
			// unfiltered feed when it fails.
			Log.Warn("interest inference failed, serving unbiased feed: ", err)
		}
		if len(interests) > 0 {
			preds = append(preds, ByAnyCategory(interests))
		}
	}

	where, args := "", []interface{}{}
	if len(preds) > 0 {
		where, args = And(preds...).Compile()
	}

	countQuery := db.Model(&model.Article{})
	if where != "" {
		countQuery = countQuery.Where(where, args...)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return model.FeedPage{}, errors.Wrap(err, "count feed articles")
	}

	pageQuery := db.Model(&model.Article{}).Preload("Categories")
	if where != "" {
		pageQuery = pageQuery.Where(where, args...)
	}
	var articles []*model.Article
	err := pageQuery.
		Order("bookmark_count DESC, published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return model.FeedPage{}, errors.Wrap(err, "fetch feed page")
	}

	views := make([]model.ArticleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, articleView(article))
	}

	return model.FeedPage{
		Articles:   views,
		TotalCount: total,
		HasMore:    int64(offset+len(views)) < total,
	}, nil
}

func articleView(article *model.Article) model.ArticleView {
	categories := make([]model.CategoryRef, 0, len(article.Categories))
	for _, category := range article.Categories {
		categories = append(categories, model.CategoryRef{Id: category.Id, Name: category.Name})
	}
	return model.ArticleView{
		Id:            article.Id,
		Title:         article.Title,
		Url:           article.Url,
		Description:   article.Description,
		ThumbnailUrl:  article.ThumbnailUrl,
		SourceSite:    article.SourceSite,
		BookmarkCount: article.BookmarkCount,
		PublishedAt:   article.PublishedAt,
		Categories:    categories,
	}
}

// clampPage coerces limit and offset into the serveable range instead of
// rejecting bad input: non-positive limits fall back to the default,
// negative offsets to 0, oversized limits to the cap.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
