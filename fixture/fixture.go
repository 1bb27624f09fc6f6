// Package fixture generates placeholder feed data for deployments whose
// article schema has not been provisioned yet. It exists so client
// integration can be exercised against a fresh install; nothing in the
// real serving path depends on it beyond the availability check.
package fixture

import (
	"fmt"
	"time"

	"github.com/newsdeck/newsdeck/model"
)

const (
	// PageSize is the fixed number of placeholder articles per page.
	PageSize = 20
	// TotalCount is the sentinel total reported by the placeholder feed.
	// Together with HasMore the placeholder always pretends more pages
	// exist, which the web client uses to stress infinite scroll.
	TotalCount = 100
	// HasMore is reported unconditionally, see TotalCount.
	HasMore = true
)

var categories = []model.CategoryRef{
	{Id: 1, Name: "総合"},
	{Id: 2, Name: "テクノロジー"},
	{Id: 3, Name: "エンタメ"},
	{Id: 4, Name: "ビジネス"},
	{Id: 5, Name: "スポーツ"},
}

var sources = []string{"Yahoo", "CNN", "BBC", "日経新聞", "TechCrunch", "Wired"}

// baseTime anchors placeholder publication times so repeated requests
// return identical pages.
var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Articles returns a deterministic batch of placeholder articles. The same
// offset always yields the same batch, so paginating clients see stable
// content.
func Articles(offset int) []model.ArticleView {
	articles := make([]model.ArticleView, 0, PageSize)
	for i := 1; i <= PageSize; i++ {
		id := uint(offset + i)

		cats := []model.CategoryRef{categories[id%uint(len(categories))]}
		if id%3 == 0 {
			cats = append(cats, categories[(id+2)%uint(len(categories))])
		}

		articles = append(articles, model.ArticleView{
			Id:            id,
			Title:         fmt.Sprintf("サンプル記事 #%d", id),
			Url:           fmt.Sprintf("https://example.com/article/%d", id),
			Description:   fmt.Sprintf("これはサンプル記事 #%d の説明文です。実際のAPIからのデータではありません。", id),
			ThumbnailUrl:  "",
			SourceSite:    sources[id%uint(len(sources))],
			BookmarkCount: 5 + int(id*37%196),
			PublishedAt:   baseTime.Add(-time.Duration(id) * time.Hour),
			Categories:    cats,
		})
	}
	return articles
}

// FeedPage wraps Articles in the same response shape as the real feed
// planner.
func FeedPage(offset int) model.FeedPage {
	return model.FeedPage{
		Articles:   Articles(offset),
		TotalCount: TotalCount,
		HasMore:    HasMore,
	}
}

// Categories returns the placeholder category listing used when the
// category schema is absent.
func Categories() []model.CategoryView {
	visible := true
	orders := []int{1, 2}
	return []model.CategoryView{
		{Id: 1, Name: "総合", Slug: "general", IsVisible: &visible, DisplayOrder: &orders[0]},
		{Id: 2, Name: "テクノロジー", Slug: "technology", IsVisible: &visible, DisplayOrder: &orders[1]},
	}
}
