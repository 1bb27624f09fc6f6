package model

import "time"

// Request/response shapes for the action-dispatch API. Field names follow
// the wire contract consumed by the web client, hence snake_case tags.

type FeedQuery struct {
	CategoryID *uint `json:"category_id"`
	ForTopPage bool  `json:"for_top_page"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

type CategoryRef struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

type ArticleView struct {
	Id            uint          `json:"id"`
	Title         string        `json:"title"`
	Url           string        `json:"url"`
	Description   string        `json:"description"`
	ThumbnailUrl  string        `json:"thumbnail_url"`
	SourceSite    string        `json:"source_site"`
	BookmarkCount int           `json:"bookmark_count"`
	PublishedAt   time.Time     `json:"published_at"`
	Categories    []CategoryRef `json:"categories"`
}

type FeedPage struct {
	Articles   []ArticleView `json:"articles"`
	TotalCount int64         `json:"total_count"`
	HasMore    bool          `json:"has_more"`
}

// CategoryView is a system category joined with the requesting user's
// preference row. IsVisible and DisplayOrder are nil when the user has no
// preference for the category yet.
type CategoryView struct {
	Id           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	IsVisible    *bool  `json:"is_visible"`
	DisplayOrder *int   `json:"display_order"`
}

type CustomCategoryView struct {
	Id           uint   `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type HistoryEntry struct {
	ArticleID    uint      `json:"id"`
	Title        string    `json:"title"`
	Url          string    `json:"url"`
	SourceSite   string    `json:"source_site"`
	ThumbnailUrl string    `json:"thumbnail_url"`
	ViewedAt     time.Time `json:"viewed_at"`
}

type UserView struct {
	IsGuest  bool   `json:"is_guest"`
	Username string `json:"username"`
}
