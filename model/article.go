package model

import "time"

/*

Article is a single ingested news entry.

Id: primary key, auto-incremented
Url: canonical article url, unique, used by the fetcher for upserts
ThumbnailUrl: OGP or in-page image resolved at ingestion, may be empty
SourceSite: human readable site name derived from the url host
BookmarkCount: popularity signal, the primary feed ordering key
PublishedAt: publication time, the feed ordering tie breaker
Categories: "many-to-many" relation through article_categories; an
	article may carry zero or more categories

*/
type Article struct {
	Id            uint `gorm:"primaryKey;autoIncrement"`
	Title         string
	Url           string `gorm:"uniqueIndex"`
	Description   string
	ThumbnailUrl  string
	SourceSite    string
	BookmarkCount int
	PublishedAt   time.Time
	Categories    []*Category `json:"categories" gorm:"many2many:article_categories;"`
}
