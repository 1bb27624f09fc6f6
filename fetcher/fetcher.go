// Package fetcher ingests popular articles from Hatena hotentry RSS
// feeds into the article store. It runs outside the serving path, one
// pass per invocation, and is the only writer of articles and system
// categories.
package fetcher

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/newsdeck/newsdeck/model"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	hatenaEntryAPI = "https://b.hatena.ne.jp/entry/json/"
	userAgent      = "Mozilla/5.0 (compatible; Newsdeck/1.0; +https://newsdeck.example.com)"

	requestTimeout = 10 * time.Second
	// politeness delay between article detail fetches
	fetchInterval = 500 * time.Millisecond
)

// CategoryFeed maps a system category to its hotentry RSS feed.
type CategoryFeed struct {
	Name      string
	Slug      string
	URL       string
	IsDefault bool
}

// CategoryFeeds is the fixed set of categories this deployment ingests.
// All of them are bootstrap defaults for new users.
var CategoryFeeds = []CategoryFeed{
	{Name: "総合", Slug: "general", URL: "https://b.hatena.ne.jp/hotentry.rss", IsDefault: true},
	{Name: "テクノロジー", Slug: "technology", URL: "https://b.hatena.ne.jp/hotentry/it.rss", IsDefault: true},
	{Name: "エンタメ", Slug: "entertainment", URL: "https://b.hatena.ne.jp/hotentry/entertainment.rss", IsDefault: true},
	{Name: "ビジネス", Slug: "business", URL: "https://b.hatena.ne.jp/hotentry/economics.rss", IsDefault: true},
	{Name: "スポーツ", Slug: "sports", URL: "https://b.hatena.ne.jp/hotentry/game.rss", IsDefault: true},
	{Name: "科学", Slug: "science", URL: "https://b.hatena.ne.jp/hotentry/knowledge.rss", IsDefault: true},
	{Name: "健康", Slug: "health", URL: "https://b.hatena.ne.jp/hotentry/life.rss", IsDefault: true},
	{Name: "ライフスタイル", Slug: "lifestyle", URL: "https://b.hatena.ne.jp/hotentry/guide.rss", IsDefault: true},
}

type Fetcher struct {
	DB     *gorm.DB
	Parser *gofeed.Parser
	Client *http.Client
}

func NewFetcher(db *gorm.DB) *Fetcher {
	return &Fetcher{
		DB:     db,
		Parser: gofeed.NewParser(),
		Client: &http.Client{Timeout: requestTimeout},
	}
}

// Run performs one ingestion pass: ensure the system categories exist,
// then parse every category feed and upsert its articles. Per-article
// failures are logged and skipped, a feed-level failure aborts only that
// feed.
func (f *Fetcher) Run() error {
	categories, err := f.ensureCategories()
	if err != nil {
		return errors.Wrap(err, "ensure categories")
	}

	for _, feed := range CategoryFeeds {
		category := categories[feed.Name]
		if err := f.fetchFeed(feed, category); err != nil {
			Log.Error("failed to fetch feed ", feed.URL, ": ", err)
		}
	}
	return nil
}

// ensureCategories upserts the system category rows by name and returns
// them keyed by name.
func (f *Fetcher) ensureCategories() (map[string]model.Category, error) {
	byName := make(map[string]model.Category, len(CategoryFeeds))
	for _, feed := range CategoryFeeds {
		var category model.Category
		result := f.DB.Where("name = ?", feed.Name).First(&category)
		if result.RowsAffected == 0 {
			category = model.Category{Name: feed.Name, Slug: feed.Slug, IsDefault: feed.IsDefault}
			if err := f.DB.Create(&category).Error; err != nil {
				return nil, errors.Wrapf(err, "create category %s", feed.Name)
			}
		}
		byName[feed.Name] = category
	}
	return byName, nil
}

func (f *Fetcher) fetchFeed(feed CategoryFeed, category model.Category) error {
	parsed, err := f.Parser.ParseURL(feed.URL)
	if err != nil {
		return errors.Wrap(err, "parse rss")
	}

	Log.Info("fetched ", len(parsed.Items), " items for category ", feed.Name)

	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		if err := f.upsertArticle(item, category); err != nil {
			Log.Warn("skip article ", item.Link, ": ", err)
		}
		time.Sleep(fetchInterval)
	}
	return nil
}

func (f *Fetcher) upsertArticle(item *gofeed.Item, category model.Category) error {
	article := model.Article{
		Title:         strings.TrimSpace(item.Title),
		Url:           item.Link,
		Description:   strings.TrimSpace(item.Description),
		SourceSite:    SiteName(item.Link),
		BookmarkCount: f.bookmarkCount(item.Link),
		PublishedAt:   publishedAt(item),
	}
	article.ThumbnailUrl = f.thumbnail(item.Link)

	err := f.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"bookmark_count": article.BookmarkCount,
			"thumbnail_url":  article.ThumbnailUrl,
		}),
	}).Create(&article).Error
	if err != nil {
		return errors.Wrap(err, "upsert article")
	}

	// Create may not populate the id on conflict, re-read by url.
	if article.Id == 0 {
		if err := f.DB.Where("url = ?", item.Link).First(&article).Error; err != nil {
			return errors.Wrap(err, "reload article")
		}
	}

	edge := model.ArticleCategory{ArticleID: article.Id, CategoryID: category.Id}
	err = f.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	if err != nil {
		return errors.Wrap(err, "link article category")
	}
	return nil
}

// bookmarkCount resolves the Hatena bookmark count for a url, 0 when the
// entry is unknown or the API call fails.
func (f *Fetcher) bookmarkCount(articleURL string) int {
	apiURL := hatenaEntryAPI + url.QueryEscape(articleURL)
	resp, err := f.get(apiURL)
	if err != nil {
		Log.Warn("bookmark count lookup failed for ", articleURL, ": ", err)
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0
	}
	var entry struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return 0
	}
	return entry.Count
}

// thumbnail scrapes the article page for an OGP image, a twitter card
// image, or failing those the first sufficiently large inline image.
func (f *Fetcher) thumbnail(articleURL string) string {
	resp, err := f.get(articleURL)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && content != "" {
		return absoluteURL(articleURL, content)
	}
	if content, ok := doc.Find(`meta[name="twitter:image"]`).Attr("content"); ok && content != "" {
		return absoluteURL(articleURL, content)
	}

	thumbnail := ""
	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return true
		}
		if !largeEnough(img) {
			return true
		}
		thumbnail = absoluteURL(articleURL, src)
		return false
	})
	return thumbnail
}

func largeEnough(img *goquery.Selection) bool {
	width, wok := img.Attr("width")
	height, hok := img.Attr("height")
	if !wok || !hok {
		return false
	}
	var w, h int
	fmt.Sscanf(width, "%d", &w)
	fmt.Sscanf(height, "%d", &h)
	return w >= 200 && h >= 200
}

func (f *Fetcher) get(rawURL string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return f.Client.Do(req)
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
	}
	return time.Now()
}

// SiteName derives a readable site name from the article url host,
// dropping a leading www.
func SiteName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// absoluteURL resolves possibly protocol-relative or path-relative image
// urls against the article url.
func absoluteURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
