package fetcher

import (
	"os"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/utils"
	"github.com/newsdeck/newsdeck/utils/dotenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := dotenv.LoadDotEnvsInTests(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestSiteName(t *testing.T) {
	require.Equal(t, "example.com", SiteName("https://www.example.com/post/1"))
	require.Equal(t, "b.hatena.ne.jp", SiteName("https://b.hatena.ne.jp/hotentry.rss"))
	require.Equal(t, "", SiteName("not a url"))
	require.Equal(t, "", SiteName("/relative/path"))
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/articles/42"
	require.Equal(t, "https://example.com/img/a.png", absoluteURL(base, "/img/a.png"))
	require.Equal(t, "https://example.com/articles/a.png", absoluteURL(base, "a.png"))
	require.Equal(t, "https://cdn.example.com/a.png", absoluteURL(base, "//cdn.example.com/a.png"))
	require.Equal(t, "https://other.com/a.png", absoluteURL(base, "https://other.com/a.png"))
}

func TestPublishedAt(t *testing.T) {
	parsed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{PublishedParsed: &parsed}
	require.Equal(t, parsed, publishedAt(item))

	// No parsed time, fall back to parsing the raw string.
	item = &gofeed.Item{Published: "2024-06-02 09:30:00 +0000"}
	got := publishedAt(item)
	require.Equal(t, 2024, got.Year())
	require.Equal(t, time.June, got.Month())
	require.Equal(t, 2, got.Day())

	// Nothing usable, fall back to now.
	before := time.Now()
	got = publishedAt(&gofeed.Item{Published: "garbage"})
	require.False(t, got.Before(before))
}

func TestEnsureCategoriesIdempotent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	f := NewFetcher(db)

	first, err := f.ensureCategories()
	require.NoError(t, err)
	require.Len(t, first, len(CategoryFeeds))
	for _, feed := range CategoryFeeds {
		category, ok := first[feed.Name]
		require.True(t, ok)
		require.NotZero(t, category.Id)
		require.True(t, category.IsDefault)
	}

	// Running again reuses the existing rows.
	second, err := f.ensureCategories()
	require.NoError(t, err)
	for name, category := range first {
		require.Equal(t, category.Id, second[name].Id)
	}

	var count int64
	require.NoError(t, db.Model(&model.Category{}).Count(&count).Error)
	require.EqualValues(t, len(CategoryFeeds), count)
}
