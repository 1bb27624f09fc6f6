package api

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/session"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// GuestCookieName carries the guest user id between visits.
	GuestCookieName = "guest_id"
	// SessionCookieName carries the opaque session token of a logged-in
	// user.
	SessionCookieName = "session_token"

	// guestCookieMaxAge is the 30-day guest horizon, in seconds.
	guestCookieMaxAge = 30 * 24 * 60 * 60
)

// RequestContext is the identity material extracted from an inbound
// request. The transport fills it in from cookies; nothing below the
// transport touches headers directly.
type RequestContext struct {
	SessionToken string
	GuestCookie  string
}

// CookieInstruction tells the transport to issue or clear a cookie. A
// negative MaxAge clears.
type CookieInstruction struct {
	Name   string
	Value  string
	MaxAge int
}

// Identity is the resolved acting user plus any cookie the transport must
// issue as a result of resolution.
type Identity struct {
	UserID     string
	Username   string
	IsGuest    bool
	SetCookies []CookieInstruction
}

// ResolveIdentity maps a request to a stable user id. A valid session
// token wins, then a guest cookie naming an existing guest, otherwise a
// new guest user is minted with default category preferences. Repeated
// calls with the same still-valid guest cookie return the same id and do
// not re-bootstrap.
func ResolveIdentity(ctx context.Context, db *gorm.DB, sessions session.Store, rc RequestContext) (*Identity, error) {
	if !CheckStoreAvailability(db).Users {
		// Without a user table there is nobody to resolve. Serve the
		// request anonymously so the degraded read paths stay reachable.
		Log.Warn("user schema absent, resolving anonymous guest")
		return &Identity{UserID: "", IsGuest: true}, nil
	}

	if rc.SessionToken != "" {
		userID, err := sessions.Lookup(ctx, rc.SessionToken)
		if err != nil {
			Log.Warn("session lookup failed, falling back to guest cookie: ", err)
		}
		if userID != "" {
			var user model.User
			result := db.Where("id = ? AND is_guest = ?", userID, false).First(&user)
			if result.RowsAffected == 1 {
				return &Identity{UserID: user.Id, Username: user.Username, IsGuest: false}, nil
			}
		}
	}

	if rc.GuestCookie != "" {
		var user model.User
		result := db.Where("id = ? AND is_guest = ?", rc.GuestCookie, true).First(&user)
		if result.RowsAffected == 1 {
			return &Identity{UserID: user.Id, Username: user.Username, IsGuest: true}, nil
		}
	}

	return createGuest(db)
}

// createGuest mints a guest user, bootstraps default categories and
// instructs the caller to issue a fresh long-lived guest cookie.
func createGuest(db *gorm.DB) (*Identity, error) {
	user := model.User{
		Id:       uuid.New().String(),
		Username: guestUsername(),
		IsGuest:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "create guest user")
	}

	// Bootstrap failure is non-fatal: the guest simply starts with zero
	// preferences.
	if err := bootstrapDefaultCategories(db, user.Id); err != nil {
		Log.Warn("default category bootstrap failed for user ", user.Id, ": ", err)
	}

	return &Identity{
		UserID:   user.Id,
		Username: user.Username,
		IsGuest:  true,
		SetCookies: []CookieInstruction{
			{Name: GuestCookieName, Value: user.Id, MaxAge: guestCookieMaxAge},
		},
	}, nil
}

func guestUsername() string {
	return "guest_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:13]
}

// bootstrapDefaultCategories copies every default category into the
// user's preferences, visible, with ascending display order starting
// at 1 in category id order.
func bootstrapDefaultCategories(db *gorm.DB, userID string) error {
	var categories []model.Category
	if err := db.Where("is_default = ?", true).Order("id ASC").Find(&categories).Error; err != nil {
		return errors.Wrap(err, "list default categories")
	}

	for i, category := range categories {
		pref := model.CategoryPreference{
			UserID:       userID,
			CategoryID:   category.Id,
			IsVisible:    true,
			DisplayOrder: i + 1,
		}
		if err := db.Create(&pref).Error; err != nil {
			return errors.Wrapf(err, "bootstrap preference for category %d", category.Id)
		}
	}
	return nil
}
