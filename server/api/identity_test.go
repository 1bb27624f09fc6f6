package api

import (
	"context"
	"testing"

	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/session"
	"github.com/newsdeck/newsdeck/utils"
	"github.com/stretchr/testify/require"
)

func TestResolveIdentityMintsGuestWithDefaults(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sessions := session.NewMemoryStore()

	first := utils.TestCreateCategory(t, db, "default-1", true)
	second := utils.TestCreateCategory(t, db, "default-2", true)
	utils.TestCreateCategory(t, db, "not-default", false)

	identity, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{})
	require.NoError(t, err)
	require.True(t, identity.IsGuest)
	require.NotEmpty(t, identity.UserID)
	require.Len(t, identity.SetCookies, 1)
	require.Equal(t, GuestCookieName, identity.SetCookies[0].Name)
	require.Equal(t, identity.UserID, identity.SetCookies[0].Value)
	require.Equal(t, guestCookieMaxAge, identity.SetCookies[0].MaxAge)

	// Only default categories are bootstrapped, visible, orders 1..n in
	// category id order.
	var prefs []model.CategoryPreference
	require.NoError(t, db.Where("user_id = ?", identity.UserID).Order("display_order ASC").Find(&prefs).Error)
	require.Len(t, prefs, 2)
	require.Equal(t, first, prefs[0].CategoryID)
	require.Equal(t, 1, prefs[0].DisplayOrder)
	require.True(t, prefs[0].IsVisible)
	require.Equal(t, second, prefs[1].CategoryID)
	require.Equal(t, 2, prefs[1].DisplayOrder)
}

func TestResolveIdentityIsIdempotentForGuestCookie(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sessions := session.NewMemoryStore()
	utils.TestCreateCategory(t, db, "default-1", true)

	minted, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{})
	require.NoError(t, err)

	again, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{GuestCookie: minted.UserID})
	require.NoError(t, err)
	require.Equal(t, minted.UserID, again.UserID)
	require.Empty(t, again.SetCookies, "an existing guest must not be issued a new cookie")

	// No re-bootstrap.
	var count int64
	require.NoError(t, db.Model(&model.CategoryPreference{}).Where("user_id = ?", minted.UserID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var users int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.Equal(t, int64(1), users)
}

func TestResolveIdentityPrefersSession(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sessions := session.NewMemoryStore()

	registeredID := utils.TestCreateUser(t, db, "member", false)
	guestID := utils.TestCreateUser(t, db, "guest_abc", true)

	token, err := sessions.Create(context.Background(), registeredID)
	require.NoError(t, err)

	identity, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{
		SessionToken: token,
		GuestCookie:  guestID,
	})
	require.NoError(t, err)
	require.Equal(t, registeredID, identity.UserID)
	require.False(t, identity.IsGuest)
	require.Equal(t, "member", identity.Username)
}

func TestResolveIdentityIgnoresStaleCredentials(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sessions := session.NewMemoryStore()

	// Unknown session token and unknown guest cookie both fall through
	// to a fresh guest.
	identity, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{
		SessionToken: "stale-token",
		GuestCookie:  "stale-guest",
	})
	require.NoError(t, err)
	require.True(t, identity.IsGuest)
	require.NotEqual(t, "stale-guest", identity.UserID)
	require.Len(t, identity.SetCookies, 1)
}

func TestResolveIdentityBootstrapFailureIsNonFatal(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sessions := session.NewMemoryStore()
	require.NoError(t, db.Migrator().DropTable(&model.Category{}))

	identity, err := ResolveIdentity(context.Background(), db, sessions, RequestContext{})
	require.NoError(t, err)
	require.NotEmpty(t, identity.UserID)

	var count int64
	require.NoError(t, db.Model(&model.CategoryPreference{}).Where("user_id = ?", identity.UserID).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
