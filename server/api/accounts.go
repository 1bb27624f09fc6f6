package api

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsdeck/newsdeck/model"
	"github.com/newsdeck/newsdeck/session"
	. "github.com/newsdeck/newsdeck/utils/log"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// AuthResult is the outcome of a successful register or login: the acting
// user plus the cookies the transport must issue.
type AuthResult struct {
	UserID       string
	Username     string
	SessionToken string
	SetCookies   []CookieInstruction
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// Register creates a registered account. A request carrying a guest
// cookie upgrades that guest in place, preserving its id and therefore
// its history and preferences; otherwise a fresh user is created and
// bootstrapped with default categories. User row, credentials and
// bootstrap are one transaction: any failure rolls the whole thing back.
func Register(ctx context.Context, db *gorm.DB, sessions session.Store, rc RequestContext, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	password := input.Password

	if username == "" || password == "" || email == "" {
		return nil, Validationf("username, password and email are required")
	}
	if len(password) < minPasswordLength {
		return nil, Validationf("password must be at least %d characters", minPasswordLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, Validationf("email address is invalid")
	}

	var taken int64
	if err := db.Model(&model.User{}).Where("username = ? OR email = ?", username, email).Count(&taken).Error; err != nil {
		return nil, errors.Wrap(err, "check username and email")
	}
	if taken > 0 {
		return nil, Validationf("username or email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	var userID string
	err = db.Transaction(func(tx *gorm.DB) error {
		if rc.GuestCookie != "" {
			result := tx.Model(&model.User{}).
				Where("id = ? AND is_guest = ?", rc.GuestCookie, true).
				Updates(map[string]interface{}{
					"username": username,
					"password": string(hash),
					"email":    email,
					"is_guest": false,
				})
			if result.Error != nil {
				return errors.Wrap(result.Error, "upgrade guest account")
			}
			if result.RowsAffected == 0 {
				return Validationf("guest account upgrade failed")
			}
			userID = rc.GuestCookie
			return nil
		}

		user := model.User{
			Id:       uuid.New().String(),
			Username: username,
			Password: string(hash),
			Email:    &email,
			IsGuest:  false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return errors.Wrap(err, "create user")
		}
		userID = user.Id
		return bootstrapDefaultCategories(tx, user.Id)
	})
	if err != nil {
		return nil, err
	}

	return issueSession(ctx, sessions, userID, username)
}

// Login authenticates a registered user by username or email. Unknown
// user and wrong password are indistinguishable to the caller.
func Login(ctx context.Context, db *gorm.DB, sessions session.Store, usernameOrEmail, password string) (*AuthResult, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return nil, Validationf("username and password are required")
	}

	var user model.User
	result := db.Where("(username = ? OR email = ?) AND is_guest = ?", usernameOrEmail, usernameOrEmail, false).First(&user)
	if result.RowsAffected != 1 {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}

	now := time.Now()
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		// Login still succeeds, the timestamp is bookkeeping only.
		Log.Warn("failed to update last login time for user ", user.Id, ": ", err)
	}

	return issueSession(ctx, sessions, user.Id, user.Username)
}

// Logout deletes the session and mints a fresh guest so the client keeps
// a working identity.
func Logout(ctx context.Context, db *gorm.DB, sessions session.Store, rc RequestContext) (*Identity, error) {
	if rc.SessionToken != "" {
		if err := sessions.Delete(ctx, rc.SessionToken); err != nil {
			Log.Warn("failed to delete session: ", err)
		}
	}

	clearSession := CookieInstruction{Name: SessionCookieName, Value: "", MaxAge: -1}

	if !CheckStoreAvailability(db).Users {
		return &Identity{IsGuest: true, SetCookies: []CookieInstruction{clearSession}}, nil
	}

	identity, err := createGuest(db)
	if err != nil {
		return nil, err
	}
	identity.SetCookies = append(identity.SetCookies, clearSession)
	return identity, nil
}

func issueSession(ctx context.Context, sessions session.Store, userID, username string) (*AuthResult, error) {
	token, err := sessions.Create(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	return &AuthResult{
		UserID:       userID,
		Username:     username,
		SessionToken: token,
		SetCookies: []CookieInstruction{
			{Name: SessionCookieName, Value: token, MaxAge: int(session.SessionTTL.Seconds())},
			{Name: GuestCookieName, Value: "", MaxAge: -1},
		},
	}, nil
}
