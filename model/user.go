package model

import "time"

/*

User is a reader identity, either a guest or a registered account.

Id: primary key, a uuid minted at creation time
Username: display/login name, unique. Guests get an auto-generated
	"guest_" prefixed name.
Password: bcrypt hash of the password, empty for guests
Email: login email, unique when set, nil for guests
IsGuest: true until the account is registered. A guest upgrade flips this
	in place and keeps the same Id, so history and preferences carry over.
LastLoginAt: updated on every successful login, nil for guests

*/
type User struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Username    string  `gorm:"uniqueIndex"`
	Password    string
	Email       *string `gorm:"uniqueIndex"`
	IsGuest     bool
	LastLoginAt *time.Time
}
