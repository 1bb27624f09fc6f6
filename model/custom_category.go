package model

import "time"

/*

CustomCategory is a user-private category, created only by explicit user
action and never bootstrapped.

UserID: owning user id
Name: unique per user, exact case-sensitive match
DisplayOrder: assigned as count+1 at creation

At most 10 custom categories are allowed per user, enforced by the
preference mutator.

*/
type CustomCategory struct {
	Id           uint   `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"uniqueIndex:idx_custom_category_user_name"`
	Name         string `gorm:"uniqueIndex:idx_custom_category_user_name"`
	CreatedAt    time.Time
	DisplayOrder int
}
