package model

import "time"

/*

CategoryPreference is a per-user setting over a system category.

UserID: user id
CategoryID: category id
IsVisible: whether the category tab is shown to this user
DisplayOrder: position of the category in the user's UI, from left to
	right marked as 1,2,3... Not required to be contiguous or unique,
	listing ties break by category name.

Rows are created lazily: bootstrapped in bulk for default categories when
a user is created, or upserted on demand when the user edits settings.

*/
type CategoryPreference struct {
	UserID       string `gorm:"primaryKey"`
	CategoryID   uint   `gorm:"primaryKey"`
	CreatedAt    time.Time
	IsVisible    bool
	DisplayOrder int
}
