package model

import "time"

/*

ViewHistory records that a user viewed an article.

UserID: user id
ArticleID: article id
ViewedAt: time of the most recent view. Viewing the same article again
	updates this timestamp instead of inserting a second row.

This is the sole signal feeding interest inference.

*/
type ViewHistory struct {
	UserID    string `gorm:"primaryKey"`
	ArticleID uint   `gorm:"primaryKey"`
	ViewedAt  time.Time
}
