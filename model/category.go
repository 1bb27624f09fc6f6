package model

/*

Category is a system-owned article grouping, shared by all users.

Id: primary key, auto-incremented
Name: display name
Slug: url-safe identifier
IsDefault: if true this category is copied into every new user's
	preferences at account creation, in ascending id order.

Categories are immutable at serving time, the fetcher is the only writer.

*/
type Category struct {
	Id        uint `gorm:"primaryKey;autoIncrement"`
	Name      string
	Slug      string
	IsDefault bool
}
