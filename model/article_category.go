package model

/*

ArticleCategory is the "many-to-many" edge between an article and a
system category.

ArticleID: article id
CategoryID: category id

*/
type ArticleCategory struct {
	ArticleID  uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey"`
}
