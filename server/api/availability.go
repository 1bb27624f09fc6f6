package api

import (
	"github.com/newsdeck/newsdeck/model"
	"gorm.io/gorm"
)

// StoreAvailability reports which parts of the schema are provisioned.
// Feed and category reads check it once per request and serve fixture or
// empty results when a table is missing, so a fresh install can still
// exercise the client end to end.
type StoreAvailability struct {
	Users      bool
	Categories bool
	Articles   bool
	History    bool
}

func CheckStoreAvailability(db *gorm.DB) StoreAvailability {
	m := db.Migrator()
	return StoreAvailability{
		Users:      m.HasTable(&model.User{}),
		Categories: m.HasTable(&model.Category{}),
		Articles:   m.HasTable(&model.Article{}),
		History:    m.HasTable(&model.ViewHistory{}),
	}
}
