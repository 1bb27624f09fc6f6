package main

import (
	"github.com/newsdeck/newsdeck/fetcher"
	"github.com/newsdeck/newsdeck/utils"
	"github.com/newsdeck/newsdeck/utils/dotenv"
	. "github.com/newsdeck/newsdeck/utils/flag"
	. "github.com/newsdeck/newsdeck/utils/log"
)

// One ingestion pass over the configured hotentry feeds. Intended to be
// run from cron.
func main() {
	ParseFlags()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	// Re-init so the logger picks up the parsed service name and env.
	InitLogger()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("cannot connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	Log.Info("article fetcher starts up")
	if err := fetcher.NewFetcher(db).Run(); err != nil {
		Log.Fatal("ingestion pass failed: ", err)
	}
	Log.Info("article fetcher finished")
}
