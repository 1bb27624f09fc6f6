package main

import (
	"github.com/newsdeck/newsdeck/server"
	"github.com/newsdeck/newsdeck/session"
	"github.com/newsdeck/newsdeck/utils"
	"github.com/newsdeck/newsdeck/utils/dotenv"
	. "github.com/newsdeck/newsdeck/utils/flag"
	. "github.com/newsdeck/newsdeck/utils/log"
)

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

	var sessions session.Store
	sessions, err = session.GetRedisStore()
	if err != nil {
		if !IsDevelopment {
			Log.Fatal("cannot connect to redis: ", err)
		}
		// Single-process dev runs can live with in-memory sessions.
		Log.Warn("redis unavailable, falling back to in-memory sessions: ", err)
		sessions = session.NewMemoryStore()
	}

	router := server.NewRouter(&server.Server{DB: db, Sessions: sessions})

	Log.Info("api server starts up")
	router.Run(":8080")
}
