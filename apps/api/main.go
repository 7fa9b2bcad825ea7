package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/cache"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/message"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
	"github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/services/seqta"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlite"
	"github.com/trezcool/darasa/storage/kv"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	// set up the cache tiers
	store := sqlitekv.NewStore(db)
	offline := core.NewOfflineDetector(conf)
	loader := cache.NewLoader(cache.NewMemory(), store, offline, logger)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	client := seqta.NewClient(conf, logger)
	restoreSession(client, store, logger)

	app := echoapi.NewServer(&echoapi.Options{
		Addr:          conf.Server.Addr,
		Conf:          conf,
		Logger:        logger,
		Offline:       offline,
		Session:       client,
		NoticeSvc:     notice.NewService(client, loader, conf),
		CourseSvc:     course.NewService(client, loader, conf),
		AssessmentSvc: assessment.NewService(client, loader, conf),
		GoalSvc:       goal.NewService(client, loader, conf),
		FolioSvc:      folio.NewService(client, loader, conf),
		MessageSvc:    message.NewService(client, loader, mailSvc, conf),
		NoteSvc:       note.NewService(sqliterepos.NewNoteRepository(db)),
	})

	// start the API server; stop gracefully on SIGINT/SIGTERM or when a
	// request surfaces a shutdown error
	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	select {
	case err := <-errCh:
		logger.Fatal("server stopped", err)
	case sig := <-app.ShutdownSignal():
		logger.Info("shutting down", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			logger.Error("graceful shutdown failed", err)
		}
	}
}

// restoreSession reinstalls a portal session persisted by `admin login`.
func restoreSession(client *seqta.Client, store core.KVStore, logger core.Logger) {
	token, _, ok, err := store.Get(context.Background(), "session_jwt")
	if err != nil {
		logger.Warn("reading persisted session", err)
		return
	}
	if !ok {
		return
	}
	if err := client.SetToken(string(token)); err != nil {
		logger.Warn("restoring portal session", err)
	}
}
