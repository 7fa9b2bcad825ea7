package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/cache"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/services/seqta"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/sqlite"
	"github.com/trezcool/darasa/storage/kv"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(std, err)
	logger := logsvc.NewStdLogger(std)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()

	store := sqlitekv.NewStore(db)
	offline := core.NewOfflineDetector(conf)
	loader := cache.NewLoader(cache.NewMemory(), store, offline, logger)
	client := seqta.NewClient(conf, logger)

	// start CLI
	cli := commandLine{
		out:       os.Stdout,
		client:    client,
		store:     store,
		loader:    loader,
		noticeSvc: notice.NewService(client, loader, conf),
		assessSvc: assessment.NewService(client, loader, conf),
		goalSvc:   goal.NewService(client, loader, conf),
		folioSvc:  folio.NewService(client, loader, conf),
		noteSvc:   note.NewService(sqliterepos.NewNoteRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
