package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/cache"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/services/seqta"
	"github.com/trezcool/darasa/storage/database/dummy"
	"github.com/trezcool/darasa/storage/kv/dummy"
	"github.com/trezcool/darasa/tests"
)

var (
	out      bytes.Buffer
	noteRepo note.Repository
	store    *dummykv.Store
)

func portalToken(t *testing.T) string {
	claims := jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("portal-secret"))
	if err != nil {
		t.Fatalf("portalToken() failed: %v", err)
	}
	return token
}

// fakePortal serves the endpoints the CLI touches.
func fakePortal(t *testing.T) *httptest.Server {
	token := portalToken(t)

	mux := http.NewServeMux()
	serve := func(path, payload string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"200","payload":` + payload + `}`))
		})
	}
	serve("/seqta/student/login", `{"jwt":"`+token+`"}`)
	serve("/seqta/student/load/notices", `[{"id":1,"title":"Sports day"},{"id":2,"title":"Library closed"}]`)
	serve("/seqta/student/assessment/list/upcoming", `[{"id":7,"title":"Forces test","subject":"Physics","status":"UPCOMING"},{"id":8,"title":"Waves quiz","subject":"Physics","status":"MARKS_RELEASED","result":{"percentage":88.5,"grade":"A"}}]`)
	serve("/seqta/student/load/goals/years", `[2023,2024]`)
	serve("/seqta/student/load/goals", `[{"id":1,"year":2024,"title":"Pass physics"}]`)
	serve("/seqta/student/load/folios", `[{"id":1,"title":"Term project"}]`)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setup(t *testing.T) *commandLine {
	srv := fakePortal(t)
	conf := &core.Config{
		Portal: core.PortalConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Cache: core.CacheConfig{
			NoticesTTL:     30 * time.Minute,
			AssessmentsTTL: 30 * time.Minute,
			GoalsTTL:       time.Hour,
			FoliosTTL:      time.Hour,
		},
	}
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))

	detector := new(core.OfflineDetector)
	detector.SetProbe(func() bool { return true })
	store = dummykv.NewStore()
	loader := cache.NewLoader(cache.NewMemory(), store, detector, logger)
	client := seqta.NewClient(conf, logger)
	noteRepo = dummydb.NewNoteRepository()

	out.Reset()
	return &commandLine{
		out:       &out,
		client:    client,
		store:     store,
		loader:    loader,
		noticeSvc: notice.NewService(client, loader, conf),
		assessSvc: assessment.NewService(client, loader, conf),
		goalSvc:   goal.NewService(client, loader, conf),
		folioSvc:  folio.NewService(client, loader, conf),
		noteSvc:   note.NewService(noteRepo),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
	wantOut string
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no username", args: []string{"login"}, wantErr: errHelp},
		{name: "login: no password", args: []string{"login", "-username", "student"}, wantErr: errHelp},
		{name: "login", args: []string{"login", "-username", "student"}, pwd: "pwd", wantOut: "logged in"},
		{name: "searchnotes: no args", args: []string{"searchnotes"}, wantErr: errHelp},
		{name: "searchnotes: no hits", args: []string{"searchnotes", "-query", "physics"}, wantOut: "no notes found"},
		{name: "sync", args: []string{"sync"}, wantOut: "notices: 2"},
		{name: "clearcache", args: []string{"clearcache"}, wantOut: "cache cleared"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() out = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }

	if err := cli.run([]string{"admin", "login", "-username", "Student01"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if !cli.client.SessionValid() {
		t.Error("SessionValid() false after login")
	}

	// the session token is persisted for the API server to restore
	data, expiresAt, ok, err := store.Get(context.Background(), sessionKey)
	if err != nil || !ok {
		t.Fatalf("store.Get(%s) = ok %v, err %v", sessionKey, ok, err)
	}
	if string(data) != cli.client.Token() {
		t.Error("persisted token differs from the client's")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("persisted token already expired")
	}
}

func Test_commandLine_sync(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "sync"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	date := time.Now().Format("2006-01-02")
	for _, key := range []string{
		cache.Key("notices", date),
		cache.Key("assessments", "upcoming"),
		cache.Key("goals", "years"),
		cache.Key("goals", "2023"),
		cache.Key("goals", "2024"),
		cache.Key("folios"),
	} {
		if _, _, ok, _ := store.Get(context.Background(), key); !ok {
			t.Errorf("durable tier missing %s after sync", key)
		}
	}

	for _, want := range []string{"notices: 2", "upcoming assessments: 2 (1 marked)", "goal years: 2", "folio entries: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("sync out = %q, want it to contain %q", out.String(), want)
		}
	}
}

func Test_commandLine_searchNotes(t *testing.T) {
	cli := setup(t)

	testutil.CreateNote(t, noteRepo, "Physics revision", "forces and motion", nil, []string{"physics"})
	testutil.CreateNote(t, noteRepo, "Chemistry", "mole ratios", nil, []string{"chemistry"})

	tests := []cliTest{
		{name: "by query", args: []string{"searchnotes", "-query", "physics"}, wantOut: "Physics revision"},
		{name: "by tag", args: []string{"searchnotes", "-tag", "chemistry"}, wantOut: "Chemistry"},
		{name: "no hits", args: []string{"searchnotes", "-query", "biology"}, wantOut: "no notes found"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := cli.run(args); err != nil {
				t.Fatalf("cli.run() failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() out = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_clearCache(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("pwd"), nil }
	if err := cli.run([]string{"admin", "login", "-username", "student"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if err := cli.run([]string{"admin", "sync"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if store.Len() < 2 {
		t.Fatal("store empty after sync")
	}

	if err := cli.run([]string{"admin", "clearcache"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	// the cached data is gone but the session survives
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d after clearcache, want the session only", store.Len())
	}
	if _, _, ok, _ := store.Get(context.Background(), sessionKey); !ok {
		t.Error("session lost by clearcache")
	}
}
