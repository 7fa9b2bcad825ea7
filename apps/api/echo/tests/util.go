package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/cache"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database/dummy"
	"github.com/trezcool/darasa/storage/kv/dummy"
)

var (
	noteRepo      note.Repository
	noticeFetcher *fetcherMock
	detector      *core.OfflineDetector
)

// fetcherMock stands in for the portal client.
type fetcherMock struct {
	calls   int
	notices []notice.Notice
	err     error
}

var _ notice.Fetcher = (*fetcherMock)(nil)

func (f *fetcherMock) FetchNotices(ctx context.Context, date string) ([]notice.Notice, error) {
	f.calls++
	return f.notices, f.err
}

// sessionMock reports a fixed login state.
type sessionMock struct{ valid bool }

func (s sessionMock) SessionValid() bool { return s.valid }

func setup(t *testing.T) Server {
	conf := &core.Config{
		TestMode: true,
		Cache:    core.CacheConfig{NoticesTTL: 30 * time.Minute},
	}
	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))

	// set up cache tiers
	detector = new(core.OfflineDetector)
	detector.SetProbe(func() bool { return true })
	loader := cache.NewLoader(cache.NewMemory(), dummykv.NewStore(), detector, logger)

	// set up repos & services
	noteRepo = dummydb.NewNoteRepository()
	noticeFetcher = new(fetcherMock)
	noteSvc := note.NewService(noteRepo)
	noticeSvc := notice.NewService(noticeFetcher, loader, conf)

	return NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logger,
			Offline:        detector,
			Session:        sessionMock{valid: true},
			NoticeSvc:      noticeSvc,
			NoteSvc:        noteSvc,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
