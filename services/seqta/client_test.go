package seqta

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/services/logger"
)

func testToken(t *testing.T, expiresAt time.Time) string {
	claims := jwt.StandardClaims{ExpiresAt: expiresAt.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("portal-secret"))
	if err != nil {
		t.Fatalf("testToken() failed: %v", err)
	}
	return token
}

func testClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &core.Config{Portal: core.PortalConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}}
	return NewClient(conf, logsvc.NewStdLogger(log.New(io.Discard, "", 0)))
}

func TestClient_Login(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"200","payload":{"jwt":"` + token + `"}}`))
	})
	c := testClient(t, mux)

	if c.SessionValid() {
		t.Error("SessionValid() true before login")
	}
	if err := c.Login(context.Background(), "Student01", "pwd"); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if c.Token() != token {
		t.Errorf("Token() = %q, want the portal's jwt", c.Token())
	}
	if !c.SessionValid() {
		t.Error("SessionValid() false after login")
	}
}

func TestClient_Login_failed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"200","payload":{}}`))
	})
	c := testClient(t, mux)

	if err := c.Login(context.Background(), "student", "wrong"); err != ErrLoginFailed {
		t.Errorf("Login() error = %v, want ErrLoginFailed", err)
	}
}

func TestClient_SetToken(t *testing.T) {
	c := testClient(t, http.NewServeMux())

	if err := c.SetToken("not-a-jwt"); err == nil {
		t.Error("SetToken() accepted garbage")
	}

	expired := testToken(t, time.Now().Add(-time.Hour))
	if err := c.SetToken(expired); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if c.SessionValid() {
		t.Error("SessionValid() true for an expired token")
	}

	fresh := testToken(t, time.Now().Add(time.Hour))
	if err := c.SetToken(fresh); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if !c.SessionValid() {
		t.Error("SessionValid() false for a fresh token")
	}
}

func TestClient_FetchNotices(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/load/notices", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"status":"200","payload":[{"id":1,"title":"Sports day","date":"2024-05-01"}]}`))
	})
	c := testClient(t, mux)

	token := testToken(t, time.Now().Add(time.Hour))
	if err := c.SetToken(token); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	notices, err := c.FetchNotices(context.Background(), "2024-05-01")
	if err != nil {
		t.Fatalf("FetchNotices() failed: %v", err)
	}
	if len(notices) != 1 || notices[0].Title != "Sports day" {
		t.Errorf("FetchNotices() = %v, want the served notice", notices)
	}
	if gotAuth != "Bearer "+token {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestClient_doubleEncodedPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/load/goals/years", func(w http.ResponseWriter, r *http.Request) {
		// some endpoints serve the payload as a JSON string containing JSON
		_, _ = w.Write([]byte(`{"status":"200","payload":"[2023,2024]"}`))
	})
	c := testClient(t, mux)

	years, err := c.FetchGoalYears(context.Background())
	if err != nil {
		t.Fatalf("FetchGoalYears() failed: %v", err)
	}
	if len(years) != 2 || years[0] != 2023 {
		t.Errorf("FetchGoalYears() = %v, want [2023 2024]", years)
	}
}

func TestClient_malformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>lol</html>`},
		{name: "empty payload", body: `{"status":"200"}`},
		{name: "payload type mismatch", body: `{"status":"200","payload":"not json either"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/seqta/student/load/folios", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			c := testClient(t, mux)

			_, err := c.FetchFolioEntries(context.Background())
			if errors.Cause(err) != ErrInvalidResponse {
				t.Errorf("FetchFolioEntries() error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestClient_expiredSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/load/folios", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := testClient(t, mux)

	if _, err := c.FetchFolioEntries(context.Background()); err != ErrSessionExpired {
		t.Errorf("FetchFolioEntries() error = %v, want ErrSessionExpired", err)
	}
}

func TestClient_serverError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seqta/student/load/folios", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := testClient(t, mux)

	_, err := c.FetchFolioEntries(context.Background())
	if errors.Cause(err) != ErrPortalUnavailable {
		t.Errorf("FetchFolioEntries() error = %v, want ErrPortalUnavailable", err)
	}
}

func TestClient_portalUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NewServeMux())
	conf := &core.Config{Portal: core.PortalConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}}
	c := NewClient(conf, logsvc.NewStdLogger(log.New(io.Discard, "", 0)))
	srv.Close() // nobody home

	_, err := c.FetchFolioEntries(context.Background())
	if errors.Cause(err) != ErrPortalUnavailable {
		t.Errorf("FetchFolioEntries() error = %v, want ErrPortalUnavailable", err)
	}
}
