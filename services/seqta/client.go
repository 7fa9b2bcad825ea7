package seqta

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/message"
	"github.com/trezcool/darasa/core/notice"
)

var (
	// errors
	ErrInvalidResponse   = errors.New("invalid response from portal")
	ErrLoginFailed       = errors.New("portal login failed")
	ErrSessionExpired    = errors.New("portal session has expired")
	ErrPortalUnavailable = errors.New("portal unavailable")
)

// Client talks JSON-over-HTTP to the remote school-management API.
// Endpoint semantics are the portal's business; this client only knows how to
// authenticate, POST a JSON body and unwrap the response envelope.
type Client struct {
	http    *http.Client
	baseURL string
	logger  core.Logger

	mu      sync.RWMutex
	token   string
	expires time.Time
}

// compile-time checks: the client feeds every portal-backed feature
var (
	_ notice.Fetcher     = (*Client)(nil)
	_ course.Fetcher     = (*Client)(nil)
	_ assessment.Fetcher = (*Client)(nil)
	_ goal.Fetcher       = (*Client)(nil)
	_ folio.Fetcher      = (*Client)(nil)
	_ message.Sender     = (*Client)(nil)
)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		// timeouts live here, not in the cache core
		http:    &http.Client{Timeout: conf.Portal.Timeout},
		baseURL: conf.Portal.BaseURL,
		logger:  logger,
	}
}

// envelope is the portal's response wrapper. Payload may be a JSON value or a
// JSON-encoded string that itself contains JSON; decodePayload handles both.
type envelope struct {
	Status  string          `json:"status"`
	Payload json.RawMessage `json:"payload"`
}

// Login authenticates against the portal and keeps the returned session JWT.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var res struct {
		JWT string `json:"jwt"`
	}
	err := c.post(ctx, "/seqta/student/login", map[string]string{
		"username": core.CleanString(username, true /* lower */),
		"password": password,
	}, &res)
	if err != nil {
		return err
	}
	if res.JWT == "" {
		return ErrLoginFailed
	}
	return c.SetToken(res.JWT)
}

// SetToken installs a session JWT (fresh from Login or restored from the
// durable store). The expiry is read from the unverified claims; the portal,
// not this client, owns the signing key.
func (c *Client) SetToken(token string) error {
	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return errors.Wrap(err, "parsing session token")
	}
	c.mu.Lock()
	c.token = token
	c.expires = time.Unix(claims.ExpiresAt, 0)
	c.mu.Unlock()
	return nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SessionValid reports whether a non-expired session token is held.
func (c *Client) SessionValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != "" && time.Now().Before(c.expires)
}

// Fetchers

func (c *Client) FetchNotices(ctx context.Context, date string) ([]notice.Notice, error) {
	var notices []notice.Notice
	err := c.post(ctx, "/seqta/student/load/notices", map[string]string{"date": date}, &notices)
	return notices, err
}

func (c *Client) FetchCourse(ctx context.Context, programme, metaclass int) (course.Course, error) {
	var crs course.Course
	err := c.post(ctx, "/seqta/student/load/subjects", map[string]int{
		"programme": programme,
		"metaclass": metaclass,
	}, &crs)
	return crs, err
}

func (c *Client) FetchUpcomingAssessments(ctx context.Context) ([]assessment.Assessment, error) {
	var assessments []assessment.Assessment
	err := c.post(ctx, "/seqta/student/assessment/list/upcoming", map[string]string{}, &assessments)
	return assessments, err
}

func (c *Client) FetchGoalYears(ctx context.Context) ([]int, error) {
	var years []int
	err := c.post(ctx, "/seqta/student/load/goals/years", map[string]string{}, &years)
	return years, err
}

func (c *Client) FetchGoals(ctx context.Context, year int) ([]goal.Goal, error) {
	var goals []goal.Goal
	err := c.post(ctx, "/seqta/student/load/goals", map[string]int{"year": year}, &goals)
	return goals, err
}

func (c *Client) FetchFolioEntries(ctx context.Context) ([]folio.Entry, error) {
	var entries []folio.Entry
	err := c.post(ctx, "/seqta/student/load/folios", map[string]string{}, &entries)
	return entries, err
}

func (c *Client) FetchMessages(ctx context.Context, folder string) ([]message.Message, error) {
	var msgs []message.Message
	err := c.post(ctx, "/seqta/student/load/message", map[string]string{"folder": folder}, &msgs)
	return msgs, err
}

func (c *Client) SendMessage(ctx context.Context, nm message.NewMessage) error {
	return c.post(ctx, "/seqta/student/save/message", nm, nil)
}

// post sends a JSON body and decodes the enveloped payload into dest.
// A malformed body or payload surfaces ErrInvalidResponse; a transport failure
// or an error status surfaces ErrPortalUnavailable. Callers never cache
// anything on those paths.
func (c *Client) post(ctx context.Context, path string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encoding request to %s", path)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "building request to %s", path)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(ErrPortalUnavailable, "calling %s: %v", path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return ErrSessionExpired
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Wrapf(ErrPortalUnavailable, "calling %s: status %d", path, res.StatusCode)
	}

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "reading response from %s", path)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "%s: %v", path, err)
	}
	if dest == nil {
		return nil
	}
	raw, err := decodePayload(env.Payload)
	if err != nil {
		return errors.Wrapf(ErrInvalidResponse, "%s: %v", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(ErrInvalidResponse, "%s: %v", path, err)
	}
	return nil
}

// decodePayload unwraps a payload that may be JSON or a JSON string
// containing JSON (the portal serves both, depending on the endpoint).
func decodePayload(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty payload")
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return json.RawMessage(s), nil
}
