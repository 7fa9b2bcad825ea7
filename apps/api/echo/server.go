package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assessment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/folio"
	"github.com/trezcool/darasa/core/goal"
	"github.com/trezcool/darasa/core/message"
	"github.com/trezcool/darasa/core/note"
	"github.com/trezcool/darasa/core/notice"
)

type (
	// Session advises on the remote login state; satisfied by *seqta.Client.
	Session interface {
		SessionValid() bool
	}

	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf    *core.Config
		Logger  core.Logger
		Offline *core.OfflineDetector
		Session Session

		NoticeSvc     *notice.Service
		CourseSvc     *course.Service
		AssessmentSvc *assessment.Service
		GoalSvc       *goal.Service
		FolioSvc      *folio.Service
		MessageSvc    *message.Service
		NoteSvc       *note.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		// ShutdownSignal delivers OS interrupts and internally raised
		// shutdown errors; the main selects on it.
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts       *Options
		app        *echo.Echo
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:       opts,
		app:        echo.New(),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	// the desktop shell loads from a custom scheme; allow it through
	s.app.Use(middleware.CORS())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	v1.GET("/status", s.status)

	registerNoticeAPI(v1, s.opts.NoticeSvc)
	registerCourseAPI(v1, s.opts.CourseSvc)
	registerAssessmentAPI(v1, s.opts.AssessmentSvc)
	registerGoalAPI(v1, s.opts.GoalSvc)
	registerFolioAPI(v1, s.opts.FolioSvc)
	registerMessageAPI(v1, s.opts.MessageSvc)
	registerNoteAPI(v1, s.opts.NoteSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

// signalShutdown asks the main to terminate gracefully. Raised by the error
// handler when a request surfaces an integrity failure.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa!")
}

// status tells the shell whether to expect live data.
func (s *server) status(ctx echo.Context) error {
	var sessionValid bool
	if s.opts.Session != nil {
		sessionValid = s.opts.Session.SessionValid()
	}
	var offline bool
	if s.opts.Offline != nil {
		offline = s.opts.Offline.Offline()
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"offline":       offline,
		"session_valid": sessionValid,
	})
}
