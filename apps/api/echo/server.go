package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/feedback"
	"github.com/edumanage/backend/core/payment"
	"github.com/edumanage/backend/core/stats"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc       *user.Service
		TeacherSvc    *teacher.Service
		CourseSvc     *course.Service
		AssignmentSvc *assignment.Service
		FeedbackSvc   *feedback.Service
		StatsSvc      *stats.Service
		PaymentSvc    *payment.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts *Options
		app  *echo.Echo

		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.HideBanner = true
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := ConfigureAuth(conf)

	registerAuthAPI(v1, s.opts.UserSvc, s.opts.Validate)
	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerTeacherAPI(v1, jwt, s.opts.TeacherSvc, s.opts.UserSvc)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc, s.opts.UserSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc, s.opts.CourseSvc)
	registerFeedbackAPI(v1, jwt, s.opts.FeedbackSvc)
	registerStatsAPI(v1, s.opts.StatsSvc)
	registerPaymentAPI(v1, jwt, s.opts.PaymentSvc)
}

func (s *server) Start() {
	s.errors <- s.app.Start(s.opts.Addr)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown initiates a graceful shutdown when an unrecoverable internal
// error is caught by the error handler.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduManage API!")
}
