package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/edumanage/backend/apps/api/echo"
	"github.com/edumanage/backend/core"
	"github.com/edumanage/backend/core/assignment"
	"github.com/edumanage/backend/core/course"
	"github.com/edumanage/backend/core/feedback"
	"github.com/edumanage/backend/core/payment"
	"github.com/edumanage/backend/core/stats"
	"github.com/edumanage/backend/core/teacher"
	"github.com/edumanage/backend/core/user"
	emailsvc "github.com/edumanage/backend/services/email"
	sendgridmail "github.com/edumanage/backend/services/email/sendgrid"
	logsvc "github.com/edumanage/backend/services/logger"
	stripepay "github.com/edumanage/backend/services/payment/stripe"
	mongodb "github.com/edumanage/backend/storage/mongo"
)

const shutdownTimeout = 20 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
		logger.Enable(true)
	} else {
		rollbar := logsvc.NewRollbarLogger(std, conf)
		rollbar.Enable(true)
		logger = rollbar
	}

	// set up DB
	db, err := mongodb.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(context.Background()); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up validation
	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf, logger)
	}

	statsSvc := stats.NewService(mongodb.NewStatsRepository(db), logger)
	usrSvc := user.NewService(mongodb.NewUserRepository(db), statsSvc, validate)
	teacherSvc := teacher.NewService(mongodb.NewTeacherRepository(db), usrSvc, mailSvc, validate)
	courseSvc := course.NewService(mongodb.NewCourseRepository(db), statsSvc, validate)
	assignmentSvc := assignment.NewService(mongodb.NewAssignmentRepository(db), conf.StrictDailySubmissions, validate)
	feedbackSvc := feedback.NewService(mongodb.NewFeedbackRepository(db), validate)
	paymentSvc := payment.NewService(stripepay.NewService(conf.StripeSecretKey))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Addr:       conf.Server.Addr,
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,

		UserSvc:       usrSvc,
		TeacherSvc:    teacherSvc,
		CourseSvc:     courseSvc,
		AssignmentSvc: assignmentSvc,
		FeedbackSvc:   feedbackSvc,
		StatsSvc:      statsSvc,
		PaymentSvc:    paymentSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
