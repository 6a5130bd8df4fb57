package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	corepersistence "github.com/dsalvat/fase-platform-sub001/modules/core/infrastructure/persistence"
	corecontrollers "github.com/dsalvat/fase-platform-sub001/modules/core/presentation/controllers"
	coreservices "github.com/dsalvat/fase-platform-sub001/modules/core/services"
	planningpersistence "github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence"
	planningcontrollers "github.com/dsalvat/fase-platform-sub001/modules/planning/presentation/controllers"
	planningservices "github.com/dsalvat/fase-platform-sub001/modules/planning/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/configuration"
	"github.com/dsalvat/fase-platform-sub001/pkg/eventbus"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/metrics"
	"github.com/dsalvat/fase-platform-sub001/pkg/middleware"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
	EventBus      eventbus.EventBus
}

// Default assembles the repositories, services, middleware and controllers
// into a runnable HTTP server.
func Default(options *DefaultOptions) *server.HTTPServer {
	userRepo := corepersistence.NewUserRepository()
	companyRepo := corepersistence.NewCompanyRepository()
	supervisionRepo := corepersistence.NewSupervisionRepository()
	objectiveRepo := planningpersistence.NewObjectiveRepository()
	subTaskRepo := planningpersistence.NewSubTaskRepository()
	activityRepo := planningpersistence.NewActivityRepository()
	meetingRepo := planningpersistence.NewMeetingRepository()
	personRepo := planningpersistence.NewPersonRepository()
	openMonthRepo := planningpersistence.NewOpenMonthRepository()
	feedbackRepo := planningpersistence.NewFeedbackRepository()
	ownershipRepo := planningpersistence.NewOwnershipRepository()

	contextSvc := coreservices.NewContextService()
	userSvc := coreservices.NewUserService(userRepo)
	companySvc := coreservices.NewCompanyService(companyRepo)
	supervisionSvc := coreservices.NewSupervisionService(supervisionRepo, options.Logger)
	monthSvc := planningservices.NewMonthService(openMonthRepo)
	accessSvc := planningservices.NewAccessService(ownershipRepo, supervisionRepo, monthSvc)
	objectiveSvc := planningservices.NewObjectiveService(objectiveRepo, accessSvc, options.EventBus)
	treeSvc := planningservices.NewTreeService(subTaskRepo, activityRepo, meetingRepo, personRepo, accessSvc)
	feedbackSvc := planningservices.NewFeedbackService(feedbackRepo, ownershipRepo, supervisionRepo, accessSvc)

	planningservices.RegisterGamificationSubscriber(options.EventBus, options.Logger)

	controllers := []server.Controller{
		corecontrollers.NewUsersController(userSvc),
		corecontrollers.NewCompaniesController(companySvc),
		corecontrollers.NewSupervisionController(supervisionSvc, contextSvc),
		planningcontrollers.NewMonthsController(monthSvc),
		planningcontrollers.NewObjectivesController(objectiveSvc, contextSvc),
		planningcontrollers.NewTreeController(treeSvc, contextSvc),
		planningcontrollers.NewFeedbackController(feedbackSvc, contextSvc),
	}
	if options.Configuration.Prometheus.Enabled {
		controllers = append(controllers, metrics.NewPrometheusController(options.Configuration.Prometheus.Path))
	}

	return &server.HTTPServer{
		Controllers: controllers,
		Middlewares: []mux.MiddlewareFunc{
			middleware.WithLogger(options.Logger),
			middleware.WithPool(options.Pool),
			middleware.WithActor(userRepo),
		},
		NotFoundHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
		}),
		MethodNotAllowedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
		}),
	}
}
