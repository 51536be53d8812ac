package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursemanager/internal/app/controllers"
	appRepos "github.com/yigit/coursemanager/internal/app/repositories"
	appRoutes "github.com/yigit/coursemanager/internal/app/routes"
	"github.com/yigit/coursemanager/internal/app/scheduler"
	appServices "github.com/yigit/coursemanager/internal/app/services"
	"github.com/yigit/coursemanager/internal/config"
	"github.com/yigit/coursemanager/internal/db"
	appMiddleware "github.com/yigit/coursemanager/internal/middleware"
	"github.com/yigit/coursemanager/internal/pkg/logger"
	"github.com/yigit/coursemanager/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Services holds the rule services sharing one store
type Services struct {
	Store       appRepos.Store
	Departments *appServices.DepartmentService
	Courses     *appServices.CourseService
	Students    *appServices.StudentService
	Enrollments *appServices.EnrollmentService
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	*Services
	Controllers appRoutes.Controllers
	Finalizer   *scheduler.GradeFinalizer // nil when the scheduler is disabled
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.IsPrettyLogging(),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store and, when enabled, seeds the default
// departments.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Services, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Opening entity store...")
	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open entity store")
		return nil, err
	}

	services := NewServices(store, lgr, nil)

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, services.Departments, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return services, nil
}

// NewServices builds the services over store. A nil clock means time.Now.
func NewServices(store appRepos.Store, lgr zerolog.Logger, clock appServices.Clock) *Services {
	uow := appServices.NewUnitOfWork(store, lgr.With().Str("component", "services").Logger())
	return &Services{
		Store:       store,
		Departments: appServices.NewDepartmentService(uow),
		Courses:     appServices.NewCourseService(uow),
		Students:    appServices.NewStudentService(uow),
		Enrollments: appServices.NewEnrollmentService(uow, clock),
	}
}

// BuildDependencies initializes controllers and the grade finalizer.
func BuildDependencies(cfg *config.Config, services *Services, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Services: services, Logger: lgr}

	deps.Controllers = appRoutes.Controllers{
		Departments: appControllers.NewDepartmentController(services.Departments),
		Courses:     appControllers.NewCourseController(services.Courses),
		Students:    appControllers.NewStudentController(services.Students),
		Enrollments: appControllers.NewEnrollmentController(services.Enrollments, time.Now),
	}

	if cfg.Scheduler.Enabled {
		finalizer, err := scheduler.NewGradeFinalizer(services.Enrollments, cfg.Scheduler.FinalizeSpec,
			lgr.With().Str("component", "scheduler").Logger())
		if err != nil {
			return nil, fmt.Errorf("failed to create grade finalizer: %w", err)
		}
		deps.Finalizer = finalizer
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers)

	return router, nil
}
