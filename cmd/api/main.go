package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-fileshare/internal/common/api"
	"go-fileshare/internal/config"
	"go-fileshare/internal/database"
	"go-fileshare/internal/features/auth"
	"go-fileshare/internal/features/file"
	"go-fileshare/internal/features/maintenance"
	"go-fileshare/internal/features/notification"
	"go-fileshare/internal/features/system"
	"go-fileshare/internal/features/user"
	"go-fileshare/internal/logger"
	"go-fileshare/internal/middleware"
	"go-fileshare/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance.
// BodyLimit must sit above the upload cap, otherwise fasthttp rejects big
// bodies before ValidateUpload can answer with a proper 400. The extra
// megabyte is headroom for multipart framing.
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             int(cfg.MaxUploadMB<<20) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, userRepo user.UserRepository, fileRepo file.FileRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
				if err := fileRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure file indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repositories
			user.NewUserRepository,
			file.NewFileRepository,

			// Initialize Services
			auth.NewAuthService,
			user.NewUserService,
			file.NewFileService,
			maintenance.NewSweepService,
			notification.NewHub,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(h *notification.Hub) file.ShareNotifier { return h },

			// Initialize Controllers
			auth.NewAuthController,
			user.NewUserController,
			file.NewFileController,
			notification.NewNotificationController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(file.NewFileApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, sweeper maintenance.SweepService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sweeper.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return sweeper.Stop()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
