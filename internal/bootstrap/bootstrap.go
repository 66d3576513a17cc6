package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/greeklink/greeklink/docs" // Import generated swagger docs
	appControllers "github.com/greeklink/greeklink/internal/app/controllers"
	appMigrations "github.com/greeklink/greeklink/internal/app/migrations"
	appRepos "github.com/greeklink/greeklink/internal/app/repositories"
	appRoutes "github.com/greeklink/greeklink/internal/app/routes"
	appServices "github.com/greeklink/greeklink/internal/app/services"
	"github.com/greeklink/greeklink/internal/config"
	"github.com/greeklink/greeklink/internal/db"
	appMiddleware "github.com/greeklink/greeklink/internal/middleware"
	pkgAuth "github.com/greeklink/greeklink/internal/pkg/auth"
	"github.com/greeklink/greeklink/internal/pkg/drafts"
	"github.com/greeklink/greeklink/internal/pkg/email"
	"github.com/greeklink/greeklink/internal/pkg/filestorage"
	"github.com/greeklink/greeklink/internal/pkg/helpers"
	"github.com/greeklink/greeklink/internal/pkg/logger"
	"github.com/greeklink/greeklink/internal/pkg/websocket"
	"github.com/greeklink/greeklink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	ProfileService       *appServices.ProfileService
	AlumniService        *appServices.AlumniService
	ConnectionService    *appServices.ConnectionService
	MessageService       *appServices.MessageService
	InvitationService    *appServices.InvitationService
	ChapterService       *appServices.ChapterService
	DocumentService      *appServices.DocumentService
	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	AlumniController     *appControllers.AlumniController
	ConnectionController *appControllers.ConnectionController
	MessageController    *appControllers.MessageController
	InvitationController *appControllers.InvitationController
	ChapterController    *appControllers.ChapterController
	DocumentController   *appControllers.DocumentController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	EmailService         *email.Service
	DraftStore           *drafts.Store
	Hub                  *websocket.Hub
	WSHandler            *websocket.Handler
	Logger               zerolog.Logger
	FileStorage          *filestorage.LocalStorage
	redisClient          *redis.Client
}

// Close releases resources owned by the dependency container.
func (d *Dependencies) Close() {
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Initialize file storage. The base URL must match the static file
	// serving endpoint configured on the router.
	var err error
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewService(email.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	})

	// Profile drafts live in redis when it is enabled. Everything else
	// works without it, so a disabled redis just means no autosave.
	var draftStore appServices.DraftStore
	if cfg.Redis.Enabled {
		deps.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.DraftStore = drafts.NewStore(deps.redisClient, helpers.ParseDuration(cfg.Redis.DraftTTL, 30*time.Minute))
		draftStore = deps.DraftStore
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis draft store enabled")
	}

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.ProfileRepository,
		deps.Repos.InvitationRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
	)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, deps.Repos.AlumniRepository, draftStore)
	deps.AlumniService = appServices.NewAlumniService(deps.Repos.AlumniRepository, deps.Repos.ConnectionRepository, deps.Repos.ProfileRepository)
	deps.ConnectionService = appServices.NewConnectionService(deps.Repos.ConnectionRepository, deps.Repos.ProfileRepository)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository, deps.Repos.ConnectionRepository, deps.Repos.ProfileRepository, deps.Hub)
	deps.InvitationService = appServices.NewInvitationService(deps.Repos.InvitationRepository, deps.Repos.ProfileRepository, deps.EmailService, baseURL)
	deps.ChapterService = appServices.NewChapterService(deps.Repos.ChapterRepository)
	deps.DocumentService = appServices.NewDocumentService(deps.Repos.DocumentRepository, deps.FileStorage)

	// Authenticated requests stamp the member's last activity so the
	// directory's hot/warm/cold buckets stay current.
	profileService := deps.ProfileService
	touch := func(c *gin.Context, userID int64) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profileService.TouchActivity(ctx, userID, time.Now()); err != nil {
				lgr.Debug().Err(err).Int64("userID", userID).Msg("Failed to touch last activity")
			}
		}()
	}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, touch)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.AlumniController = appControllers.NewAlumniController(deps.AlumniService, deps.ChapterService)
	deps.ConnectionController = appControllers.NewConnectionController(deps.ConnectionService)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService)
	deps.InvitationController = appControllers.NewInvitationController(deps.InvitationService)
	deps.ChapterController = appControllers.NewChapterController(deps.ChapterService)
	deps.DocumentController = appControllers.NewDocumentController(deps.DocumentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.AlumniController,
		deps.ConnectionController,
		deps.MessageController,
		deps.InvitationController,
		deps.ChapterController,
		deps.DocumentController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
