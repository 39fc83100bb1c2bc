package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prayer-circle/config"
	"prayer-circle/db"
	"prayer-circle/domain/auth"
	"prayer-circle/domain/church"
	"prayer-circle/domain/group"
	"prayer-circle/domain/notification"
	"prayer-circle/domain/prayer"
	"prayer-circle/pkg/apperrors"
	"prayer-circle/pkg/llm"
	"prayer-circle/pkg/logger"
	"prayer-circle/pkg/mailer"
	"prayer-circle/routes"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
)

// stores groups one backend's store set. The backend is chosen once at
// startup: Postgres when reachable, otherwise a seeded in-memory set.
type stores struct {
	users    auth.Store
	churches church.Store
	groups   group.Store
	prayers  prayer.Store
	events   notification.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|migrate|seed]")
		os.Exit(1)
	}

	config.InitConfig()
	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "prayer-circle",
	})

	switch os.Args[1] {
	case "server":
		startServer()
	case "migrate":
		runMigrations()
	case "seed":
		runSeed()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runMigrations() {
	log := logger.Get()
	database, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDB()

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations", err)
	}
	log.Info("Migrations applied")
}

func runSeed() {
	log := logger.Get()
	database, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDB()

	s := seedStores{
		users:    auth.NewSQLStore(database),
		churches: church.NewSQLStore(database),
		groups:   group.NewSQLStore(database),
		prayers:  prayer.NewSQLStore(database),
	}
	if err := seedAll(context.Background(), s); err != nil {
		log.Fatal("Failed to seed database", err)
	}
	log.Info("Demo data seeded")
}

func buildStores() stores {
	log := logger.Get()

	database, err := config.InitDB()
	if err != nil {
		log.Warn("Database unavailable, using in-memory stores", logger.Err(err))
		s := stores{
			users:    auth.NewMemoryStore(nil),
			churches: church.NewMemoryStore(nil),
			groups:   group.NewMemoryStore(nil),
			prayers:  prayer.NewMemoryStore(nil),
			events:   notification.NewMemoryStore(),
		}
		if err := seedAll(context.Background(), seedStores{
			users:    s.users,
			churches: s.churches,
			groups:   s.groups,
			prayers:  s.prayers,
		}); err != nil {
			log.Warn("Failed to seed in-memory stores", logger.Err(err))
		}
		return s
	}

	log.Info("Connected to database")
	return stores{
		users:    auth.NewSQLStore(database),
		churches: church.NewSQLStore(database),
		groups:   group.NewSQLStore(database),
		prayers:  prayer.NewSQLStore(database),
		events:   notification.NewSQLStore(database),
	}
}

func startServer() {
	log := logger.Get()
	s := buildStores()
	config.InitRedis()

	llmClient := llm.NewClient(llm.Config{
		BaseURL: viper.GetString("LLM_BASE_URL"),
		APIKey:  viper.GetString("OPENAI_API_KEY"),
		Model:   viper.GetString("LLM_MODEL"),
	})
	if viper.GetString("OPENAI_API_KEY") == "" {
		log.Warn("OPENAI_API_KEY not configured, submissions will be flagged for manual review")
	}

	eventService := notification.NewService(s.events)
	prayerService := prayer.NewService(
		s.prayers,
		eventService,
		prayer.NewLLMSafetyClassifier(llmClient),
		prayer.NewLLMTopicClassifier(llmClient),
		mailer.New(),
	)
	searchService := prayer.NewSearchService(s.prayers, prayer.NewLLMSearchMatcher(llmClient))
	insightsService := prayer.NewInsightsService(s.prayers, prayer.NewLLMInsightsGenerator(llmClient))

	h := routes.Handlers{
		Auth:          auth.NewHandler(s.users),
		Prayers:       prayer.NewHandler(prayerService, searchService, insightsService, s.prayers, s.churches),
		Churches:      church.NewHandler(s.churches, eventService),
		Groups:        group.NewHandler(s.groups, s.churches, eventService),
		Notifications: notification.NewHandler(eventService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)

	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	origin := viper.GetString("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, h)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server stopped", err)
		}
	}()
	log.Info("Server started", logger.String("port", port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", err)
	}
	config.CloseDB()
	log.Info("Server stopped")
}
