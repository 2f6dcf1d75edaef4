package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/config"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/database/postgres"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/database/redis"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/handlers"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/repository"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/services"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/worker"

	"github.com/gin-gonic/gin"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/croppilot", "log", "api")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient.GetClient())
	farmLogRepo := repository.NewFarmLogRepository(db)
	schemeRepo := repository.NewSchemeRepository(cfg.SchemesCfg.CatalogPath)

	// Services
	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret)
	sessionService := services.NewSessionService(sessionRepo)
	userService := services.NewUserService(userRepo, sessionService, jwtService)
	farmLogService := services.NewFarmLogService(farmLogRepo)
	schemeService := services.NewSchemeService(schemeRepo)
	weatherService := services.NewWeatherService(cfg.WeatherCfg)
	geocodingService := services.NewGeocodingService(cfg.WeatherCfg)
	riskService := services.NewRiskService(weatherService, geocodingService, redisClient.GetClient())
	advisorService := services.NewAdvisorService(riskService)

	// Background workers: one pool, a daily scheduler for harvest reminders
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workerWg sync.WaitGroup
	pool := worker.NewWorkingPool(2, 16)
	workerWg.Add(1)
	go pool.Start(ctx, &workerWg)

	harvestJob := services.NewHarvestReminderJob(farmLogRepo, userRepo)
	scheduler := worker.NewJobScheduler("harvest-reminders", 24*time.Hour, pool)
	scheduler.AddJob(harvestJob.Run)
	go scheduler.Run(ctx)

	// HTTP surface
	middleware := handlers.NewMiddleware(jwtService, sessionService)
	authHandler := handlers.NewAuthHandler(userService)
	farmLogHandler := handlers.NewFarmLogHandler(farmLogService)
	schemeHandler := handlers.NewSchemeHandler(schemeService)
	weatherHandler := handlers.NewWeatherHandler(riskService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)

	router := gin.Default()
	router.GET("/checkhealth", func(c *gin.Context) {
		c.String(200, "CropPilot service is healthy")
	})

	authHandler.RegisterRoutes(router, middleware)
	farmLogHandler.RegisterRoutes(router, middleware)
	schemeHandler.RegisterRoutes(router)
	weatherHandler.RegisterRoutes(router)
	advisorHandler.RegisterRoutes(router)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := router.Run(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutting down server...")
	cancel()
	workerWg.Wait()
}
