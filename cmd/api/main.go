package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nichewire/nichewire-backend/internal/config"
	"github.com/nichewire/nichewire-backend/internal/handler"
	"github.com/nichewire/nichewire-backend/internal/middleware"
	"github.com/nichewire/nichewire-backend/internal/migration"
	"github.com/nichewire/nichewire-backend/internal/repository"
	"github.com/nichewire/nichewire-backend/internal/routes"
	"github.com/nichewire/nichewire-backend/internal/service"
	"github.com/nichewire/nichewire-backend/pkg/analytics"
	pkgcache "github.com/nichewire/nichewire-backend/pkg/cache"
	pkglogger "github.com/nichewire/nichewire-backend/pkg/logger"
	"github.com/nichewire/nichewire-backend/pkg/mailer"
	pkgredis "github.com/nichewire/nichewire-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = env
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis (fast click counter). The service keeps serving redirects
	// without it; counter reads fall back to the durable column.
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// Elasticsearch analytics sink
	var sink analytics.Sink
	if cfg.Elasticsearch.Enabled && len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, esErr := analytics.NewClient(
			cfg.Elasticsearch.Addresses,
			cfg.Elasticsearch.Username,
			cfg.Elasticsearch.Password,
			cfg.Elasticsearch.Index,
		)
		if esErr != nil {
			pkglogger.Warn("Elasticsearch connection failed: %v (continuing without analytics)", esErr)
		} else {
			sink = esClient
		}
	}
	if sink == nil {
		sink = analytics.NopSink{}
	}

	// Transactional email
	var mailClient mailer.Mailer
	if cfg.Email.Enabled && cfg.Email.APIKey != "" {
		mailClient = mailer.NewClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From)
		pkglogger.Info("Mailer initialized")
	}

	// Repositories
	postRepo := repository.NewPostRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	// Services
	postService := service.NewPostService(postRepo, cacheService)
	linkService := service.NewLinkService(linkRepo, cacheService, sink)
	newsletterService := service.NewNewsletterService(subscriberRepo, mailClient)
	aiGenerator := service.NewAIGenerator(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)

	// Handlers
	postHandler := handler.NewPostHandler(postService)
	linkHandler := handler.NewLinkHandler(linkService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	aiHandler := handler.NewAIHandler(aiGenerator)

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-Key")
	router.Use(cors.New(corsConfig))

	routes.Setup(router, postHandler, linkHandler, newsletterHandler, aiHandler, redisClient, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDB opens the MySQL connection and applies pool settings
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["charset"] = "utf8mb4"

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	if cfg.Database.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}
