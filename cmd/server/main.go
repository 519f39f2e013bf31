package main

import (
	"fmt"
	"log"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/api"
	"github.com/relatify/relatify_go_server/internal/api/handler"
	"github.com/relatify/relatify_go_server/internal/database"
	"github.com/relatify/relatify_go_server/internal/pkg/ai"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/pkg/cron"
	"github.com/relatify/relatify_go_server/internal/pkg/email"
	"github.com/relatify/relatify_go_server/internal/pkg/oauth"
	"github.com/relatify/relatify_go_server/internal/pkg/oss"
	"github.com/relatify/relatify_go_server/internal/pkg/ws"
	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub ready")

	// 初始化基础组件
	appCache := cache.New(rdb, cfg.Cache.TTLMinutes)
	generator := ai.NewClient(&cfg.AI)
	emailSvc := email.NewService(&cfg.Email)
	stateStore := oauth.NewStateStore(rdb)

	// OSS 不可用时降级运行，头像与扫描图片上传会失败
	ossClient, err := oss.NewClient(&cfg.OSS)
	if err != nil {
		log.Printf("OSS client unavailable: %v", err)
		ossClient = nil
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	explanationRepo := repository.NewExplanationRepository(db)
	followUpRepo := repository.NewFollowUpRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	scanRepo := repository.NewScanRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg, emailSvc)
	progressService := service.NewProgressService(progressRepo, badgeRepo, appCache, wsHub)
	onboardingService := service.NewOnboardingService(db, interestRepo, progressRepo, appCache)
	explainService := service.NewExplainService(explanationRepo, interestRepo, progressService, generator, appCache)
	followUpService := service.NewFollowUpService(followUpRepo, explanationRepo, interestRepo, progressService, generator)
	profileService := service.NewProfileService(userRepo, interestRepo, ossClient, appCache)
	scanService := service.NewScanService(scanRepo, progressService, ossClient, &cfg.Scan)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, stateStore)
	profileHandler := handler.NewProfileHandler(profileService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	explainHandler := handler.NewExplainHandler(explainService)
	followUpHandler := handler.NewFollowUpHandler(followUpService)
	progressHandler := handler.NewProgressHandler(progressService)
	scanHandler := handler.NewScanHandler(scanService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化定时任务
	cronService := cron.NewService(progressRepo, scanService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		profileHandler,
		onboardingHandler,
		explainHandler,
		followUpHandler,
		progressHandler,
		scanHandler,
		websocketHandler,
		onboardingService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
