package api

import (
	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/api/handler"
	"github.com/relatify/relatify_go_server/internal/api/middleware"
	"github.com/relatify/relatify_go_server/internal/service"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	onboardingHandler *handler.OnboardingHandler
	explainHandler    *handler.ExplainHandler
	followUpHandler   *handler.FollowUpHandler
	progressHandler   *handler.ProgressHandler
	scanHandler       *handler.ScanHandler
	websocketHandler  *handler.WebSocketHandler
	onboardingService *service.OnboardingService
	cfg               *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	onboardingHandler *handler.OnboardingHandler,
	explainHandler *handler.ExplainHandler,
	followUpHandler *handler.FollowUpHandler,
	progressHandler *handler.ProgressHandler,
	scanHandler *handler.ScanHandler,
	websocketHandler *handler.WebSocketHandler,
	onboardingService *service.OnboardingService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		onboardingHandler: onboardingHandler,
		explainHandler:    explainHandler,
		followUpHandler:   followUpHandler,
		progressHandler:   progressHandler,
		scanHandler:       scanHandler,
		websocketHandler:  websocketHandler,
		onboardingService: onboardingService,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/verify-email", r.authHandler.VerifyEmail)
			auth.GET("/github", r.authHandler.GithubLogin)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 引导选项
		api.GET("/interests/popular", r.onboardingHandler.PopularInterests)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.profileHandler.Get)
				user.PUT("/profile", r.profileHandler.Update)
				user.POST("/avatar", r.profileHandler.UploadAvatar)
			}

			// 引导
			onboarding := authenticated.Group("/onboarding")
			{
				onboarding.GET("/status", r.onboardingHandler.Status)
				onboarding.POST("/complete", r.onboardingHandler.Complete)
			}

			// 进度与徽章
			authenticated.GET("/progress", r.progressHandler.Stats)
			authenticated.GET("/badges", r.progressHandler.Badges)

			// 讲解历史
			explanations := authenticated.Group("/explanations")
			{
				explanations.GET("", r.explainHandler.List)
				explanations.GET("/:id", r.explainHandler.Get)
				explanations.DELETE("/:id", r.explainHandler.Delete)
				explanations.GET("/:id/followups", r.followUpHandler.ListByExplanation)
			}

			// 扫描学习
			scans := authenticated.Group("/scans")
			{
				scans.POST("", r.scanHandler.Upload)
				scans.GET("", r.scanHandler.List)
				scans.POST("/:id/text", r.scanHandler.SubmitText)
			}

			// 生成类操作要求先完成引导
			gated := authenticated.Group("")
			gated.Use(middleware.OnboardingGate(r.onboardingService))
			{
				gated.POST("/generate-explanation", r.explainHandler.Generate)
				gated.POST("/answer-followup", r.followUpHandler.Ask)
			}
		}
	}

	return engine
}
