package router

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	// ... 其他导入 ...
	appConfig "github.com/Xushengqwer/build_service/config"
	"github.com/Xushengqwer/build_service/constant" // 需要导入常量包获取 ServiceName
	"github.com/Xushengqwer/build_service/controller"
	"github.com/gin-gonic/gin"
	// 导入 OTel Gin 中间件
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"net/http"
)

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *appConfig.BuildConfig,
	componentController *controller.ComponentController,
	buildController *controller.BuildController,
	socialController *controller.SocialController,
	hotBuildController *controller.HotBuildController,
	buildAdminController *controller.BuildAdminController,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	// 使用 gin.New() 而不是 gin.Default()，因为我们要自定义 Recovery 和 Logger
	router := gin.New()

	// 1. OTel Middleware (最先，处理追踪上下文和 Span)
	router.Use(otelgin.Middleware(constant.ServiceName))

	// 2. Panic Recovery (捕获后续中间件和 handler 的 panic)
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))

	// 3. Request Logger (记录访问日志，需要 TraceID)
	// RequestLoggerMiddleware 需要底层的 *zap.Logger，从 core.ZapLogger 取出。
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(commonMiddleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}

	// 4. Request Timeout (超时控制)
	// 配置中的 RequestTimeout 是秒数
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 5. User Context (提取用户信息)
	router.Use(commonMiddleware.UserContextMiddleware())

	logger.Debug("已注册全局中间件")

	// --- 创建 API 版本分组 ---
	v1 := router.Group("/api/v1/rig")
	logger.Debug("已创建 API/v1/rig 分组")

	// --- 注册控制器路由 ---
	componentController.RegisterRoutes(v1)
	buildController.RegisterRoutes(v1)
	socialController.RegisterRoutes(v1)
	hotBuildController.RegisterRoutes(v1)
	buildAdminController.RegisterRoutes(v1)
	logger.Info("所有控制器路由已注册到 /api/v1/rig 分组")

	// --- 注册 Swagger UI 路由 ---
	// 访问 /swagger/index.html 即可看到 Swagger UI 界面
	// ginSwagger.WrapHandler 会处理 swagger.json 的加载和 UI 渲染
	swaggerURL := ginSwagger.URL("/swagger/doc.json") // 指定 swagger.json 的访问路径
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	logger.Info("Swagger UI endpoint registered at /swagger/*any")

	// --- 健康检查等路由 ---
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
