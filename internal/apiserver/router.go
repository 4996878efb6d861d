package apiserver

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/handler"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/middleware"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/jwt"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/password"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/revocation"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/internal/storage"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
)

// APIPrefix is where every versioned route is mounted
const APIPrefix = "/api/v1"

// Deps is everything the router wires into handlers
type Deps struct {
	Config  *config.APIServerConfig
	DB      database.Database
	Tokens  *jwt.Service
	Revoked revocation.Store
	Hasher  password.Hasher
	Photos  storage.PhotoStore
	Stats   *cache.Cache // nil disables caching
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(d *Deps) *gin.Engine {
	cfg := d.Config
	r := gin.New()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestLogger(d.Logger))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(d.Metrics.Middleware())
	r.Use(i18n.Middleware())
	r.Use(middleware.CORS(&cfg.CORS))

	r.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	r.GET("/health", handler.Health)
	if d.Metrics != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(d.Metrics.Handler()))
	}

	resolver := principal.NewResolver(d.Tokens, d.Revoked, d.DB, d.Logger)
	authn := middleware.Authenticate(resolver, d.Metrics)

	authH := handler.NewAuth(d.DB, d.Tokens, d.Revoked, d.Hasher, d.Logger)
	farmerH := handler.NewFarmer(d.DB, d.Hasher, d.Stats, d.Metrics, d.Logger)
	millH := handler.NewMill(d.DB, d.Logger)
	orderH := handler.NewOrder(d.DB, d.Metrics, d.Logger)
	routineH := handler.NewRoutine(d.DB, d.Photos, cfg.Upload.MaxSize, d.Metrics, d.Logger)
	reportH := handler.NewReport(d.DB, d.Stats, d.Metrics, d.Logger)
	adminH := handler.NewAdmin(d.DB, d.Stats, d.Logger)

	api := r.Group(APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/me", authn, authH.Me)
	auth.PUT("/password", authn, authH.ChangePassword)
	auth.POST("/logout", authn, authH.Logout)

	farmers := api.Group("/farmers", authn)
	farmers.POST("/admin/create", farmerH.AdminCreate)
	farmers.GET("/admin/count", farmerH.Count)
	farmers.PUT("/admin/bulk-verify", farmerH.BulkVerify)
	farmers.GET("/admin/search", farmerH.Search)
	farmers.POST("", farmerH.Create)
	farmers.GET("", farmerH.List)
	farmers.GET("/me", farmerH.Me)
	farmers.PUT("/me", farmerH.UpdateMe)
	farmers.POST("/farms", farmerH.CreateFarm)
	farmers.GET("/farms", farmerH.ListFarms)
	farmers.GET("/farms/:id", farmerH.GetFarm)
	farmers.PUT("/farms/:id", farmerH.UpdateFarm)
	farmers.DELETE("/farms/:id", farmerH.DeleteFarm)
	farmers.GET("/:id", farmerH.Get)
	farmers.PUT("/:id", farmerH.Update)
	farmers.DELETE("/:id", farmerH.Delete)

	mills := api.Group("/mills", authn)
	mills.POST("", millH.Create)
	mills.GET("", millH.List)
	mills.GET("/me", millH.Me)
	mills.PUT("/me", millH.UpdateMe)
	mills.GET("/orders", millH.Orders)
	mills.GET("/orders/:id", millH.Order)
	mills.PUT("/orders/:id/status", millH.UpdateOrderStatus)
	mills.GET("/feed-types", millH.FeedTypes)
	mills.POST("/feed-types", millH.CreateFeedType)
	mills.GET("/:id", millH.Get)
	mills.PUT("/:id", millH.Update)
	mills.DELETE("/:id", millH.Delete)

	orders := api.Group("/orders", authn)
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.GET("/:id", orderH.Get)
	orders.PUT("/:id/cancel", orderH.Cancel)

	routine := api.Group("/routine", authn)
	routine.POST("", routineH.Create)
	routine.GET("", routineH.List)
	routine.POST("/upload-photo", routineH.UploadPhoto)
	routine.POST("/mortality", routineH.CreateMortality)
	routine.GET("/mortality", routineH.ListMortality)
	routine.PUT("/mortality/:id", routineH.UpdateMortality)
	routine.DELETE("/mortality/:id", routineH.DeleteMortality)
	routine.GET("/:id", routineH.Get)
	routine.PUT("/:id", routineH.Update)
	routine.DELETE("/:id", routineH.Delete)

	production := api.Group("/production", authn)
	production.POST("/reports", reportH.Create)
	production.GET("/reports", reportH.List)
	production.GET("/reports/:id", reportH.Get)
	production.PUT("/reports/:id", reportH.Update)
	production.DELETE("/reports/:id", reportH.Delete)
	production.POST("/cost-details", reportH.AddCostDetail)
	production.GET("/cost-details", reportH.ListCostDetails)
	production.GET("/admin/reports", reportH.AdminList)
	production.GET("/admin/reports/export", reportH.Export)
	production.GET("/admin/reports/:id", reportH.AdminGet)
	production.PUT("/admin/reports/:id/approve", reportH.Approve)
	production.PUT("/admin/reports/:id/reject", reportH.Reject)

	admin := api.Group("/admin", authn)
	admin.GET("/dashboard", adminH.Dashboard)
	admin.GET("/logs", adminH.Logs)
	admin.POST("/logs", adminH.CreateLog)
	admin.GET("/analytics/farmers", adminH.FarmerAnalytics)
	admin.GET("/analytics/orders", adminH.OrderAnalytics)
	admin.GET("/analytics/production", adminH.ProductionAnalytics)
	admin.GET("/system-stats", adminH.SystemStats)

	return r
}
