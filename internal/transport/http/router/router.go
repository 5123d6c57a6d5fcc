package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/core/auth"
	"gym-class-booking/internal/core/cache"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/handler"
	"gym-class-booking/internal/transport/http/middleware"
	"gym-class-booking/internal/transport/http/response"
)

type Options struct {
	Log   *zap.Logger
	Store domain.Store
	JWTer *auth.JWTer
	Cache *cache.Cache // 可为 nil，降级为直查

	Debug bool
}

// New 组装 gin 引擎：中间件链 + 按角色分组的路由
func New(o Options) *gin.Engine {
	if !o.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(o.Log),
		middleware.Recovery(o.Log),
		middleware.Metrics(),
		cors.Default(),
		middleware.RateLimit(200, 400),
		middleware.ConcurrencyLimit(256),
		middleware.MaxBodyBytes(1<<20),
		middleware.Timeout(15*time.Second),
	)

	start := time.Now()
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, http.StatusOK, "OK", gin.H{
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(start).Round(time.Second).String(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authSvc := service.NewAuthService(o.Store, o.JWTer)
	adminSvc := service.NewAdminService(o.Store, o.Cache)
	trainerSvc := service.NewTrainerService(o.Store)
	traineeSvc := service.NewTraineeService(o.Store, o.Cache)

	authH := handler.NewAuthHandler(authSvc, o.Log)
	adminH := handler.NewAdminHandler(adminSvc, o.Log)
	trainerH := handler.NewTrainerHandler(trainerSvc, o.Log)
	traineeH := handler.NewTraineeHandler(traineeSvc, o.Log)

	users := o.Store.Users()
	api := r.Group("/api")
	{
		ag := api.Group("/auth")
		ag.POST("/register", authH.Register)
		ag.POST("/login", authH.Login)

		admin := api.Group("/admin", middleware.AuthJWT(o.JWTer, users, domain.RoleAdmin))
		admin.POST("/trainers", adminH.CreateTrainer)
		admin.GET("/trainers", adminH.ListTrainers)
		admin.POST("/schedules", adminH.CreateSchedule)
		admin.GET("/schedules", adminH.ListSchedules)
		admin.PUT("/schedules/:id", adminH.UpdateSchedule)
		admin.DELETE("/schedules/:id", adminH.DeleteSchedule)

		trainer := api.Group("/trainer", middleware.AuthJWT(o.JWTer, users, domain.RoleTrainer))
		trainer.GET("/schedules", trainerH.ListOwnSchedules)

		trainee := api.Group("/trainee", middleware.AuthJWT(o.JWTer, users, domain.RoleTrainee))
		trainee.PUT("/profile", traineeH.UpdateProfile)
		trainee.GET("/schedules", traineeH.ListAvailableSchedules)
		trainee.POST("/bookings", traineeH.CreateBooking)
		trainee.GET("/bookings", traineeH.ListOwnBookings)
		trainee.DELETE("/bookings/:id", traineeH.CancelBooking)
	}

	// 未匹配路由也走统一包络
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Body{
			Success:    false,
			StatusCode: http.StatusNotFound,
			Message:    "Resource not found",
			ErrorDetails: []apperr.FieldError{
				{Field: "path", Message: c.Request.URL.Path + " not found"},
			},
		})
	})

	return r
}
