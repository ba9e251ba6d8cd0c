package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *handler.AuthHandler
	Class     *handler.ClassHandler
	Subject   *handler.SubjectHandler
	Teacher   *handler.TeacherHandler
	Period    *handler.PeriodHandler
	Timetable *handler.TimetableHandler
	Schedule  *handler.ScheduleHandler
	System    *handler.SystemHandler
}

// Options configures the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	EnableMetrics  bool
	// AuthEnabled puts every write route behind an ADMIN token.
	AuthEnabled bool
	Tokens      middleware.TokenValidator
	Metrics     *service.MetricsService
	Logger      *zap.Logger
}

// New builds the gin engine with middleware and routes.
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	if opts.EnableMetrics {
		r.GET("/metrics", h.System.Prometheus)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)

	write := []gin.HandlerFunc{}
	if opts.AuthEnabled {
		api.POST("/auth/login", h.Auth.Login)
		write = append(write, middleware.JWT(opts.Tokens), middleware.RequireRoles(models.RoleAdmin))
	}
	guard := func(final gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(write)+1)
		chain = append(chain, write...)
		return append(chain, final)
	}

	classes := api.Group("/classes")
	classes.GET("", h.Class.List)
	classes.GET("/:id", h.Class.Get)
	classes.POST("", guard(h.Class.Create)...)
	classes.PUT("/:id", guard(h.Class.Update)...)
	classes.DELETE("/:id", guard(h.Class.Delete)...)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subject.List)
	subjects.GET("/:id", h.Subject.Get)
	subjects.POST("", guard(h.Subject.Create)...)
	subjects.PUT("/:id", guard(h.Subject.Update)...)
	subjects.DELETE("/:id", guard(h.Subject.Delete)...)

	teachers := api.Group("/teachers")
	teachers.GET("", h.Teacher.List)
	teachers.GET("/:id", h.Teacher.Get)
	teachers.POST("", guard(h.Teacher.Create)...)
	teachers.PUT("/:id", guard(h.Teacher.Update)...)
	teachers.DELETE("/:id", guard(h.Teacher.Delete)...)

	periods := api.Group("/periods")
	periods.GET("", h.Period.List)
	periods.GET("/:id", h.Period.Get)
	periods.POST("", guard(h.Period.Create)...)
	periods.PUT("/:id", guard(h.Period.Update)...)
	periods.DELETE("/:id", guard(h.Period.Delete)...)

	timetables := api.Group("/timetables")
	timetables.GET("", h.Timetable.List)
	timetables.GET("/stats", h.Schedule.Stats)
	timetables.GET("/class/:classId", h.Timetable.ListByClass)
	timetables.GET("/class/:classId/schedule", h.Schedule.ClassSchedule)
	timetables.GET("/class/:classId/schedule/export", h.Schedule.ExportClassSchedule)
	timetables.GET("/teacher/:teacherId", h.Timetable.ListByTeacher)
	timetables.GET("/teacher/:teacherId/schedule", h.Schedule.TeacherSchedule)
	timetables.GET("/teacher/:teacherId/schedule/export", h.Schedule.ExportTeacherSchedule)
	timetables.GET("/weekday/:dayOfWeek", h.Schedule.WeekdaySchedule)
	timetables.GET("/weekday/:dayOfWeek/export", h.Schedule.ExportWeekdaySchedule)
	timetables.GET("/:id", h.Timetable.Get)
	timetables.POST("", guard(h.Timetable.Create)...)
	timetables.PUT("/:id", guard(h.Timetable.Update)...)
	timetables.DELETE("/:id", guard(h.Timetable.Delete)...)

	return r
}
