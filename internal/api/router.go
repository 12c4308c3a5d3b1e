package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/waxads/easy-grown/internal/upload"
)

type RouterOptions struct {
	// UploadDir is served read-only under /uploads.
	UploadDir      string
	MaxUploadBytes int64
}

// NewRouter mounts every route on a fresh engine. It also turns on gin's
// binding.EnableDecoderDisallowUnknownFields, a process-wide switch that
// applies to every gin engine in the process.
func NewRouter(app App, opts RouterOptions) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.MaxMultipartMemory = opts.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(app.Logger()))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	r.Static(upload.PublicPrefix, opts.UploadDir)
	r.GET("/healthz", GetHealth(app))

	api := r.Group("/api")
	api.GET("/vegetables", GetVegetables(app))
	api.POST("/vegetables", PostVegetable(app, opts.MaxUploadBytes))
	api.DELETE("/vegetables/:id", DeleteVegetable(app))

	api.GET("/planting-log", GetPlantingLogs(app))
	api.POST("/planting-log", PostPlantingLog(app))
	api.PUT("/planting-log/:id", PutPlantingStatus(app))
	api.PUT("/planting-log/:id/water", PutPlantingWater(app))

	api.POST("/login", PostLogin(app))
	api.POST("/register", PostRegister(app))

	return r
}
