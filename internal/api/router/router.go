package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/plannerd/reminderd/internal/api/handlers/device"
	"github.com/plannerd/reminderd/internal/api/handlers/reminder"
	"github.com/plannerd/reminderd/internal/middlewares"
)

func New(reminderHandler *reminder.Handler, deviceHandler *device.Handler, metricsHandler http.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/reminders")
	{
		api.POST("/", reminderHandler.Create)
		api.GET("/", reminderHandler.List)
		api.GET("/:id/status", reminderHandler.GetStatus)
		api.GET("/:id/deliveries", reminderHandler.ListDeliveries)
		api.POST("/:id/snooze", reminderHandler.Snooze)
		api.PATCH("/:id", reminderHandler.Patch)
		api.DELETE("/:id", reminderHandler.Cancel)
	}

	devices := e.Group("/api/devices")
	{
		devices.POST("/", deviceHandler.Register)
		devices.GET("/", deviceHandler.List)
	}

	e.GET("/metrics", func(c *ginext.Context) {
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	return e
}
