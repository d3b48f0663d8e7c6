package http

import "github.com/gin-gonic/gin"

// Register mounts every HTTP endpoint on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/stats", h.Stats)

	services := r.Group("/services")
	services.GET("", h.ListServices)
	services.GET("/discover", h.DiscoverServices)
	services.POST("/execute", h.ExecuteService)

	plot := r.Group("/plot")
	plot.POST("/evaluate", h.Evaluate)
	plot.POST("/classify", h.Classify)
	plot.POST("/analyze", h.Analyze)
	plot.POST("/view", h.View)
	plot.POST("/summary", h.Summary)
	plot.GET("/presets", h.Presets)
}
