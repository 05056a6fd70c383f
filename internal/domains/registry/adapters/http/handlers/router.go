package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/order-registry/internal/domains/registry/adapters/http/middleware"
)

// NewRouter mounts the registry routes under /api/v1 with tracing, request ids and access logs.
func NewRouter(serviceName string, api *RegistryAPI, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/persons", api.ListPersons)
		v1.POST("/persons", api.AddPerson)
		v1.PUT("/persons/:name", api.EditPerson)
		v1.DELETE("/persons/:name", api.DeletePerson)

		v1.GET("/products", api.ListProducts)
		v1.POST("/products", api.AddProduct)
		v1.PUT("/products/:name", api.EditProduct)
		v1.DELETE("/products/:name", api.DeleteProduct)

		v1.GET("/orders", api.ListOrders)
		v1.POST("/orders", api.CreateOrder)
		v1.GET("/orders/:orderId", api.GetOrder)
		v1.DELETE("/orders/:orderId", api.DeleteOrder)
		v1.PUT("/orders/:orderId/items", api.EditOrderItem)
		v1.PUT("/orders/:orderId/deadline", api.SetOrderDeadline)
		v1.POST("/orders/:orderId/advance", api.AdvanceOrderStage)

		v1.DELETE("/completed-orders", api.ClearCompletedOrders)
		v1.POST("/completed-orders/archive", api.ArchiveCompletedOrders)

		v1.POST("/snapshot", api.SaveSnapshot)
	}
	return router
}
