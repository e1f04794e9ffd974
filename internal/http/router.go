package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/config"
	h "github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/handlers"
	"github.com/rajabhujbal77/Dirba-Amba-Service-sub001/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login(secret))
		auth.POST("/register", h.Register)

		api.GET("/depots", h.GetDepots)
		api.GET("/depots/:id/forwardable", h.GetForwardableBookings)

		api.GET("/bookings/:receipt", h.GetBooking)
		api.GET("/bookings/:receipt/payments", h.GetBookingPayments)

		api.GET("/trips", h.GetTrips)
		api.GET("/trips/:id/bookings", h.GetTripBookings)
		api.GET("/trips/:id/manifest", h.GetTripManifest)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(secret))
		{
			protected.POST("/bookings", h.CreateBooking)
			protected.PUT("/bookings/:receipt/status", h.UpdateBookingStatus)
			protected.PUT("/package-lines/:id", h.UpdatePackageLine)
			protected.DELETE("/package-lines/:id", h.DeletePackageLine)

			protected.POST("/trips", h.CreateTrip)
			protected.PUT("/trips/:id/status", h.UpdateTripStatus)

			protected.POST("/payments/advance", h.CreateAdvancePayment)
		}
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	return cors.New(cfg)
}
