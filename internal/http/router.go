package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "metrobook/internal/config"
	h "metrobook/internal/http/handlers"
	"metrobook/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

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

	api := r.Group("/api")
	api.Use(middleware.AuthOptional([]byte(env.JWTSecret)))
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Accounts
		api.POST("/login", h.Login)
		api.POST("/register", h.Register)
		employee := api.Group("/employee")
		employee.POST("/login", h.EmployeeLogin)
		employee.POST("/register", h.EmployeeRegister)
		api.GET("/passengers/:id/name", h.PassengerNameByID)

		// Booking flow
		api.GET("/times", h.GetTimes)
		api.POST("/booked_seats", h.BookedSeats)
		api.POST("/booked_seats/status", h.BookedSeatsStatus)
		api.POST("/book", h.Book)
		api.POST("/pay", h.Pay)

		// Existing bookings
		bookings := api.Group("/bookings")
		bookings.POST("/:id/update", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/active/:passenger_id", h.ActiveBookingsForPassenger)
		api.GET("/active_bookings", h.ActiveBookings)
		api.GET("/completed_bookings", h.CompletedBookings)

		// Boarding
		api.POST("/verify_ticket", h.VerifyTicket)
		api.GET("/tickets/:id/eticket", h.GetETicketPDF)
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
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins := []string{}
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}
