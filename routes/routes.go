package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"boardroom-backend/controllers"
	"boardroom-backend/middleware"
	"boardroom-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances to routes. Availability queries,
// login and the payment callback are public; everything else carries a staff
// JWT.
func SetupRouter(
	bc *controllers.BookingController,
	ac *controllers.AvailabilityController,
	uc *controllers.UserController,
	sc *controllers.SettingsController,
	pc *controllers.PaymentController,
	jwtSecret string,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}

		availability := api.Group("/availability")
		{
			availability.GET("/starts", ac.GetAvailableStarts)
			availability.GET("/durations", ac.GetAllowedDurations)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/initiate", pc.InitiatePayment)
			payments.POST("/notify", pc.PaymentNotify)
		}

		// Staff area: role comes from the JWT; the lifecycle services
		// enforce per-transition roles against the transition table.
		staff := api.Group("")
		staff.Use(middleware.Auth(jwtSecret))
		{
			bookings := staff.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.POST("", bc.CreateBooking)
				bookings.GET("/:id", bc.GetBookingDetails)
				bookings.PUT("/:id", bc.EditBooking)
				bookings.DELETE("/:id", bc.DeleteBooking)
				bookings.POST("/:id/approve", bc.ApproveBooking)
				bookings.POST("/:id/reject", bc.RejectBooking)
				bookings.POST("/:id/status", bc.ChangeBookingStatus)
				bookings.POST("/:id/finance", bc.SetFinanceStatus)
			}

			locations := staff.Group("/locations")
			locations.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
			{
				locations.GET("", controllers.GetLocations)
				locations.POST("", controllers.CreateLocation)
				locations.PUT("/:id", controllers.UpdateLocation)
				locations.DELETE("/:id", controllers.DeleteLocation)
			}

			boardrooms := staff.Group("/boardrooms")
			boardrooms.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
			{
				boardrooms.GET("", controllers.GetBoardrooms)
				boardrooms.POST("", controllers.CreateBoardroom)
				boardrooms.PATCH("/:id", controllers.UpdateBoardroom)
				boardrooms.PUT("/:id", controllers.UpdateBoardroom)
				boardrooms.DELETE("/:id", controllers.DeleteBoardroom)
			}

			users := staff.Group("/users")
			users.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				users.GET("", uc.GetUsers)
				users.GET("/:id", uc.GetUserByID)
				users.POST("", uc.CreateUser)
				users.PUT("/:id", uc.UpdateUser)
				users.DELETE("/:id", uc.DeleteUser)
				users.POST("/:id/grant", uc.GrantTokens)
			}

			tokens := staff.Group("/tokens")
			{
				tokens.GET("/pool", uc.GetTokenPool)
				tokens.POST("/renew", middleware.RequireRoles(models.RoleAdmin), uc.RenewTokens)
			}

			settings := staff.Group("/settings")
			settings.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
			{
				settings.GET("/office", sc.GetOfficeSettings)
				settings.PUT("/office", sc.UpdateOfficeSettings)
			}
		}
	}

	return r
}
