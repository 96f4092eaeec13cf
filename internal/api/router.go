package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fleetloop/car-sharing-backend/internal/auth"
	"github.com/fleetloop/car-sharing-backend/internal/booking"
	bookingHttp "github.com/fleetloop/car-sharing-backend/internal/booking/http"
	"github.com/fleetloop/car-sharing-backend/internal/car"
	carHttp "github.com/fleetloop/car-sharing-backend/internal/car/http"
	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	carTypeHttp "github.com/fleetloop/car-sharing-backend/internal/cartype/http"
	"github.com/fleetloop/car-sharing-backend/internal/user"
	userHttp "github.com/fleetloop/car-sharing-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	CarTypeService cartype.Service
	CarService     car.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter assembles the HTTP router: global middleware (logger, recovery,
// CORS) and the per-module route groups under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	carTypeHandler := carTypeHttp.NewHandler(cfg.CarTypeService)
	carHandler := carHttp.NewHandler(cfg.CarService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		carTypeHttp.RegisterRoutes(v1, carTypeHandler, authMiddleware)
		carHttp.RegisterRoutes(v1, carHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
