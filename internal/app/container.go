package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetloop/car-sharing-backend/internal/api"
	"github.com/fleetloop/car-sharing-backend/internal/auth"
	"github.com/fleetloop/car-sharing-backend/internal/booking"
	"github.com/fleetloop/car-sharing-backend/internal/car"
	"github.com/fleetloop/car-sharing-backend/internal/cartype"
	"github.com/fleetloop/car-sharing-backend/internal/db"
	"github.com/fleetloop/car-sharing-backend/internal/pkg/clock"
	"github.com/fleetloop/car-sharing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	conn := db.NewConnection(cfg.DBPool)
	clk := clock.System()

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Car type module
	carTypeRepo := cartype.NewPgxRepository(cfg.DBPool)
	carTypeService := cartype.NewService(carTypeRepo)

	// Car + booking modules. The booking store doubles as the rental lookup
	// used by car update authorization.
	carRepo := car.NewPgxRepository()
	bookingRepo := booking.NewPgxRepository()
	carService := car.NewService(carRepo, conn, carTypeService, bookingRepo, clk)
	bookingService := booking.NewService(bookingRepo, carRepo, conn, clk)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		CarTypeService: carTypeService,
		CarService:     carService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
