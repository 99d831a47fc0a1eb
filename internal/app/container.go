package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewheels/rental-backend/internal/address"
	"github.com/hirewheels/rental-backend/internal/api"
	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/booking"
	"github.com/hirewheels/rental-backend/internal/extension"
	"github.com/hirewheels/rental-backend/internal/favorite"
	"github.com/hirewheels/rental-backend/internal/inspection"
	"github.com/hirewheels/rental-backend/internal/issue"
	"github.com/hirewheels/rental-backend/internal/payment"
	"github.com/hirewheels/rental-backend/internal/photo"
	"github.com/hirewheels/rental-backend/internal/pkg/storage"
	"github.com/hirewheels/rental-backend/internal/review"
	"github.com/hirewheels/rental-backend/internal/user"
	"github.com/hirewheels/rental-backend/internal/vehicle"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	StoragePath              string
	MaxExtensionDays         int
	AvailabilityCheckTimeout time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Vehicle Module
	vehicleRepo := vehicle.NewPgxRepository(cfg.DBPool)
	vehicleService := vehicle.NewService(vehicleRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, vehicleService)

	// Payment Module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, payment.NewSandboxGateway())

	// Extension Module
	extensionRepo := extension.NewPgxRepository(cfg.DBPool)
	extensionService := extension.NewService(
		extensionRepo,
		bookingService,
		vehicleService,
		paymentService,
		extension.NewPgxChecker(cfg.DBPool),
		extension.Config{
			MaxExtensionDays: cfg.MaxExtensionDays,
			CheckTimeout:     cfg.AvailabilityCheckTimeout,
		},
	)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingService)

	// Favorite Module
	favoriteRepo := favorite.NewPgxRepository(cfg.DBPool)
	favoriteService := favorite.NewService(favoriteRepo, vehicleService)

	// Address Module
	addressRepo := address.NewPgxRepository(cfg.DBPool)
	addressService := address.NewService(addressRepo)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, store)

	// Issue Module
	issueRepo := issue.NewPgxRepository(cfg.DBPool)
	issueService := issue.NewService(issueRepo, bookingService, vehicleService)

	// Inspection Module
	inspectionRepo := inspection.NewPgxRepository(cfg.DBPool)
	inspectionService := inspection.NewService(inspectionRepo, bookingService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UserService:       userService,
		VehicleService:    vehicleService,
		BookingService:    bookingService,
		ExtensionService:  extensionService,
		PaymentService:    paymentService,
		ReviewService:     reviewService,
		FavoriteService:   favoriteService,
		AddressService:    addressService,
		IssueService:      issueService,
		InspectionService: inspectionService,
		PhotoService:      photoService,
		JWTManager:        jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
