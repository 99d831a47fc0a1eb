package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hirewheels/rental-backend/internal/address"
	addressHttp "github.com/hirewheels/rental-backend/internal/address/http"
	"github.com/hirewheels/rental-backend/internal/auth"
	"github.com/hirewheels/rental-backend/internal/booking"
	bookingHttp "github.com/hirewheels/rental-backend/internal/booking/http"
	"github.com/hirewheels/rental-backend/internal/extension"
	extensionHttp "github.com/hirewheels/rental-backend/internal/extension/http"
	"github.com/hirewheels/rental-backend/internal/favorite"
	favoriteHttp "github.com/hirewheels/rental-backend/internal/favorite/http"
	"github.com/hirewheels/rental-backend/internal/inspection"
	inspectionHttp "github.com/hirewheels/rental-backend/internal/inspection/http"
	"github.com/hirewheels/rental-backend/internal/issue"
	issueHttp "github.com/hirewheels/rental-backend/internal/issue/http"
	"github.com/hirewheels/rental-backend/internal/payment"
	paymentHttp "github.com/hirewheels/rental-backend/internal/payment/http"
	"github.com/hirewheels/rental-backend/internal/photo"
	photoHttp "github.com/hirewheels/rental-backend/internal/photo/http"
	"github.com/hirewheels/rental-backend/internal/review"
	reviewHttp "github.com/hirewheels/rental-backend/internal/review/http"
	"github.com/hirewheels/rental-backend/internal/user"
	userHttp "github.com/hirewheels/rental-backend/internal/user/http"
	"github.com/hirewheels/rental-backend/internal/vehicle"
	vehicleHttp "github.com/hirewheels/rental-backend/internal/vehicle/http"
)

// Config bundles the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService       user.Service
	VehicleService    vehicle.Service
	BookingService    booking.Service
	ExtensionService  extension.Service
	PaymentService    payment.Service
	ReviewService     review.Service
	FavoriteService   favorite.Service
	AddressService    address.Service
	IssueService      issue.Service
	InspectionService inspection.Service
	PhotoService      photo.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	extensionHandler := extensionHttp.NewHandler(cfg.ExtensionService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	favoriteHandler := favoriteHttp.NewHandler(cfg.FavoriteService)
	addressHandler := addressHttp.NewHandler(cfg.AddressService)
	issueHandler := issueHttp.NewHandler(cfg.IssueService)
	inspectionHandler := inspectionHttp.NewHandler(cfg.InspectionService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		extensionHttp.RegisterRoutes(v1, extensionHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		favoriteHttp.RegisterRoutes(v1, favoriteHandler, authMiddleware)
		addressHttp.RegisterRoutes(v1, addressHandler, authMiddleware)
		issueHttp.RegisterRoutes(v1, issueHandler, authMiddleware)
		inspectionHttp.RegisterRoutes(v1, inspectionHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
