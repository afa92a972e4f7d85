package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geniusforceai/familydash/internal/api/handler"
	"github.com/geniusforceai/familydash/internal/api/middleware"
	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
	"github.com/geniusforceai/familydash/internal/infrastructure/airtable"
)

// Dependencies carries everything the router needs, constructed once at
// startup and injected; no handler reaches for globals.
type Dependencies struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Tables    *airtable.Registry
	Auth      ports.AuthService
	Finance   ports.FinanceService
	Throttle  handler.LoginThrottle
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("familydash"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Throttle)
	financeHandler := handler.NewFinanceHandler(deps.Finance)
	billsHandler := handler.NewBillsHandler(deps.Finance)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	// --- Public routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.POST("/token", authHandler.Token)

	// --- Protected routes ---
	api := e.Group("/api", middleware.Auth(deps.JWTSecret))

	api.POST("/users/register", authHandler.Register, middleware.RBAC(domain.RoleAdmin))
	api.GET("/users/me", authHandler.Me)

	api.GET("/finances", financeHandler.Get)
	api.POST("/finances", financeHandler.Update)

	bills := api.Group("/bills")
	bills.GET("", billsHandler.List)
	bills.POST("", billsHandler.Create)
	bills.GET("/statistics", billsHandler.Statistics)
	bills.PUT("/:id", billsHandler.Update)
	bills.DELETE("/:id", billsHandler.Delete)
	bills.GET("/accounts", billsHandler.ListAccounts)
	bills.POST("/accounts", billsHandler.CreateAccount)
	bills.PUT("/accounts/:id", billsHandler.UpdateAccount)

	// --- Investor network ---
	inv := api.Group("/investors")

	contacts := handler.NewResourceHandler[domain.Contact]("Contact", deps.Tables.Contacts)
	blogPosts := handler.NewResourceHandler[domain.BlogPost]("Blog post", deps.Tables.BlogPosts)
	sales := handler.NewResourceHandler[domain.Sale]("Sale", deps.Tables.Sales)

	registerResource(inv, "/companies", handler.NewResourceHandler[domain.Company]("Company", deps.Tables.Companies))
	registerResource(inv, "/contacts", contacts)
	registerResource(inv, "/programs", handler.NewResourceHandler[domain.Program]("Program", deps.Tables.Programs))
	registerResource(inv, "/events", handler.NewResourceHandler[domain.Event]("Event", deps.Tables.Events))
	registerResource(inv, "/blog-posts", blogPosts)
	registerResource(inv, "/sales", sales)
	registerResource(inv, "/funded-companies", handler.NewResourceHandler[domain.FundedCompany]("Funded company", deps.Tables.FundedCompanies))

	// Company-scoped lookups resolve free-text references by search, not
	// referential integrity.
	inv.GET("/contacts/company/:id", contacts.SearchBy("company"))
	inv.GET("/blog-posts/company/:id", blogPosts.SearchBy("related_company"))
	inv.GET("/sales/company/:id", sales.SearchBy("company"))

	return e
}

func registerResource[T any](g *echo.Group, prefix string, h *handler.ResourceHandler[T]) {
	g.POST(prefix, h.Create)
	g.GET(prefix, h.List)
	g.GET(prefix+"/:id", h.Get)
	g.PUT(prefix+"/:id", h.Update)
	g.DELETE(prefix+"/:id", h.Delete)
}
