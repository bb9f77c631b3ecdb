// Package router wires HTTP routes to handlers and applies the
// middleware each group needs.  Read-only catalog endpoints are
// public (and cached when Redis is configured); every mutating
// endpoint requires a staff access token, and deletes are
// restricted to ADMIN.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Sreejithpr/Costume-rentals/internal/config"
	"github.com/Sreejithpr/Costume-rentals/internal/handler"
	"github.com/Sreejithpr/Costume-rentals/internal/middleware"
	"github.com/Sreejithpr/Costume-rentals/internal/model"
)

// Deps collects everything route registration needs.
type Deps struct {
	Cfg       *config.Config
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	DB        *sql.DB

	Auth      *handler.AuthHandler
	Customers *handler.CustomerHandler
	Costumes  *handler.CostumeHandler
	Rentals   *handler.RentalHandler
	Bills     *handler.BillHandler
}

// Register attaches all routes to the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/healthz/db", handler.DBHealth(d.DB))

	staff := middleware.JWTAuth(d.Cfg.JWTSecret)
	anyStaff := middleware.RequireRole(model.StaffRoleAdmin, model.StaffRoleClerk)
	adminOnly := middleware.RequireRole(model.StaffRoleAdmin)
	cached := middleware.ResponseCache(d.Cache, d.Redis)

	registerAuth(e, d, staff, anyStaff)
	registerCustomers(e, d, staff, anyStaff, adminOnly)
	registerCostumes(e, d, staff, anyStaff, adminOnly, cached)
	registerRentals(e, d, staff, anyStaff)
	registerBills(e, d, staff, anyStaff)
}

func registerAuth(e *echo.Echo, d Deps, staff, anyStaff echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", middleware.RateLimit(d.RateLimit, d.Redis))
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/refresh", d.Auth.Refresh)
	g.POST("/logout", d.Auth.Logout)
	g.GET("/me", d.Auth.Me, staff, anyStaff)
}

func registerCustomers(e *echo.Echo, d Deps, staff, anyStaff, adminOnly echo.MiddlewareFunc) {
	g := e.Group("/v1/customers")
	g.GET("", d.Customers.List)
	g.GET("/search", d.Customers.Search)
	g.GET("/:id", d.Customers.Get)
	g.POST("", d.Customers.Create, staff, anyStaff)
	g.PUT("/:id", d.Customers.Update, staff, anyStaff)
	g.DELETE("/:id", d.Customers.Delete, staff, adminOnly)
}

func registerCostumes(e *echo.Echo, d Deps, staff, anyStaff, adminOnly, cached echo.MiddlewareFunc) {
	g := e.Group("/v1/costumes")
	// Static segments must be registered before the :id parameter so
	// echo does not shadow them.
	g.GET("", d.Costumes.List, cached)
	g.GET("/available", d.Costumes.ListAvailable, cached)
	g.GET("/with-stock", d.Costumes.ListWithStock, cached)
	g.GET("/search", d.Costumes.Search)
	g.GET("/categories", d.Costumes.Categories, cached)
	g.GET("/sizes", d.Costumes.Sizes, cached)
	g.GET("/category/:category", d.Costumes.ByCategory, cached)
	g.GET("/size/:size", d.Costumes.BySize, cached)
	g.GET("/:id", d.Costumes.Get)
	g.POST("", d.Costumes.Create, staff, anyStaff)
	g.PUT("/:id", d.Costumes.Update, staff, anyStaff)
	g.DELETE("/:id", d.Costumes.Delete, staff, adminOnly)
}

func registerRentals(e *echo.Echo, d Deps, staff, anyStaff echo.MiddlewareFunc) {
	g := e.Group("/v1/rentals")
	g.GET("", d.Rentals.List)
	g.GET("/active", d.Rentals.Active)
	g.GET("/overdue", d.Rentals.Overdue)
	g.GET("/between", d.Rentals.Between)
	g.GET("/customer/:customerId", d.Rentals.ByCustomer)
	g.GET("/costume/:costumeId", d.Rentals.ByCostume)
	g.GET("/:id", d.Rentals.Get)
	g.POST("", d.Rentals.Create, staff, anyStaff)
	g.PUT("/:id/return", d.Rentals.Return, staff, anyStaff)
	g.PUT("/:id/cancel", d.Rentals.Cancel, staff, anyStaff)
	g.PUT("/:id/notes", d.Rentals.UpdateNotes, staff, anyStaff)
}

func registerBills(e *echo.Echo, d Deps, staff, anyStaff echo.MiddlewareFunc) {
	g := e.Group("/v1/bills")
	g.GET("", d.Bills.List)
	g.GET("/pending", d.Bills.Pending)
	g.GET("/overdue", d.Bills.Overdue)
	g.GET("/between", d.Bills.Between)
	g.GET("/paid", d.Bills.PaidBetween)
	g.GET("/revenue", d.Bills.Revenue)
	g.GET("/customer/:customerId", d.Bills.ByCustomer)
	g.GET("/:id", d.Bills.Get)
	g.POST("/generate/:rentalId", d.Bills.Generate, staff, anyStaff)
	g.PUT("/:id/fees", d.Bills.UpdateFees, staff, anyStaff)
	g.PUT("/:id/pay", d.Bills.Pay, staff, anyStaff)
}
