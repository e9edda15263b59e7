package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailyfarm/market-api/internal/application/auth"
	"github.com/dailyfarm/market-api/internal/application/catalog"
	"github.com/dailyfarm/market-api/internal/application/orders"
	"github.com/dailyfarm/market-api/internal/application/profile"
	"github.com/dailyfarm/market-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *catalog.CatalogUseCase
	OrderUC    *orders.OrderUseCase
	FarmerUC   *profile.FarmerUseCase
	CustomerUC *profile.CustomerUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Los grupos protegidos exigen Bearer Token;
// las rutas de mutación además exigen rol exacto (401 sin token, 403 rol equivocado).
func Router(app *fiber.App, deps RouterDeps) {
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.TypeAdmin)
	farmerOnly := RequireRole(entity.TypeFarmer)
	customerOnly := RequireRole(entity.TypeCustomer)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Cuentas (protegido; borrado y lockout solo admin)
	accountHandler := NewAccountHandler(deps.AuthUC)
	api.Get("/user/me", authn, accountHandler.Me)
	api.Put("/user/me", authn, accountHandler.Edit)
	api.Delete("/user/:login", authn, adminOnly, accountHandler.Remove)
	api.Put("/password", authn, accountHandler.ChangePassword)
	api.Get("/userType/:login", authn, accountHandler.UserType)
	api.Put("/revoke/:login", authn, adminOnly, accountHandler.Revoke)
	api.Put("/activate/:login", authn, adminOnly, accountHandler.Activate)

	// Catálogo y órdenes (protegido). Las rutas literales van antes de /:id.
	products := app.Group("/products", authn)
	productHandler := NewProductHandler(deps.CatalogUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	products.Post("/add", farmerOnly, productHandler.Add)
	products.Put("/update", farmerOnly, productHandler.Update)
	products.Delete("/remove", farmerOnly, productHandler.Remove)
	products.Get("/all", productHandler.All)
	products.Get("/priceRange", productHandler.ByPriceRange)
	products.Get("/byFarmer/:farmerId", productHandler.ByFarmer)
	products.Post("/buy", customerOnly, orderHandler.Buy)
	products.Get("/sold/:farmerId", farmerOnly, orderHandler.Sold)
	products.Get("/purchased/:customerId", customerOnly, orderHandler.Purchased)
	products.Get("/history/:farmerId", farmerOnly, orderHandler.RemovalHistory)
	products.Post("/surprise-bag/create", farmerOnly, productHandler.CreateSurpriseBag)
	products.Post("/surprise-bag/buy", customerOnly, orderHandler.BuySurpriseBag)
	products.Get("/surprise-bag/available", productHandler.AvailableSurpriseBags)
	products.Get("/:id", productHandler.GetByID)

	// Perfil de farmer (protegido; borrado solo admin)
	farmer := api.Group("/farmer", authn)
	farmerHandler := NewFarmerHandler(deps.FarmerUC)
	farmer.Get("/all", farmerHandler.All)
	farmer.Get("/byProduct/:productId", farmerHandler.ByProduct)
	farmer.Get("/:id/balance", farmerOnly, farmerHandler.Balance)
	farmer.Get("/:id", farmerHandler.GetByID)
	farmer.Put("/:id", farmerOnly, farmerHandler.Update)
	farmer.Delete("/:id", adminOnly, farmerHandler.Delete)

	// Perfil de customer (protegido; listado solo admin)
	customer := api.Group("/customer", authn)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customer.Get("/all", adminOnly, customerHandler.All)
	customer.Get("/:id", customerHandler.GetByID)
	customer.Put("/:id", customerOnly, customerHandler.Update)
	customer.Post("/:id/top-up", customerOnly, customerHandler.TopUp)
}
