package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rafael22222222/smartbiz.lux/internal/handler"
	"github.com/Rafael22222222/smartbiz.lux/internal/middleware"
	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/repository"
	"github.com/Rafael22222222/smartbiz.lux/internal/service"
	"github.com/Rafael22222222/smartbiz.lux/internal/ws"
	"github.com/Rafael22222222/smartbiz.lux/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Sale{}, &model.Expense{})

	// 3. Seed default owner for local development
	seedDefaultOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(productRepo)
	txService := service.NewTransactionService(productRepo, saleRepo, expenseRepo, wsHub)
	invService := service.NewInventoryService(productRepo, wsHub)
	dashService := service.NewDashboardService(saleRepo, expenseRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(invService, ledgerService)
	saleHandler := handler.NewSaleHandler(txService)
	expenseHandler := handler.NewExpenseHandler(txService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "SmartBiz API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/low-stock", productHandler.GetLowStock)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Sales
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.RecordSale)
	protected.Post("/sales/:id/reconcile", saleHandler.ReconcileSale)

	// Expenses
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Post("/expenses", expenseHandler.RecordExpense)

	// Settings
	protected.Put("/settings/currency", authHandler.UpdateCurrency)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaultOwner creates a development owner account if none exists
func seedDefaultOwner(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("owner@example.com"); err == nil {
		return
	}

	owner := &model.User{
		Email:    "owner@example.com",
		FullName: "Demo Owner",
		Currency: "NGN",
		IsActive: true,
	}
	if err := owner.SetPassword("owner123"); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create default owner: %v", err)
	} else {
		log.Println("Default owner created: owner@example.com / owner123")
	}
}
