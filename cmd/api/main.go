package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-goldloan/internal/handler"
	"go-goldloan/internal/middleware"
	"go-goldloan/internal/model"
	"go-goldloan/internal/repository"
	"go-goldloan/internal/service"
	"go-goldloan/internal/ws"
	"go-goldloan/pkg/database"

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
	// Auto Migrate (use a dedicated migration tool for production schema changes)
	db.AutoMigrate(
		&model.Customer{},
		&model.CustomerEditHistory{},
		&model.Item{},
		&model.Loan{},
		&model.BillingRecord{},
		&model.Repayment{},
		&model.LedgerEntry{},
		&model.Expense{},
		&model.BalanceSheet{},
		&model.ShopDetails{},
		&model.User{},
	)

	// 3. Seed default admin user and shop profile
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	customerRepo := repository.NewCustomerRepo(db)
	itemRepo := repository.NewItemRepo(db)
	loanRepo := repository.NewLoanRepo(db)
	billingRepo := repository.NewBillingRepo(db)
	repaymentRepo := repository.NewRepaymentRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	financeRepo := repository.NewFinanceRepo(db)
	shopRepo := repository.NewShopRepo(db)
	userRepo := repository.NewUserRepo(db)

	billingService := service.NewBillingService(customerRepo, itemRepo, loanRepo, billingRepo, ledgerRepo, db, wsHub)
	repaymentService := service.NewRepaymentService(loanRepo, itemRepo, repaymentRepo, ledgerRepo, customerRepo, db, wsHub)
	loanService := service.NewLoanService(loanRepo, customerRepo, repaymentRepo, itemRepo, ledgerRepo, billingRepo, db)
	customerService := service.NewCustomerService(customerRepo, loanRepo, repaymentRepo)
	itemService := service.NewItemService(itemRepo)
	financeService := service.NewFinanceService(financeRepo, ledgerRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	billingHandler := handler.NewBillingHandler(billingService)
	repaymentHandler := handler.NewRepaymentHandler(repaymentService)
	loanHandler := handler.NewLoanHandler(loanService)
	customerHandler := handler.NewCustomerHandler(customerService)
	itemHandler := handler.NewItemHandler(itemService)
	financeHandler := handler.NewFinanceHandler(financeService)
	shopHandler := handler.NewShopHandler(shopRepo)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Gold Loan Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Billing and repayment
	protected.Post("/billing", billingHandler.CreateBilling)
	protected.Post("/repayment", repaymentHandler.RepayLoan)
	protected.Get("/repayment/search/:identifier", repaymentHandler.SearchLoan)

	// Loans
	protected.Get("/loans", loanHandler.GetLoans)
	protected.Get("/loans/phone/:phone", loanHandler.SearchByPhone)
	protected.Get("/loans/:identifier", loanHandler.GetLoan)
	protected.Delete("/loans/:identifier", middleware.RequireAdmin(), loanHandler.PurgeLoan)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Get("/customers/:id/history", middleware.RequireAdmin(), customerHandler.GetCustomerHistory)
	protected.Put("/customers/:id", middleware.RequireAdmin(), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequireAdmin(), customerHandler.DeleteCustomer)

	// Master item catalog
	protected.Get("/items", itemHandler.GetItems)
	protected.Post("/items", itemHandler.CreateItem)
	protected.Put("/items/:id", itemHandler.UpdateItem)
	protected.Delete("/items/:id", itemHandler.DeleteItem)

	// Ledger
	protected.Get("/transactions", financeHandler.GetTransactions)
	protected.Get("/transactions/summary", financeHandler.GetTransactionSummary)

	// Financial records
	protected.Get("/expenses", financeHandler.GetExpenses)
	protected.Post("/expenses", financeHandler.SaveExpense)
	protected.Put("/expenses", financeHandler.SaveExpense)
	protected.Get("/balance-sheets", financeHandler.GetBalanceSheets)
	protected.Post("/balance-sheets", financeHandler.SaveBalanceSheet)
	protected.Put("/balance-sheets", financeHandler.SaveBalanceSheet)

	// Shop profile
	protected.Get("/shop-details", shopHandler.GetShopDetails)
	protected.Put("/shop-details", middleware.RequireAdmin(), shopHandler.UpdateShopDetails)

	// User management (admin only)
	users := protected.Group("/users", middleware.RequireAdmin())
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", userHandler.CreateUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

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

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults creates the default admin user and shop profile if missing.
func seedDefaults(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)
	shopRepo := repository.NewShopRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@example.com / admin123")
		}
	}

	if _, err := shopRepo.GetActive(); err != nil {
		shop := &model.ShopDetails{
			ShopName:      "Gold Loan Office",
			Address:       "Update your address",
			Phone:         "0000000000",
			Email:         "office@example.com",
			GSTNumber:     "NA",
			LicenseNumber: "NA",
			Location:      "NA",
			IsActive:      true,
		}
		shop.CreatedBy = "system"
		shop.UpdatedBy = "system"
		if err := shopRepo.Save(shop); err != nil {
			log.Printf("Warning: Failed to seed shop details: %v", err)
		}
	}
}
