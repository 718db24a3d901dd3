package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/config"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/controllers"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/middlewares"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Limiter global (50 req/detik per IP) dipasang sebelum route
	// didaftarkan supaya masuk ke handler chain semua endpoint
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Services (session-scoped state hidup di sini, bukan global)
	cartSvc := services.NewCartService(db)
	checkoutSvc := services.NewCheckoutService(db, cartSvc, config.CheckoutMode())
	sheetClient := services.NewSheetClient(config.SheetWebAppURL())

	// Controllers
	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db, cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(db)
	settingsCtrl := controllers.NewSettingsController(db)
	expenseCtrl := controllers.NewExpenseController(sheetClient)
	exportCtrl := controllers.NewExportController(sheetClient)
	chartCtrl := controllers.NewChartController(sheetClient)
	presetCtrl := controllers.NewPresetController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Websocket push untuk katalog + order (token lewat query)
	r.GET("/ws", controllers.WSHandler)

	// Katalog bisa dibaca tanpa auth
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/categories", menuCtrl.GetCategories)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		// Manajemen katalog
		auth.POST("/menus", menuCtrl.CreateMenu)
		auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
		auth.PUT("/menus/sync", menuCtrl.SyncMenu)

		// Cart session kasir
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:item_id", cartCtrl.SetQuantity)
		auth.DELETE("/cart/items/:item_id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		// Checkout
		auth.POST("/checkout", checkoutCtrl.Charge)

		// Ledger order
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id/pay", orderCtrl.MarkPaid)
		auth.PATCH("/orders/:order_id/void", orderCtrl.VoidOrder)

		// Settings pajak/service
		auth.GET("/settings", settingsCtrl.GetSettings)
		auth.PUT("/settings", settingsCtrl.UpdateSettings)

		// Dashboard pengeluaran
		auth.GET("/expenses", expenseCtrl.ListExpenses)
		auth.POST("/expenses", expenseCtrl.AddExpense)
		auth.GET("/expenses/summary", expenseCtrl.GetSummary)
		auth.GET("/expenses/chart", chartCtrl.RenderChart)
		auth.GET("/expenses/export/csv", exportCtrl.ExportCSV)
		auth.GET("/expenses/export/pdf", exportCtrl.ExportPDF)
		auth.GET("/expenses/export/excel", exportCtrl.ExportExcel)

		// Preset filter dashboard
		auth.GET("/presets", presetCtrl.ListPresets)
		auth.PUT("/presets/:name", presetCtrl.SavePreset)
		auth.DELETE("/presets/:name", presetCtrl.DeletePreset)
	}

	return r
}
