package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-delivery-app/controllers"
	"github.com/yeremiapane/food-delivery-app/middlewares"
	"github.com/yeremiapane/food-delivery-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	foodCtrl := controllers.NewFoodController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, services.GetRazorpayService())
	partnerCtrl := controllers.NewDeliveryPartnerController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login/register behind the strict limiter
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/delivery/login", partnerCtrl.Login)
	}

	// Catalog (no auth, active rows only)
	r.GET("/foods", foodCtrl.GetAllFoods)
	r.GET("/foods/categories", foodCtrl.GetAllCategories)
	r.GET("/foods/addons", foodCtrl.GetAllAddons)

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRole("customer", "admin"))
	{
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders/user/:user_id", orderCtrl.GetUserOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      PAYMENT ROUTES
	// ----------------------------------------------------------------
	payments := r.Group("/payments")
	payments.Use(middlewares.AuthMiddleware())
	payments.Use(middlewares.PaymentRateLimiter())
	payments.Use(middlewares.LogPaymentRequest())
	{
		payments.POST("/order", paymentCtrl.CreatePaymentOrder)
		payments.POST("/verify", paymentCtrl.VerifyPayment)
	}

	// ----------------------------------------------------------------
	//                      DELIVERY PARTNER ROUTES
	// ----------------------------------------------------------------
	delivery := r.Group("/delivery")
	delivery.Use(middlewares.DeliveryPartnerAuth(db))
	{
		delivery.GET("/orders", partnerCtrl.GetAssignedOrders)
		delivery.PUT("/orders/:order_id/status", partnerCtrl.UpdateOrderStatus)
	}

	// Order tracking feed
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/orders", controllers.TrackingHandler)
	}

	return r
}
