package routes

import (
	"log"

	"gummy-store/config"
	"gummy-store/controllers"
	"gummy-store/libs"
	"gummy-store/middleware"
	"gummy-store/models"
	"gummy-store/repositories"
	"gummy-store/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, db *pgxpool.Pool) {
	cfg := config.AppConfig

	cartRepo := repositories.NewCartRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	checkoutRepo := repositories.NewCheckoutRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	pix := libs.NewPixClient(cfg.PixAPIURL, cfg.PixAPIKey)
	card := libs.NewStripeGateway(cfg.StripeSecretKey)
	completer := libs.NewOpenAIChat(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	mailer, err := models.NewEmailService()
	if err != nil {
		log.Printf("Email disabled: %v", err)
	}
	notifier := services.NewMailNotifier(mailer, addressRepo)

	sessionSvc := services.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)
	cartSvc := services.NewCartService(cartRepo)
	orderSvc := services.NewOrderService(checkoutRepo, addressRepo, orderRepo, pix, card, services.NewLocker(models.RedisClient))
	paymentSvc := services.NewPaymentService(orderRepo, checkoutRepo, pix, card, notifier, cfg.CardConfirmDelay)
	watcher := services.NewPixWatcher(paymentSvc, cfg.PixPollInterval)
	chatSvc := services.NewChatService(conversationRepo, messageRepo, completer)
	reviewSvc := services.NewReviewService(reviewRepo, models.RedisClient)
	adminSvc := services.NewAdminService(orderRepo, cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTTL)

	sessionCtrl := controllers.NewSessionController(sessionSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc, watcher)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	chatCtrl := controllers.NewChatController(chatSvc)
	functionsCtrl := controllers.NewFunctionsController(chatSvc, card)
	adminCtrl := controllers.NewAdminController(adminSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/product", func(c *gin.Context) {
		c.JSON(200, models.Response{Success: true, Message: "Product retrieved successfully", Data: models.GummyHair})
	})

	router.POST("/session", sessionCtrl.CreateSession)
	router.POST("/checkout/validate", orderCtrl.ValidateCheckout)

	functions := router.Group("/functions")
	{
		functions.POST("/chat-ai", functionsCtrl.ChatAI)
		functions.POST("/create-payment-intent", functionsCtrl.CreatePaymentIntent)
	}

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware(cfg.JWTSecret))
	{
		session.GET("/cart", cartCtrl.GetCart)
		session.GET("/cart/count", cartCtrl.GetCount)
		session.POST("/cart", cartCtrl.AddItem)
		session.PATCH("/cart/:id", cartCtrl.UpdateQuantity)
		session.DELETE("/cart/:id", cartCtrl.RemoveItem)
		session.DELETE("/cart", cartCtrl.ClearCart)

		session.POST("/orders", orderCtrl.PlaceOrder)
		session.GET("/orders/:id", orderCtrl.GetOrder)
		session.POST("/orders/:id/card/confirm", paymentCtrl.ConfirmCard)

		session.GET("/payments/:payment_id/ws", paymentCtrl.WatchPix)
		session.POST("/payments/:payment_id/check", paymentCtrl.CheckPix)

		session.GET("/reviews/likes", reviewCtrl.GetLikes)
		session.POST("/reviews/:review_id/like", reviewCtrl.ToggleLike)

		session.POST("/chat/open", chatCtrl.OpenChat)
		session.POST("/chat/messages", chatCtrl.SendMessage)
	}

	router.POST("/admin/login", adminCtrl.Login)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminMiddleware(cfg.JWTSecret))
	{
		admin.GET("/orders", adminCtrl.ListOrders)
		admin.GET("/orders/export", adminCtrl.ExportOrders)
		admin.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	}
}
