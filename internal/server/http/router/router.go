package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/marketbase/marketplace/internal/config"
	pkgAuth "github.com/marketbase/marketplace/internal/pkg/auth"
	"github.com/marketbase/marketplace/internal/server/http/handlers"
	"github.com/marketbase/marketplace/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, hasher pkgAuth.KeyHasher, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	withdrawHandler := handlers.NewWithdrawHandler(facade)
	conversationHandler := handlers.NewConversationHandler(facade)
	messageHandler := handlers.NewMessageHandler(facade)
	couponHandler := handlers.NewCouponHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	sellerAuth := middleware.SellerRequired(facade, facade)
	userAuth := middleware.UserRequired(facade)
	adminAuth := middleware.AdminRequired(hasher, cfg.AdminKeyHash)

	api := engine.Group("/api/v2")

	withdraw := api.Group("/withdraw")
	withdraw.POST("/create-withdraw-request", sellerAuth, withdrawHandler.Create)
	withdraw.GET("/get-all-withdraw-request", adminAuth, withdrawHandler.List)
	withdraw.GET("/get-seller-transactions", sellerAuth, withdrawHandler.Transactions)
	withdraw.PUT("/update-withdraw-request/:id", adminAuth, withdrawHandler.Settle)

	conversation := api.Group("/conversation")
	conversation.POST("/create-new-conversation", conversationHandler.Create)
	conversation.GET("/get-all-conversation-seller/:id", sellerAuth, conversationHandler.ListForSeller)
	conversation.GET("/get-all-conversation-user/:id", userAuth, conversationHandler.ListForUser)
	conversation.PUT("/update-last-message/:id", conversationHandler.UpdateLastMessage)

	message := api.Group("/message")
	message.POST("/create-new-message", messageHandler.Create)
	message.GET("/get-all-messages/:id", messageHandler.List)

	coupon := api.Group("/coupon")
	coupon.POST("/create-coupon-code", sellerAuth, couponHandler.Create)
	coupon.GET("/get-coupon/:id", sellerAuth, couponHandler.List)
	coupon.DELETE("/delete-coupon/:id", sellerAuth, couponHandler.Delete)
	coupon.GET("/get-coupon-value/:name", couponHandler.ValueByName)

	payment := api.Group("/payment")
	payment.POST("/process", paymentHandler.Process)
	payment.GET("/stripeapikey", paymentHandler.APIKey)

	return engine
}
