package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/cmd/fx/credit_fx"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/cmd/fx/db_fx"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/cmd/fx/gift_fx"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/cmd/fx/payment_fx"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/cmd/fx/social_fx"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/api/controllers"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
	defer logger.Sync()

	app := fx.New(
		db_fx.Module,
		payment_fx.Module,
		gift_fx.Module,
		credit_fx.Module,
		social_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(RegisterFulfillmentHandlers),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// RegisterFulfillmentHandlers wires the downstream handlers into the payment
// dispatcher before the server starts. The payment service only knows the
// FulfillmentHandler interface; this keeps the dependency edge one-way.
func RegisterFulfillmentHandlers(
	paymentService services.PaymentService,
	giftService services.GiftServiceInterface,
	creditService services.CreditServiceInterface,
) {
	paymentService.RegisterFulfillmentHandler(giftService)
	paymentService.RegisterFulfillmentHandler(creditService)
}

func ProvideRouter(
	paymentController *controllers.PaymentController,
	giftController *controllers.GiftController,
	creditController *controllers.CreditController,
	matchController *controllers.MatchController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, paymentController, giftController, creditController, matchController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	paymentController *controllers.PaymentController,
	giftController *controllers.GiftController,
	creditController *controllers.CreditController,
	matchController *controllers.MatchController) {

	api := r.Group("/api")

	// Gateway callbacks authenticate themselves (signature / opaque token),
	// not via user session.
	payments := api.Group("/payments/secure-processor")
	payments.POST("/webhook", paymentController.HandleWebhook)
	payments.GET("/return", paymentController.HandleReturn)

	authed := api.Group("")
	authed.Use(middleware.SessionMiddleware())

	gifts := authed.Group("/gifts")
	gifts.GET("", giftController.ListGifts)
	gifts.POST("/purchase", giftController.Purchase)
	gifts.POST("/send", giftController.Send)
	gifts.GET("/transactions", giftController.ListTransactions)

	credits := authed.Group("/credits")
	credits.POST("/purchase", creditController.Purchase)
	credits.GET("/wallet", creditController.Wallet)
	credits.POST("/spend", creditController.Spend)

	authed.GET("/matches", matchController.List)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}
