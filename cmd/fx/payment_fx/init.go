package payment_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/api/controllers"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
)

var Module = fx.Provide(
	providePaymentTokenRepository,
	provideGatewayClient,
	providePaymentService,
	providePaymentController,
)

func providePaymentTokenRepository(db *gorm.DB) repositories.PaymentTokenRepositoryInterface {
	return repositories.NewPaymentTokenRepository(db)
}

func provideGatewayClient() services.GatewayClient {
	return services.NewSecureProcessorClient(services.GatewayConfig{
		BaseURL:    os.Getenv("SECURE_PROCESSOR_BASE_URL"),
		ShopID:     os.Getenv("SECURE_PROCESSOR_SHOP_ID"),
		ShopSecret: os.Getenv("SECURE_PROCESSOR_SHOP_SECRET"),
		ReturnURL:  os.Getenv("PAYMENT_RETURN_URL"),
		TestMode:   os.Getenv("SECURE_PROCESSOR_TEST_MODE") == "true",
	})
}

func providePaymentService(tokens repositories.PaymentTokenRepositoryInterface, gateway services.GatewayClient) services.PaymentService {
	instance, err := services.NewPaymentService(tokens, gateway, services.PaymentConfig{
		PublicKeyPEM: os.Getenv("SECURE_PROCESSOR_PUBLIC_KEY"),
		TestMode:     os.Getenv("SECURE_PROCESSOR_TEST_MODE") == "true",
	})
	if err != nil {
		log.Fatalf("Error initializing PaymentService: %v", err)
	}

	return instance
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
