package credit_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/api/controllers"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
)

var Module = fx.Provide(
	provideCreditRepository,
	provideCreditService,
	provideCreditController,
)

func provideCreditRepository(db *gorm.DB) repositories.CreditRepositoryInterface {
	return repositories.NewCreditRepository(db)
}

func provideCreditService(
	credits repositories.CreditRepositoryInterface,
	tokens repositories.PaymentTokenRepositoryInterface,
	payment services.PaymentService,
) services.CreditServiceInterface {
	centsPerCredit, _ := strconv.ParseInt(os.Getenv("CREDIT_PRICE_CENTS"), 10, 64)

	return services.NewCreditService(credits, tokens, payment, services.CreditConfig{
		CentsPerCredit: centsPerCredit,
		Currency:       os.Getenv("PAYMENT_CURRENCY"),
	})
}

func provideCreditController(creditService services.CreditServiceInterface) *controllers.CreditController {
	return controllers.NewCreditController(creditService)
}
