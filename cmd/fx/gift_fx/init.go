package gift_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/api/controllers"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/repositories"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
)

var Module = fx.Provide(
	provideGiftRepository,
	provideGiftService,
	provideGiftController,
)

func provideGiftRepository(db *gorm.DB) repositories.GiftRepositoryInterface {
	return repositories.NewGiftRepository(db)
}

func provideGiftService(
	gifts repositories.GiftRepositoryInterface,
	tokens repositories.PaymentTokenRepositoryInterface,
	payment services.PaymentService,
	social services.SocialClientInterface,
) services.GiftServiceInterface {
	return services.NewGiftService(gifts, tokens, payment, social)
}

func provideGiftController(giftService services.GiftServiceInterface) *controllers.GiftController {
	return controllers.NewGiftController(giftService)
}
