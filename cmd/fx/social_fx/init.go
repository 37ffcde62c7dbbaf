package social_fx

import (
	"os"

	"go.uber.org/fx"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/api/controllers"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/memcache"
)

var Module = fx.Provide(
	provideMemberCache,
	provideSocialClient,
	provideMatchController,
)

func provideMemberCache() memcache.MemberCache {
	return memcache.NewMembers()
}

func provideSocialClient(cache memcache.MemberCache) services.SocialClientInterface {
	return services.NewSocialClient(services.SocialConfig{
		BaseURL: os.Getenv("SOCIAL_API_BASE_URL"),
	}, cache)
}

func provideMatchController(social services.SocialClientInterface) *controllers.MatchController {
	return controllers.NewMatchController(social)
}
