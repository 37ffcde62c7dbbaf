package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/response_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/services"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type MatchController struct {
	social services.SocialClientInterface
}

func NewMatchController(social services.SocialClientInterface) *MatchController {
	return &MatchController{
		social: social,
	}
}

// List godoc
// @Summary List the caller's matches with member profiles
// @Tags Matches
// @Produce json
// @Success 200 {array} response_models.MatchResponse
// @Router /api/matches [get]
func (m *MatchController) List(c *gin.Context) {
	session := sessionFromContext(c)

	matches, err := m.social.GetMatches(c.Request.Context(), session)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out := make([]response_models.MatchResponse, 0, len(matches))
	for _, match := range matches {
		resp := response_models.MatchResponse{
			MatchID:  match.MatchID,
			MemberID: match.MemberID,
		}

		// Profiles are decoration here; a failed lookup degrades the entry
		// instead of failing the listing.
		member, err := m.social.GetMember(c.Request.Context(), session, match.MemberID)
		if err != nil {
			logger.S().Warnw("member lookup failed", "member_id", match.MemberID, "error", err)
		} else {
			resp.Member = &response_models.MemberResponse{
				ID:        member.ID,
				Nickname:  member.Nickname,
				City:      member.City,
				AvatarURL: member.AvatarURL,
			}
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, out)
}
