package response_models

type MemberResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname,omitempty"`
	City      string `json:"city,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type MatchResponse struct {
	MatchID  string          `json:"matchId"`
	MemberID string          `json:"memberId"`
	Member   *MemberResponse `json:"member,omitempty"`
}
