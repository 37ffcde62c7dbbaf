package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/memcache"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/middleware"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

// Session carries the upstream cookies of the calling user. Every upstream
// request is authenticated by forwarding them.
type Session struct {
	SessionID string
	UserID    string
}

type Match struct {
	MatchID  string
	MemberID string
}

type Member struct {
	ID        string
	Nickname  string
	City      string
	AvatarURL string
}

type SocialClientInterface interface {
	// GetMatches returns the user's confirmed mutual matches, always fetched
	// live. Gift delivery authorization depends on this being current.
	GetMatches(ctx context.Context, session Session) ([]Match, error)
	GetMember(ctx context.Context, session Session, memberID string) (*Member, error)
}

type SocialConfig struct {
	BaseURL   string
	Timeout   time.Duration
	MemberTTL time.Duration
}

type SocialClient struct {
	http  *http.Client
	cfg   SocialConfig
	cache memcache.MemberCache
}

func NewSocialClient(cfg SocialConfig, cache memcache.MemberCache) *SocialClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MemberTTL == 0 {
		cfg.MemberTTL = 5 * time.Minute
	}
	return &SocialClient{
		http:  &http.Client{Timeout: cfg.Timeout},
		cfg:   cfg,
		cache: cache,
	}
}

func (c *SocialClient) GetMatches(ctx context.Context, session Session) ([]Match, error) {
	body, err := c.get(ctx, session, "/api/v1/matches")
	if err != nil {
		return nil, err
	}

	// The upstream response nests the counterpart member inconsistently;
	// parse only the shapes we rely on and drop anything incomplete.
	var out struct {
		Matches []struct {
			ID     string `json:"id"`
			Member *struct {
				ID string `json:"id"`
			} `json:"member"`
			MemberID string `json:"member_id"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode matches: %v", utils.ErrUpstreamFailure, err)
	}

	matches := make([]Match, 0, len(out.Matches))
	for _, m := range out.Matches {
		memberID := m.MemberID
		if memberID == "" && m.Member != nil {
			memberID = m.Member.ID
		}
		if m.ID == "" || memberID == "" {
			continue
		}
		matches = append(matches, Match{MatchID: m.ID, MemberID: memberID})
	}
	return matches, nil
}

func (c *SocialClient) GetMember(ctx context.Context, session Session, memberID string) (*Member, error) {
	if cached, ok := c.cache.Get(memberID); ok {
		if member, ok := cached.(*Member); ok {
			return member, nil
		}
	}

	body, err := c.get(ctx, session, "/api/v1/members/"+url.PathEscape(memberID))
	if err != nil {
		return nil, err
	}

	var out struct {
		Member struct {
			ID        string `json:"id"`
			Nickname  string `json:"nickname"`
			City      string `json:"city"`
			AvatarURL string `json:"avatar_url"`
		} `json:"member"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode member: %v", utils.ErrUpstreamFailure, err)
	}
	if out.Member.ID == "" {
		out.Member.ID = memberID
	}

	member := &Member{
		ID:        out.Member.ID,
		Nickname:  out.Member.Nickname,
		City:      out.Member.City,
		AvatarURL: out.Member.AvatarURL,
	}
	c.cache.Set(memberID, member, c.cfg.MemberTTL)
	return member, nil
}

func (c *SocialClient) get(ctx context.Context, session Session, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.SessionID})
	req.AddCookie(&http.Cookie{Name: middleware.UserCookieName, Value: session.UserID})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, utils.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: social API returned %d for %s", utils.ErrUpstreamFailure, resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}
