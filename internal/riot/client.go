// Package riot wraps the Riot developer API endpoints the pipeline consumes.
// Every request is paced by the shared rate limiter and decoded into typed
// structs; malformed payloads and Riot status envelopes surface as errors,
// never as partial values.
package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"rift-collector/internal/config"
	"rift-collector/internal/constants"
	"rift-collector/internal/ratelimit"
)

// StatusError is the error envelope Riot embeds in non-success responses.
type StatusError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("riot API status %d: %s", e.StatusCode, e.Message)
}

type statusEnvelope struct {
	Status StatusError `json:"status"`
}

// IsStatus reports whether err is a Riot status envelope with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

type Client struct {
	apiKey       string
	platformHost string
	regionalHost string
	queue        string
	client       *fasthttp.Client
	limiter      *ratelimit.Limiter
}

func NewClient(cfg *config.Config, limiter *ratelimit.Limiter) *Client {
	return &Client{
		apiKey:       cfg.RiotAPIKey,
		platformHost: fmt.Sprintf("https://%s.api.riotgames.com", cfg.Platform),
		regionalHost: fmt.Sprintf("https://%s.api.riotgames.com", cfg.RegionalRoute),
		queue:        cfg.Queue,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: limiter,
	}
}

// LeagueEntries returns one page of the ranked ladder for a tier and
// division. An empty slice marks the end of pagination. Apex tiers still
// take a division path segment; pass "I".
func (c *Client) LeagueEntries(ctx context.Context, tier, division string, page int) ([]LeagueEntry, error) {
	url := fmt.Sprintf("%s/lol/league-exp/v4/entries/%s/%s/%s?page=%d",
		c.platformHost, c.queue, tier, division, page)
	entries, err := doRequest[[]LeagueEntry](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// MatchIDs returns the player's most recent match ids.
func (c *Client) MatchIDs(ctx context.Context, puuid string) ([]string, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=20",
		c.regionalHost, puuid)
	ids, err := doRequest[[]string](ctx, c, url)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// Match returns full match detail.
func (c *Client) Match(ctx context.Context, matchID string) (*Match, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalHost, matchID)
	return doRequest[Match](ctx, c, url)
}

// Timeline returns the timestamped frame stream for a match.
func (c *Client) Timeline(ctx context.Context, matchID string) (*Timeline, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.regionalHost, matchID)
	return doRequest[Timeline](ctx, c, url)
}

// PlayerTier returns the player's current solo-queue tier, or "" when the
// player has no ranked entry for the queue.
func (c *Client) PlayerTier(ctx context.Context, puuid string) (string, error) {
	url := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformHost, puuid)
	entries, err := doRequest[[]LeagueEntry](ctx, c, url)
	if err != nil {
		return "", err
	}
	for _, entry := range *entries {
		if entry.QueueType == c.queue {
			return entry.Tier, nil
		}
	}
	return "", nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		var envelope statusEnvelope
		if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Status.StatusCode != 0 {
			return nil, &envelope.Status
		}
		return nil, &StatusError{StatusCode: resp.StatusCode(), Message: "unexpected response"}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
