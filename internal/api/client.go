package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"

	"fridgechef/internal/state"
)

// Client is the single point of contact with the backend. Transport details
// never leak to callers except as errors carrying display-ready messages.
type Client struct {
	baseURL string // versioned, e.g. http://host:8000/api/v1
	rootURL string // baseURL with the /api/vN suffix stripped
	http    *http.Client
	store   state.Store
}

var versionSuffix = regexp.MustCompile(`/api/v\d+$`)

func NewClient(baseURL string, store state.Store) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	// Only reads are safe to retry; mutating calls (and 429s, which are an
	// answer, not a failure) go through exactly once.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if resp != nil && resp.Request != nil && resp.Request.Method != http.MethodGet {
			return false, nil
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode >= http.StatusInternalServerError && resp.StatusCode != http.StatusNotImplemented, nil
	}

	return &Client{
		baseURL: baseURL,
		rootURL: versionSuffix.ReplaceAllString(baseURL, ""),
		http:    rc.StandardClient(),
		store:   store,
	}
}

// ResolveImageURL rewrites backend-relative /static/ asset paths to absolute
// URLs against the API root. Absolute URLs pass through unchanged.
func (c *Client) ResolveImageURL(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	if strings.HasPrefix(*raw, "/static/") {
		resolved := c.rootURL + *raw
		return &resolved
	}
	return raw
}

// Token lifecycle. The bearer token lives in the client state store; erasing
// it is the whole of a client-side logout.

func (c *Client) Token() (string, bool) {
	token, ok := c.store.Get(state.KeyAccessToken)
	return token, ok && token != ""
}

func (c *Client) IsLoggedIn() bool {
	_, ok := c.Token()
	return ok
}

func (c *Client) Logout() {
	c.store.Delete(state.KeyAccessToken)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// Auth

func (c *Client) Signup(ctx context.Context, email, password string) (*User, error) {
	var user User
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, "signup", http.MethodPost, "/auth/signup", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and persists it.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var token TokenResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", payload, &token); err != nil {
		return nil, err
	}
	if err := c.store.Set(state.KeyAccessToken, token.AccessToken); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}
	return &token, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, "me", http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Recommendations

func (c *Client) CreateRecommendation(ctx context.Context, payload RecommendationCreate) (*CreateResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/recommendations", payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError("create recommendation", resp)
	}

	result := &CreateResult{}
	if err := json.NewDecoder(resp.Body).Decode(&result.Recommendation); err != nil {
		return nil, fmt.Errorf("create recommendation: decode response: %w", err)
	}
	if remaining := resp.Header.Get("X-Daily-Remaining"); remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil {
			result.DailyRemaining = &n
		}
	}
	return result, nil
}

func (c *Client) GetRecommendation(ctx context.Context, id string) (*Recommendation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/recommendations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get recommendation: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		serr := statusError("get recommendation", resp)
		return nil, fmt.Errorf("%s: %w", serr.Error(), ErrNotFound)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError("get recommendation", resp)
	}

	var rec Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("get recommendation: decode response: %w", err)
	}
	return &rec, nil
}

// Favorites

func (c *Client) AddFavorite(ctx context.Context, recommendationID string, recipeIndex int, recipeTitle string, recipeImageURL *string) (*Favorite, error) {
	payload := map[string]any{
		"recommendation_id": recommendationID,
		"recipe_index":      recipeIndex,
		"recipe_title":      recipeTitle,
		"recipe_image_url":  recipeImageURL,
	}
	var fav Favorite
	err := c.doJSON(ctx, "add favorite", http.MethodPost, "/favorites", payload, &fav)
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusBadRequest && strings.Contains(serr.Message, "이미 즐겨찾기") {
			return nil, fmt.Errorf("%s: %w", serr.Message, ErrAlreadyFavorite)
		}
		return nil, err
	}
	return &fav, nil
}

func (c *Client) GetFavorites(ctx context.Context) ([]Favorite, error) {
	var favorites []Favorite
	if err := c.doJSON(ctx, "get favorites", http.MethodGet, "/favorites", nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, favoriteID string) error {
	return c.doJSON(ctx, "remove favorite", http.MethodDelete, "/favorites/"+url.PathEscape(favoriteID), nil, nil)
}

// CheckFavorite is best-effort: any failure reads as "not a favorite".
func (c *Client) CheckFavorite(ctx context.Context, recommendationID string, recipeIndex int) FavoriteCheck {
	query := url.Values{
		"recommendation_id": {recommendationID},
		"recipe_index":      {strconv.Itoa(recipeIndex)},
	}
	var check FavoriteCheck
	if err := c.doJSON(ctx, "check favorite", http.MethodGet, "/favorites/check?"+query.Encode(), nil, &check); err != nil {
		return FavoriteCheck{}
	}
	return check
}

// GetRecipeLikeStats is best-effort enrichment: on failure it degrades to
// three zero-count slots so the result page renders regardless.
func (c *Client) GetRecipeLikeStats(ctx context.Context, recommendationID string) RecommendationLikeStats {
	var stats RecommendationLikeStats
	err := c.doJSON(ctx, "like stats", http.MethodGet, "/favorites/stats/"+url.PathEscape(recommendationID), nil, &stats)
	if err != nil {
		return RecommendationLikeStats{
			RecommendationID: recommendationID,
			Recipes: []RecipeLikeCount{
				{RecipeIndex: 0}, {RecipeIndex: 1}, {RecipeIndex: 2},
			},
		}
	}
	return stats
}

// Search histories

// GetSearchHistories is best-effort: failures degrade to an empty list.
func (c *Client) GetSearchHistories(ctx context.Context, limit int) []SearchHistory {
	path := "/search-histories"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var histories []SearchHistory
	if err := c.doJSON(ctx, "search histories", http.MethodGet, path, nil, &histories); err != nil {
		return nil
	}
	return histories
}

func (c *Client) DeleteSearchHistory(ctx context.Context, id string) error {
	return c.doJSON(ctx, "delete search history", http.MethodDelete, "/search-histories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ClearAllSearchHistories(ctx context.Context) (int, error) {
	var result struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := c.doJSON(ctx, "clear search histories", http.MethodDelete, "/search-histories/all", nil, &result); err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Images

// GetRecipeImages resolves images for the given titles in one batch.
// Best-effort: on any failure every requested title maps to a nil URL, so
// partial arrival never happens.
func (c *Client) GetRecipeImages(ctx context.Context, titles []string, recommendationID string) []BatchImageResult {
	fallback := func() []BatchImageResult {
		return lo.Map(titles, func(t string, _ int) BatchImageResult {
			return BatchImageResult{Title: t}
		})
	}

	payload := map[string]any{"titles": titles}
	if recommendationID != "" {
		payload["recommendation_id"] = recommendationID
	}
	var result struct {
		Images []BatchImageResult `json:"images"`
	}
	if err := c.doJSON(ctx, "batch images", http.MethodPost, "/images/batch", payload, &result); err != nil {
		return fallback()
	}
	if result.Images == nil {
		return fallback()
	}
	return result.Images
}

// Ready probes the backend stats endpoint so the server can report
// readiness once the API is reachable.
func (c *Client) Ready(ctx context.Context) error {
	var stats Stats
	return c.doJSON(ctx, "ready", http.MethodGet, "/stats", nil, &stats)
}

// Stats

// GetStats is best-effort landing-page enrichment.
func (c *Client) GetStats(ctx context.Context) Stats {
	var stats Stats
	if err := c.doJSON(ctx, "stats", http.MethodGet, "/stats", nil, &stats); err != nil {
		return Stats{}
	}
	return stats
}
