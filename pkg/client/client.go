package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/evoss/adloom/pkg/domain"
)

// Default paging used when the caller passes zero values.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// maxErrBody caps how much of an error response body is read.
const maxErrBody = 1 << 20 // 1 MB

// Config holds the base URL of each backend service.
type Config struct {
	AuthURL     string
	BillingURL  string
	CampaignURL string
	AIURL       string
	AssetURL    string
}

// Client is the typed gateway to the five platform services. Every call runs
// through the same executor and response classification, so a 401 from any
// service invalidates the session identically.
type Client struct {
	cfg        Config
	session    *Session
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client bound to the given service addresses and session.
func New(cfg Config, session *Session, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		session: session,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session store this client attaches credentials from.
func (c *Client) Session() *Session {
	return c.session
}

// --- Auth service ---

// ExchangeDevToken trades an email address for a bearer token via the auth
// service's dev login. The only contract that requires no prior credential.
func (c *Client) ExchangeDevToken(ctx context.Context, email string) (*domain.Token, error) {
	params := url.Values{}
	params.Set("email", email)

	var tok domain.Token
	if err := c.post(ctx, c.cfg.AuthURL, "/api/v1/dev-token?"+params.Encode(), nil, &tok); err != nil {
		return nil, fmt.Errorf("client.ExchangeDevToken: %w", err)
	}
	return &tok, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, c.cfg.AuthURL, "/api/v1/me", &profile); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &profile, nil
}

// --- Campaign service ---

// CreateCampaignRequest is the payload for creating a campaign. All fields
// are required non-empty.
type CreateCampaignRequest struct {
	Name     string `json:"name"`
	Goal     string `json:"goal"`
	Audience string `json:"audience"`
}

// ListCampaigns fetches one page of the user's campaigns.
func (c *Client) ListCampaigns(ctx context.Context, page, limit int) (*domain.Page[domain.Campaign], error) {
	var out domain.Page[domain.Campaign]
	if err := c.get(ctx, c.cfg.CampaignURL, "/api/v1/campaigns?"+pageQuery(page, limit).Encode(), &out); err != nil {
		return nil, fmt.Errorf("client.ListCampaigns: %w", err)
	}
	return &out, nil
}

// CreateCampaign creates a new campaign. The service assigns id and status.
func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*domain.Campaign, error) {
	if req.Name == "" || req.Goal == "" || req.Audience == "" {
		return nil, fmt.Errorf("client.CreateCampaign: name, goal and audience are required")
	}
	var created domain.Campaign
	if err := c.post(ctx, c.cfg.CampaignURL, "/api/v1/campaigns", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateCampaign: %w", err)
	}
	return &created, nil
}

// GetCampaign fetches a single campaign by ID.
func (c *Client) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := c.get(ctx, c.cfg.CampaignURL, "/api/v1/campaigns/"+strconv.FormatInt(id, 10), &campaign); err != nil {
		return nil, fmt.Errorf("client.GetCampaign: %w", err)
	}
	return &campaign, nil
}

// UpdateCampaignStatus asks the campaign service to move a campaign to the
// given status and returns the updated campaign.
func (c *Client) UpdateCampaignStatus(ctx context.Context, id int64, status string) (*domain.Campaign, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("client.UpdateCampaignStatus: invalid status %q", status)
	}
	var updated domain.Campaign
	path := "/api/v1/campaigns/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.doRequest(ctx, http.MethodPatch, c.cfg.CampaignURL, path, map[string]string{"status": status}, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateCampaignStatus: %w", err)
	}
	return &updated, nil
}

// --- Asset service ---

// CreateAssetRequest is the payload for creating an asset. Content may be
// empty; the service records it as version 1 either way.
type CreateAssetRequest struct {
	CampaignID int64  `json:"campaign_id"`
	AssetType  string `json:"asset_type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// ReviseAssetRequest is the payload for appending a new content version.
type ReviseAssetRequest struct {
	Content    string `json:"content"`
	ChangeNote string `json:"change_note,omitempty"`
}

// ListAssets fetches one page of assets, optionally filtered by campaign.
// A campaignID of 0 means no filter; the parameter is then omitted from the
// query entirely.
func (c *Client) ListAssets(ctx context.Context, campaignID int64, page, limit int) (*domain.Page[domain.Asset], error) {
	params := pageQuery(page, limit)
	if campaignID != 0 {
		params.Set("campaign_id", strconv.FormatInt(campaignID, 10))
	}

	var out domain.Page[domain.Asset]
	if err := c.get(ctx, c.cfg.AssetURL, "/api/v1/assets?"+params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("client.ListAssets: %w", err)
	}
	return &out, nil
}

// CreateAsset creates a new asset at version 1.
func (c *Client) CreateAsset(ctx context.Context, req CreateAssetRequest) (*domain.Asset, error) {
	var created domain.Asset
	if err := c.post(ctx, c.cfg.AssetURL, "/api/v1/assets", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateAsset: %w", err)
	}
	return &created, nil
}

// ReviseAsset submits new content for an asset. Edits never overwrite in
// place: the service appends a version and returns the asset with
// current_version advanced by exactly one. The returned entity is
// authoritative; callers must render it rather than their submitted content.
func (c *Client) ReviseAsset(ctx context.Context, id int64, req ReviseAssetRequest) (*domain.Asset, error) {
	var revised domain.Asset
	path := "/api/v1/assets/" + strconv.FormatInt(id, 10)
	if err := c.doRequest(ctx, http.MethodPatch, c.cfg.AssetURL, path, req, &revised); err != nil {
		return nil, fmt.Errorf("client.ReviseAsset: %w", err)
	}
	return &revised, nil
}

// ListAssetVersions returns an asset's version history, newest first.
func (c *Client) ListAssetVersions(ctx context.Context, id int64) ([]domain.AssetVersion, error) {
	var versions []domain.AssetVersion
	path := "/api/v1/assets/" + strconv.FormatInt(id, 10) + "/versions"
	if err := c.get(ctx, c.cfg.AssetURL, path, &versions); err != nil {
		return nil, fmt.Errorf("client.ListAssetVersions: %w", err)
	}
	return versions, nil
}

// UndoAsset moves the asset's version pointer back by one. The service
// rejects the call when no earlier version exists.
func (c *Client) UndoAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	asset, err := c.switchVersion(ctx, id, "undo")
	if err != nil {
		return nil, fmt.Errorf("client.UndoAsset: %w", err)
	}
	return asset, nil
}

// RedoAsset moves the asset's version pointer forward by one.
func (c *Client) RedoAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	asset, err := c.switchVersion(ctx, id, "redo")
	if err != nil {
		return nil, fmt.Errorf("client.RedoAsset: %w", err)
	}
	return asset, nil
}

func (c *Client) switchVersion(ctx context.Context, id int64, op string) (*domain.Asset, error) {
	var asset domain.Asset
	path := "/api/v1/assets/" + strconv.FormatInt(id, 10) + "/" + op
	if err := c.post(ctx, c.cfg.AssetURL, path, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// --- AI generation service ---

// GenerateTextRequest asks the AI service for marketing copy.
type GenerateTextRequest struct {
	CampaignID int64  `json:"campaign_id"`
	Prompt     string `json:"prompt"`
	Tone       string `json:"tone"`
	Channel    string `json:"channel"`
}

// GenerateTextResponse carries the generated copy. Older service builds only
// set generated_text; current ones set both fields to the same value.
type GenerateTextResponse struct {
	Content       string `json:"content"`
	GeneratedText string `json:"generated_text"`
}

// Text returns the generated copy, preferring the content field.
func (r *GenerateTextResponse) Text() string {
	if r.Content != "" {
		return r.Content
	}
	return r.GeneratedText
}

// GenerateImageRequest asks the AI service for a rendered image.
type GenerateImageRequest struct {
	CampaignID int64  `json:"campaign_id"`
	Prompt     string `json:"prompt"`
	Style      string `json:"style"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// GenerateImageResponse carries the URL of the rendered image.
type GenerateImageResponse struct {
	CampaignID int64  `json:"campaign_id"`
	ImageURL   string `json:"image_url"`
}

// SuggestRequest asks the AI service to critique existing asset copy.
type SuggestRequest struct {
	CampaignID int64  `json:"campaign_id"`
	AssetText  string `json:"asset_text"`
}

// SuggestResponse is an ordered list of improvement suggestions.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// GenerateText generates marketing copy for a campaign.
func (c *Client) GenerateText(ctx context.Context, req GenerateTextRequest) (*GenerateTextResponse, error) {
	var out GenerateTextResponse
	if err := c.post(ctx, c.cfg.AIURL, "/api/v1/ai/generate-text", req, &out); err != nil {
		return nil, fmt.Errorf("client.GenerateText: %w", err)
	}
	return &out, nil
}

// GenerateImage generates an image for a campaign and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, req GenerateImageRequest) (*GenerateImageResponse, error) {
	var out GenerateImageResponse
	if err := c.post(ctx, c.cfg.AIURL, "/api/v1/ai/generate-image", req, &out); err != nil {
		return nil, fmt.Errorf("client.GenerateImage: %w", err)
	}
	return &out, nil
}

// Suggest returns improvement suggestions for existing asset copy.
func (c *Client) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	var out SuggestResponse
	if err := c.post(ctx, c.cfg.AIURL, "/api/v1/ai/suggestions", req, &out); err != nil {
		return nil, fmt.Errorf("client.Suggest: %w", err)
	}
	return &out, nil
}

// --- Billing service ---

// Balance returns the user's current credit balance.
func (c *Client) Balance(ctx context.Context) (*domain.CreditBalance, error) {
	var balance domain.CreditBalance
	if err := c.get(ctx, c.cfg.BillingURL, "/api/v1/credits/balance", &balance); err != nil {
		return nil, fmt.Errorf("client.Balance: %w", err)
	}
	return &balance, nil
}

// Ledger returns the user's most recent credit mutations, newest first.
func (c *Client) Ledger(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/credits/ledger"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var entries []domain.LedgerEntry
	if err := c.get(ctx, c.cfg.BillingURL, path, &entries); err != nil {
		return nil, fmt.Errorf("client.Ledger: %w", err)
	}
	return entries, nil
}

// --- Executor and normalizer ---

// pageQuery builds page/limit query parameters, applying defaults for zero
// values.
func pageQuery(page, limit int) url.Values {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

func (c *Client) get(ctx context.Context, base, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, base, path, nil, out)
}

func (c *Client) post(ctx context.Context, base, path string, body, out any) error {
	return c.doRequest(ctx, http.MethodPost, base, path, body, out)
}

// doRequest is the executor: it builds the outbound call, attaches the
// session credential when one is held, and performs the network I/O. The
// result is classified by classify; nothing else inspects status codes.
func (c *Client) doRequest(ctx context.Context, method, base, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("url", base+path).Str("request_id", reqID).
			Err(err).Msg("transport failure")
		return &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().Str("method", method).Str("url", base+path).Str("request_id", reqID).
		Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("api call")

	return c.classify(resp, out)
}

// classify is the response normalizer. Exactly one of three outcomes:
// success (decoded payload), session error (store invalidated, expiry hook
// fired), or domain error. Applied uniformly to every backend call.
func (c *Client) classify(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody)) //nolint:errcheck // best-effort read for error message
		c.session.expire()
		return &SessionExpiredError{Message: errMessage(respBody)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errMessage(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
