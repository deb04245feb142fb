package flightstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/flightshare/flight-share/pkg/logger"
)

const (
	tokenPath    = "/v1/security/oauth2/token"
	schedulePath = "/v2/schedule/flights"

	// tokenExpirySkew is subtracted from the reported token lifetime so a
	// token is refreshed before the provider actually rejects it
	tokenExpirySkew = 30 * time.Second
)

// Client fetches flight schedules from the external provider. It performs a
// single attempt per lookup: no retries, no backoff, failures surface to the
// caller as classified errors.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time

	logger *logger.Logger
}

// NewClient creates a new schedule provider client
func NewClient(baseURL, clientID, clientSecret string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.Named("provider-client"),
	}
}

// providerErrorBody is the provider's structured error envelope
type providerErrorBody struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// tokenResponse is the OAuth2 client-credentials grant response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// scheduleResponse is the envelope around the provider's flight records
type scheduleResponse struct {
	Data []DatedFlight `json:"data"`
}

// Schedule looks up the scheduled flights matching the query. It fails with
// ErrConfigMissing when credentials are absent, ErrFlightNotFound when the
// provider returns zero flights, and a *ProviderError for everything else.
func (c *Client) Schedule(ctx context.Context, q Query) ([]DatedFlight, error) {
	if c.clientID == "" || c.clientSecret == "" {
		c.logger.Error("Provider credentials are not set in the environment")
		return nil, ErrConfigMissing
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, schedulePath, url.Values{
		"carrierCode":            {q.CarrierCode},
		"flightNumber":           {q.FlightNumber},
		"scheduledDepartureDate": {q.ScheduledDepartureDate},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newProviderSDKError(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("Fetching flight status",
		logger.String("carrier", q.CarrierCode),
		logger.String("flight_number", q.FlightNumber),
		logger.String("date", q.ScheduledDepartureDate),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Provider request failed", logger.Error(err))
		return nil, newProviderSDKError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read provider response body", logger.Error(err))
		return nil, newProviderSDKError(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyFailure(resp.StatusCode, body)
	}

	var schedule scheduleResponse
	if err := json.Unmarshal(body, &schedule); err != nil {
		c.logger.Error("Failed to parse provider response", logger.Error(err))
		return nil, newProviderSDKError(fmt.Sprintf("failed to parse provider response: %v", err))
	}

	if len(schedule.Data) == 0 {
		c.logger.Debug("Provider returned no flights", logger.String("query", q.String()))
		return nil, ErrFlightNotFound
	}

	c.logger.Debug("Successfully fetched flight status",
		logger.String("query", q.String()),
		logger.Int("flight_count", len(schedule.Data)),
	)

	return schedule.Data, nil
}

// classifyFailure turns a non-200 provider response into a ProviderError.
// Priority order: structured error body first, then any body text, then the
// hardcoded default. First applicable rule wins.
func (c *Client) classifyFailure(status int, body []byte) *ProviderError {
	var errBody providerErrorBody
	if json.Unmarshal(body, &errBody) == nil && len(errBody.Errors) > 0 {
		first := errBody.Errors[0]
		provStatus := first.Status
		if provStatus == 0 {
			provStatus = status
		}
		c.logger.Error("Provider returned structured error",
			logger.Int("status", provStatus),
			logger.String("title", first.Title),
			logger.String("detail", first.Detail),
		)
		return newProviderHTTPError(provStatus, first.Title, first.Detail)
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = defaultProviderMessage
	}
	c.logger.Error("Provider returned unstructured error",
		logger.Int("status", status),
		logger.String("body", message),
	)
	return &ProviderError{Status: status, Message: message}
}

// token returns a valid access token, fetching a new one via the OAuth2
// client-credentials grant when none is cached or the cached one is near
// expiry
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", newProviderSDKError(fmt.Sprintf("failed to create token request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Token request failed", logger.Error(err))
		return "", newProviderSDKError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderSDKError(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyFailure(resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", newProviderSDKError(fmt.Sprintf("failed to parse token response: %v", err))
	}
	if tok.AccessToken == "" {
		return "", newProviderSDKError("token response contained no access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySkew)

	c.logger.Debug("Obtained provider access token",
		logger.Int("expires_in", tok.ExpiresIn))

	return c.accessToken, nil
}
