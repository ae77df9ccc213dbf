package paypal

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
)

// Client exposes server-to-server order verification against PayPal.
type Client interface {
	VerifyOrder(ctx context.Context, orderID string) (*model.ProviderOrder, error)
}

// HTTPClient implements Client via the PayPal REST API.
type HTTPClient struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// orderResponse mirrors the order resource payload we consume.
type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		CustomID string `json:"custom_id"`
		Amount   struct {
			Value        string `json:"value"`
			CurrencyCode string `json:"currency_code"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

// NewHTTPClient creates a PayPal client. Credentials are mandatory: order
// verification without them would have to trust the browser, which is
// exactly what this client exists to avoid.
func NewHTTPClient(baseURL, clientID, clientSecret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, domainErrors.ErrNotConfigured
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse paypal url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("paypal url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:      parsed,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// VerifyOrder exchanges client credentials for an access token, fetches the
// order resource, and returns its authoritative state. The order is
// accepted only in a confirmed-paid status; everything reported comes from
// the provider, not the buyer.
func (c *HTTPClient) VerifyOrder(ctx context.Context, orderID string) (*model.ProviderOrder, error) {
	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	order, err := c.fetchOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}

	status := model.ProviderOrderStatus(order.Status)
	if !status.Paid() {
		c.logger.Warn("order not in paid state", slog.String("order", orderID), slog.String("status", order.Status))
		return nil, domainErrors.ErrPaymentNotCompleted
	}

	if len(order.PurchaseUnits) == 0 {
		return nil, domainErrors.ErrPaymentNotCompleted
	}
	unit := order.PurchaseUnits[0]
	amount, err := strconv.ParseFloat(unit.Amount.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("parse order amount %q: %w", unit.Amount.Value, err)
	}

	return &model.ProviderOrder{
		ID:        order.ID,
		Status:    status,
		Amount:    amount,
		Currency:  unit.Amount.CurrencyCode,
		CustomRef: unit.CustomID,
	}, nil
}

func (c *HTTPClient) fetchToken(ctx context.Context) (string, error) {
	endpoint := c.endpoint("/v1/oauth2/token")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("paypal token exchange failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", domainErrors.ErrProviderAuth
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if data.AccessToken == "" {
		return "", domainErrors.ErrProviderAuth
	}
	return data.AccessToken, nil
}

func (c *HTTPClient) fetchOrder(ctx context.Context, token, orderID string) (*orderResponse, error) {
	endpoint := c.endpoint(path.Join("/v2/checkout/orders", orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("paypal order fetch failed", slog.String("order", orderID), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, domainErrors.ErrPaymentNotCompleted
	}

	var data orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &data, nil
}

func (c *HTTPClient) endpoint(p string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)
	return endpoint.String()
}

// classifyTransportError separates retryable transport failures from
// everything else so callers can offer a retry affordance.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return domainErrors.ProviderUnavailableError{Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domainErrors.ProviderUnavailableError{Err: err}
	}
	return err
}
