package momo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"wastecollect/internal/config"
	"wastecollect/internal/domain"
)

// TransactionResult is the parsed outcome of a status check.
type TransactionResult struct {
	Status   domain.TransactionStatus
	Amount   float64
	Currency string
}

// Client is a stateless wrapper around the MTN MoMo collection API. Every
// request carries its own header set; nothing is mutated on the underlying
// http.Client between calls.
type Client struct {
	httpClient *http.Client
	cfg        config.MomoConfig
	tokens     *TokenCache
}

// NewClient creates a gateway client. If httpClient is nil, a client with the
// configured timeout is used.
func NewClient(cfg config.MomoConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	c := &Client{
		httpClient: httpClient,
		cfg:        cfg,
	}
	c.tokens = NewTokenCache(c.Authenticate)
	return c
}

// Authenticate obtains a fresh access token using Basic authentication with
// the configured API user and key.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/collection/token/", nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(c.cfg.APIUser + ":" + c.cfg.APIKey))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GatewayError{Operation: "token", Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrAuth, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", ErrAuth)
	}

	return tokenResp.AccessToken, nil
}

// requestToPayPayload is the charge request wire format.
type requestToPayPayload struct {
	Amount       string     `json:"amount"`
	Currency     string     `json:"currency"`
	ExternalID   string     `json:"externalId"`
	Payer        partyInfo  `json:"payer"`
	PayerMessage string     `json:"payerMessage"`
	PayeeNote    string     `json:"payeeNote"`
}

type partyInfo struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// RequestToPay submits a charge request for the given payer MSISDN and
// amount. It mints and returns the correlation id used to poll status later;
// the charge outcome is not known at return time.
func (c *Client) RequestToPay(ctx context.Context, payer string, amount float64) (string, error) {
	// Each attempt gets a fresh correlation id. A failed attempt is retried
	// by the caller with a new id, never a recycled one.
	correlationID := uuid.New().String()

	payload := requestToPayPayload{
		Amount:     strconv.FormatFloat(amount, 'f', 2, 64),
		Currency:   c.cfg.Currency,
		ExternalID: uuid.New().String(),
		Payer: partyInfo{
			PartyIDType: "MSISDN",
			PartyID:     payer,
		},
		PayerMessage: c.cfg.PayerMessage,
		PayeeNote:    c.cfg.PayeeNote,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal charge payload: %w", err)
	}

	err = c.withToken(ctx, func(token string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/collection/v1_0/requesttopay", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build charge request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Reference-Id", correlationID)
		req.Header.Set("X-Target-Environment", c.cfg.TargetEnvironment)
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &GatewayError{Operation: "requesttopay", Body: err.Error()}
		}
		defer resp.Body.Close()

		return c.checkResponse("requesttopay", resp)
	})
	if err != nil {
		return "", err
	}

	return correlationID, nil
}

// statusResponse is the status check wire format. Fields are parsed
// defensively: a missing or malformed status degrades to UNKNOWN and a
// malformed amount degrades to zero.
type statusResponse struct {
	Status   string `json:"status"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// GetStatus fetches the current status of a charge by its correlation id.
// It fails only on transport or HTTP errors, never on payload shape.
func (c *Client) GetStatus(ctx context.Context, correlationID string) (TransactionResult, error) {
	result := TransactionResult{
		Status:   domain.TransactionStatusUnknown,
		Currency: c.cfg.Currency,
	}

	err := c.withToken(ctx, func(token string) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/collection/v1_0/requesttopay/"+correlationID, nil)
		if err != nil {
			return fmt.Errorf("build status request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Target-Environment", c.cfg.TargetEnvironment)
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &GatewayError{Operation: "status", Body: err.Error()}
		}
		defer resp.Body.Close()

		if err := c.checkResponse("status", resp); err != nil {
			return err
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return &GatewayError{Operation: "status", Body: err.Error()}
		}

		var parsed statusResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			// Unparseable body on a 2xx response: report UNKNOWN.
			return nil
		}

		result.Status = domain.ParseTransactionStatus(parsed.Status)
		if amount, err := strconv.ParseFloat(parsed.Amount, 64); err == nil {
			result.Amount = amount
		}
		if parsed.Currency != "" {
			result.Currency = parsed.Currency
		}
		return nil
	})
	if err != nil {
		return TransactionResult{Status: domain.TransactionStatusUnknown}, err
	}

	return result, nil
}

// withToken runs call with a cached bearer token. On an auth failure it
// invalidates the cache, re-authenticates and retries exactly once.
func (c *Client) withToken(ctx context.Context, call func(token string) error) error {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return err
	}

	err = call(token)
	if !errors.Is(err, ErrAuth) {
		return err
	}

	c.tokens.Invalidate()
	token, err = c.tokens.Get(ctx)
	if err != nil {
		return err
	}

	return call(token)
}

// checkResponse classifies a non-2xx response. 401/403 map to the auth error
// class so the token retry policy applies; anything else is a GatewayError.
func (c *Client) checkResponse(operation string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Drain so the keep-alive connection is reusable for the retry.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %d", ErrAuth, operation, resp.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &GatewayError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
}
