package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gummy-store/models"
)

const pixProvider = "pix"

// PixStatusCompleted is the provider status of a settled payment.
const PixStatusCompleted = "completed"

type PixCreateRequest struct {
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	ExternalID      string  `json:"external_id"`
}

type PixPayment struct {
	PaymentID  string     `json:"payment_id"`
	QRCode     string     `json:"qr_code"`
	QRImageURL string     `json:"qr_image_url"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Status     string     `json:"status"`
}

// expiryLayouts are the timestamp shapes the provider has been seen to send.
// Zone-less values are read as UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
}

// UnmarshalJSON reads expires_at leniently. The charge already exists when
// this payload arrives, so an expiry that cannot be read is dropped instead
// of failing the payment.
func (p *PixPayment) UnmarshalJSON(data []byte) error {
	type plain PixPayment
	aux := struct {
		*plain
		ExpiresAt json.RawMessage `json:"expires_at"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.ExpiresAt = nil
	if expires, ok := parseExpiry(aux.ExpiresAt); ok {
		p.ExpiresAt = &expires
	} else if len(aux.ExpiresAt) > 0 && string(aux.ExpiresAt) != "null" {
		log.Printf("[pix] ignoring unreadable expires_at %s for %s", aux.ExpiresAt, p.PaymentID)
	}
	return nil
}

func parseExpiry(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var epoch int64
		if err := json.Unmarshal(raw, &epoch); err != nil || epoch <= 0 {
			return time.Time{}, false
		}
		if epoch > 1e12 {
			return time.UnixMilli(epoch).UTC(), true
		}
		return time.Unix(epoch, 0).UTC(), true
	}

	text = strings.TrimSpace(text)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	if epoch, err := strconv.ParseInt(text, 10, 64); err == nil && epoch > 0 {
		return parseExpiry(json.RawMessage(text))
	}
	return time.Time{}, false
}

type pixEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type PixClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPixClient(baseURL, apiKey string) *PixClient {
	return &PixClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *PixClient) WithHTTPClient(hc *http.Client) *PixClient {
	c.httpClient = hc
	return c
}

func (c *PixClient) Configured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

func (c *PixClient) CreatePayment(ctx context.Context, in PixCreateRequest) (*PixPayment, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pix payload: %w", err)
	}

	var out PixPayment
	if err := c.do(ctx, http.MethodPost, "/payment/create", body, &out); err != nil {
		return nil, err
	}
	if out.PaymentID == "" {
		return nil, &models.ProviderError{Provider: pixProvider, Message: "pix provider returned empty payment id"}
	}
	return &out, nil
}

func (c *PixClient) PaymentStatus(ctx context.Context, paymentID string) (string, error) {
	var out PixPayment
	if err := c.do(ctx, http.MethodGet, "/payment/"+url.PathEscape(paymentID)+"/status", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *PixClient) do(ctx context.Context, method, path string, payload []byte, out any) error {
	if !c.Configured() {
		return models.ErrProviderUnavailable
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build pix request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.ProviderError{Provider: pixProvider, Message: "failed to reach pix provider", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.ProviderError{Provider: pixProvider, StatusCode: resp.StatusCode, Message: "failed to read pix response", Err: err}
	}

	var env pixEnvelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = "Erro ao criar pagamento PIX"
		}
		return &models.ProviderError{Provider: pixProvider, StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return &models.ProviderError{Provider: pixProvider, StatusCode: resp.StatusCode, Message: "invalid pix response", Err: decodeErr}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Erro ao criar pagamento PIX"
		}
		return &models.ProviderError{Provider: pixProvider, StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &models.ProviderError{Provider: pixProvider, StatusCode: resp.StatusCode, Message: "invalid pix payload", Err: err}
		}
	}
	return nil
}
