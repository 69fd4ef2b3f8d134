// Package payment talks to the hosted payment gateway. The protocol is
// opaque to the rest of the service: a charge either yields a receipt id
// or it doesn't.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/freshcart/freshcart-api/internal/usecase"
)

var ErrDeclined = errors.New("gateway declined the charge")

type Gateway struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewGateway(baseURL, apiKey string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

type collectReq struct {
	UserID      string `json:"userId"`
	AmountPaise int64  `json:"amountPaise"`
	Reference   string `json:"reference"`
}

type collectResp struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Charge runs a collect request and waits for the gateway's verdict.
func (g *Gateway) Charge(ctx context.Context, userID string, amountPaise int64, reference string) (string, error) {
	body, err := json.Marshal(collectReq{
		UserID:      userID,
		AmountPaise: amountPaise,
		Reference:   reference,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/collect", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out collectResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || out.Status != "SUCCESS" || out.PaymentID == "" {
		if out.Reason != "" {
			return "", fmt.Errorf("%w: %s", ErrDeclined, out.Reason)
		}
		return "", ErrDeclined
	}
	return out.PaymentID, nil
}

var _ usecase.PaymentGateway = (*Gateway)(nil)
