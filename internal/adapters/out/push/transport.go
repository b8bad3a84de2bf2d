// Package push delivers notification records to the device push gateway.
// Delivery is best effort: the command layer persists the record first and a
// background job drains it through this transport, retrying transient faults.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dentallab/internal/core/domain/model/notification"
	"dentallab/internal/pkg/errs"
)

// HTTPTransport implements ports.NotificationTransport against the push
// gateway's HTTP API. Gateway failures come back as OperationFailedError so
// the caller's retry policy treats them as transient.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport for the gateway at baseURL.
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type pushMessage struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	URL         string `json:"url"`
}

// Push delivers one notification to the gateway.
func (t *HTTPTransport) Push(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(pushMessage{
		RecipientID: n.RecipientID().String(),
		Title:       n.Title(),
		Body:        n.Body(),
		URL:         n.URL(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/push", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return errs.NewOperationFailedError("push gateway request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.NewOperationFailedError("push gateway request",
			fmt.Errorf("gateway returned status %d", resp.StatusCode))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return errs.NewValueIsInvalidErrorWithCause("notification",
			fmt.Errorf("gateway rejected message with status %d", resp.StatusCode))
	}

	return nil
}
