// Package labportal is the client for the lab portal service, the upstream
// system of record for lab onboarding state, lab staff accounts and the
// per-order QC checklist. The lifecycle engine only consumes narrow facts
// from it: an onboarding flag, a staff id list and a checklist-complete flag.
package labportal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/pkg/errs"
)

// Client implements the QCChecklist, OnboardingChecker and LabStaffDirectory
// ports against the portal's HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a portal client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// AllItemsComplete reports whether every QC checklist item for the order is
// marked complete.
func (c *Client) AllItemsComplete(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var payload struct {
		AllComplete bool `json:"allComplete"`
	}

	url := fmt.Sprintf("%s/v1/orders/%s/qc-checklist", c.baseURL, orderID)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return false, err
	}

	return payload.AllComplete, nil
}

// IsOnboarded reports whether the lab completed onboarding.
func (c *Client) IsOnboarded(ctx context.Context, labID kernel.UUID) (bool, error) {
	var payload struct {
		Onboarded bool `json:"onboarded"`
	}

	url := fmt.Sprintf("%s/v1/labs/%s/onboarding", c.baseURL, labID)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return false, err
	}

	return payload.Onboarded, nil
}

// StaffIDs retrieves the staff account ids for a lab.
func (c *Client) StaffIDs(ctx context.Context, labID kernel.UUID) ([]kernel.UUID, error) {
	var payload struct {
		StaffIDs []string `json:"staffIds"`
	}

	url := fmt.Sprintf("%s/v1/labs/%s/staff", c.baseURL, labID)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(payload.StaffIDs))
	for _, raw := range payload.StaffIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.NewOperationFailedError("lab portal request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.NewOperationFailedError("lab portal request",
			fmt.Errorf("portal returned status %d for %s", resp.StatusCode, url))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
