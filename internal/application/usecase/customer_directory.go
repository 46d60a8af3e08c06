// internal/application/usecase/customer_directory.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var customerNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:cart-service:customer"))

// CreateCustomerEvent asks the customer service to register a customer under a known id
type CreateCustomerEvent struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type customerLookupRequest struct {
	Document string `json:"document"`
}

type customerLookupResponse struct {
	Data *struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CustomerDirectory resolves customers by document through the remote customer service.
// Unknown documents get a deterministic id and a creation request.
type CustomerDirectory struct {
	invoker      Invoker
	lookupTarget string
	createTarget string
}

// NewCustomerDirectory creates a resolver backed by the given targets
func NewCustomerDirectory(invoker Invoker, lookupTarget, createTarget string) *CustomerDirectory {
	return &CustomerDirectory{
		invoker:      invoker,
		lookupTarget: lookupTarget,
		createTarget: createTarget,
	}
}

// Resolve implements CustomerResolver
func (d *CustomerDirectory) Resolve(ctx context.Context, in OpenCartInput) (string, error) {
	document := strings.TrimSpace(in.Document)
	if document == "" {
		return "", nil
	}

	raw, err := d.invoker.Invoke(ctx, d.lookupTarget, customerLookupRequest{Document: document})
	if err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	if len(raw) > 0 {
		var resp customerLookupResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("failed to decode customer lookup: %w", err)
		}
		if resp.Data != nil && resp.Data.ID != "" {
			return resp.Data.ID, nil
		}
	}

	id := DeriveCustomerID(document)
	event := CreateCustomerEvent{
		ID:       id,
		Document: document,
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
	}
	if err := d.invoker.InvokeEvent(ctx, d.createTarget, event); err != nil {
		return "", fmt.Errorf("failed to request customer creation: %w", err)
	}

	return id, nil
}

// DeriveCustomerID maps a customer document to a stable customer id
func DeriveCustomerID(document string) string {
	return uuid.NewSHA1(customerNamespace, []byte(document)).String()
}
