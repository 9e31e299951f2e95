package discovery

import "github.com/coinbase/x402/go/pkg/types"

// Resource is one catalog entry: a payment-gated endpoint together
// with the terms under which it is served.
type Resource struct {
	// Resource is the URL of the gated endpoint.
	Resource string `json:"resource"`
	// Type is the resource type (currently only "http").
	Type string `json:"type"`
	// X402Version is the protocol version.
	X402Version int `json:"x402Version"`
	// Accepts contains the payment requirements for this resource.
	Accepts []types.PaymentRequirements `json:"accepts"`
	// LastUpdated is when this resource was last registered or updated.
	LastUpdated string `json:"lastUpdated"`
	// Metadata contains optional catalog metadata.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Metadata helps users discover and understand a catalog entry.
type Metadata struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
	Provider      string   `json:"provider,omitempty"`
}

// ListResponse is the catalog's answer to a resource listing.
type ListResponse struct {
	X402Version int        `json:"x402Version"`
	Items       []Resource `json:"items"`
	Pagination  Pagination `json:"pagination"`
}

// Pagination contains paging info for a listing.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListOptions narrows a resource listing.
type ListOptions struct {
	// Type filters by resource type (e.g. "http").
	Type string
	// Limit is the maximum number of items to return.
	Limit int
	// Offset is the number of items to skip.
	Offset int
}
