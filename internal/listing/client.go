// Package listing retrieves candidate properties from the listing provider.
package listing

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/rentradar/rentradar/internal/domain"
)

// providerListing is the provider's wire shape for one sale listing.
// Only the fields the engine needs are mapped; everything else is ignored.
type providerListing struct {
	ID               string   `json:"id"`
	FormattedAddress string   `json:"formattedAddress"`
	Price            float64  `json:"price"`
	RentEstimate     float64  `json:"rentEstimate"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        float64  `json:"bathrooms"`
	SquareFootage    int      `json:"squareFootage"`
	ListingURL       string   `json:"listingUrl"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	DaysOnMarket     *int     `json:"daysOnMarket"`
}

// Client is an HTTP client for the listing provider with client-side rate
// limiting and retry with backoff on 429 and transient server errors.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a listing provider client. requestsPerSecond bounds
// the steady-state request rate across all callers sharing the client.
func NewClient(baseURL, apiKey string, maxRetries int, baseDelay time.Duration, requestsPerSecond float64) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Api-Key", apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(baseDelay).
		SetRetryMaxWaitTime(10 * baseDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests ||
				r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// SearchListings fetches sale listings for a location.
func (c *Client) SearchListings(ctx context.Context, location string, limit int) ([]domain.Property, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limit: %w", err)
	}

	var listings []providerListing
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"location": location,
			"status":   "forSale",
			"limit":    strconv.Itoa(limit),
		}).
		SetResult(&listings).
		Get("/listings/sale")
	if err != nil {
		return nil, fmt.Errorf("fetching listings for %q: %w", location, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider HTTP %d for %q: %s", resp.StatusCode(), location, resp.String())
	}

	out := make([]domain.Property, 0, len(listings))
	for _, l := range listings {
		out = append(out, toProperty(l))
	}
	return out, nil
}

// toProperty maps a provider listing to the domain record. A provider rent
// of zero leaves RentEstimate empty; the search service fills it in via the
// rent estimator and tags the source accordingly.
func toProperty(l providerListing) domain.Property {
	p := domain.Property{
		ID:           l.ID,
		Address:      l.FormattedAddress,
		Price:        decimal.NewFromFloat(l.Price),
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Sqft:         l.SquareFootage,
		URL:          l.ListingURL,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		DaysOnMarket: l.DaysOnMarket,
	}
	if l.RentEstimate > 0 {
		p.RentEstimate = decimal.NewFromFloat(l.RentEstimate)
		p.RentSource = domain.RentSourceProvider
	}
	return p
}
