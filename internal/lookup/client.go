package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/evyataryagoni/postcode-checker/internal/models"
)

// DefaultTimeout bounds a single lookup request
const DefaultTimeout = 5 * time.Second

// maxBodySize caps how much of a response body is read
const maxBodySize = 1 << 20

// Client resolves a postcode to its geographic area
// Failures are reported inside the result, never as an error
type Client interface {
	Lookup(ctx context.Context, postcode string) models.LookupResult
}

// apiResponse is the postcodes.io response envelope
//
// Success: {"status":200,"result":{"postcode":"AB0 1CD","lsoa":"Lsoa1 034A"}}
// Failure: {"status":404,"error":"Postcode not found"}
type apiResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Result *struct {
		Postcode string  `json:"postcode"`
		LSOA     *string `json:"lsoa"`
	} `json:"result"`
}

// HTTPClient calls a postcodes.io compatible service over HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewHTTPClient creates a lookup client
//
// Parameters:
//   - baseURL: service root without trailing slash (e.g. "http://postcodes.io")
//   - timeout: per-request timeout, DefaultTimeout when zero
//   - m: metrics collector (optional, can be nil)
func NewHTTPClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

// URL returns the lookup URL for a normalized postcode
// Example: http://postcodes.io/postcodes/AB01CD
func (c *HTTPClient) URL(postcode string) string {
	return c.baseURL + "/postcodes/" + url.PathEscape(postcode)
}

// Lookup implements the Client interface
//
// Outcomes:
//   - 200 with a result: Found with result.lsoa
//   - 404: NotFound
//   - any other status, transport error, timeout or undecodable body: ServiceError
func (c *HTTPClient) Lookup(ctx context.Context, postcode string) models.LookupResult {
	start := time.Now()
	result := c.lookup(ctx, postcode)

	if c.metrics != nil {
		c.metrics.PostcodeLookupDuration.Observe(time.Since(start).Seconds())
		c.metrics.PostcodeLookupsTotal.WithLabelValues(result.Status.String()).Inc()
	}

	return result
}

func (c *HTTPClient) lookup(ctx context.Context, postcode string) models.LookupResult {
	target := c.URL(postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.ServiceError(target, 0, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ServiceError(target, 0, transportMessage(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return models.ServiceError(target, resp.StatusCode, transportMessage(err))
	}

	var payload apiResponse
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode == http.StatusOK {
		if decodeErr != nil {
			return models.ServiceError(target, resp.StatusCode, fmt.Sprintf("invalid response body: %v", decodeErr))
		}
		if payload.Result == nil {
			return models.ServiceError(target, resp.StatusCode, "response has no result")
		}
		area := ""
		if payload.Result.LSOA != nil {
			area = *payload.Result.LSOA
		}
		return models.Found(target, area)
	}

	// Prefer the status and message reported in the body, like postcodes.io does
	status := resp.StatusCode
	message := http.StatusText(resp.StatusCode)
	if decodeErr == nil {
		if payload.Status != 0 {
			status = payload.Status
		}
		if payload.Error != "" {
			message = payload.Error
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return models.NotFound(target, status, message)
	}
	return models.ServiceError(target, status, message)
}

// transportMessage flattens network errors, naming timeouts explicitly
func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}
	return err.Error()
}
