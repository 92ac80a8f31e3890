package lookup

import (
	"context"
	"sync"

	"github.com/evyataryagoni/postcode-checker/internal/models"
)

// MockClient is a test double for the Client interface
// Results are scripted per normalized postcode
type MockClient struct {
	mu sync.Mutex

	// Results maps a normalized postcode to the result it returns
	Results map[string]models.LookupResult

	// Default is returned for postcodes missing from Results
	Default models.LookupResult

	// Track method calls for verification in tests
	LookupCalls []string
}

// NewMockClient creates a mock whose unknown postcodes resolve to NotFound
func NewMockClient() *MockClient {
	return &MockClient{
		Results: map[string]models.LookupResult{},
		Default: models.NotFound("mock://postcodes", 404, "Postcode not found"),
	}
}

// Lookup implements the Client interface
func (m *MockClient) Lookup(_ context.Context, postcode string) models.LookupResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LookupCalls = append(m.LookupCalls, postcode)

	if result, ok := m.Results[postcode]; ok {
		return result
	}
	return m.Default
}

// Calls returns the number of lookups performed
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LookupCalls)
}
