package settings

import (
	"context"
	"sync"
)

// MockStore is a test double for the Store interface
// It allows tests to control behavior and verify interactions
type MockStore struct {
	mu sync.Mutex

	// Data holds the configured settings; a missing key is an absent setting
	Data map[string][]string

	// Track method calls for verification in tests
	GetCalls    []string
	SetCalls    []string
	UnsetCalls  []string
	CloseCalled bool

	// Control behavior for error scenarios
	GetError   error
	SetError   error
	UnsetError error
	CloseError error
}

// NewMockStore creates a mock store with a complete sample policy
func NewMockStore() *MockStore {
	return &MockStore{
		Data: map[string][]string{
			KeySpecificAllowedPostcodes: {"AA00 0AA"},
			KeyAllowedPostcodesLSOA:     {"Lsoa1"},
		},
	}
}

// NewEmptyMockStore creates a mock store where every setting is absent
func NewEmptyMockStore() *MockStore {
	return &MockStore{
		Data: map[string][]string{},
	}
}

// Get implements the Store interface
func (m *MockStore) Get(_ context.Context, key string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)

	if m.GetError != nil {
		return nil, false, m.GetError
	}

	values, exists := m.Data[key]
	if !exists {
		return nil, false, nil
	}
	return cloneValues(values), true, nil
}

// Set implements the Store interface
func (m *MockStore) Set(_ context.Context, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, key)

	if m.SetError != nil {
		return m.SetError
	}
	m.Data[key] = cloneValues(values)
	return nil
}

// Unset implements the Store interface
func (m *MockStore) Unset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnsetCalls = append(m.UnsetCalls, key)

	if m.UnsetError != nil {
		return m.UnsetError
	}
	delete(m.Data, key)
	return nil
}

// Close implements the Store interface
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalled = true
	return m.CloseError
}
