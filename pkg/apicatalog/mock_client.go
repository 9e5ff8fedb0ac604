package apicatalog

import (
	"context"
	"sync"

	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// MockData seeds deterministic catalog responses for tests or local demos.
type MockData struct {
	Tiles      []catalog.Tile
	FetchErr   error
	RefreshErr error
}

// MockClient implements TileSource and StaticAPIRefresher from fixtures.
type MockClient struct {
	mu        sync.RWMutex
	data      MockData
	fetches   int
	refreshes int
}

// NewMockClient builds a mock catalog client.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchTiles returns a copy of the configured tiles.
func (c *MockClient) FetchTiles(context.Context) ([]catalog.Tile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	if c.data.FetchErr != nil {
		return nil, c.data.FetchErr
	}
	return append([]catalog.Tile(nil), c.data.Tiles...), nil
}

// RefreshStaticAPIs returns the configured refresh error.
func (c *MockClient) RefreshStaticAPIs(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshes++
	return c.data.RefreshErr
}

// SetTiles replaces the tiles returned by later fetches.
func (c *MockClient) SetTiles(tiles []catalog.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Tiles = append([]catalog.Tile(nil), tiles...)
}

// Calls reports how many fetches and refreshes were served.
func (c *MockClient) Calls() (fetches, refreshes int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetches, c.refreshes
}
