package catalog

import (
	"sort"
	"strings"
)

// ServiceSorter returns the unique services of tiles in display order.
type ServiceSorter func(tiles []Tile) []Service

// SortServices collects unique services (by id) ordered by title, then id.
func SortServices(tiles []Tile) []Service {
	seen := map[string]struct{}{}
	var services []Service
	for _, tile := range tiles {
		for _, svc := range tile.Services {
			if _, ok := seen[svc.ServiceID]; ok {
				continue
			}
			seen[svc.ServiceID] = struct{}{}
			services = append(services, svc)
		}
	}
	sort.SliceStable(services, func(i, j int) bool {
		a, b := strings.ToLower(services[i].Title), strings.ToLower(services[j].Title)
		if a != b {
			return a < b
		}
		return services[i].ServiceID < services[j].ServiceID
	})
	return services
}

// PinnedServiceSorter moves the given service ids to the front, in that
// order, and keeps the base order for the rest.
func PinnedServiceSorter(base ServiceSorter, pinned []string) ServiceSorter {
	if base == nil {
		base = SortServices
	}
	return func(tiles []Tile) []Service {
		return applyOrderOverride(base(tiles), pinned)
	}
}

func applyOrderOverride(services []Service, order []string) []Service {
	if len(order) == 0 {
		return services
	}
	index := make(map[string]Service, len(services))
	for _, svc := range services {
		index[svc.ServiceID] = svc
	}
	result := make([]Service, 0, len(services))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if svc, ok := index[id]; ok {
			if _, dup := seen[id]; dup {
				continue
			}
			result = append(result, svc)
			seen[id] = struct{}{}
		}
	}
	for _, svc := range services {
		if _, ok := seen[svc.ServiceID]; !ok {
			result = append(result, svc)
		}
	}
	return result
}

// FilterTiles keeps tiles whose title, or any service title or id, contains
// the criteria (case-insensitive). Blank criteria keep everything.
func FilterTiles(tiles []Tile, criteria string) []Tile {
	needle := strings.ToLower(strings.TrimSpace(criteria))
	if needle == "" {
		return tiles
	}
	var out []Tile
	for _, tile := range tiles {
		if tileMatches(tile, needle) {
			out = append(out, tile)
		}
	}
	return out
}

func tileMatches(tile Tile, needle string) bool {
	if strings.Contains(strings.ToLower(tile.Title), needle) {
		return true
	}
	for _, svc := range tile.Services {
		if strings.Contains(strings.ToLower(svc.Title), needle) ||
			strings.Contains(strings.ToLower(svc.ServiceID), needle) {
			return true
		}
	}
	return false
}

// GridEntry is one rendered tile for one owning service.
type GridEntry struct {
	Key     string                `json:"key"`
	Service Service               `json:"service"`
	Tile    Tile                  `json:"tile"`
	Content ServiceContentSummary `json:"content"`
}

// GroupTiles renders each tile once per owning service, services in sorter order.
func GroupTiles(tiles []Tile, sorter ServiceSorter, contents *ContentCatalog) []GridEntry {
	if len(tiles) == 0 {
		return nil
	}
	if sorter == nil {
		sorter = SortServices
	}
	var entries []GridEntry
	seen := map[string]struct{}{}
	for _, svc := range sorter(tiles) {
		if _, ok := seen[svc.ServiceID]; ok {
			continue
		}
		seen[svc.ServiceID] = struct{}{}
		summary := contents.CountAdditionalContents(svc)
		for _, tile := range tiles {
			if !tile.HasService(svc.ServiceID) {
				continue
			}
			entries = append(entries, GridEntry{
				Key:     tile.ID + "/" + svc.ServiceID,
				Service: svc,
				Tile:    tile,
				Content: summary,
			})
		}
	}
	return entries
}
