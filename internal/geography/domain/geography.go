// Package domain holds the geography reference records: countries, the areas they are divided
// into and municipalities.
package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Country struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Municipality belongs to a country and optionally to an area within it.
type Municipality struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CountryID uuid.UUID  `json:"country_id"`
	AreaID    *uuid.UUID `json:"area_id"`
}

// Area is a node in a country's area tree. Path is the dot-separated chain of ancestor ids ending
// in the area's own id.
type Area struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CountryID uuid.UUID `json:"country_id"`
	Path      string    `json:"path"`
}

// Depth is the number of ancestors above the area.
func (a *Area) Depth() int {
	return strings.Count(a.Path, ".")
}

// SortByDepth orders areas parents-first, keeping the incoming order among equal depths.
func SortByDepth(areas []*Area) {
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Depth() < areas[j].Depth()
	})
}
