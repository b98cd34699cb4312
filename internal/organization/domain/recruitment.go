package domain

import "github.com/google/uuid"

// RegionKind is the geography level a recruitment area entry points at.
type RegionKind string

const (
	RegionCountry      RegionKind = "country"
	RegionArea         RegionKind = "area"
	RegionMunicipality RegionKind = "municipality"
)

// RecruitmentArea is the set of regions an organization recruits members from.
type RecruitmentArea struct {
	Countries      []uuid.UUID `json:"countries"`
	Areas          []uuid.UUID `json:"areas"`
	Municipalities []uuid.UUID `json:"municipalities"`
}

// Empty reports whether no region is selected.
func (r *RecruitmentArea) Empty() bool {
	return r == nil || len(r.Countries)+len(r.Areas)+len(r.Municipalities) == 0
}

// Add appends id to the list for kind. Unknown kinds are ignored.
func (r *RecruitmentArea) Add(kind RegionKind, id uuid.UUID) {
	switch kind {
	case RegionCountry:
		r.Countries = append(r.Countries, id)
	case RegionArea:
		r.Areas = append(r.Areas, id)
	case RegionMunicipality:
		r.Municipalities = append(r.Municipalities, id)
	}
}
