package domain

import "github.com/google/uuid"

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Active    bool      `json:"active"`
}

type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
}

// Technician is the read-only projection the dispatch core consumes from the
// directory.
type Technician struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	SubcategoryID    uuid.UUID `json:"subcategory_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone,omitempty"`
	Lat              *float64  `json:"lat,omitempty"`
	Lng              *float64  `json:"lng,omitempty"`
	Available        bool      `json:"available"`
	Active           bool      `json:"active"`
	CoverageRadiusKM *float64  `json:"coverage_radius_km,omitempty"`
}

func (t *Technician) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

func (t *Technician) HasLocation() bool { return t.Lat != nil && t.Lng != nil }

// Candidate is a ranked finder result.
type Candidate struct {
	TechnicianID   uuid.UUID `json:"technician_id"`
	DistanceMeters float64   `json:"distance_meters"`
}
