package store

import (
	"time"

	"github.com/google/uuid"
)

// Store is a physical shop belonging to an organization, optionally
// grouped under an area.
type Store struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Name           string     `json:"name"`
	Code           *string    `json:"code,omitempty"`
	AreaID         *uuid.UUID `json:"area_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Area groups stores inside an organization.
type Area struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
}

// Info is a store row for list views, with its area name joined in.
type Info struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Code     *string    `json:"code,omitempty"`
	AreaID   *uuid.UUID `json:"area_id,omitempty"`
	AreaName *string    `json:"area_name,omitempty"`
}

// Names holds the display names for the dashboard header. Any of the
// three may be empty when the corresponding id was not supplied.
type Names struct {
	Organization string `json:"organization,omitempty"`
	Store        string `json:"store,omitempty"`
	Area         string `json:"area,omitempty"`
}
