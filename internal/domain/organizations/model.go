package organizations

import (
	"time"

	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
)

// Organization es el ítem del listado público de organizaciones.
type Organization struct {
	ID                  shared.ID                  `json:"_id"`
	Name                string                     `json:"name"`
	OrganizationDetails *users.OrganizationDetails `json:"organizationDetails,omitempty"`
}

func (o Organization) DisplayName() string {
	if o.OrganizationDetails != nil && o.OrganizationDetails.OrganizationName != "" {
		return o.OrganizationDetails.OrganizationName
	}
	return o.Name
}

type ReportStats struct {
	Total            int `json:"total"`
	Pending          int `json:"pending"`
	Rescued          int `json:"rescued"`
	InVeterinary     int `json:"inVeterinary"`
	ReadyForAdoption int `json:"readyForAdoption"`
}

type AnimalStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Adopted   int `json:"adopted"`
}

type RecentReport struct {
	ID              shared.ID `json:"_id"`
	Description     string    `json:"description"`
	AnimalType      string    `json:"animalType"`
	UrgencyLevel    string    `json:"urgencyLevel"`
	LocationAddress string    `json:"locationAddress,omitempty"`
	PhotoURLs       []string  `json:"photoUrls,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type RecentAnimal struct {
	ID        shared.ID `json:"_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	PhotoURLs []string  `json:"photoUrls,omitempty"`
}

type Recent struct {
	Reports []RecentReport `json:"reports"`
	Animals []RecentAnimal `json:"animals"`
}

// Stats alimenta el dashboard de la organización.
type Stats struct {
	Reports ReportStats `json:"reports"`
	Animals AnimalStats `json:"animals"`
	Recent  Recent      `json:"recent"`
}
