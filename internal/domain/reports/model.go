package reports

import (
	"time"

	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

func (u UrgencyLevel) Label() string {
	switch u {
	case UrgencyLow:
		return "Baja"
	case UrgencyMedium:
		return "Media"
	case UrgencyHigh:
		return "Alta"
	case UrgencyCritical:
		return "Crítica"
	}
	return string(u)
}

type AnimalType string

const (
	AnimalDog    AnimalType = "dog"
	AnimalCat    AnimalType = "cat"
	AnimalBird   AnimalType = "bird"
	AnimalRabbit AnimalType = "rabbit"
	AnimalOther  AnimalType = "other"
)

func (a AnimalType) Label() string {
	switch a {
	case AnimalDog:
		return "Perro"
	case AnimalCat:
		return "Gato"
	case AnimalBird:
		return "Ave"
	case AnimalRabbit:
		return "Conejo"
	case AnimalOther:
		return "Otro"
	}
	return string(a)
}

type Status string

const (
	StatusPending      Status = "pending"
	StatusAssigned     Status = "assigned"
	StatusRescued      Status = "rescued"
	StatusInVeterinary Status = "in_veterinary"
	StatusRecovered    Status = "recovered"
	StatusAdopted      Status = "adopted"
	StatusClosed       Status = "closed"
)

// Lifecycle es el orden esperado de estados. El server no lo impone y el cliente tampoco.
var Lifecycle = []Status{
	StatusPending,
	StatusAssigned,
	StatusRescued,
	StatusInVeterinary,
	StatusRecovered,
	StatusAdopted,
	StatusClosed,
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusAssigned:
		return "Asignado"
	case StatusRescued:
		return "Rescatado"
	case StatusInVeterinary:
		return "En Veterinaria"
	case StatusRecovered:
		return "Recuperado"
	case StatusAdopted:
		return "Adoptado"
	case StatusClosed:
		return "Cerrado"
	}
	return string(s)
}

func (s Status) Valid() bool {
	for _, v := range Lifecycle {
		if v == s {
			return true
		}
	}
	return false
}

// SuggestedNext devuelve el siguiente estado del ciclo (solo para sugerirlo en UI).
func SuggestedNext(s Status) (Status, bool) {
	for i, v := range Lifecycle {
		if v == s && i+1 < len(Lifecycle) {
			return Lifecycle[i+1], true
		}
	}
	return "", false
}

type ReporterInfo struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

type OrganizationInfo struct {
	ID                  string                     `json:"_id"`
	Name                string                     `json:"name"`
	Email               string                     `json:"email,omitempty"`
	Phone               string                     `json:"phone,omitempty"`
	OrganizationDetails *users.OrganizationDetails `json:"organizationDetails,omitempty"`
}

func (o OrganizationInfo) DisplayName() string {
	if o.OrganizationDetails != nil && o.OrganizationDetails.OrganizationName != "" {
		return o.OrganizationDetails.OrganizationName
	}
	return o.Name
}

type VeterinaryInfo struct {
	ID                string                   `json:"_id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email,omitempty"`
	Phone             string                   `json:"phone,omitempty"`
	VeterinaryDetails *users.VeterinaryDetails `json:"veterinaryDetails,omitempty"`
}

func (v VeterinaryInfo) DisplayName() string {
	if v.VeterinaryDetails != nil && v.VeterinaryDetails.ClinicName != "" {
		return v.VeterinaryDetails.ClinicName
	}
	return v.Name
}

// StatusChange es una entrada del historial que calcula el server.
type StatusChange struct {
	Status    Status     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	ChangedAt *time.Time `json:"changedAt,omitempty"`
}

// Report es un reporte de rescate.
type Report struct {
	ID              shared.ID                    `json:"_id"`
	Reporter        shared.Ref[ReporterInfo]     `json:"reporterId,omitzero"`
	Organization    shared.Ref[OrganizationInfo] `json:"organizationId,omitzero"`
	Veterinary      shared.Ref[VeterinaryInfo]   `json:"veterinaryId,omitzero"`
	Description     string                       `json:"description"`
	UrgencyLevel    UrgencyLevel                 `json:"urgencyLevel"`
	AnimalType      AnimalType                   `json:"animalType"`
	Status          Status                       `json:"status"`
	Location        shared.GeoPoint              `json:"location"`
	LocationAddress string                       `json:"locationAddress,omitempty"`
	PhotoURLs       []string                     `json:"photoUrls"`
	RescuedAt       *time.Time                   `json:"rescuedAt,omitempty"`
	ClosedAt        *time.Time                   `json:"closedAt,omitempty"`
	Notes           string                       `json:"notes,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
	StatusHistory   []StatusChange               `json:"statusHistory,omitempty"`
}

// ReporterName devuelve el nombre si el server pobló la referencia.
func (r Report) ReporterName() string {
	if r.Reporter.Details != nil {
		return r.Reporter.Details.Name
	}
	return ""
}

// Filter para GET /api/reports.
type Filter struct {
	Page         int
	Limit        int
	Status       Status
	UrgencyLevel UrgencyLevel
	AnimalType   AnimalType
}

type CreateRequest struct {
	Description     string       `json:"description"`
	UrgencyLevel    UrgencyLevel `json:"urgencyLevel"`
	AnimalType      AnimalType   `json:"animalType"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	LocationAddress string       `json:"locationAddress,omitempty"`
	PhotoURLs       []string     `json:"photoUrls"`
	OrganizationID  string       `json:"organizationId,omitempty"`
}

type UpdateStatusRequest struct {
	Status Status  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}
