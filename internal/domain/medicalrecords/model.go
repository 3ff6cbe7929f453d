package medicalrecords

import (
	"time"

	"epaw/internal/domain/shared"
)

type VisitType string

const (
	VisitInitialExam VisitType = "initial_exam"
	VisitFollowUp    VisitType = "follow_up"
	VisitEmergency   VisitType = "emergency"
	VisitVaccination VisitType = "vaccination"
	VisitSurgery     VisitType = "surgery"
	VisitCheckup     VisitType = "checkup"
	VisitOther       VisitType = "other"
)

var VisitTypes = []VisitType{
	VisitInitialExam, VisitFollowUp, VisitEmergency, VisitVaccination, VisitSurgery, VisitCheckup, VisitOther,
}

func (v VisitType) Label() string {
	switch v {
	case VisitInitialExam:
		return "Examen Inicial"
	case VisitFollowUp:
		return "Seguimiento"
	case VisitEmergency:
		return "Emergencia"
	case VisitVaccination:
		return "Vacunación"
	case VisitSurgery:
		return "Cirugía"
	case VisitCheckup:
		return "Chequeo"
	case VisitOther:
		return "Otro"
	}
	return string(v)
}

func (v VisitType) Valid() bool {
	for _, t := range VisitTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Label() string {
	switch s {
	case StatusScheduled:
		return "Programada"
	case StatusInProgress:
		return "En Progreso"
	case StatusCompleted:
		return "Completada"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type AnimalDetails struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Species   string   `json:"species"`
	Breed     string   `json:"breed,omitempty"`
	PhotoURLs []string `json:"photoUrls,omitempty"`
}

type ClinicInfo struct {
	ClinicName    string   `json:"clinicName,omitempty"`
	LicenseNumber string   `json:"licenseNumber,omitempty"`
	Specialties   []string `json:"specialties,omitempty"`
}

type VeterinaryDetails struct {
	ID                string      `json:"_id"`
	Name              string      `json:"name"`
	Email             string      `json:"email,omitempty"`
	Phone             string      `json:"phone,omitempty"`
	VeterinaryDetails *ClinicInfo `json:"veterinaryDetails,omitempty"`
}

type ReportDetails struct {
	ID           string `json:"_id"`
	Description  string `json:"description"`
	UrgencyLevel string `json:"urgencyLevel,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Record es una visita/caso registrado por una veterinaria.
type Record struct {
	ID              shared.ID                     `json:"_id"`
	Animal          shared.Ref[AnimalDetails]     `json:"animalId,omitzero"`
	Report          shared.Ref[ReportDetails]     `json:"reportId,omitzero"`
	Veterinary      shared.Ref[VeterinaryDetails] `json:"veterinaryId,omitzero"`
	VisitType       VisitType                     `json:"visitType"`
	Diagnosis       string                        `json:"diagnosis"`
	Treatment       string                        `json:"treatment"`
	Medications     []Medication                  `json:"medications"`
	Notes           string                        `json:"notes,omitempty"`
	Status          Status                        `json:"status"`
	EstimatedCost   *float64                      `json:"estimatedCost,omitempty"`
	ActualCost      *float64                      `json:"actualCost,omitempty"`
	PhotoURLs       []string                      `json:"photoUrls"`
	VisitDate       time.Time                     `json:"visitDate"`
	NextAppointment *time.Time                    `json:"nextAppointment,omitempty"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

// CreateRequest: animalId y reportId son opcionales, pero se espera al menos uno.
type CreateRequest struct {
	AnimalID        string       `json:"animalId,omitempty"`
	ReportID        string       `json:"reportId,omitempty"`
	VisitType       VisitType    `json:"visitType"`
	Diagnosis       string       `json:"diagnosis"`
	Treatment       string       `json:"treatment"`
	Medications     []Medication `json:"medications"`
	Notes           *string      `json:"notes,omitempty"`
	EstimatedCost   *float64     `json:"estimatedCost,omitempty"`
	PhotoURLs       []string     `json:"photoUrls"`
	VisitDate       time.Time    `json:"visitDate"`
	NextAppointment *time.Time   `json:"nextAppointment,omitempty"`
}

// UpdateRequest es parcial: solo viajan los campos no-nil.
type UpdateRequest struct {
	Status     *Status  `json:"status,omitempty"`
	ActualCost *float64 `json:"actualCost,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (u UpdateRequest) Empty() bool {
	return u.Status == nil && u.ActualCost == nil && u.Notes == nil
}
