package router

import (
	"net/http"
	"sort"
	"strings"

	"epaw/internal/domain/animals"
	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

const msgRecordNotFound = "Registro médico no encontrado"

func registerMedicalRecordRoutes(r chi.Router, a *api) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Post("/", createRecordHandler(a))
		mr.Get("/my-cases", myCasesHandler(a))
		mr.Get("/animal/{animalID}", animalHistoryHandler(a))
		mr.Get("/{recordID}", getRecordHandler(a))
		mr.Put("/{recordID}", updateRecordHandler(a))
	})
}

func validRecordStatus(s medicalrecords.Status) bool {
	switch s {
	case medicalrecords.StatusScheduled, medicalrecords.StatusInProgress,
		medicalrecords.StatusCompleted, medicalrecords.StatusCancelled:
		return true
	}
	return false
}

func createRecordHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleVeterinary)
		if !ok {
			return
		}
		var in medicalrecords.CreateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in.AnimalID = strings.TrimSpace(in.AnimalID)
		in.ReportID = strings.TrimSpace(in.ReportID)
		in.Diagnosis = strings.TrimSpace(in.Diagnosis)
		in.Treatment = strings.TrimSpace(in.Treatment)
		if in.AnimalID == "" && in.ReportID == "" {
			writeError(w, http.StatusBadRequest, "Se requiere un animal o un reporte")
			return
		}
		if !in.VisitType.Valid() || in.Diagnosis == "" || in.Treatment == "" {
			writeError(w, http.StatusBadRequest, "Tipo de visita, diagnóstico y tratamiento son requeridos")
			return
		}

		if in.AnimalID != "" {
			if err := storage.Load(r.Context(), a.store, storage.Animals, in.AnimalID, &animals.Animal{}); err != nil {
				a.storeError(w, r, err, msgAnimalNotFound)
				return
			}
		}
		if in.ReportID != "" {
			if err := storage.Load(r.Context(), a.store, storage.Reports, in.ReportID, &reports.Report{}); err != nil {
				a.storeError(w, r, err, msgReportNotFound)
				return
			}
		}

		now := a.timestamp()
		rec := medicalrecords.Record{
			ID:              shared.ID(shared.NewID()),
			Veterinary:      shared.RefTo[medicalrecords.VeterinaryDetails](c.UserID),
			VisitType:       in.VisitType,
			Diagnosis:       in.Diagnosis,
			Treatment:       in.Treatment,
			Medications:     in.Medications,
			Status:          medicalrecords.StatusScheduled,
			EstimatedCost:   in.EstimatedCost,
			PhotoURLs:       in.PhotoURLs,
			VisitDate:       in.VisitDate,
			NextAppointment: in.NextAppointment,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.AnimalID != "" {
			rec.Animal = shared.RefTo[medicalrecords.AnimalDetails](in.AnimalID)
		}
		if in.ReportID != "" {
			rec.Report = shared.RefTo[medicalrecords.ReportDetails](in.ReportID)
		}
		if in.Notes != nil {
			rec.Notes = strings.TrimSpace(*in.Notes)
		}
		if rec.Medications == nil {
			rec.Medications = []medicalrecords.Medication{}
		}
		if rec.PhotoURLs == nil {
			rec.PhotoURLs = []string{}
		}
		if rec.VisitDate.IsZero() {
			rec.VisitDate = now
		}

		if err := storage.Save(r.Context(), a.store, storage.MedicalRecords, rec.ID.String(), rec); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusCreated, rec, "Registro médico creado")
	}
}

func myCasesHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleVeterinary)
		if !ok {
			return
		}
		status := medicalrecords.Status(r.URL.Query().Get("status"))

		all, err := storage.All[medicalrecords.Record](r.Context(), a.store, storage.MedicalRecords)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		mine := where(all, func(rec medicalrecords.Record) bool {
			return rec.Veterinary.ID == c.UserID && (status == "" || rec.Status == status)
		})
		items, p := paginate(r, newestFirst(mine), medicalrecords.DefaultLimit)
		writePage(w, items, p)
	}
}

func animalHistoryHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}
		animalID := chi.URLParam(r, "animalID")

		all, err := storage.All[medicalrecords.Record](r.Context(), a.store, storage.MedicalRecords)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		history := where(all, func(rec medicalrecords.Record) bool {
			return rec.Animal.ID == animalID
		})
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].VisitDate.After(history[j].VisitDate)
		})
		writeData(w, http.StatusOK, history)
	}
}

func getRecordHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}
		var rec medicalrecords.Record
		if err := storage.Load(r.Context(), a.store, storage.MedicalRecords, chi.URLParam(r, "recordID"), &rec); err != nil {
			a.storeError(w, r, err, msgRecordNotFound)
			return
		}
		a.populateRecord(r, &rec)
		writeData(w, http.StatusOK, rec)
	}
}

func updateRecordHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleVeterinary)
		if !ok {
			return
		}
		var in medicalrecords.UpdateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if in.Status != nil && !validRecordStatus(*in.Status) {
			writeError(w, http.StatusBadRequest, "Estado inválido")
			return
		}

		id := chi.URLParam(r, "recordID")
		var rec medicalrecords.Record
		if err := storage.Load(r.Context(), a.store, storage.MedicalRecords, id, &rec); err != nil {
			a.storeError(w, r, err, msgRecordNotFound)
			return
		}
		if rec.Veterinary.ID != c.UserID {
			writeError(w, http.StatusForbidden, msgForbidden)
			return
		}

		if in.Status != nil {
			rec.Status = *in.Status
		}
		if in.ActualCost != nil {
			rec.ActualCost = in.ActualCost
		}
		if in.Notes != nil {
			rec.Notes = strings.TrimSpace(*in.Notes)
		}
		rec.UpdatedAt = a.timestamp()

		if err := storage.Save(r.Context(), a.store, storage.MedicalRecords, id, rec); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusOK, rec, "Registro médico actualizado")
	}
}
