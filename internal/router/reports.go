package router

import (
	"math"
	"net/http"
	"strings"

	"epaw/internal/domain/reports"
	"epaw/internal/domain/shared"
	"epaw/internal/domain/users"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

const msgReportNotFound = "Reporte no encontrado"

func registerReportRoutes(r chi.Router, a *api) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", listReportsHandler(a))
		rr.Post("/", createReportHandler(a))
		rr.Get("/nearby", nearbyReportsHandler(a))
		rr.Get("/my-reports", myReportsHandler(a))
		rr.Get("/organization/assigned", organizationReportsHandler(a))
		rr.Get("/veterinary/assigned", veterinaryReportsHandler(a))
		rr.Get("/{reportID}", getReportHandler(a))
		rr.Put("/{reportID}", updateReportStatusHandler(a))
	})
}

// reportUpdate es el body del PUT. veterinaryId es extra del sandbox para asignar casos.
type reportUpdate struct {
	Status       reports.Status `json:"status"`
	Notes        *string        `json:"notes"`
	VeterinaryID *string        `json:"veterinaryId"`
}

func listReportsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		status := reports.Status(q.Get("status"))
		urgency := reports.UrgencyLevel(q.Get("urgencyLevel"))
		animal := reports.AnimalType(q.Get("animalType"))

		a.writeReports(w, r, func(rep reports.Report) bool {
			return (status == "" || rep.Status == status) &&
				(urgency == "" || rep.UrgencyLevel == urgency) &&
				(animal == "" || rep.AnimalType == animal)
		})
	}
}

func myReportsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		a.writeReports(w, r, func(rep reports.Report) bool {
			return rep.Reporter.ID == c.UserID
		})
	}
}

func organizationReportsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleOrganization)
		if !ok {
			return
		}
		status := reports.Status(r.URL.Query().Get("status"))
		a.writeReports(w, r, func(rep reports.Report) bool {
			return rep.Organization.ID == c.UserID && (status == "" || rep.Status == status)
		})
	}
}

func veterinaryReportsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleVeterinary)
		if !ok {
			return
		}
		a.writeReports(w, r, func(rep reports.Report) bool {
			return rep.Veterinary.ID == c.UserID
		})
	}
}

func (a *api) writeReports(w http.ResponseWriter, r *http.Request, keep func(reports.Report) bool) {
	all, err := storage.All[reports.Report](r.Context(), a.store, storage.Reports)
	if err != nil {
		a.storeError(w, r, err, "")
		return
	}
	items, p := paginate(r, newestFirst(where(all, keep)), reports.DefaultLimit)
	writePage(w, items, p)
}

func nearbyReportsHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, okLat := queryFloat(r, "latitude")
		lng, okLng := queryFloat(r, "longitude")
		if !okLat || !okLng {
			writeError(w, http.StatusBadRequest, "Latitud y longitud son requeridas")
			return
		}
		maxDistance := float64(queryInt(r, "maxDistance", reports.DefaultMaxDistance))

		all, err := storage.All[reports.Report](r.Context(), a.store, storage.Reports)
		if err != nil {
			a.storeError(w, r, err, "")
			return
		}
		near := where(all, func(rep reports.Report) bool {
			return rep.Status != reports.StatusClosed &&
				distanceMeters(lat, lng, rep.Location.Latitude(), rep.Location.Longitude()) <= maxDistance
		})
		writeData(w, http.StatusOK, newestFirst(near))
	}
}

func getReportHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rep reports.Report
		if err := storage.Load(r.Context(), a.store, storage.Reports, chi.URLParam(r, "reportID"), &rep); err != nil {
			a.storeError(w, r, err, msgReportNotFound)
			return
		}
		a.populateReport(r, &rep)
		writeData(w, http.StatusOK, rep)
	}
}

func createReportHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireClaims(w, r)
		if !ok {
			return
		}
		var in reports.CreateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		in.Description = strings.TrimSpace(in.Description)
		if in.Description == "" || in.UrgencyLevel == "" || in.AnimalType == "" {
			writeError(w, http.StatusBadRequest, "Descripción, urgencia y tipo de animal son requeridos")
			return
		}
		if in.PhotoURLs == nil {
			in.PhotoURLs = []string{}
		}

		now := a.timestamp()
		rep := reports.Report{
			ID:              shared.ID(shared.NewID()),
			Reporter:        shared.RefTo[reports.ReporterInfo](c.UserID),
			Description:     in.Description,
			UrgencyLevel:    in.UrgencyLevel,
			AnimalType:      in.AnimalType,
			Status:          reports.StatusPending,
			Location:        shared.NewPoint(in.Latitude, in.Longitude),
			LocationAddress: strings.TrimSpace(in.LocationAddress),
			PhotoURLs:       in.PhotoURLs,
			CreatedAt:       now,
			UpdatedAt:       now,
			StatusHistory:   []reports.StatusChange{{Status: reports.StatusPending, ChangedAt: &now}},
		}
		if org := strings.TrimSpace(in.OrganizationID); org != "" {
			rep.Organization = shared.RefTo[reports.OrganizationInfo](org)
		}

		if err := storage.Save(r.Context(), a.store, storage.Reports, rep.ID.String(), rep); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		writeDataMessage(w, http.StatusCreated, rep, "Reporte creado exitosamente")
	}
}

// El sandbox no valida transiciones, igual que la API.
func updateReportStatusHandler(a *api) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := requireRole(w, r, users.RoleOrganization, users.RoleVeterinary)
		if !ok {
			return
		}
		var in reportUpdate
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if !in.Status.Valid() {
			writeError(w, http.StatusBadRequest, "Estado inválido")
			return
		}

		id := chi.URLParam(r, "reportID")
		var rep reports.Report
		if err := storage.Load(r.Context(), a.store, storage.Reports, id, &rep); err != nil {
			a.storeError(w, r, err, msgReportNotFound)
			return
		}

		switch users.Role(c.Role) {
		case users.RoleOrganization:
			if rep.Organization.ID != "" && rep.Organization.ID != c.UserID {
				writeError(w, http.StatusForbidden, msgForbidden)
				return
			}
			rep.Organization = shared.RefTo[reports.OrganizationInfo](c.UserID)
			if in.VeterinaryID != nil {
				rep.Veterinary = shared.RefTo[reports.VeterinaryInfo](strings.TrimSpace(*in.VeterinaryID))
			}
		case users.RoleVeterinary:
			if rep.Veterinary.ID != c.UserID {
				writeError(w, http.StatusForbidden, msgForbidden)
				return
			}
		}

		now := a.timestamp()
		change := reports.StatusChange{Status: in.Status, ChangedAt: &now}
		if in.Notes != nil {
			change.Notes = strings.TrimSpace(*in.Notes)
			rep.Notes = change.Notes
		}
		rep.Status = in.Status
		rep.StatusHistory = append(rep.StatusHistory, change)
		rep.UpdatedAt = now
		switch in.Status {
		case reports.StatusRescued:
			if rep.RescuedAt == nil {
				rep.RescuedAt = &now
			}
		case reports.StatusClosed:
			rep.ClosedAt = &now
		}

		if err := storage.Save(r.Context(), a.store, storage.Reports, id, rep); err != nil {
			a.storeError(w, r, err, "")
			return
		}
		a.populateReport(r, &rep)
		writeDataMessage(w, http.StatusOK, rep, "Estado actualizado")
	}
}

const earthRadiusMeters = 6371000.0

// distanceMeters es la distancia haversine entre dos puntos.
func distanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
