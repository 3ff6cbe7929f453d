package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"epaw/internal/domain/adoptions"
	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/organizations"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/users"
	"epaw/internal/domain/veterinaries"
	"epaw/internal/platform/envelope"
	"epaw/internal/viewstate"
)

const dateLayout = "2006-01-02 15:04"

func table(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

func when(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func printUser(w io.Writer, u *users.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", u.DisplayName(), u.Email)
	fmt.Fprintf(w, "  id:  %s\n", u.ID)
	fmt.Fprintf(w, "  rol: %s\n", u.Role.Label())
	if v := u.Veterinary; v != nil && len(v.Specialties) > 0 {
		fmt.Fprintf(w, "  especialidades: %s\n", strings.Join(v.Specialties, ", "))
	}
}

func printPagination(w io.Writer, p *envelope.Pagination) {
	if p == nil || p.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "página %d de %d (%d en total)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

func printReports(w io.Writer, list []reports.Report) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay reportes")
		return
	}
	tw := table(w, "ID\tESTADO\tURGENCIA\tANIMAL\tDIRECCIÓN\tDESCRIPCIÓN")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Status.Label(), r.UrgencyLevel.Label(), r.AnimalType.Label(),
			truncate(r.LocationAddress, 30), truncate(r.Description, 40))
	}
	_ = tw.Flush()
}

func printReport(w io.Writer, r *reports.Report) {
	if r == nil {
		return
	}
	fmt.Fprintf(w, "Reporte %s\n", r.ID)
	fmt.Fprintf(w, "  estado:    %s\n", r.Status.Label())
	fmt.Fprintf(w, "  urgencia:  %s\n", r.UrgencyLevel.Label())
	fmt.Fprintf(w, "  animal:    %s\n", r.AnimalType.Label())
	fmt.Fprintf(w, "  ubicación: %s (%.5f, %.5f)\n", r.LocationAddress, r.Location.Latitude(), r.Location.Longitude())
	if name := r.ReporterName(); name != "" {
		fmt.Fprintf(w, "  reportado por: %s\n", name)
	}
	if d := r.Organization.Details; d != nil {
		fmt.Fprintf(w, "  organización:  %s\n", d.DisplayName())
	}
	if d := r.Veterinary.Details; d != nil {
		fmt.Fprintf(w, "  veterinaria:   %s\n", d.DisplayName())
	}
	fmt.Fprintf(w, "  %s\n", r.Description)
	for i, url := range r.PhotoURLs {
		fmt.Fprintf(w, "  foto %d: %s\n", i+1, url)
	}

	if len(r.StatusHistory) > 0 {
		fmt.Fprintln(w, "Historial:")
		for _, h := range r.StatusHistory {
			line := fmt.Sprintf("  %s  %s", when(h.ChangedAt), h.Status.Label())
			if h.Notes != "" {
				line += "  " + h.Notes
			}
			fmt.Fprintln(w, line)
		}
	}
	if next, ok := reports.SuggestedNext(r.Status); ok {
		fmt.Fprintf(w, "Siguiente estado sugerido: %s (%s)\n", next.Label(), next)
	}
}

func printAdoptions(w io.Writer, list []adoptions.Adoption, viewer adoptions.Viewer) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay solicitudes")
		return
	}
	tw := table(w, "ID\tESTADO\tANIMAL\tSOLICITANTE\tACCIONES")
	for _, a := range list {
		animal, adopter := a.Animal.ID, a.Adopter.ID
		if d := a.Animal.Details; d != nil {
			animal = d.Name
		}
		if d := a.Adopter.Details; d != nil {
			adopter = d.Name
		}
		actions := make([]string, 0, 3)
		for _, act := range adoptions.AvailableActions(a.Status, viewer) {
			actions = append(actions, string(act))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Status.Label(), animal, adopter, strings.Join(actions, ","))
	}
	_ = tw.Flush()
}

func printAdoption(w io.Writer, a *adoptions.Adoption) {
	if a == nil {
		return
	}
	animal := a.Animal.ID
	if d := a.Animal.Details; d != nil {
		animal = d.Name
	}
	fmt.Fprintf(w, "Solicitud %s: %s\n", a.ID, a.Status.Label())
	fmt.Fprintf(w, "  animal:  %s\n", animal)
	fmt.Fprintf(w, "  mensaje: %s\n", a.ApplicationMessage)
	fmt.Fprintf(w, "  hogar:   %s, %d personas\n", a.AdopterInfo.HomeType.Label(), a.AdopterInfo.HouseholdMembers)
	if a.ReviewNotes != "" {
		fmt.Fprintf(w, "  notas:   %s\n", a.ReviewNotes)
	}
	if a.RejectionReason != "" {
		fmt.Fprintf(w, "  motivo:  %s\n", a.RejectionReason)
	}
}

func printRecord(w io.Writer, r *medicalrecords.Record) {
	if r == nil {
		return
	}
	fmt.Fprintf(w, "%s  %s  %s\n", r.ID, r.VisitType.Label(), r.Status.Label())
	fmt.Fprintf(w, "  fecha:       %s\n", when(&r.VisitDate))
	fmt.Fprintf(w, "  diagnóstico: %s\n", r.Diagnosis)
	fmt.Fprintf(w, "  tratamiento: %s\n", r.Treatment)
	for _, m := range r.Medications {
		fmt.Fprintf(w, "  - %s %s\n", m.Name, m.Dosage)
	}
	if r.Notes != "" {
		fmt.Fprintf(w, "  notas:       %s\n", r.Notes)
	}
	if r.NextAppointment != nil {
		fmt.Fprintf(w, "  próximo:     %s\n", when(r.NextAppointment))
	}
}

func printCases(w io.Writer, list []medicalrecords.Record) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay casos")
		return
	}
	tw := table(w, "ID\tESTADO\tVISITA\tFECHA\tANIMAL\tDIAGNÓSTICO\tCOSTO")
	for _, c := range list {
		animal := c.Animal.ID
		if d := c.Animal.Details; d != nil {
			animal = d.Name
		}
		cost := "-"
		switch {
		case c.ActualCost != nil:
			cost = fmt.Sprintf("%.2f", *c.ActualCost)
		case c.EstimatedCost != nil:
			cost = fmt.Sprintf("~%.2f", *c.EstimatedCost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Status.Label(), c.VisitType.Label(), when(&c.VisitDate), animal, truncate(c.Diagnosis, 30), cost)
	}
	_ = tw.Flush()
}

func printVeterinaries(w io.Writer, list []veterinaries.Veterinary) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay veterinarias")
		return
	}
	tw := table(w, "ID\tNOMBRE\tEMAIL\tESPECIALIDADES")
	for _, v := range list {
		var specs string
		if v.VeterinaryDetails != nil {
			specs = strings.Join(v.VeterinaryDetails.Specialties, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.DisplayName(), v.Email, specs)
	}
	_ = tw.Flush()
}

func printOrganizations(w io.Writer, list []organizations.Organization) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No hay organizaciones")
		return
	}
	tw := table(w, "ID\tNOMBRE")
	for _, o := range list {
		fmt.Fprintf(tw, "%s\t%s\n", o.ID, o.DisplayName())
	}
	_ = tw.Flush()
}

func printDashboard(w io.Writer, snap viewstate.DashboardSnapshot) {
	if s := snap.Stats; s != nil {
		fmt.Fprintf(w, "Reportes: %d (pendientes %d, rescatados %d, en veterinaria %d, listos para adopción %d)\n",
			s.Reports.Total, s.Reports.Pending, s.Reports.Rescued, s.Reports.InVeterinary, s.Reports.ReadyForAdoption)
		fmt.Fprintf(w, "Animales: %d (disponibles %d, adoptados %d)\n", s.Animals.Total, s.Animals.Available, s.Animals.Adopted)
		for _, r := range s.Recent.Reports {
			fmt.Fprintf(w, "  reciente: %s  %s\n", r.CreatedAt.Local().Format(dateLayout), truncate(r.Description, 50))
		}
	}
	if len(snap.Animals) == 0 {
		return
	}
	tw := table(w, "ID\tNOMBRE\tESPECIE\tESTADO")
	for _, a := range snap.Animals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Species.Label(), a.Status.Label())
	}
	_ = tw.Flush()
}
