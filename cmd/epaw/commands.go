package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"epaw/internal/adapters/auth/jwtauth"
	"epaw/internal/domain/adoptions"
	"epaw/internal/domain/animals"
	"epaw/internal/domain/auth"
	"epaw/internal/domain/medicalrecords"
	"epaw/internal/domain/organizations"
	"epaw/internal/domain/reports"
	"epaw/internal/domain/users"
	"epaw/internal/domain/veterinaries"
	"epaw/internal/ports/media"
	"epaw/internal/viewstate"
)

var errMissingID = errors.New("falta el id")

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet("epaw "+name, flag.ContinueOnError)
}

// viewErr convierte el error visible de una pantalla en error del comando.
// Las pantallas no muestran la cancelación, así que se toma del contexto.
func viewErr(ctx context.Context, st viewstate.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.ErrorMessage == "" {
		return nil
	}
	return errors.New(st.ErrorMessage)
}

func parseLatLng(s string) (lat, lng float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("coordenadas inválidas %q, se espera lat,lng", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("latitud inválida: %w", err)
	}
	if lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("longitud inválida: %w", err)
	}
	return lat, lng, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readFiles(paths []string) ([]media.File, error) {
	files := make([]media.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
		if ct == "" {
			ct = "image/jpeg"
		}
		files = append(files, media.File{Name: filepath.Base(p), ContentType: ct, Data: data})
	}
	return files, nil
}

// ---- auth ----

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st := viewstate.NewAuthState(a.auth, a.log)
	if !st.Login(ctx, *email, *password) {
		return viewErr(ctx, st.Status())
	}
	printUser(a.out, st.Snapshot().User)
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	role := fs.String("role", string(users.RoleUser), "user | organization | veterinary")
	var in auth.RegisterRequest
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Password, "password", "", "contraseña")
	fs.StringVar(&in.Name, "name", "", "nombre")
	fs.StringVar(&in.Phone, "phone", "", "teléfono")
	fs.StringVar(&in.Address, "address", "", "dirección")
	fs.StringVar(&in.OrganizationName, "org-name", "", "nombre de la organización")
	fs.StringVar(&in.Description, "description", "", "descripción de la organización")
	fs.StringVar(&in.ClinicName, "clinic", "", "nombre de la clínica")
	fs.StringVar(&in.LicenseNumber, "license", "", "número de licencia")
	specialties := fs.String("specialties", "", "especialidades separadas por coma")
	near := fs.String("near", "", "ubicación de la clínica lat,lng")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Specialties = splitList(*specialties)
	if *near != "" {
		lat, lng, err := parseLatLng(*near)
		if err != nil {
			return err
		}
		in.Latitude, in.Longitude = &lat, &lng
	}

	st := viewstate.NewAuthState(a.auth, a.log)
	var ok bool
	switch users.Role(*role) {
	case users.RoleUser:
		ok = st.RegisterUser(ctx, in)
	case users.RoleOrganization:
		ok = st.RegisterOrganization(ctx, in)
	case users.RoleVeterinary:
		ok = st.RegisterVeterinary(ctx, in)
	default:
		return fmt.Errorf("rol inválido %q", *role)
	}
	if !ok {
		return viewErr(ctx, st.Status())
	}
	printUser(a.out, st.Snapshot().User)
	return nil
}

func runLogout(_ context.Context, a *app, _ []string) error {
	viewstate.NewAuthState(a.auth, a.log).Logout()
	fmt.Fprintln(a.out, "Sesión cerrada")
	return nil
}

// runWhoami consulta /me y, si el server no responde, muestra lo que hay guardado localmente.
func runWhoami(ctx context.Context, a *app, _ []string) error {
	token, ok := a.store.Read()
	if !ok {
		fmt.Fprintln(a.out, "sin sesión")
		return nil
	}

	u, err := a.auth.CurrentUser(ctx)
	if err == nil {
		printUser(a.out, &u)
		return nil
	}
	a.log.Warn("current user failed", map[string]any{"err": err})

	if id, ok := a.store.ReadIdentity(); ok {
		fmt.Fprintf(a.out, "%s <%s> %s (sin conexión)\n", id.Name, id.Email, users.Role(id.Role).Label())
		return nil
	}
	claims, perr := jwtauth.Peek(token)
	if perr != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> %s (sin conexión)\n", claims.UserID, claims.Email, users.Role(claims.Role).Label())
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile")
	var in auth.UpdateProfileRequest
	strs := map[string]**string{
		"name":     &in.Name,
		"phone":    &in.Phone,
		"address":  &in.Address,
		"photo":    &in.ProfilePhotoURL,
		"org-name": &in.OrganizationName,
		"website":  &in.Website,
		"clinic":   &in.ClinicName,
		"license":  &in.LicenseNumber,
		"hours":    &in.BusinessHours,
	}
	vals := make(map[string]*string, len(strs))
	for name := range strs {
		vals[name] = fs.String(name, "", name)
	}
	specialties := fs.String("specialties", "", "especialidades separadas por coma")
	if err := fs.Parse(args); err != nil {
		return err
	}

	changed := false
	fs.Visit(func(f *flag.Flag) {
		changed = true
		if dst, ok := strs[f.Name]; ok {
			*dst = vals[f.Name]
		}
	})
	if *specialties != "" {
		list := splitList(*specialties)
		in.Specialties = &list
	}

	if !changed {
		return errors.New("no hay cambios; para ver el perfil usá whoami")
	}
	st := viewstate.NewAuthState(a.auth, a.log)
	if !st.UpdateProfile(ctx, in) {
		return viewErr(ctx, st.Status())
	}
	printUser(a.out, st.Snapshot().User)
	return nil
}

// ---- reports ----

func runReports(ctx context.Context, a *app, args []string) error {
	fs := newFlags("reports")
	scope := fs.String("scope", "all", "all | mine | org | vet | near")
	status := fs.String("status", "", "filtrar por estado")
	page := fs.Int("page", 1, "página")
	near := fs.String("near", "", "lat,lng para -scope near")
	distance := fs.Int("distance", reports.DefaultMaxDistance, "distancia máxima en metros")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := reports.NewService(a.http)
	feed := viewstate.NewReportFeed(svc, a.log)

	switch *scope {
	case "all":
		res, err := svc.List(ctx, reports.Filter{Page: *page, Status: reports.Status(*status)})
		if err != nil {
			return err
		}
		printReports(a.out, res.Data)
		printPagination(a.out, res.Pagination)
		return nil
	case "mine":
		res, err := svc.Mine(ctx, *page, reports.DefaultLimit)
		if err != nil {
			return err
		}
		printReports(a.out, res.Data)
		printPagination(a.out, res.Pagination)
		return nil
	case "org":
		feed.LoadOrganization(ctx, *page, reports.Status(*status))
	case "vet":
		feed.LoadVeterinary(ctx, *page)
	case "near":
		lat, lng, err := parseLatLng(*near)
		if err != nil {
			return err
		}
		feed.LoadNearby(ctx, lat, lng, *distance)
	default:
		return fmt.Errorf("scope inválido %q", *scope)
	}

	snap := feed.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printReports(a.out, snap.Reports)
	if snap.HasMore() {
		fmt.Fprintf(a.out, "página %d de %d (usa -page %d)\n", snap.CurrentPage, snap.TotalPages, snap.CurrentPage+1)
	}
	return nil
}

func runReport(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	detail := viewstate.NewReportDetail(reports.NewService(a.http), a.log)
	detail.Load(ctx, args[0])
	snap := detail.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printReport(a.out, snap.Report)
	return nil
}

func runReportStatus(ctx context.Context, a *app, args []string) error {
	fs := newFlags("report-status")
	status := fs.String("status", "", "nuevo estado (vacío = siguiente sugerido)")
	notes := fs.String("notes", "", "notas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errMissingID
	}

	detail := viewstate.NewReportDetail(reports.NewService(a.http), a.log)
	detail.Load(ctx, fs.Arg(0))
	snap := detail.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}

	next := reports.Status(*status)
	if next == "" {
		var ok bool
		if next, ok = reports.SuggestedNext(snap.Report.Status); !ok {
			return fmt.Errorf("el reporte está %s y no tiene siguiente estado", snap.Report.Status.Label())
		}
	}
	if !detail.UpdateStatus(ctx, next, *notes) {
		return viewErr(ctx, detail.Status())
	}
	printReport(a.out, detail.Snapshot().Report)
	return nil
}

func runReportNew(ctx context.Context, a *app, args []string) error {
	fs := newFlags("report-new")
	draft := viewstate.ReportDraft{UrgencyLevel: reports.UrgencyMedium, AnimalType: reports.AnimalDog}
	fs.StringVar(&draft.Description, "desc", "", "descripción")
	fs.StringVar(&draft.LocationAddress, "address", "", "dirección")
	urgency := fs.String("urgency", string(draft.UrgencyLevel), "low | medium | high | critical")
	animal := fs.String("type", string(draft.AnimalType), "dog | cat | bird | other")
	near := fs.String("near", "", "lat,lng")
	org := fs.String("org", "", "id de la organización (por defecto la primera)")
	photos := fs.String("photos", "", "fotos separadas por coma")
	if err := fs.Parse(args); err != nil {
		return err
	}
	draft.UrgencyLevel = reports.UrgencyLevel(*urgency)
	draft.AnimalType = reports.AnimalType(*animal)
	if *near != "" {
		lat, lng, err := parseLatLng(*near)
		if err != nil {
			return err
		}
		draft.Latitude, draft.Longitude = lat, lng
	}
	var err error
	if draft.Photos, err = readFiles(splitList(*photos)); err != nil {
		return err
	}

	up, err := a.uploader()
	if err != nil {
		return err
	}
	form := viewstate.NewCreateReportForm(reports.NewService(a.http), organizations.NewService(a.http), up, a.log)
	form.LoadOrganizations(ctx)
	if err := viewErr(ctx, form.Status()); err != nil {
		return err
	}
	if *org != "" {
		form.Select(*org)
	}
	form.SetDraft(draft)

	snap := form.Snapshot()
	if !snap.CanSubmit {
		return errors.New("faltan datos: descripción (mínimo 10 caracteres), dirección y organización")
	}
	if !form.Submit(ctx) {
		return viewErr(ctx, form.Status())
	}
	fmt.Fprintf(a.out, "Reporte enviado a %s\n", snap.Selected.DisplayName())
	return nil
}

// ---- adoptions ----

func runAdoptions(ctx context.Context, a *app, args []string) error {
	fs := newFlags("adoptions")
	org := fs.String("org", "", "id de la organización (vista de la organización)")
	animal := fs.String("animal", "", "id del animal (solicitudes recibidas por ese animal)")
	status := fs.String("status", "", "filtrar por estado")
	page := fs.Int("page", 1, "página")
	if err := fs.Parse(args); err != nil {
		return err
	}

	board := viewstate.NewAdoptionBoard(adoptions.NewService(a.http), a.log)
	viewer := adoptions.Viewer{IsApplicant: true}
	switch {
	case *animal != "":
		viewer = adoptions.Viewer{IsOrganization: true}
		board.LoadAnimal(ctx, *animal)
	case *org != "":
		viewer = adoptions.Viewer{IsOrganization: true}
		board.LoadOrganization(ctx, *org, *page, adoptions.Status(*status))
	default:
		board.LoadMine(ctx, *page, adoptions.Status(*status))
	}

	snap := board.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printAdoptions(a.out, snap.Applications, viewer)
	if snap.CurrentPage < snap.TotalPages {
		fmt.Fprintf(a.out, "página %d de %d\n", snap.CurrentPage, snap.TotalPages)
	}
	return nil
}

func runAdoption(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	board := viewstate.NewAdoptionBoard(adoptions.NewService(a.http), a.log)
	if !board.Open(ctx, args[0]) {
		return viewErr(ctx, board.Status())
	}
	printAdoption(a.out, board.Snapshot().Selected)
	return nil
}

func runAdoptionApply(ctx context.Context, a *app, args []string) error {
	fs := newFlags("adoption-apply")
	animal := fs.String("animal", "", "id del animal")
	message := fs.String("message", "", "por qué querés adoptar")
	var info adoptions.AdopterInfo
	home := fs.String("home", string(adoptions.HomeOther), "house | apartment | farm | other")
	fs.BoolVar(&info.HasYard, "yard", false, "tiene patio")
	fs.BoolVar(&info.HasExperience, "experience", false, "tuvo mascotas antes")
	fs.BoolVar(&info.HasOtherPets, "pets", false, "tiene otras mascotas")
	fs.IntVar(&info.HouseholdMembers, "members", 1, "personas en la casa")
	schedule := fs.String("schedule", "", "horario de trabajo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	info.HomeType = adoptions.HomeType(*home)
	if *schedule != "" {
		info.WorkSchedule = schedule
	}

	board := viewstate.NewAdoptionBoard(adoptions.NewService(a.http), a.log)
	if !board.Apply(ctx, *animal, *message, info) {
		return viewErr(ctx, board.Status())
	}
	printAdoption(a.out, board.Snapshot().Selected)
	return nil
}

func runAdoptionStatus(ctx context.Context, a *app, args []string) error {
	fs := newFlags("adoption-status")
	action := fs.String("action", "", "approve | reject | complete")
	notes := fs.String("notes", "", "notas de revisión")
	reason := fs.String("reason", "", "motivo del rechazo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errMissingID
	}
	id := fs.Arg(0)

	board := viewstate.NewAdoptionBoard(adoptions.NewService(a.http), a.log)
	var ok bool
	switch adoptions.Action(*action) {
	case adoptions.ActionApprove:
		ok = board.Approve(ctx, id, *notes)
	case adoptions.ActionReject:
		ok = board.Reject(ctx, id, *reason)
	case adoptions.ActionComplete:
		ok = board.Complete(ctx, id)
	default:
		return fmt.Errorf("acción inválida %q", *action)
	}
	if !ok {
		return viewErr(ctx, board.Status())
	}
	fmt.Fprintf(a.out, "Solicitud %s: %s\n", id, adoptions.Action(*action).Target().Label())
	return nil
}

func runAdoptionCancel(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	board := viewstate.NewAdoptionBoard(adoptions.NewService(a.http), a.log)
	if !board.Cancel(ctx, args[0]) {
		return viewErr(ctx, board.Status())
	}
	fmt.Fprintf(a.out, "Solicitud %s: %s\n", args[0], adoptions.StatusCancelled.Label())
	return nil
}

// ---- veterinary ----

func runCases(ctx context.Context, a *app, args []string) error {
	fs := newFlags("cases")
	status := fs.String("status", "", "filtrar por estado")
	page := fs.Int("page", 1, "página")
	update := fs.String("update", "", "id del caso a actualizar")
	set := fs.String("set", "", "nuevo estado del caso")
	cost := fs.String("cost", "", "costo real")
	notes := fs.String("notes", "", "notas")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cases := viewstate.NewVeterinaryCases(medicalrecords.NewService(a.http), a.log)
	cases.Load(ctx, *page, medicalrecords.Status(*status))
	if err := viewErr(ctx, cases.Status()); err != nil {
		return err
	}

	if *update != "" {
		var in medicalrecords.UpdateRequest
		if *set != "" {
			s := medicalrecords.Status(*set)
			in.Status = &s
		}
		if *cost != "" {
			c, err := strconv.ParseFloat(*cost, 64)
			if err != nil {
				return fmt.Errorf("costo inválido: %w", err)
			}
			in.ActualCost = &c
		}
		if *notes != "" {
			in.Notes = notes
		}
		if !cases.UpdateCase(ctx, *update, in) {
			return viewErr(ctx, cases.Status())
		}
	}

	printCases(a.out, cases.Snapshot().Cases)
	return nil
}

func runCaseNew(ctx context.Context, a *app, args []string) error {
	fs := newFlags("case-new")
	var in medicalrecords.CreateRequest
	fs.StringVar(&in.AnimalID, "animal", "", "id del animal")
	fs.StringVar(&in.ReportID, "report", "", "id del reporte")
	visit := fs.String("type", string(medicalrecords.VisitInitialExam), "tipo de visita")
	fs.StringVar(&in.Diagnosis, "diagnosis", "", "diagnóstico")
	fs.StringVar(&in.Treatment, "treatment", "", "tratamiento")
	cost := fs.String("cost", "", "costo estimado")
	notes := fs.String("notes", "", "notas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.VisitType = medicalrecords.VisitType(*visit)
	if *cost != "" {
		c, err := strconv.ParseFloat(*cost, 64)
		if err != nil {
			return fmt.Errorf("costo inválido: %w", err)
		}
		in.EstimatedCost = &c
	}
	if *notes != "" {
		in.Notes = notes
	}

	cases := viewstate.NewVeterinaryCases(medicalrecords.NewService(a.http), a.log)
	if !cases.CreateCase(ctx, in) {
		return viewErr(ctx, cases.Status())
	}
	printCases(a.out, cases.Snapshot().Cases)
	return nil
}

func runHistory(ctx context.Context, a *app, args []string) error {
	fs := newFlags("history")
	open := fs.String("case", "", "id de la ficha a ver completa")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 && *open == "" {
		return errMissingID
	}

	h := viewstate.NewMedicalHistory(medicalrecords.NewService(a.http), a.log)
	if fs.NArg() > 0 {
		h.Load(ctx, fs.Arg(0))
		if err := viewErr(ctx, h.Status()); err != nil {
			return err
		}
		printCases(a.out, h.Snapshot().Records)
	}
	if *open != "" {
		h.Open(ctx, *open)
		if err := viewErr(ctx, h.Status()); err != nil {
			return err
		}
		printRecord(a.out, h.Snapshot().Selected)
	}
	return nil
}

func runVets(ctx context.Context, a *app, args []string) error {
	fs := newFlags("vets")
	specialty := fs.String("specialty", "", "buscar por especialidad")
	near := fs.String("near", "", "lat,lng")
	distance := fs.Int("distance", veterinaries.DefaultMaxDistance, "distancia máxima en metros")
	page := fs.Int("page", 1, "página")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := viewstate.NewVeterinaryDirectory(veterinaries.NewService(a.http), a.log)
	switch {
	case *near != "":
		lat, lng, err := parseLatLng(*near)
		if err != nil {
			return err
		}
		dir.Nearby(ctx, lat, lng, *distance)
	case *specialty != "":
		dir.Search(ctx, *specialty, *page)
	default:
		dir.Load(ctx, *page)
	}

	snap := dir.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printVeterinaries(a.out, snap.Veterinaries)
	if snap.CurrentPage < snap.TotalPages {
		fmt.Fprintf(a.out, "página %d de %d\n", snap.CurrentPage, snap.TotalPages)
	}
	return nil
}

func runVet(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errMissingID
	}
	dir := viewstate.NewVeterinaryDirectory(veterinaries.NewService(a.http), a.log)
	dir.Open(ctx, args[0])
	snap := dir.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printUser(a.out, snap.Selected)
	return nil
}

// ---- organizations ----

func runOrgs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("orgs")
	stats := fs.String("stats", "", "id de la organización para ver su dashboard")
	animalStatus := fs.String("animals", string(animals.StatusAvailable), "estado de los animales del dashboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *stats == "" {
		list, err := organizations.NewService(a.http).List(ctx)
		if err != nil {
			return err
		}
		printOrganizations(a.out, list)
		return nil
	}

	dash := viewstate.NewOrganizationDashboard(organizations.NewService(a.http), animals.NewService(a.http), a.log)
	dash.Load(ctx, *stats, animals.Status(*animalStatus))
	snap := dash.Snapshot()
	if err := viewErr(ctx, snap.Status); err != nil {
		return err
	}
	printDashboard(a.out, snap)
	return nil
}

func runAnimalNew(ctx context.Context, a *app, args []string) error {
	fs := newFlags("animal-new")
	var in animals.CreateRequest
	fs.StringVar(&in.ReportID, "report", "", "id del reporte de rescate")
	fs.StringVar(&in.Name, "name", "", "nombre")
	species := fs.String("species", string(animals.SpeciesDog), "especie")
	gender := fs.String("gender", "", "male | female | unknown")
	size := fs.String("size", "", "small | medium | large")
	story := fs.String("story", "", "historia")
	traits := fs.String("traits", "", "rasgos separados por coma")
	photos := fs.String("photos", "", "fotos separadas por coma")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Species = animals.Species(*species)
	in.Gender = animals.Gender(*gender)
	in.Size = animals.Size(*size)
	in.PersonalityTraits = splitList(*traits)
	if *story != "" {
		in.Story = story
	}

	if paths := splitList(*photos); len(paths) > 0 {
		up, err := a.uploader()
		if err != nil {
			return err
		}
		if up == nil {
			return errors.New("no hay proveedor de imágenes configurado (EPAW_MEDIA_PROVIDER)")
		}
		files, err := readFiles(paths)
		if err != nil {
			return err
		}
		if in.PhotoURLs, err = media.UploadAll(ctx, up, files); err != nil {
			return err
		}
	}

	dash := viewstate.NewOrganizationDashboard(organizations.NewService(a.http), animals.NewService(a.http), a.log)
	if !dash.CreateAnimal(ctx, in) {
		return viewErr(ctx, dash.Status())
	}
	printDashboard(a.out, dash.Snapshot())
	return nil
}

// ---- media ----

func runUpload(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("no hay archivos para subir")
	}
	up, err := a.uploader()
	if err != nil {
		return err
	}
	if up == nil {
		return errors.New("no hay proveedor de imágenes configurado (EPAW_MEDIA_PROVIDER)")
	}
	files, err := readFiles(args)
	if err != nil {
		return err
	}
	urls, err := media.UploadAll(ctx, up, files)
	for _, u := range urls {
		fmt.Fprintln(a.out, u)
	}
	return err
}
