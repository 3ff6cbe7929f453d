package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"epaw/internal/adapters/media/azureblob"
	"epaw/internal/adapters/media/cloudinary"
	sessionfile "epaw/internal/adapters/session/file"
	sessionmem "epaw/internal/adapters/session/memory"
	"epaw/internal/config"
	"epaw/internal/domain/auth"
	"epaw/internal/platform/httpclient"
	"epaw/internal/platform/logger"
	"epaw/internal/ports/media"
	"epaw/internal/ports/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":           {"login -email E -password P", runLogin},
	"register":        {"register -role user|organization|veterinary -email E -password P -name N [...]", runRegister},
	"logout":          {"logout", runLogout},
	"whoami":          {"whoami", runWhoami},
	"profile":         {"profile [-name N] [-phone P] [-address A] [-clinic C] [-specialties a,b] [...]", runProfile},
	"reports":         {"reports [-scope all|mine|org|vet|near] [-status S] [-near lat,lng] [-page N]", runReports},
	"report":          {"report <id>", runReport},
	"report-new":      {"report-new -desc D -address A [-near lat,lng] [-urgency U] [-type T] [-org ID] [-photos a.jpg,b.jpg]", runReportNew},
	"report-status":   {"report-status -status S [-notes N] <id>", runReportStatus},
	"adoptions":       {"adoptions [-org ID | -animal ID] [-status S] [-page N]", runAdoptions},
	"adoption":        {"adoption <id>", runAdoption},
	"adoption-apply":  {"adoption-apply -animal ID -message M [-home T] [-yard] [-members N] [...]", runAdoptionApply},
	"adoption-status": {"adoption-status -action approve|reject|complete [-notes N] [-reason R] <id>", runAdoptionStatus},
	"adoption-cancel": {"adoption-cancel <id>", runAdoptionCancel},
	"animal-new":      {"animal-new -report ID -name N [-species S] [-gender G] [-size S] [-photos a.jpg]", runAnimalNew},
	"cases":           {"cases [-status S] [-page N] [-update ID -set S -cost C -notes N]", runCases},
	"case-new":        {"case-new -animal ID|-report ID -diagnosis D -treatment T [-type T] [-cost C]", runCaseNew},
	"history":         {"history [-case ID] <animalID>", runHistory},
	"vets":            {"vets [-specialty S] [-near lat,lng] [-page N]", runVets},
	"vet":             {"vet <id>", runVet},
	"orgs":            {"orgs [-stats ID]", runOrgs},
	"upload":          {"upload <file>...", runUpload},
	"sandbox":         {"sandbox [-addr :8080]", runSandbox},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("epaw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "archivo de configuración (yaml/json/toml)")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "comando desconocido: %s\n\n", fs.Arg(0))
		usage(stderr)
		return 2
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	a, err := newApp(cfg, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer a.close()

	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintln(stderr, "error:", httpclient.Describe(err))
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "uso: epaw [-config archivo] <comando> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

// app junta las dependencias que comparten los comandos.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store session.Store
	http  *httpclient.Client
	auth  *auth.Service
	out   io.Writer
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    "epaw",
	})

	store, err := openSession(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	client, err := httpclient.NewWithBaseURL(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return nil, err
	}
	client = client.WithTokens(store).WithLogger(log)

	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		http:  client,
		auth:  auth.NewService(client, store, log),
		out:   out,
	}, nil
}

func (a *app) close() {
	if z, ok := a.log.(*logger.ZapLogger); ok {
		_ = z.Sync()
	}
}

func openSession(cfg config.SessionConfig) (session.Store, error) {
	if cfg.Backend == config.SessionMemory {
		return sessionmem.NewStore(), nil
	}
	return sessionfile.NewStore(cfg.Path)
}

// uploader devuelve nil si no hay proveedor configurado.
func (a *app) uploader() (media.Uploader, error) {
	switch a.cfg.Media.Provider {
	case config.MediaCloudinary:
		return cloudinary.New(a.cfg.Media.CloudinaryUploader(), a.log)
	case config.MediaAzure:
		return azureblob.New(a.cfg.Media.AzureUploader(), a.log)
	default:
		return nil, nil
	}
}
