package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"epaw/internal/adapters/media/azureblob"
	"epaw/internal/adapters/media/cloudinary"
	"epaw/internal/platform/httpclient"

	"github.com/spf13/viper"
)

// Config es toda la configuración del cliente y del sandbox.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Logging LoggingConfig
	Media   MediaConfig
	Sandbox SandboxConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Backend string // memory | file
	Path    string
}

type LoggingConfig struct {
	Level  string
	Format string // json | text
}

type MediaConfig struct {
	Provider   string // cloudinary | azure | none
	Cloudinary CloudinaryConfig
	Azure      AzureConfig
}

type CloudinaryConfig struct {
	CloudName    string
	UploadPreset string
	Folder       string
	APIKey       string
	APISecret    string
}

type AzureConfig struct {
	AccountName string
	AccountKey  string
	Container   string
	Folder      string
}

// SandboxConfig es para `epaw sandbox`. DSN vacío = store en memoria.
type SandboxConfig struct {
	Addr     string
	DSN      string
	Secret   string
	TokenTTL time.Duration
}

const (
	SessionMemory = "memory"
	SessionFile   = "file"

	MediaCloudinary = "cloudinary"
	MediaAzure      = "azure"
	MediaNone       = "none"
)

// Load lee defaults, archivo opcional y variables de entorno (en ese orden de prioridad creciente).
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseurl", httpclient.DefaultBaseURL)
	v.SetDefault("api.timeout", httpclient.DefaultTimeout)

	v.SetDefault("session.backend", SessionFile)
	v.SetDefault("session.path", defaultSessionPath())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("media.provider", MediaNone)
	v.SetDefault("media.cloudinary.uploadpreset", "epaws_preset")
	v.SetDefault("media.cloudinary.folder", "epaws")
	v.SetDefault("media.azure.container", "epaws")
	v.SetDefault("media.azure.folder", "reports")

	v.SetDefault("sandbox.addr", ":8080")
	v.SetDefault("sandbox.secret", "sandbox-secret")
	v.SetDefault("sandbox.tokenttl", 24*time.Hour)
}

func bindEnvVars(v *viper.Viper) {
	// API
	_ = v.BindEnv("api.baseurl", "EPAW_API_URL")
	_ = v.BindEnv("api.timeout", "EPAW_API_TIMEOUT")

	// Session
	_ = v.BindEnv("session.backend", "EPAW_SESSION_BACKEND")
	_ = v.BindEnv("session.path", "EPAW_SESSION_FILE")

	// Logging
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	// Media
	_ = v.BindEnv("media.provider", "EPAW_MEDIA_PROVIDER")
	_ = v.BindEnv("media.cloudinary.cloudname", "CLOUDINARY_CLOUD_NAME")
	_ = v.BindEnv("media.cloudinary.uploadpreset", "CLOUDINARY_UPLOAD_PRESET")
	_ = v.BindEnv("media.cloudinary.apikey", "CLOUDINARY_API_KEY")
	_ = v.BindEnv("media.cloudinary.apisecret", "CLOUDINARY_API_SECRET")
	_ = v.BindEnv("media.azure.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	_ = v.BindEnv("media.azure.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	_ = v.BindEnv("media.azure.container", "AZURE_STORAGE_CONTAINER")

	// Sandbox
	_ = v.BindEnv("sandbox.addr", "PORT")
	_ = v.BindEnv("sandbox.dsn", "DB_DSN")
	_ = v.BindEnv("sandbox.secret", "EPAW_SANDBOX_SECRET")
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".epaw-session.json"
	}
	return filepath.Join(home, ".epaw", "session.json")
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.baseurl must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	switch c.Session.Backend {
	case SessionMemory:
	case SessionFile:
		if strings.TrimSpace(c.Session.Path) == "" {
			return fmt.Errorf("session.path is required for the file backend")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}

	switch c.Media.Provider {
	case MediaNone, "":
	case MediaCloudinary:
		if c.Media.CloudinaryUploader().CloudName == "" {
			return fmt.Errorf("media.cloudinary.cloudname is required")
		}
	case MediaAzure:
		if !c.Media.AzureUploader().IsConfigured() {
			return fmt.Errorf("azure storage credentials are required (account name, key and container)")
		}
	default:
		return fmt.Errorf("unknown media.provider %q", c.Media.Provider)
	}

	if c.Sandbox.TokenTTL <= 0 {
		return fmt.Errorf("sandbox.tokenttl must be positive")
	}

	return nil
}

func (m MediaConfig) CloudinaryUploader() cloudinary.Config {
	return cloudinary.Config{
		CloudName:    strings.TrimSpace(m.Cloudinary.CloudName),
		UploadPreset: m.Cloudinary.UploadPreset,
		Folder:       m.Cloudinary.Folder,
		APIKey:       m.Cloudinary.APIKey,
		APISecret:    m.Cloudinary.APISecret,
	}
}

func (m MediaConfig) AzureUploader() azureblob.Config {
	return azureblob.Config{
		AccountName: m.Azure.AccountName,
		AccountKey:  m.Azure.AccountKey,
		Container:   m.Azure.Container,
		Folder:      m.Azure.Folder,
	}
}
