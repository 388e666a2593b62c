// Package config loads itinerary settings from defaults, an optional TOML
// file and ITINERARY_* environment variables, in that order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Trip  TripConfig  `toml:"trip"`
	Store StoreConfig `toml:"store"`
	Web   WebConfig   `toml:"web"`
	Log   LogConfig   `toml:"log"`

	// Credentials is the service-account JSON key for the google backend.
	Credentials []byte `toml:"-"`
}

type TripConfig struct {
	Start    string `toml:"start"`
	End      string `toml:"end"`
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Timezone string `toml:"timezone"`
}

type StoreConfig struct {
	// Backend is google, xlsx or sqlite.
	Backend       string `toml:"backend"`
	Spreadsheet   string `toml:"spreadsheet"`
	SpreadsheetID string `toml:"spreadsheet_id"`
	Worksheet     string `toml:"worksheet"`
	WorkbookDir   string `toml:"workbook_dir"`
	SQLitePath    string `toml:"sqlite_path"`
}

type WebConfig struct {
	Addr        string   `toml:"addr"`
	User        string   `toml:"user"`
	Password    string   `toml:"password"`
	CORSOrigins []string `toml:"cors_origins"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// fileConfig mirrors the TOML layout. gcp_service_account may be a table
// or a string holding the whole JSON key.
type fileConfig struct {
	Config
	GCPServiceAccount toml.Primitive `toml:"gcp_service_account"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	dataDir := defaultDataDir()
	return Config{
		Trip: TripConfig{
			Start:    "2025-12-17",
			End:      "2026-01-01",
			Title:    "Our Adventure Together",
			Subtitle: "Dec 17, 2025 - Jan 1, 2026",
			Timezone: "Local",
		},
		Store: StoreConfig{
			Backend:     "google",
			Spreadsheet: "Trip Planner",
			Worksheet:   "Trips",
			WorkbookDir: filepath.Join(dataDir, "books"),
			SQLitePath:  filepath.Join(dataDir, "itinerary.db"),
		},
		Web: WebConfig{
			Addr: ":8080",
			User: "travel",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".itinerary"
	}
	return filepath.Join(home, ".itinerary")
}

// DefaultPath returns ~/.config/itinerary/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "itinerary", "config.toml"), nil
}

// Load reads .env (if present), then the TOML file at path, then the
// environment. An empty path means ITINERARY_CONFIG or DefaultPath; a
// missing default file is not an error, a missing explicit one is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}

	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		if v := os.Getenv("ITINERARY_CONFIG"); v != "" {
			path, explicit = v, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				err = nil
			}
			if err != nil {
				return Config{}, err
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	fc := fileConfig{Config: *cfg}
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	*cfg = fc.Config
	if md.IsDefined("gcp_service_account") {
		creds, err := decodeCredentials(md, fc.GCPServiceAccount)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg.Credentials = creds
	}
	return nil
}

func decodeCredentials(md toml.MetaData, prim toml.Primitive) ([]byte, error) {
	switch md.Type("gcp_service_account") {
	case "String":
		var s string
		if err := md.PrimitiveDecode(prim, &s); err != nil {
			return nil, fmt.Errorf("decoding gcp_service_account: %w", err)
		}
		return []byte(strings.TrimSpace(s)), nil
	case "Hash":
		var table map[string]any
		if err := md.PrimitiveDecode(prim, &table); err != nil {
			return nil, fmt.Errorf("decoding gcp_service_account: %w", err)
		}
		data, err := json.Marshal(table)
		if err != nil {
			return nil, fmt.Errorf("encoding gcp_service_account: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("gcp_service_account must be a table or a JSON string")
	}
}

func applyEnv(cfg *Config) error {
	for name, dst := range map[string]*string{
		"ITINERARY_TRIP_START":     &cfg.Trip.Start,
		"ITINERARY_TRIP_END":       &cfg.Trip.End,
		"ITINERARY_TITLE":          &cfg.Trip.Title,
		"ITINERARY_SUBTITLE":       &cfg.Trip.Subtitle,
		"ITINERARY_TIMEZONE":       &cfg.Trip.Timezone,
		"ITINERARY_STORE":          &cfg.Store.Backend,
		"ITINERARY_SPREADSHEET":    &cfg.Store.Spreadsheet,
		"ITINERARY_SPREADSHEET_ID": &cfg.Store.SpreadsheetID,
		"ITINERARY_WORKSHEET":      &cfg.Store.Worksheet,
		"ITINERARY_WORKBOOK_DIR":   &cfg.Store.WorkbookDir,
		"ITINERARY_DB":             &cfg.Store.SQLitePath,
		"ITINERARY_ADDR":           &cfg.Web.Addr,
		"ITINERARY_USER":           &cfg.Web.User,
		"ITINERARY_PASSWORD":       &cfg.Web.Password,
		"ITINERARY_LOG_LEVEL":      &cfg.Log.Level,
		"ITINERARY_LOG_FORMAT":     &cfg.Log.Format,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("ITINERARY_CORS_ORIGINS"); v != "" {
		cfg.Web.CORSOrigins = splitList(v)
	}

	if v := os.Getenv("ITINERARY_GCP_CREDENTIALS"); v != "" {
		cfg.Credentials = []byte(strings.TrimSpace(v))
	} else if path := os.Getenv("ITINERARY_GCP_CREDENTIALS_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading ITINERARY_GCP_CREDENTIALS_FILE: %w", err)
		}
		cfg.Credentials = data
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Location resolves Trip.Timezone. "Local" and empty mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Trip.Timezone == "" || c.Trip.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Trip.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Trip.Timezone, err)
	}
	return loc, nil
}
