// Package config holds the settings of one export run.
//
// Values are merged from, highest precedence first: command-line flags, the
// process environment (optionally seeded from a .env file), a YAML file and
// built-in defaults.
//
// Environment variables:
//   - DB_HOST:       MySQL hostname or IP
//   - DB_PORT:       MySQL port (default 3306)
//   - DB_USER:       MySQL username
//   - DB_PASSWORD:   MySQL password
//   - DB_DATABASE:   database to export
//   - EXPORT_MODE:   single-file, per-table or both (default single-file)
//   - EXPORT_DIR:    directory receiving the artifacts (default .)
//   - EXPORT_MIRROR: sqlite3 or duckdb to also mirror the rows into a local database
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tannerpace/sqltojson/errs"
)

// ExportMode selects which row-data artifacts are written.
type ExportMode string

const (
	ModeSingleFile ExportMode = "single-file"
	ModePerTable   ExportMode = "per-table"
	ModeBoth       ExportMode = "both"
)

// ParseExportMode accepts the mode names plus a few short aliases.
func ParseExportMode(s string) (ExportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "single-file":
		return ModeSingleFile, nil
	case "per-table", "tables":
		return ModePerTable, nil
	case "both", "all":
		return ModeBoth, nil
	}
	return "", fmt.Errorf("invalid export mode %q (want single-file, per-table or both)", s)
}

// SingleFile reports whether database_export.json is written.
func (m ExportMode) SingleFile() bool { return m == ModeSingleFile || m == ModeBoth }

// PerTable reports whether one <table>.json file per table is written.
func (m ExportMode) PerTable() bool { return m == ModePerTable || m == ModeBoth }

// Mirror targets.
const (
	MirrorSQLite = "sqlite3"
	MirrorDuckDB = "duckdb"
)

const (
	DefaultPort      = "3306"
	DefaultOutputDir = "."
	DefaultGoPackage = "models"
)

// Config is the explicit configuration passed to the export orchestrator.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	ExportMode ExportMode `yaml:"export_mode"`
	OutputDir  string     `yaml:"output_dir"`

	// AskMode makes the orchestrator ask which row-data artifacts to write
	// instead of using ExportMode.
	AskMode bool `yaml:"ask_mode"`

	GoTypes   bool   `yaml:"go_types"`
	GoPackage string `yaml:"go_package"`

	Mirror string `yaml:"mirror"`
}

// LoadOptions controls where Load looks for values.
type LoadOptions struct {
	// File is an optional YAML file. Empty means none.
	File string
	// EnvFile is the dotenv file to load. Empty means ".env"; a missing file
	// is ignored.
	EnvFile string
	// Flags holds values given on the command line; non-zero fields win.
	Flags Config
}

// Load merges flags, environment, YAML file and defaults into a Config. It
// does not validate; call Validate before connecting.
func Load(opts LoadOptions) (Config, error) {
	var file Config
	if opts.File != "" {
		var err error
		if file, err = readFile(opts.File); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Wrap(errs.KindConfiguration, "load "+envFile, err)
	}

	get := func(flagVal, envVar, fileVal, def string) string {
		if flagVal != "" {
			return flagVal
		}
		if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
			return v
		}
		if fileVal != "" {
			return fileVal
		}
		return def
	}

	f := opts.Flags
	cfg := Config{
		Host:      get(f.Host, "DB_HOST", file.Host, ""),
		Port:      get(f.Port, "DB_PORT", file.Port, DefaultPort),
		User:      get(f.User, "DB_USER", file.User, ""),
		Password:  get(f.Password, "DB_PASSWORD", file.Password, ""),
		Database:  get(f.Database, "DB_DATABASE", file.Database, ""),
		OutputDir: get(f.OutputDir, "EXPORT_DIR", file.OutputDir, DefaultOutputDir),
		GoPackage: get(f.GoPackage, "", file.GoPackage, DefaultGoPackage),
		Mirror:    strings.ToLower(get(f.Mirror, "EXPORT_MIRROR", file.Mirror, "")),
		AskMode:   f.AskMode || file.AskMode,
		GoTypes:   f.GoTypes || file.GoTypes,
	}

	mode, err := ParseExportMode(get(string(f.ExportMode), "EXPORT_MODE", string(file.ExportMode), string(ModeSingleFile)))
	if err != nil {
		return Config{}, errs.Wrap(errs.KindConfiguration, "export mode", err)
	}
	cfg.ExportMode = mode
	return cfg, nil
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.Wrap(errs.KindConfiguration, "read config file", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.KindConfiguration, "parse config file "+path, err)
	}
	return cfg, nil
}

// Validate checks that every required connection parameter is present and
// that the enumerated options hold known values.
func (c Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if len(missing) > 0 {
		return errs.New(errs.KindConfiguration, fmt.Sprintf(
			"missing required connection parameters: %s\nSet them in the environment, a .env file or with flags.",
			strings.Join(missing, ", ")))
	}
	switch c.ExportMode {
	case ModeSingleFile, ModePerTable, ModeBoth:
	default:
		return errs.New(errs.KindConfiguration, fmt.Sprintf("invalid export mode %q", c.ExportMode))
	}
	switch c.Mirror {
	case "", MirrorSQLite, MirrorDuckDB:
	default:
		return errs.New(errs.KindConfiguration, fmt.Sprintf("invalid mirror %q (want %s or %s)", c.Mirror, MirrorSQLite, MirrorDuckDB))
	}
	return nil
}
