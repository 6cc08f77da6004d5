package dbexport

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tannerpace/sqltojson/config"
	"github.com/tannerpace/sqltojson/confirm"
	"github.com/tannerpace/sqltojson/errs"
)

// Prompts asked before connecting.
const (
	PromptProceed    = "Proceed with export?"
	PromptSingleFile = "Export all tables to a single file?"
	PromptPerTable   = "Export one file per table?"
)

// Status is the terminal state of a run that did not fail.
type Status int

const (
	StatusCompleted Status = iota
	StatusDeclined
)

func (s Status) String() string {
	if s == StatusDeclined {
		return "declined"
	}
	return "completed"
}

// Result describes a finished run.
type Result struct {
	Status Status
	Tables []string // exported tables, catalog order
	Files  []string // artifacts written, write order
}

// Orchestrator runs one export: validate, confirm, connect, enumerate,
// export each table, persist, disconnect.
type Orchestrator struct {
	Config config.Config
	// Confirm answers the pre-flight prompts; nil means always yes.
	Confirm confirm.Provider
	// Connect opens the database handle; nil means Open.
	Connect func(ctx context.Context, cfg config.Config) (*sql.DB, error)
	Log     zerolog.Logger
}

// Run executes the export. Tables are processed one at a time in catalog
// order and the first failing table aborts the run before any artifact is
// written. The database handle is closed on every path once opened.
func (o *Orchestrator) Run(ctx context.Context) (res *Result, err error) {
	cfg := o.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := o.Confirm
	if provider == nil {
		provider = confirm.AlwaysYes{}
	}
	mode, proceed, err := o.confirm(ctx, provider)
	if err != nil {
		return nil, err
	}
	if !proceed {
		o.Log.Info().Msg("Export cancelled, nothing was written")
		return &Result{Status: StatusDeclined}, nil
	}
	cfg.ExportMode = mode

	connect := o.Connect
	if connect == nil {
		connect = Open
	}
	db, err := connect(ctx, cfg)
	if err != nil {
		if errs.KindOf(err) == errs.KindUnknown {
			err = errs.Wrap(errs.KindConnection, "cannot connect to database", err)
		}
		return nil, err
	}
	o.Log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connected to MySQL")
	defer func() {
		if cerr := db.Close(); cerr != nil {
			o.Log.Warn().Err(cerr).Msg("Error closing database connection")
			if err == nil {
				err = errs.Wrap(errs.KindConnection, "error closing connection", cerr)
			}
		}
	}()

	start := time.Now()
	tables, err := ListTables(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		o.Log.Warn().Str("database", cfg.Database).Msg("No tables found")
	}

	bundle := NewExportBundle()
	decls := make([]TypeDeclaration, 0, len(tables))
	for _, name := range tables {
		snap, err := ExportTable(ctx, db, name, o.Log)
		if err != nil {
			return nil, err
		}
		bundle.Add(snap)
		decls = append(decls, NewTypeDeclaration(snap.Name, snap.Columns))
	}

	files, err := o.persist(ctx, cfg, provider, bundle, decls)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		o.Log.Info().Str("file", f).Msg("Artifact written")
	}
	o.Log.Info().Int("tables", len(tables)).Dur("elapsed", time.Since(start)).Msg("Export complete")
	return &Result{Status: StatusCompleted, Tables: tables, Files: files}, nil
}

// confirm asks the pre-flight questions and returns the export mode to use.
// proceed is false when the user declined or chose no row-data artifact.
func (o *Orchestrator) confirm(ctx context.Context, p confirm.Provider) (mode config.ExportMode, proceed bool, err error) {
	mode = o.Config.ExportMode
	ok, err := p.Confirm(ctx, PromptProceed)
	if err != nil || !ok {
		return mode, false, wrapPrompt(err)
	}
	if !o.Config.AskMode {
		return mode, true, nil
	}

	single, err := p.Confirm(ctx, PromptSingleFile)
	if err != nil {
		return mode, false, wrapPrompt(err)
	}
	perTable, err := p.Confirm(ctx, PromptPerTable)
	if err != nil {
		return mode, false, wrapPrompt(err)
	}
	switch {
	case single && perTable:
		return config.ModeBoth, true, nil
	case single:
		return config.ModeSingleFile, true, nil
	case perTable:
		return config.ModePerTable, true, nil
	}
	return mode, false, nil
}

func wrapPrompt(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("error reading confirmation: %w", err)
}

func (o *Orchestrator) persist(ctx context.Context, cfg config.Config, p confirm.Provider, bundle *ExportBundle, decls []TypeDeclaration) ([]string, error) {
	if cfg.Mirror != "" {
		if err := CheckMirrorNames(bundle); err != nil {
			return nil, err
		}
	}
	files, err := WriteArtifacts(cfg.OutputDir, cfg.ExportMode, bundle, decls)
	if err != nil {
		return nil, err
	}
	if cfg.GoTypes {
		src, err := GoTypes(cfg.GoPackage, decls)
		if err != nil {
			return nil, errs.Wrap(errs.KindFilesystem, "error generating Go types", err)
		}
		path := filepath.Join(cfg.OutputDir, GoTypesFileName)
		if err := writeFile(path, src); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	if cfg.Mirror != "" {
		path, err := Mirror(ctx, cfg.Mirror, cfg.OutputDir, bundle, p, o.Log)
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}
