package dbexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tannerpace/sqltojson/config"
	"github.com/tannerpace/sqltojson/errs"
)

// Artifact file names.
const (
	ExportFileName  = "database_export.json"
	TypesFileName   = "database_types.d.ts"
	GoTypesFileName = "database_types.go"
)

// WriteArtifacts writes the row data selected by mode and the TypeScript
// declarations into dir and returns the paths written, in write order.
// Each file is written in full on its own; a failure part way leaves the
// earlier files in place.
func WriteArtifacts(dir string, mode config.ExportMode, bundle *ExportBundle, decls []TypeDeclaration) ([]string, error) {
	if err := checkFileNames(mode, bundle); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(errs.KindFilesystem, "error creating output directory", err)
	}

	var files []string
	if mode.SingleFile() {
		path := filepath.Join(dir, ExportFileName)
		if err := WriteJSON(path, bundle); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	if mode.PerTable() {
		for _, s := range bundle.Tables() {
			path := filepath.Join(dir, TableFileName(s.Name))
			if err := WriteJSON(path, rowsOf(s)); err != nil {
				return files, errs.Wrap(errs.KindFilesystem, "error writing table file", err).WithTable(s.Name)
			}
			files = append(files, path)
		}
	}

	path := filepath.Join(dir, TypesFileName)
	if err := writeFile(path, []byte(RenderTypeScript(decls))); err != nil {
		return files, err
	}
	return append(files, path), nil
}

// checkFileNames fails, before anything is written, when a per-table file
// would land on the single-file export or on another table's file.
func checkFileNames(mode config.ExportMode, bundle *ExportBundle) error {
	if !mode.PerTable() {
		return nil
	}
	seen := make(map[string]string)
	for _, s := range bundle.Tables() {
		name := TableFileName(s.Name)
		if mode.SingleFile() && name == ExportFileName {
			return errs.New(errs.KindFilesystem, fmt.Sprintf("per-table file %s would overwrite the single-file export", name)).WithTable(s.Name)
		}
		if prev, ok := seen[name]; ok {
			return errs.New(errs.KindFilesystem, fmt.Sprintf("tables %q and %q both map to %s", prev, s.Name, name)).WithTable(s.Name)
		}
		seen[name] = s.Name
	}
	return nil
}

// TableFileName is the per-table JSON file name. Path separators are
// replaced so the file always lands inside the output directory.
func TableFileName(table string) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(table)
	if name == "." || name == ".." {
		name = strings.Repeat("_", len(name))
	}
	return name + ".json"
}

// WriteJSON writes v with two-space indentation and no trailing newline.
func WriteJSON(path string, v interface{}) error {
	data, err := encodeJSON(v, "  ")
	if err != nil {
		return errs.Wrap(errs.KindFilesystem, "error encoding "+filepath.Base(path), err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.KindFilesystem, "error writing "+path, err)
	}
	return nil
}
