package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// errDoctorFailed is returned when any doctor check fails.
var errDoctorFailed = errors.New("doctor found problems")

func newDoctorCommand(a *app) *cobra.Command {
	var noSchema bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and the task file",
		Long: `doctor reports problems that normal commands hide.

Commands like list treat an unreadable task file as empty; doctor reads it
strictly and reports JSON syntax errors, schema violations, malformed
records, and duplicate ids.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.doctor(!noSchema)
		},
	}
	cmd.Flags().BoolVar(&noSchema, "no-schema", false, "Skip JSON Schema validation")
	return cmd
}

func (a *app) doctor(useSchema bool) error {
	w := a.stdout
	cfg := a.cfg.Config

	fmt.Fprintln(w, "taskcli doctor")
	fmt.Fprintln(w, "==============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if a.cfg.File != "" {
		fmt.Fprintf(w, "  ✅ Config file: %s\n", a.cfg.File)
	} else {
		fmt.Fprintln(w, "  ✅ Config file: none (using defaults)")
	}
	for _, key := range a.cfg.Undecoded {
		fmt.Fprintf(w, "  ⚠️  Unknown key: %s\n", key)
	}
	fmt.Fprintf(w, "  ✅ Log level: %s\n", cfg.LogLevel)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s\n", cfg.DataFile)
	exists, ok := checkDataFile(w, cfg.DataFile)
	if !ok {
		fmt.Fprintln(w)
		return errDoctorFailed
	}
	if !exists {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "All checks passed.")
		return nil
	}

	result, err := a.service(io.Discard).Check(useSchema)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		fmt.Fprintln(w)
		return errDoctorFailed
	}

	if result.UsedSchema {
		fmt.Fprintln(w, "  ✅ JSON Schema validation enabled")
	} else if useSchema {
		fmt.Fprintln(w, "  ⚠️  JSON Schema validation unavailable")
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if result.Valid {
		fmt.Fprintf(w, "  ✅ %d task(s), no problems found\n", result.Tasks)
	} else {
		allOK = false
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  ❌ %v\n", e)
		}
	}
	fmt.Fprintln(w)

	if !allOK {
		fmt.Fprintln(w, "Commands other than doctor will treat this file as empty;")
		fmt.Fprintln(w, "the next change will overwrite it. Fix or move it first.")
		return errDoctorFailed
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// checkDataFile reports whether the task file exists and whether it (or
// the directory it will be created in) is usable. A missing file is fine;
// it is created on first use.
func checkDataFile(w io.Writer, path string) (exists, ok bool) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return true, false
	case err == nil:
		fmt.Fprintln(w, "  ✅ Exists")
		return true, true
	case !errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false, false
	}

	dir := filepath.Dir(path)
	if dinfo, derr := os.Stat(dir); derr == nil && !dinfo.IsDir() {
		fmt.Fprintf(w, "  ❌ Error: %s is not a directory\n", dir)
		return false, false
	}
	fmt.Fprintln(w, "  ✅ Not created yet (will be created on first use)")
	return false, true
}
