package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"glslu/internal/diag"
	"glslu/internal/diagfmt"
	"glslu/internal/driver"
	"glslu/internal/project"
	"glslu/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory|->",
	Short: "Report uniform and include diagnostics of shader sources",
	Long: `Scan a shader file and everything it includes, or every shader within a
directory, and report malformed uniform declarations, unsupported types and
widgets, and broken includes. Use - to read one shader from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().StringArrayP("include", "I", nil, "additional include directory (repeatable)")
	diagCmd.Flags().Int("max-include-depth", 0, "include nesting limit (0 = from glslu.toml)")
	diagCmd.Flags().Bool("cache", false, "replay unchanged files from the disk cache")
	diagCmd.Flags().String("compiler-log", "", "import ERROR:/WARNING: lines of a GLSL compiler log (single file only)")
	diagCmd.Flags().String("compiler-category", "", "category recorded for imported compiler messages (default: the shader stage from the file extension)")
	diagCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().Bool("no-source", false, "do not print source lines under diagnostics")
}

type diagFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	includeDirs      []string
	maxDepth         int
	cache            bool
	compilerLog      string
	compilerCategory string
	ui               uiMode
	fullPath         bool
	noSource         bool
	maxDiagnostics   int
	showTimings      bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error

	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.includeDirs, err = cmd.Flags().GetStringArray("include"); err != nil {
		return f, fmt.Errorf("failed to get include flag: %w", err)
	}
	if f.maxDepth, err = cmd.Flags().GetInt("max-include-depth"); err != nil {
		return f, fmt.Errorf("failed to get max-include-depth flag: %w", err)
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if f.compilerLog, err = cmd.Flags().GetString("compiler-log"); err != nil {
		return f, fmt.Errorf("failed to get compiler-log flag: %w", err)
	}
	if f.compilerCategory, err = cmd.Flags().GetString("compiler-category"); err != nil {
		return f, fmt.Errorf("failed to get compiler-category flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiFlag); err != nil {
		return f, err
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.noSource, err = cmd.Flags().GetBool("no-source"); err != nil {
		return f, fmt.Errorf("failed to get no-source flag: %w", err)
	}
	if f.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return f, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if f.showTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}

	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	return f, nil
}

// runDiagnose executes the "diag" command: it merges glslu.toml with the
// flags, scans the target and renders the diagnostics. The process exits
// with status 1 when any error remains after filtering.
func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}

	startDir := "."
	if target != "-" {
		startDir = target
	}
	cfg := project.Default()
	manifest, err := project.Load(startDir)
	switch {
	case err == nil:
		cfg = manifest.Config
	case errors.Is(err, project.ErrNoConfig):
	default:
		return err
	}

	opts := driver.ScanOptions{
		MaxIncludeDepth: cfg.Scan.MaxIncludeDepth,
		Extensions:      cfg.Scan.Extensions,
		EnableTimings:   flags.showTimings,
	}
	if manifest != nil {
		opts.IncludeDirs = manifest.IncludeDirs()
	}
	opts.IncludeDirs = append(opts.IncludeDirs, flags.includeDirs...)
	if flags.maxDepth > 0 {
		opts.MaxIncludeDepth = flags.maxDepth
	}
	if flags.cache || cfg.Cache.Enabled {
		cache, cacheErr := openCache(cfg.Cache)
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	noWarnings := flags.noWarnings || (cfg.Diagnostics.NoWarnings && !flags.warningsAsErrors)
	warningsAsErrors := flags.warningsAsErrors || (cfg.Diagnostics.WarningsAsErrors && !flags.noWarnings)
	maxDiagnostics := cfg.Diagnostics.Max
	if flags.maxDiagnostics > 0 {
		maxDiagnostics = flags.maxDiagnostics
	}

	var (
		entries diag.Entries
		fs      *source.FileSet
	)
	switch {
	case target == "-":
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		res, scanErr := driver.ScanSource(cmd.Context(), "<stdin>", content, opts)
		if scanErr != nil {
			return scanErr
		}
		entries, fs = res.Entries(), res.FileSet
		printTimingsIfAny(cmd, flags.showTimings, res)

	default:
		st, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("failed to stat %s: %w", target, statErr)
		}
		if st.IsDir() {
			if flags.compilerLog != "" {
				return fmt.Errorf("--compiler-log needs a single shader file")
			}
			results, dirErr := scanDirectory(cmd, target, opts, flags)
			if dirErr != nil {
				return dirErr
			}
			entries = driver.MergeEntries(results)
			fs = driver.MergedFileSet(target, results)
			for _, r := range results {
				printTimingsIfAny(cmd, flags.showTimings, r)
			}
			break
		}

		res, scanErr := driver.ScanFile(cmd.Context(), target, opts)
		if scanErr != nil {
			return scanErr
		}
		if flags.compilerLog != "" {
			if err := importCompilerLog(res, flags.compilerLog, flags.compilerCategory); err != nil {
				return err
			}
		}
		entries, fs = res.Entries(), res.FileSet
		printTimingsIfAny(cmd, flags.showTimings, res)
	}

	if noWarnings {
		entries = entries.WithoutWarnings()
	}
	if warningsAsErrors {
		entries = entries.PromoteWarnings()
	}

	pathMode := diagfmt.PathModeRelative
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case "pretty":
		colored, colorErr := useColor(cmd)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(out, entries.Limit(maxDiagnostics), fs, diagfmt.PrettyOpts{
			Color:        colored,
			PathMode:     pathMode,
			ShowSource:   !flags.noSource,
			ShowCategory: true,
			Summary:      true,
		})
	case "json":
		if err := diagfmt.JSON(out, entries, fs, diagfmt.JSONOpts{
			PathMode:         pathMode,
			Max:              maxDiagnostics,
			IncludeFragments: true,
		}); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	case "short":
		base := ""
		if fs != nil && !flags.fullPath {
			base = fs.BaseDir()
		}
		if text := diag.FormatShort(entries.Limit(maxDiagnostics), base); text != "" {
			fmt.Fprintln(out, text)
		}
	}

	if entries.HasErrors() {
		runCleanups()
		os.Exit(1)
	}
	return nil
}

func scanDirectory(cmd *cobra.Command, dir string, opts driver.ScanOptions, flags diagFlags) ([]*driver.ScanResult, error) {
	if flags.ui.enabled(os.Stdout) && flags.format == "pretty" {
		exts := opts.Extensions
		if len(exts) == 0 {
			exts = driver.DefaultExtensions
		}
		files, err := driver.ListShaderFiles(dir, exts)
		if err != nil {
			return nil, err
		}
		_, results, err := runScanDirWithUI(cmd.Context(), "diagnosing "+dir, dir, files, opts, flags.jobs)
		return results, err
	}
	_, results, err := driver.ScanDir(cmd.Context(), dir, opts, flags.jobs)
	return results, err
}

func openCache(cfg project.CacheConfig) (*driver.DiskCache, error) {
	if cfg.Dir != "" {
		return driver.NewDiskCache(cfg.Dir)
	}
	return driver.OpenDiskCache("glslu")
}

func importCompilerLog(res *driver.ScanResult, logPath, category string) error {
	// #nosec G304 -- path is provided by the user
	f, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open compiler log: %w", err)
	}
	defer f.Close()

	if category == "" {
		category = stageCategory(res.Path)
	}
	if _, err := driver.ImportCompilerLog(res.Session, res.Root, f, category); err != nil {
		return fmt.Errorf("failed to import compiler log: %w", err)
	}
	return nil
}

// stageCategory names the shader stage after the file extension.
func stageCategory(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".frag":
		return "fragment"
	case ".vert":
		return "vertex"
	case ".comp":
		return "compute"
	case ".geom":
		return "geometry"
	default:
		return "shader"
	}
}

func printTimingsIfAny(cmd *cobra.Command, enabled bool, res *driver.ScanResult) {
	if !enabled || res == nil {
		return
	}
	printTimings(cmd.ErrOrStderr(), res.Path, res.Timing)
}
