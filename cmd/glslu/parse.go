package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"glslu/internal/diag"
	"glslu/internal/diagfmt"
	"glslu/internal/trace"
	"glslu/internal/uniform"
	"glslu/internal/unit"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <declaration|->",
	Short: "Parse a single uniform declaration",
	Long: `Parse one uniform(section) type(params) name[array]; // comment
declaration and print its fields. Use - to read the declaration from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Uint32("line", 1, "source line reported in diagnostics")
	parseCmd.Flags().String("name", "<input>", "file name reported in diagnostics")
}

// parseOutput is the JSON shape of a parsed declaration.
type parseOutput struct {
	Ok          bool                      `json:"ok"`
	Type        string                    `json:"type,omitempty"`
	Name        string                    `json:"name,omitempty"`
	Array       string                    `json:"array,omitempty"`
	Params      string                    `json:"params,omitempty"`
	ParamDict   map[string][]string       `json:"param_dict,omitempty"`
	Direction   string                    `json:"direction,omitempty"`
	Widget      string                    `json:"widget,omitempty"`
	Comment     string                    `json:"comment,omitempty"`
	Section     string                    `json:"section,omitempty"`
	Order       int                       `json:"order,omitempty"`
	Cond        string                    `json:"cond,omitempty"`
	NoExport    bool                      `json:"no_export,omitempty"`
	Uploadable  bool                      `json:"uploadable"`
	Line        uint32                    `json:"line,omitempty"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	line, err := cmd.Flags().GetUint32("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}

	src := args[0]
	if src == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		src = string(data)
	}

	tracer := trace.FromContext(cmd.Context())
	sess := unit.NewSession(unit.TraceObserver{Tracer: tracer})
	u := sess.Add(name)

	span := trace.Begin(tracer, trace.ScopeDriver, "parse", 0)
	decl := uniform.Parse(src, line, u)
	if decl.IsOk() {
		uniform.CheckSupport(&decl, u)
	}
	span.End(decl.Name)

	entries := sess.Collect(u.ID)
	switch strings.ToLower(format) {
	case "json":
		if err := renderParseJSON(cmd.OutOrStdout(), &decl, entries); err != nil {
			return err
		}
	case "pretty":
		colored, colorErr := useColor(cmd)
		if colorErr != nil {
			return colorErr
		}
		renderParsePretty(cmd.OutOrStdout(), &decl)
		diagfmt.Pretty(cmd.OutOrStdout(), entries, nil, diagfmt.PrettyOpts{
			Color:    colored,
			PathMode: diagfmt.PathModeBasename,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !decl.IsOk() || entries.HasErrors() {
		runCleanups()
		os.Exit(1)
	}
	return nil
}

func renderParsePretty(out io.Writer, d *uniform.Declaration) {
	if !d.IsOk() {
		fmt.Fprintln(out, "no declaration")
		return
	}
	row := func(key, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-10s %s\n", key+":", value)
		}
	}
	row("type", d.Type)
	row("name", d.Name)
	row("array", d.Array)
	row("params", d.Params)
	row("direction", d.Direction)
	if w, ok := uniform.Widget(d); ok {
		row("widget", w)
	}
	row("section", d.SectionName)
	if d.SectionOrder != 0 {
		row("order", fmt.Sprint(d.SectionOrder))
	}
	row("cond", d.SectionCond)
	if d.NoExport {
		row("export", "no")
	}
	if d.NotUploadableToGPU {
		row("gpu", "not uploaded")
	}
	row("comment", d.Comment)
}

func renderParseJSON(out io.Writer, d *uniform.Declaration, entries diag.Entries) error {
	payload := parseOutput{
		Ok:          d.IsOk(),
		Diagnostics: diagfmt.BuildDiagnosticsOutput(entries, nil, diagfmt.JSONOpts{PathMode: diagfmt.PathModeBasename}),
	}
	if d.IsOk() {
		widget, _ := uniform.Widget(d)
		payload.Type = d.Type
		payload.Name = d.Name
		payload.Array = d.Array
		payload.Params = d.Params
		payload.ParamDict = d.ParamList.Dict
		payload.Direction = d.Direction
		payload.Widget = widget
		payload.Comment = d.Comment
		payload.Section = d.SectionName
		payload.Order = d.SectionOrder
		payload.Cond = d.SectionCond
		payload.NoExport = d.NoExport
		payload.Uploadable = !d.NotUploadableToGPU
		payload.Line = d.SourceLine
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
