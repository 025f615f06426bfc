package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	werrors "github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/internal/source"
)

// bindingInfo is the JSON form of a binding descriptor.
type bindingInfo struct {
	Index      int      `json:"index"`
	Role       string   `json:"role"`
	Name       string   `json:"name,omitempty"`
	Keys       []string `json:"keys"`
	Directives string   `json:"directives,omitempty"`
}

type compileOutput struct {
	Markup      string                `json:"markup"`
	Bindings    []bindingInfo         `json:"bindings"`
	Diagnostics []*werrors.WeccoError `json:"diagnostics,omitempty"`
}

func compileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Show the compiled form of a template",
		Long: `Compile a template and print its placeholder markup and the
bindings found in it.

Examples:
  wecco compile page.html
  wecco compile page.html --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(cmd.ErrOrStderr()); err != nil {
				return err
			}
			src, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := describeTemplate(src)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printCompiled(cmd.OutOrStdout(), cmd.ErrOrStderr(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func describeTemplate(src *source.Source) compileOutput {
	tmpl := src.Template()
	out := compileOutput{Markup: tmpl.Markup(), Bindings: []bindingInfo{}}
	for _, d := range tmpl.Descriptors() {
		info := bindingInfo{Index: d.Index, Role: d.Role.String(), Name: d.Name}
		for _, slot := range d.Slots {
			info.Keys = append(info.Keys, src.Keys[slot])
		}
		if d.Directives != 0 {
			info.Directives = d.Directives.String()
		}
		out.Bindings = append(out.Bindings, info)
	}
	for _, diag := range tmpl.Diagnostics() {
		out.Diagnostics = append(out.Diagnostics, diag)
	}
	return out
}

func printCompiled(w, stderr io.Writer, out compileOutput) {
	fmt.Fprintln(w, out.Markup)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tROLE\tNAME\tKEYS\tDIRECTIVES")
	for _, b := range out.Bindings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.Index, b.Role, dash(b.Name), strings.Join(b.Keys, ","), dash(b.Directives))
	}
	tw.Flush()

	for _, d := range out.Diagnostics {
		warn(stderr, "%s", d.FormatCompact())
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
