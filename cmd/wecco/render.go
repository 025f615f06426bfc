package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wecco-dev/wecco/internal/config"
	"github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/internal/source"
	"github.com/wecco-dev/wecco/internal/watch"
	"github.com/wecco-dev/wecco/pkg/dom"
	"github.com/wecco-dev/wecco/pkg/metrics"
	"github.com/wecco-dev/wecco/pkg/render"
	"github.com/wecco-dev/wecco/pkg/scheduler"
	"github.com/wecco-dev/wecco/pkg/template"
)

type renderOptions struct {
	data         string
	dataFormat   string
	output       string
	watch        bool
	stripMarkers bool
	pretty       bool
	indent       string
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a template against a data document",
		Long: `Render a template with its ${key} holes resolved against a data
document and print the resulting markup.

With --watch the template and data files are watched and the output is
re-rendered on every change. Data-only changes update the existing
tree in place; template changes rebuild it.

Examples:
  wecco render page.html --data data.json
  wecco render page.html --data data.yaml --pretty
  wecco render page.html --data data.msgpack --strip-markers -o out.html
  wecco render page.html --data data.json --watch -o out.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("strip-markers") {
				cfg.StripMarkers = opts.stripMarkers
			}
			if flags.Changed("pretty") {
				cfg.Pretty = opts.pretty
			}
			if flags.Changed("indent") {
				cfg.Indent = opts.indent
			}
			return runRender(cmd, cfg, logger, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Data document (.json, .yaml, .yml, .msgpack)")
	cmd.Flags().StringVar(&opts.dataFormat, "data-format", "", "Data format, overriding the file extension (json, yaml, msgpack)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-render when the template or data changes")
	cmd.Flags().BoolVar(&opts.stripMarkers, "strip-markers", false, "Omit placeholder marker comments")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	cmd.Flags().StringVar(&opts.indent, "indent", config.DefaultIndent, "Indent unit used with --pretty")

	return cmd
}

// renderSession keeps the render tree alive between passes so watch mode
// updates it incrementally.
type renderSession struct {
	file       string
	opts       renderOptions
	body       *dom.Node
	renderer   *template.Renderer
	serializer *render.Renderer
	out        io.Writer
	logger     *slog.Logger
	passes     int
}

func newRenderSession(cfg *config.Config, logger *slog.Logger, file string, opts renderOptions, out io.Writer) *renderSession {
	doc := dom.NewDocument()
	body := dom.NewElement("body")
	doc.AppendChild(body)
	return &renderSession{
		file:       file,
		opts:       opts,
		body:       body,
		renderer:   template.NewRenderer(template.WithLogger(logger), template.WithMetrics(metrics.Default())),
		serializer: render.NewRenderer(cfg.RendererConfig()),
		out:        out,
		logger:     logger,
	}
}

func (s *renderSession) loadData() (map[string]any, error) {
	if s.opts.data == "" {
		return map[string]any{}, nil
	}
	if s.opts.dataFormat == "" {
		return source.ReadData(s.opts.data)
	}
	raw, err := os.ReadFile(s.opts.data)
	if err != nil {
		return nil, errors.New("W012").WithDetail(err.Error()).Wrap(err)
	}
	data, err := source.DecodeData(raw, source.Format(s.opts.dataFormat))
	if err != nil {
		return nil, errors.New("W012").WithDetailf("cannot decode %s as %s: %v", s.opts.data, s.opts.dataFormat, err).Wrap(err)
	}
	return data, nil
}

func (s *renderSession) render() error {
	start := time.Now()
	src, err := source.ReadFile(s.file)
	if err != nil {
		return err
	}
	data, err := s.loadData()
	if err != nil {
		return err
	}
	for _, key := range src.Missing(data) {
		s.logger.Warn("unresolved key", "key", key, "file", s.file)
	}

	if err := s.renderer.Apply(s.body, src.Bind(data)); err != nil {
		return err
	}
	html, err := s.serializer.InnerHTML(s.body)
	if err != nil {
		return err
	}
	if s.opts.output != "" {
		if err := os.WriteFile(s.opts.output, []byte(html+"\n"), 0644); err != nil {
			return errors.New("W012").WithDetail(err.Error()).Wrap(err)
		}
	} else {
		fmt.Fprintln(s.out, html)
	}
	s.passes++
	s.logger.Debug("rendered", "file", s.file, "pass", s.passes, "duration", time.Since(start))
	return nil
}

func runRender(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, file string, opts renderOptions) error {
	if opts.dataFormat != "" {
		switch source.Format(opts.dataFormat) {
		case source.FormatJSON, source.FormatYAML, source.FormatMsgpack:
		default:
			return errors.New("W012").WithDetailf("unknown data format %q", opts.dataFormat)
		}
	}

	sess := newRenderSession(cfg, logger, file, opts, cmd.OutOrStdout())
	if err := sess.render(); err != nil {
		return err
	}
	if cfg.Metrics.Enabled {
		defer printMetrics(cmd.ErrOrStderr(), prometheus.DefaultGatherer, cfg.Metrics.Namespace+"_")
	}
	if !opts.watch {
		return nil
	}

	debounce, _ := cfg.DebounceDuration()
	paths := []string{file}
	if opts.data != "" {
		paths = append(paths, opts.data)
	}
	w, err := watch.New(watch.Config{Paths: paths, Debounce: debounce, Logger: logger})
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(scheduler.WithLogger(logger))
	w.OnChange(func(changed []string) {
		sched.Schedule(func() {
			if err := sess.render(); err != nil {
				errors.PrintError(err)
				return
			}
			success(cmd.ErrOrStderr(), "Re-rendered %s (%d changed)", file, len(changed))
		})
	})
	go w.Run(ctx)

	success(cmd.ErrOrStderr(), "Watching %s", file)
	if err := sched.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// printMetrics writes a one-line summary of every metric family whose name
// starts with prefix.
func printMetrics(w io.Writer, g prometheus.Gatherer, prefix string) {
	families, err := g.Gather()
	if err != nil {
		return
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		fmt.Fprintf(w, "  %-48s %g\n", mf.GetName(), total)
	}
}
