package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nonsonwune/olympics_eda/analysis"
	"github.com/nonsonwune/olympics_eda/config"
	"github.com/nonsonwune/olympics_eda/importer"
	"github.com/nonsonwune/olympics_eda/metrics"
	"github.com/nonsonwune/olympics_eda/models"
	"github.com/nonsonwune/olympics_eda/render"
	"github.com/nonsonwune/olympics_eda/report"
)

// errAnalysesFailed is returned after a run in which at least one analysis
// failed. The others still ran and produced their output.
var errAnalysesFailed = errors.New("analyses failed")

// cli carries the flag values shared by every command.
type cli struct {
	cfgFile  string
	logLevel string
	out      io.Writer
	logger   *logrus.Logger
}

func newRootCommand(out io.Writer, logger *logrus.Logger) *cobra.Command {
	c := &cli{out: out, logger: logger}

	root := &cobra.Command{
		Use:   "olympics-eda",
		Short: "Exploratory analysis of historical Olympic athlete results",
		Long: `olympics-eda loads the athlete-event table and the NOC region lookup,
joins them, and runs a fixed series of descriptive analyses. Each analysis
prints its statistics and writes its charts as PNG files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.report(c.runAnalyses(cmd.Context(), nil))
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $"+config.EnvConfigFile+")")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config")

	root.AddCommand(c.analyzeCommand(), c.listCommand(), c.importCommand())
	return root
}

func (c *cli) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <name>...",
		Short: "Run only the named analyses, in their usual order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.report(c.runAnalyses(cmd.Context(), args))
		},
	}
}

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available analyses",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Name", "Description"})
			for _, def := range catalog {
				table.Append([]string{def.name, def.description})
			}
			table.Render()
		},
	}
}

func (c *cli) importCommand() *cobra.Command {
	var batchSize int
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV inputs into the Postgres tables read by the postgres source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.report(c.importCSV(cmd.Context(), batchSize))
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "rows between progress reports")
	return cmd
}

// report logs err once; cobra prints nothing itself.
func (c *cli) report(err error) error {
	if err != nil && !errors.Is(err, errAnalysesFailed) {
		c.logger.WithError(err).Error("Run aborted")
	}
	return err
}

// setup loads the configuration and applies the log level.
func (c *cli) setup() (*config.Config, *logrus.Entry, error) {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log level: %v", config.ErrInvalidConfig, err)
	}
	c.logger.SetLevel(level)

	return cfg, c.logger.WithField("run_id", uuid.NewString()), nil
}

func (c *cli) runAnalyses(ctx context.Context, requested []string) error {
	cfg, log, err := c.setup()
	if err != nil {
		return err
	}

	defs, err := selectAnalyses(requested)
	if err != nil {
		return err
	}

	charts := render.NewConfig(cfg.OutputDir, cfg.DPI, render.Style(cfg.Style))
	if err := charts.Validate(); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if err := charts.Prepare(); err != nil {
		return err
	}

	records, err := loadRecords(ctx, cfg, log)
	if err != nil {
		return err
	}

	m := metrics.NewManager()
	m.SetRecords("athlete_events", len(records))
	m.SetRecords("without_region", countWithoutRegion(records))

	runID, _ := log.Data["run_id"].(string)
	s := &session{
		cfg:     cfg,
		records: records,
		console: report.NewConsole(c.out),
		charts:  charts,
		summary: report.NewSummary(runID, cfg.Source, len(records), names(defs)),
		metrics: m,
		log:     log,
	}

	outcomes := analysis.NewRunner(log, m).Run(ctx, s.steps(defs))
	s.console.Outcomes(outcomes)
	s.summary.SetOutcomes(outcomes)

	if cfg.ReportPath != "" {
		if err := report.WriteSummary(cfg.ReportPath, s.summary); err != nil {
			log.WithError(err).Error("Failed to write summary")
		} else {
			log.WithField("path", cfg.ReportPath).Info("Summary written")
		}
	}
	if cfg.MetricsPath != "" {
		if err := m.WriteTextfile(cfg.MetricsPath); err != nil {
			log.WithError(err).Error("Failed to write metrics")
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed := analysis.Failed(outcomes); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d", errAnalysesFailed, len(failed), len(outcomes))
	}
	return nil
}

// loadRecords reads and joins the configured source.
func loadRecords(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) ([]models.EnrichedRecord, error) {
	var src importer.Source
	switch cfg.Source {
	case config.SourcePostgres:
		pg, err := importer.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		src = pg
	default:
		src = importer.NewFileSource(cfg.AthleteEventsPath, cfg.RegionsPath)
	}

	records, err := importer.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"source":         cfg.Source,
		"records":        len(records),
		"without_region": countWithoutRegion(records),
	}).Info("Data loaded")
	return records, nil
}

func (c *cli) importCSV(ctx context.Context, batchSize int) error {
	cfg, log, err := c.setup()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("%w: database_url is required for import", config.ErrInvalidConfig)
	}

	db, err := importer.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	src := importer.NewFileSource(cfg.AthleteEventsPath, cfg.RegionsPath)
	stats, err := importer.NewPostgresImporter(db, batchSize, log).Import(ctx, src)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Table", "Rows Imported"})
	for _, st := range stats {
		table.Append([]string{st.Table, fmt.Sprint(st.Imported)})
	}
	table.Render()
	return nil
}

func countWithoutRegion(records []models.EnrichedRecord) int {
	n := 0
	for _, r := range records {
		if !r.Region.Valid {
			n++
		}
	}
	return n
}

// selectAnalyses returns the named analyses in catalog order. No names
// selects all of them.
func selectAnalyses(requested []string) ([]analysisDef, error) {
	if len(requested) == 0 {
		return catalog, nil
	}
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		if _, ok := lookupAnalysis(name); !ok {
			return nil, fmt.Errorf("unknown analysis %q (available: %s)", name, strings.Join(names(catalog), ", "))
		}
		want[name] = true
	}
	var out []analysisDef
	for _, def := range catalog {
		if want[def.name] {
			out = append(out, def)
		}
	}
	return out, nil
}

func lookupAnalysis(name string) (analysisDef, bool) {
	for _, def := range catalog {
		if def.name == name {
			return def, true
		}
	}
	return analysisDef{}, false
}

func names(defs []analysisDef) []string {
	out := make([]string, len(defs))
	for i, def := range defs {
		out[i] = def.name
	}
	return out
}
