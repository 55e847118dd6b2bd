package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/crmclean"
	"github.com/smileynet/crmclean/internal/config"
	"github.com/smileynet/crmclean/internal/contact"
	"github.com/smileynet/crmclean/internal/export"
	"github.com/smileynet/crmclean/internal/logging"
	"github.com/smileynet/crmclean/internal/store"
	"github.com/smileynet/crmclean/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for crmclean.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Clean   CleanCmd         `cmd:"" help:"Clean a raw contact list into a tabular export."`
	Sample  SampleCmd        `cmd:"" help:"Write the sample contact list."`
	Preview PreviewCmd       `cmd:"" help:"Browse cleaned records in an interactive table."`
}

// CleanCmd normalizes and deduplicates a raw contact file.
type CleanCmd struct {
	Input   string `arg:"" optional:"" help:"Raw contact file (default: input.path from config)."`
	Output  string `short:"o" help:"Output file (default: output.path from config)."`
	Format  string `short:"f" help:"Output format: csv, tsv or json (default: output.format from config)."`
	NoColor bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
	Verbose bool   `short:"v" help:"List every skipped line in the summary." default:"false"`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/crmclean/config.yaml"),
		".crmclean/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the clean command.
func (c *CleanCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	// Apply CLI flag overrides.
	c.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	logger, err := logging.New(cfg.Log.Env, cfg.Log.Level, os.Stderr)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	defer logging.Sync(logger)

	display := tui.NewDisplay(tui.DisplayOptions{
		Writer:     os.Stdout,
		ForcePlain: c.NoColor,
	})

	return c.run(cfg, display, logger)
}

// apply copies non-empty flags over the loaded config.
func (c *CleanCmd) apply(cfg *config.Config) {
	if c.Input != "" {
		cfg.Input.Path = c.Input
	}
	if c.Output != "" {
		cfg.Output.Path = c.Output
	}
	if c.Format != "" {
		cfg.Output.Format = c.Format
	}
}

// run reads, cleans and exports the contact list, enabling testable wiring.
// A missing input file is reported as a warning and ends the run without error.
func (c *CleanCmd) run(cfg *config.Config, display tui.Display, logger *zap.Logger) error {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	text, err := store.ReadText(cfg.Input.Path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("input missing", zap.String("path", cfg.Input.Path))
			display.Warn("file not found: %s", cfg.Input.Path)
			return nil
		}
		return fmt.Errorf("clean: %w", err)
	}

	pipeline := contact.NewPipeline(contact.WithSkipCallback(func(s contact.Skip) {
		logger.Debug("skipped line",
			zap.Int("line", s.Line),
			zap.String("reason", string(s.Reason)),
		)
	}))
	res := pipeline.Run(text)

	err = store.WriteFile(cfg.Output.Path, store.WriteOptions{Overwrite: cfg.Output.Overwrite}, func(w io.Writer) error {
		return export.Write(w, format, res.Records)
	})
	if err != nil {
		return &runError{op: "clean", err: err}
	}

	logger.Info("clean complete",
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path),
		zap.Int("lines", res.Lines),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)),
	)

	display.Render(tui.Summary{
		Input:   cfg.Input.Path,
		Output:  cfg.Output.Path,
		Format:  string(format),
		Lines:   res.Lines,
		Records: len(res.Records),
		Skipped: res.Skipped,
		Verbose: c.Verbose,
	})
	return nil
}

// SampleCmd writes the embedded sample contact list to disk.
type SampleCmd struct {
	Path  string `arg:"" optional:"" default:"contacts_raw.txt" help:"Destination file."`
	Force bool   `help:"Overwrite an existing file." default:"false"`
}

// Run executes the sample command.
func (s *SampleCmd) Run() error {
	return s.run(os.Stdout)
}

// run writes the sample to s.Path, enabling testable wiring.
func (s *SampleCmd) run(w io.Writer) error {
	err := store.WriteFile(s.Path, store.WriteOptions{Overwrite: s.Force}, func(f io.Writer) error {
		_, err := f.Write(crmclean.SampleContacts())
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrExists) {
			return &runError{op: "sample", err: fmt.Errorf("%w (use --force to overwrite)", err)}
		}
		return &runError{op: "sample", err: err}
	}

	_, _ = fmt.Fprintf(w, "Wrote %s with sample contact data\n", s.Path)
	return nil
}

// PreviewCmd shows cleaned records in an interactive table.
type PreviewCmd struct {
	Input string `arg:"" optional:"" help:"Raw contact file (default: input.path from config)."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the preview model and launches the TUI.
func (p *PreviewCmd) Run() error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY {
		return fmt.Errorf("preview: requires a terminal (TTY)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if p.Input != "" {
		cfg.Input.Path = p.Input
	}

	records, err := p.load(cfg.Input.Path)
	if err != nil {
		return err
	}

	m := tui.NewModel(cfg.Input.Path, records)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	return p.run(isTTY, prog)
}

// load reads and cleans the preview input.
func (p *PreviewCmd) load(path string) ([]contact.Record, error) {
	text, err := store.ReadText(path)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return contact.Clean(text), nil
}

// run executes the tea program, enabling testable wiring.
func (p *PreviewCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("preview: requires a terminal (TTY)")
	}
	if _, err := prog.Run(); err != nil {
		return &runError{op: "preview", err: err}
	}
	return nil
}

// runError marks a failure that happened after setup succeeded.
type runError struct {
	op  string
	err error
}

func (e *runError) Error() string { return e.op + ": " + e.err.Error() }

func (e *runError) Unwrap() error { return e.err }

// Exit codes.
const (
	exitSuccess = 0
	exitRun     = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var re *runError
	if errors.As(err, &re) {
		return exitRun
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("crmclean"),
		kong.Description("Normalize and deduplicate loosely formatted contact lists."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
