package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-chat/internal/experience"
	"github.com/jonathan/resume-chat/internal/ingestion"
	"github.com/jonathan/resume-chat/internal/logging"
	"github.com/jonathan/resume-chat/internal/observability"
	internalschemas "github.com/jonathan/resume-chat/internal/schemas"
	"github.com/jonathan/resume-chat/schemas"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Compute total professional experience from resume files",
	Long:  "Extracts the text of each PDF or DOCX resume, finds bracketed date ranges such as (Jan 2020 - Present), and prints the total months covered with overlaps counted once.",
	RunE:  runExperience,
}

var (
	experienceFiles []string
	experienceJSON  bool
	experienceNow   string
)

func init() {
	experienceCmd.Flags().StringArrayVarP(&experienceFiles, "file", "f", nil, "Resume file (.pdf or .docx); repeat for several files (required)")
	experienceCmd.Flags().BoolVar(&experienceJSON, "json", false, "Print a JSON report per file")
	experienceCmd.Flags().StringVar(&experienceNow, "now", "", "Month that Present/Current resolves to, as YYYY-MM (default: this month)")

	if err := experienceCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(experienceCmd)
}

// documentLoader is satisfied by *ingestion.Loader.
type documentLoader interface {
	Load(path string) (*ingestion.Document, error)
}

func runExperience(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath, nil)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	extractor, err := newExtractor(cfg, logger, experienceNow)
	if err != nil {
		return err
	}

	ctx := logging.WithContext(cmd.Context(), logger)
	reports, err := buildReports(ctx, ingestion.NewLoader(), extractor, experienceFiles)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, r := range reports {
			printer.PrintReport(r)
		}
	}

	return writeReports(cmd.OutOrStdout(), reports, experienceJSON)
}

// buildReports analyses every file concurrently. Reports keep the order of files.
func buildReports(ctx context.Context, loader documentLoader, extractor *experience.Extractor, files []string) ([]*experience.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	reports := make([]*experience.Report, len(files))
	g, gCtx := errgroup.WithContext(ctx)

	for i, path := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			doc, err := loader.Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug().
				Str("file", doc.Metadata.FileName).
				Str("hash", doc.Metadata.Hash).
				Int("lines", doc.Metadata.Lines).
				Msg("loaded resume")

			summary, err := extractor.Analyze(doc.Text)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Info().
				Str("file", path).
				Int("intervals", len(summary.Intervals)).
				Int("total_months", summary.TotalMonths).
				Int("skipped_lines", len(summary.SkippedLines)).
				Msg("computed experience")

			// each goroutine owns one slot
			reports[i] = experience.NewReport(path, summary)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// writeReports prints one line per report, or a validated JSON document per
// report when asJSON is set.
func writeReports(w io.Writer, reports []*experience.Report, asJSON bool) error {
	for _, r := range reports {
		if !asJSON {
			if _, err := fmt.Fprintf(w, "%s: %s\n", r.File, r.Formatted); err != nil {
				return err
			}
			continue
		}

		data, err := r.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := internalschemas.ValidateJSONBytes(schemas.ExperienceReport, data); err != nil {
			return fmt.Errorf("report for %s does not validate against %s: %w", r.File, schemas.ExperienceReportFile, err)
		}
		if _, err := fmt.Fprintln(w, strings.TrimSpace(string(data))); err != nil {
			return err
		}
	}
	return nil
}
