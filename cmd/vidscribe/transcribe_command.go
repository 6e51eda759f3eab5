package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vidscribe/internal/logging"
	"vidscribe/internal/pipeline"
	"vidscribe/internal/services"
)

func runTranscribe(cmd *cobra.Command, ctx *commandContext, videoPath string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: out,
	})
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "create logger", "", err)
	}

	rt, err := ctx.newRuntime(cmd.Context(), cfg, logger, out)
	if err != nil {
		logging.ErrorWithContext(logger, "cloud clients unavailable", "client_init_failure",
			logging.String(logging.FieldErrorHint, "check credentials (gcloud auth application-default login or gcp.credentials_file)"),
			logging.Error(err),
		)
		return &reportedError{err: services.Wrap(services.ErrConfiguration, "cli", "create clients", "", err)}
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Debug("client shutdown failed", logging.Error(err))
		}
	}()

	report, runErr := pipeline.New(cfg, rt.deps).Run(cmd.Context(), videoPath)
	fmt.Fprintln(out, renderReport(report, shouldColorize(out)))
	if runErr != nil {
		return &reportedError{err: runErr}
	}
	return nil
}

func renderReport(report pipeline.Report, colorize bool) string {
	rows := make([][]string, 0, len(report.Steps)+1)
	ran := make(map[string]bool, len(report.Steps))
	for _, step := range report.Steps {
		ran[step.Name] = true
		kind := statusOK
		detail := step.Detail
		if !step.Succeeded() {
			kind = statusError
			detail = step.Err.Error()
		}
		rows = append(rows, []string{step.Name, renderStatus(kind, colorize), formatDuration(step.Duration), detail})
	}
	for _, name := range []string{pipeline.StepExtract, pipeline.StepUpload, pipeline.StepTranscribe, pipeline.StepSave} {
		if !ran[name] && report.State == pipeline.StateFailed {
			rows = append(rows, []string{name, renderStatus(statusInfo, colorize), "", "skipped"})
		}
	}

	var b strings.Builder
	b.WriteString(renderTable(stepColumns, rows))
	b.WriteString("\n")
	writeSummaryLine(&b, "Run", report.RunID)
	writeSummaryLine(&b, "State", report.State.String())
	if report.TranscriptPath != "" {
		writeSummaryLine(&b, "Transcript", report.TranscriptPath)
	}
	if report.State == pipeline.StateFailed && report.AudioPath != "" {
		writeSummaryLine(&b, "Audio kept", report.AudioPath)
	}
	if report.State == pipeline.StateFailed && report.RemoteURI != "" {
		writeSummaryLine(&b, "Remote object", report.RemoteURI)
	}
	if elapsed := report.Elapsed(); elapsed > 0 {
		writeSummaryLine(&b, "Elapsed", formatDuration(elapsed))
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSummaryLine(w io.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(w, "%-14s %s\n", label+":", value)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
