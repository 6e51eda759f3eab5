package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidscribe/internal/preflight"
	"vidscribe/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "doctor",
		Short:       "Check configuration, credentials, and external tools",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := ctx.readConfig()
			if err != nil {
				return err
			}

			results := []preflight.Result{configurationResult(cfg.Validate())}
			if err := cfg.EnsureDirectories(); err != nil {
				results = append(results, preflight.Result{Name: "Output directory", Detail: err.Error()})
			}
			results = append(results, preflight.RunAll(cmd.Context(), cfg)...)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
					failed++
				}
				rows = append(rows, []string{r.Name, renderStatus(kind, colorize), r.Detail})
			}
			fmt.Fprintln(out, renderTable(checkColumns, rows))

			if failed > 0 {
				return services.Wrap(services.ErrConfiguration, "doctor", "readiness", fmt.Sprintf("%d of %d checks failed", failed, len(results)), nil)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func configurationResult(err error) preflight.Result {
	const name = "Configuration"
	if err == nil {
		return preflight.Result{Name: name, Passed: true, Detail: "required settings present"}
	}
	detail := strings.TrimPrefix(err.Error(), services.ErrConfiguration.Error()+": ")
	return preflight.Result{Name: name, Detail: detail}
}
