package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidscribe/internal/services"
)

const usageLine = "Usage: vidscribe [flags] <video>"

type rootFlags struct {
	configPath string
	envFile    string
	outputDir  string
	keepAudio  bool
	logLevel   string
}

func newRootCommand() *cobra.Command {
	return newRootCommandWithContext(nil)
}

func newRootCommandWithContext(ctx *commandContext) *cobra.Command {
	flags := &rootFlags{}
	if ctx == nil {
		ctx = newCommandContext(flags)
	} else {
		ctx.flags = flags
	}

	rootCmd := &cobra.Command{
		Use:           "vidscribe [flags] <video>",
		Short:         "Transcribe the speech in a video file",
		Long:          "Extracts the audio track of a video, uploads it to Cloud Storage, runs Speech-to-Text recognition, and writes <output_dir>/<name>.txt.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if cmd == cmd.Root() && len(args) == 0 {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return &reportedError{err: services.Wrap(services.ErrValidation, "cli", "parse arguments", "video path required", nil)}
			}
			return runTranscribe(cmd, ctx, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Dotenv file with GCP_PROJECT_ID, GCS_BUCKET_NAME, AUDIO_LANGUAGE_CODE (default .env)")
	rootCmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "Directory for the audio artifact and transcript")
	rootCmd.Flags().BoolVar(&flags.keepAudio, "keep-audio", false, "Keep the extracted audio after a successful run")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
