package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pipecue/internal/adapter/output"
	"github.com/jmylchreest/pipecue/internal/daemon"
)

var checkOpts struct {
	format   string
	template string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show the audio player and sounds pipecue would use",
	Long: `Report the OS family, the chosen audio player, an example invocation,
and the sound files with their size and length.

Exits non-zero when serve could not play a cue.

Examples:
  pipecue check
  pipecue check --format yaml
  pipecue check --template '{{.Player}}'`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkOpts.format, "format", "f", "text",
		"Output format (text, json, yaml)")
	checkCmd.Flags().StringVar(&checkOpts.template, "template", "",
		"Custom Go template for text output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatter, err := output.NewFormatter(output.FormatType(strings.ToLower(checkOpts.format)), output.FormatterOptions{
		Template: checkOpts.template,
	})
	if err != nil {
		return err
	}

	report := daemon.Diagnose(daemon.Options{
		Config: cfg,
		Logger: logger,
	})

	if err := formatter.Format(os.Stdout, report); err != nil {
		return err
	}

	if !report.OK() {
		return errors.New("cues cannot play on this system")
	}
	return nil
}
