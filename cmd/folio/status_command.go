package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/preflight"
)

var errNotReady = errors.New("readiness checks failed")

type statusCheckView struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
	Optional bool   `json:"optional,omitempty"`
}

type statusView struct {
	ConfigPath   string            `json:"config_path"`
	ConfigExists bool              `json:"config_exists"`
	Checks       []statusCheckView `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report encoder and directory readiness",
		Long:  "Report encoder and directory readiness. Exits non-zero when a required check fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)

			if asJSON {
				view := statusView{ConfigPath: ctx.configPath, ConfigExists: ctx.configSeen}
				for _, r := range results {
					view.Checks = append(view.Checks, statusCheckView(r))
				}
				if err := writeJSON(cmd, view); err != nil {
					return err
				}
				return readinessError(results)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Configuration", colorize)
			configDetail := ctx.configPath
			configKind := statusOK
			if !ctx.configSeen {
				configDetail += " (not found, using defaults)"
				configKind = statusInfo
			}
			lines = append(lines, renderStatusLine("Config", configKind, configDetail, colorize))
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			for _, dep := range preflight.CheckSystemDeps(cfg.Videos.FFmpegBinary) {
				kind, detail := statusOK, dep.Command
				if !dep.Available {
					kind, detail = statusError, dep.Detail
					if dep.Optional {
						kind = statusWarn
					}
				}
				if dep.Description != "" {
					detail += " - " + dep.Description
				}
				lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
			}
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Readiness", colorize)...)
			for _, r := range results {
				kind := statusOK
				switch {
				case !r.Passed && r.Optional:
					kind = statusWarn
				case !r.Passed:
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return readinessError(results)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print checks as JSON")
	return cmd
}

func readinessError(results []preflight.Result) error {
	if !preflight.Failed(results) {
		return nil
	}
	var names []string
	for _, r := range results {
		if !r.Passed && !r.Optional {
			names = append(names, r.Name)
		}
	}
	return fmt.Errorf("%w: %s", errNotReady, strings.Join(names, ", "))
}
