package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/luna/internal/cli"
	"github.com/terraincognita07/luna/internal/models"
	"github.com/terraincognita07/luna/internal/services"
)

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func newStatusCmd(options *rootOptions) *cobra.Command {
	var asJSON bool
	command := &cobra.Command{
		Use:   "status",
		Short: "Show the current cycle phase and next period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				status, err := rt.cycles.Status(rt.today)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), status)
				}
				cli.PrintStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return command
}

func newInsightsCmd(options *rootOptions) *cobra.Command {
	var asJSON bool
	var count int
	command := &cobra.Command{
		Use:   "insights",
		Short: "Summarize cycle statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				insights, err := rt.cycles.Insights(count)
				if errors.Is(err, services.ErrInsufficientData) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Log at least two periods to see insights.")
					return nil
				}
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), insights)
				}
				cli.PrintInsights(cmd.OutOrStdout(), insights)
				return nil
			})
		},
	}
	command.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	command.Flags().IntVar(&count, "count", 3, "number of upcoming periods")
	return command
}

func newPredictionsCmd(options *rootOptions) *cobra.Command {
	var count int
	command := &cobra.Command{
		Use:   "predictions",
		Short: "List upcoming periods and the fertile window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				upcoming, window, err := rt.cycles.Predictions(count)
				if errors.Is(err, services.ErrInsufficientData) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Log a period to see predictions.")
					return nil
				}
				if err != nil {
					return err
				}
				cli.PrintPredictions(cmd.OutOrStdout(), upcoming, window)
				return nil
			})
		},
	}
	command.Flags().IntVar(&count, "count", 3, "number of upcoming periods")
	return command
}

func newCalendarCmd(options *rootOptions) *cobra.Command {
	var month string
	command := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month with period, fertile and predicted days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				target := time.Date(rt.today.Year(), rt.today.Month(), 1, 0, 0, 0, 0, time.UTC)
				if raw := strings.TrimSpace(month); raw != "" {
					parsed, err := time.ParseInLocation("2006-01", raw, time.UTC)
					if err != nil {
						return fmt.Errorf("--month must be YYYY-MM: %w", err)
					}
					target = parsed
				}

				preferences, err := rt.settings.LoadPreferences()
				if err != nil {
					return err
				}
				days, err := rt.cycles.Calendar(target, preferences)
				if err != nil {
					return err
				}
				cli.PrintCalendar(cmd.OutOrStdout(), target, days)
				return nil
			})
		},
	}
	command.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (defaults to the current month)")
	return command
}

func newLogCmd(options *rootOptions) *cobra.Command {
	logCmd := &cobra.Command{Use: "log", Short: "Record period events"}

	start := &cobra.Command{
		Use:   "start [YYYY-MM-DD]",
		Short: "Start a period (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				day, err := dayArg(args, rt.today)
				if err != nil {
					return err
				}
				if _, err := rt.cycles.LogPeriodStart(day); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Period started on %s\n", models.FormatDay(day))
				return nil
			})
		},
	}

	var flow string
	var symptoms []string
	end := &cobra.Command{
		Use:   "end [YYYY-MM-DD]",
		Short: "End the open period (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				day, err := dayArg(args, rt.today)
				if err != nil {
					return err
				}
				data, err := rt.cycles.LogPeriodEnd(day, flow, symptoms)
				if err != nil {
					return err
				}
				latest, _ := data.LatestLog()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Period %s to %s logged (%s flow)\n",
					models.FormatDay(latest.StartDate), models.FormatDay(day), latest.Flow)
				return nil
			})
		},
	}
	end.Flags().StringVar(&flow, "flow", models.FlowMedium, "flow: light|medium|heavy")
	end.Flags().StringSliceVar(&symptoms, "symptom", nil, "symptom id, repeatable (see `luna log symptoms`)")

	symptomList := &cobra.Command{
		Use:   "symptoms",
		Short: "List symptom ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, symptom := range models.DefaultBuiltinSymptoms() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", symptom.ID, symptom.Label)
			}
			return nil
		},
	}

	logCmd.AddCommand(start, end, symptomList)
	return logCmd
}

func dayArg(args []string, fallback time.Time) (time.Time, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	day, err := models.ParseDay(args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a YYYY-MM-DD date", args[0])
	}
	return day, nil
}

func newExportCmd(options *rootOptions) *cobra.Command {
	var format, output string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export all data as json, yaml or csv",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				exporter := rt.exporter()
				bundle, err := exporter.BuildBundle(time.Now().In(rt.location))
				if err != nil {
					return err
				}
				rendered, err := exporter.Render(bundle, format)
				if err != nil {
					return err
				}

				if output == "" || output == "-" {
					_, err := cmd.OutOrStdout().Write(rendered)
					return err
				}
				if err := os.WriteFile(output, rendered, 0o600); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
				return nil
			})
		},
	}
	command.Flags().StringVar(&format, "format", services.ExportFormatJSON, "json|yaml|csv")
	command.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")
	return command
}

func newImportCmd(options *rootOptions) *cobra.Command {
	var format string
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a json or yaml export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			decodeFormat := format
			if decodeFormat == "" {
				decodeFormat = importFormatFromPath(args[0])
			}
			bundle, err := services.DecodeBundle(payload, decodeFormat)
			if err != nil {
				return err
			}

			return withRuntime(options, func(rt *appRuntime) error {
				if err := rt.exporter().ImportBundle(bundle); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
				return nil
			})
		},
	}
	command.Flags().StringVar(&format, "format", "", "json|yaml (defaults to the file extension)")
	return command
}

func importFormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return services.ExportFormatYAML
	default:
		return services.ExportFormatJSON
	}
}

func newClearCmd(options *rootOptions) *cobra.Command {
	var confirmed bool
	command := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cycle data and settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to clear data without --yes")
			}
			return withRuntime(options, func(rt *appRuntime) error {
				if err := rt.exporter().ClearAllData(); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
				return nil
			})
		},
	}
	command.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting all data")
	return command
}

func newPassphraseCmd(options *rootOptions) *cobra.Command {
	passphrase := &cobra.Command{Use: "passphrase", Short: "Manage the API access passphrase"}

	passphrase.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Set or change the passphrase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				read := cli.TerminalPassphraseReader(os.Stdin, cmd.ErrOrStderr())
				return cli.RunSetPassphraseCommand(services.NewAccessService(rt.store), read, cmd.OutOrStdout())
			})
		},
	})
	passphrase.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Replace the passphrase with a generated one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				return cli.RunResetPassphraseCommand(services.NewAccessService(rt.store), cmd.OutOrStdout())
			})
		},
	})
	passphrase.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the passphrase and open the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				if err := services.NewAccessService(rt.store).ClearPassphrase(); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Passphrase removed")
				return nil
			})
		},
	})
	return passphrase
}
