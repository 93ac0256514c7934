package root

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON, YAML or a SQLite archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case "json", "yaml", "yml", "sqlite":
			default:
				return fmt.Errorf("unknown format %q (json|yaml|sqlite)", format)
			}
			if format == "sqlite" && output == "" {
				return errors.New("sqlite export needs -o <file>")
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			exp, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}

			if format == "sqlite" {
				id, err := storage.WriteArchive(cmd.Context(), output, exp)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconBox+" Archived"), output, ui.Muted.Render("export "+id))
				return nil
			}

			data, err := encodeExport(exp, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Exported"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|yaml|sqlite)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout; required for sqlite)")

	return cmd
}

func encodeExport(exp *storage.Export, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return []byte(b.String()), nil
	default:
		data, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}
