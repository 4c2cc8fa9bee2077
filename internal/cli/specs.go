package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"image-thumbnailer/internal/thumbnail"

	"github.com/spf13/cobra"
)

func (c *CLI) newSpecsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "specs",
		Short: "List the configured thumbnail specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			specs, err := cfg.ThumbnailSpecs()
			if err != nil {
				return err
			}

			if asJSON {
				return c.writeJSON(specRows(specs))
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRULE\tWATERMARK\tFORMAT")
			for _, row := range specRows(specs) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Name, row.Rule, row.Watermark, orDash(row.Format))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

type specRow struct {
	Name      string `json:"name"`
	Rule      string `json:"rule"`
	Watermark string `json:"watermark"`
	Format    string `json:"format,omitempty"`
}

func specRows(specs []thumbnail.ThumbnailSpec) []specRow {
	rows := make([]specRow, 0, len(specs))
	for _, spec := range specs {
		wm := "-"
		if spec.HasWatermark() {
			wm = fmt.Sprintf("%d+(%d,%d)", spec.Watermark, spec.WatermarkOffset.X, spec.WatermarkOffset.Y)
		}
		rows = append(rows, specRow{Name: spec.Name, Rule: spec.Rule.String(), Watermark: wm, Format: spec.Format})
	}
	return rows
}

func (c *CLI) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
