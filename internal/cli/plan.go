package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"image-thumbnailer/internal/thumbnail"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	var (
		names  []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan WIDTHxHEIGHT",
		Short: "Show the canvas plan of every spec for an original size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := parseDimensions(args[0])
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			specs, err := cfg.ThumbnailSpecs()
			if err != nil {
				return err
			}

			specs, err = pick(specs, names)
			if err != nil {
				return err
			}

			if asJSON {
				return c.writeJSON(planRows(original, specs))
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SPEC\tRULE\tRESAMPLE\tCANVAS\tOFFSET\tCROP")
			for _, row := range planRows(original, specs) {
				p := row.Plan
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d,%d\t%d,%d\n",
					row.Spec, row.Rule, p.Resample, p.Canvas, p.OffsetX, p.OffsetY, p.CropX, p.CropY)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVarP(&names, "spec", "s", nil, "only these specs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

type planRow struct {
	Spec   string               `json:"spec"`
	Rule   string               `json:"rule"`
	Plan   thumbnail.CanvasPlan `json:"plan"`
	Layout thumbnail.Layout     `json:"layout"`
}

func planRows(original thumbnail.Dimensions, specs []thumbnail.ThumbnailSpec) []planRow {
	rows := make([]planRow, 0, len(specs))
	for _, spec := range specs {
		plan := spec.Plan(original)
		rows = append(rows, planRow{Spec: spec.Name, Rule: spec.Rule.String(), Plan: plan, Layout: plan.Layout()})
	}
	return rows
}

func pick(specs []thumbnail.ThumbnailSpec, names []string) ([]thumbnail.ThumbnailSpec, error) {
	if len(names) == 0 {
		return specs, nil
	}

	byName := make(map[string]thumbnail.ThumbnailSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	out := make([]thumbnail.ThumbnailSpec, 0, len(names))
	for _, name := range names {
		spec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown spec %q", name)
		}
		out = append(out, spec)
	}
	return out, nil
}

// parseDimensions reads "1920x1080".
func parseDimensions(s string) (thumbnail.Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return thumbnail.Dimensions{}, fmt.Errorf("expected WIDTHxHEIGHT, got %q", s)
	}

	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return thumbnail.Dimensions{}, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return thumbnail.Dimensions{}, fmt.Errorf("invalid height in %q", s)
	}
	return thumbnail.Dimensions{Width: width, Height: height}, nil
}
