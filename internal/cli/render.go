package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"image-thumbnailer/internal/domain"
	"image-thumbnailer/internal/usecase/processor"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	var (
		outDir string
		names  []string
	)

	cmd := &cobra.Command{
		Use:   "render IMAGE",
		Short: "Render every spec for a local image into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			proc, err := processor.NewFromConfig(cfg.Thumbnails, dirRepository(outDir), c.logger)
			if err != nil {
				return err
			}

			base := filepath.Base(args[0])
			task := &domain.ThumbnailTask{
				ID:           uuid.New().String(),
				ImageID:      strings.TrimSuffix(base, filepath.Ext(base)),
				OriginalPath: args[0],
				Specs:        names,
			}

			result, err := proc.Process(cmd.Context(), task, data)
			if err != nil {
				return err
			}

			for _, th := range result.Thumbnails {
				c.printf("%s\t%dx%d\t%d bytes\t%s\n", th.Spec, th.Width, th.Height, th.Size, filepath.Join(outDir, th.Path))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringSliceVarP(&names, "spec", "s", nil, "only these specs")
	return cmd
}

// dirRepository stores thumbnails under a local directory using their
// object paths.
type dirRepository string

func (d dirRepository) Save(_ context.Context, path string, data []byte, _ string) error {
	full := filepath.Join(string(d), filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
