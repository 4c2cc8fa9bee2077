// Package cli implements thumbctl, an operator tool for checking thumbnail
// specs and rendering them locally without Kafka or object storage.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"image-thumbnailer/internal/config"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

type CLI struct {
	out    io.Writer
	logger *zlog.Zerolog

	configPath string
	backend    string
}

func New(out io.Writer, logger *zlog.Zerolog) *CLI {
	return &CLI{out: out, logger: logger}
}

func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "thumbctl",
		Short:        "Inspect and render thumbnail specs",
		SilenceUsage: true,
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultPath, "path to the YAML config")
	root.PersistentFlags().StringVarP(&c.backend, "backend", "b", "", "raster backend, overrides thumbnails.backend")

	root.AddCommand(c.newSpecsCmd())
	root.AddCommand(c.newPlanCmd())
	root.AddCommand(c.newRenderCmd())

	return root
}

func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(c.out)
	return root.ExecuteContext(ctx)
}

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.backend != "" {
		cfg.Thumbnails.Backend = c.backend
	}
	return cfg, nil
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
