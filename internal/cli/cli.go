// Package cli implements the svglite command-line interface.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/svglite"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI that logs to w. The logger also receives the
// renderer's warnings through svglite.SetLogger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	svglite.SetLogger(c.slog())
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// slog adapts the charm logger for packages that log through log/slog.
func (c *CLI) slog() *slog.Logger {
	return slog.New(c.Logger)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "svglite",
		Short:        "svglite renders SVG documents through a VGLite-style rasterizer",
		Long:         `svglite loads an SVG document, compiles it into rasterizer draw calls and writes the resulting pixels as raw BGRA or RGBA bytes.`,
		SilenceUsage: true,
	}
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.backendsCommand())
	return root
}
