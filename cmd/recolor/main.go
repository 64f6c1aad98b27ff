package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/davesmith10/recolor/internal/pipeline"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recolor <input.png> <#RRGGBB> <output.png>",
	Short: "Recolor a PNG to a single target color, keeping its shading",
	Long: `recolor replaces the hue of every visible pixel with the target color.
Dark pixels take the full target color, light pixels fade towards white, and
transparency is left untouched.`,
	Args:          cobra.ExactArgs(3),
	RunE:          runRecolor,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}

// exitCode maps a failure to the process exit status.
func exitCode(err error) int {
	switch pipeline.KindOf(err) {
	case pipeline.KindUnsupportedFileType:
		return 2
	case pipeline.KindDecodeFailure:
		return 3
	case pipeline.KindInvalidColorFormat:
		return 4
	case pipeline.KindReadFailure:
		return 5
	default:
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if kind := pipeline.KindOf(err); kind != pipeline.KindUnknown {
			fmt.Fprintf(os.Stderr, "recolor: %s: %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "recolor: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}
