package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/davesmith10/recolor/internal/analysis"
	"github.com/davesmith10/recolor/internal/pipeline"
	"github.com/davesmith10/recolor/internal/png"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect a PNG and suggest target colors from its palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().String("type", "", "Declared input media type (default: derived from the file extension)")
	identifyCmd.Flags().Int("palette", 5, "Number of palette colors to suggest")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	mediaType, _ := cmd.Flags().GetString("type")
	paletteSize, _ := cmd.Flags().GetInt("palette")

	logger, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if mediaType == "" {
		mediaType = png.MediaTypeForPath(path)
	}

	in := lazyFile(path)
	defer in.Close()

	data, err := pipeline.Load(pipeline.Source{Name: path, MediaType: mediaType, Reader: in})
	if err != nil {
		return err
	}

	info, err := png.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	buf, err := png.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	report, err := analysis.Analyze(buf, analysis.Options{PaletteSize: paletteSize, Logger: logger})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Color type:  %s, %d-bit", info.ColorType, info.BitDepth)
	if info.Interlaced {
		fmt.Fprint(out, ", interlaced")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "File size:   %d bytes (%.1f KB)\n", len(data), float64(len(data))/1024)
	fmt.Fprintf(out, "ICC profile: %s\n", presence(info.HasICC))
	fmt.Fprintf(out, "Chunks:      %s\n", strings.Join(info.Chunks, " "))
	fmt.Fprintf(out, "Pixels:      %d visible, %d transparent\n", report.VisiblePixels, report.TransparentPixels)

	if report.VisiblePixels == 0 {
		fmt.Fprintln(out, "Luminance:   n/a (fully transparent)")
		return nil
	}
	fmt.Fprintf(out, "Luminance:   mean %.1f, std-dev %.1f, range %.1f-%.1f\n",
		report.MeanLuminance, report.StdDevLuminance, report.MinLuminance, report.MaxLuminance)
	printSwatches(out, "Dominant:", report.Dominant)
	printSwatches(out, "Clusters:", report.Clusters)
	return nil
}

func printSwatches(out io.Writer, label string, swatches []analysis.Swatch) {
	if len(swatches) == 0 {
		fmt.Fprintf(out, "%-12s none\n", label)
		return
	}
	var b bytes.Buffer
	for i, s := range swatches {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s (%.0f%%)", s.Color.Hex(), s.Weight*100)
	}
	fmt.Fprintf(out, "%-12s %s\n", label, b.String())
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "none"
}
