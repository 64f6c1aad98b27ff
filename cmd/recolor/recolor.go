package main

import (
	"fmt"
	"os"

	"github.com/davesmith10/recolor/internal/pipeline"
	"github.com/davesmith10/recolor/internal/png"
	"github.com/davesmith10/recolor/internal/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Flags().String("type", "", "Declared input media type (default: derived from the file extension)")
	rootCmd.Flags().Int("workers", 0, "Concurrent row bands for the recolor pass (0 = GOMAXPROCS)")
	rootCmd.Flags().String("compression", "default", "Output PNG compression (default, speed, best, none)")
}

func runRecolor(cmd *cobra.Command, args []string) error {
	inputPath, colorStr, outputPath := args[0], args[1], args[2]
	mediaType, _ := cmd.Flags().GetString("type")
	workers, _ := cmd.Flags().GetInt("workers")
	compressionStr, _ := cmd.Flags().GetString("compression")

	logger, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	compression, err := png.ParseCompression(compressionStr)
	if err != nil {
		return err
	}

	if mediaType == "" {
		mediaType = png.MediaTypeForPath(inputPath)
	}

	s := session.New(pipeline.Options{
		Workers:     workers,
		Compression: compression,
		Logger:      logger,
	})

	ctx := cmd.Context()
	if err := s.SetColor(ctx, colorStr); err != nil {
		return err
	}

	in := lazyFile(inputPath)
	defer in.Close()

	if err := s.Upload(ctx, pipeline.Source{Name: inputPath, MediaType: mediaType, Reader: in}); err != nil {
		return err
	}

	result := s.Snapshot().Result
	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recolored %dx%d → %s\n", result.Width, result.Height, result.Color.Hex())
	fmt.Fprintf(out, "Input:  %s\n", inputPath)
	fmt.Fprintf(out, "Output: %s (%d bytes)\n", outputPath, len(result.Data))
	return nil
}

// fileSource opens its file on first Read, so an input rejected by its
// declared type is never opened.
type fileSource struct {
	path string
	f    *os.File
	err  error
}

func lazyFile(path string) *fileSource {
	return &fileSource{path: path}
}

func (s *fileSource) Read(p []byte) (int, error) {
	if s.f == nil && s.err == nil {
		s.f, s.err = os.Open(s.path)
	}
	if s.err != nil {
		return 0, s.err
	}
	return s.f.Read(p)
}

func (s *fileSource) Close() error {
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}
