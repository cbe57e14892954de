package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reelcast/internal/logging"
	"reelcast/internal/pipeline"
	"reelcast/internal/transition"
)

// runError carries a failed pipeline result back to main. Its text is the
// user-facing message while the chain keeps the underlying cause.
type runError struct {
	result pipeline.Result
}

func (e *runError) Error() string { return e.result.Message() }

func (e *runError) Unwrap() error { return e.result.Err }

type generateOptions struct {
	images      string
	audio       string
	output      string
	transitions []string
	noCaptions  bool
	noHWAccel   bool
	workers     int
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create a captioned video from a folder of images and a narration track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pipeline.Request{
				ImagesDir:   opts.images,
				AudioPath:   opts.audio,
				Output:      opts.output,
				Transitions: splitTransitions(opts.transitions),
				NoCaptions:  opts.noCaptions,
				NoHWAccel:   opts.noHWAccel,
				Workers:     opts.workers,
			}
			return runPipeline(cmd, ctx, req, false)
		},
	}

	cmd.Flags().StringVarP(&opts.images, "images", "i", "", "Folder containing the images (sorted by file name)")
	cmd.Flags().StringVarP(&opts.audio, "audio", "a", "", "Narration audio file (.mp3 or .wav)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination video file")
	cmd.Flags().StringSliceVarP(&opts.transitions, "transitions", "t", nil, "Per-image transitions in order ("+strings.Join(transition.Names(), ", ")+")")
	cmd.Flags().BoolVar(&opts.noCaptions, "no-captions", false, "Skip transcription and caption overlays")
	cmd.Flags().BoolVar(&opts.noHWAccel, "no-hwaccel", false, "Force software encoding and resizing")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Image normalization workers (0 uses the configured value)")
	_ = cmd.MarkFlagRequired("images")
	_ = cmd.MarkFlagRequired("audio")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var audio string
	var output string
	var noHWAccel bool

	cmd := &cobra.Command{
		Use:   "captions",
		Short: "Render narration with word-highlighted captions on a plain background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pipeline.Request{
				AudioPath: audio,
				Output:    output,
				NoHWAccel: noHWAccel,
			}
			return runPipeline(cmd, ctx, req, true)
		},
	}

	cmd.Flags().StringVarP(&audio, "audio", "a", "", "Narration audio file (.mp3 or .wav)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination video file")
	cmd.Flags().BoolVar(&noHWAccel, "no-hwaccel", false, "Force software encoding")
	_ = cmd.MarkFlagRequired("audio")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, req pipeline.Request, captionsOnly bool) error {
	store, err := ctx.openHistory()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run history unavailable: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	generator, logger, err := ctx.newGenerator(store)
	if err != nil {
		return err
	}

	progress := newProgressReporter(cmd.ErrOrStderr(), logger)
	req.OnStage = progress.onStage
	req.OnImage = progress.onImage
	req.OnEncode = progress.onEncode

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	var result pipeline.Result
	if captionsOnly {
		result = generator.GenerateCaptions(runCtx, req)
	} else {
		result = generator.Generate(runCtx, req)
	}
	progress.finish()

	if !result.Success() {
		logFailure(logger, result)
		return &runError{result: result}
	}
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

func logFailure(logger *slog.Logger, result pipeline.Result) {
	if logger == nil {
		return
	}
	logger.Debug("run failed",
		logging.String("run_id", result.RunID),
		logging.Error(result.Err),
	)
}

func printSummary(out io.Writer, result pipeline.Result) {
	fmt.Fprintln(out, result.Message())
	if result.SilentOutput != "" {
		fmt.Fprintf(out, "Silent copy:  %s\n", result.SilentOutput)
	}
	if result.Subtitles != "" {
		fmt.Fprintf(out, "Subtitles:    %s\n", result.Subtitles)
	}
	fmt.Fprintf(out, "Duration:     %s\n", formatSeconds(result.Duration.Seconds()))
	fmt.Fprintf(out, "Size:         %s\n", humanize.Bytes(uint64(max(result.SizeBytes, 0))))
	fmt.Fprintf(out, "Images:       %d\n", result.Images)
	fmt.Fprintf(out, "Words:        %d\n", result.Words)
	fmt.Fprintf(out, "Encoder:      %s (%s)\n", result.Encoder, result.Hardware)
	fmt.Fprintf(out, "Elapsed:      %s\n", result.Elapsed.Round(100*time.Millisecond))
}

// splitTransitions accepts both repeated flags and comma lists, keeping
// empty positions so "fade,,zoom_in" leaves the second image without one.
func splitTransitions(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func formatSeconds(value float64) string {
	return fmt.Sprintf("%.1fs", value)
}
