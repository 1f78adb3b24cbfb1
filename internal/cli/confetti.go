package cli

import (
	"fmt"
	"os"
	"time"

	"buddy-hunt/internal/confetti"
	"github.com/spf13/cobra"
)

// NewConfettiCmd renders one confetti burst to a GIF file.
func NewConfettiCmd() *cobra.Command {
	var (
		out  string
		opts confetti.GIFOptions
	)
	cmd := &cobra.Command{
		Use:   "confetti",
		Short: "Render a confetti burst as an animated GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.Seed = time.Now().UnixNano()
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := confetti.RenderGIF(f, opts); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (seed %d)\n", out, opts.Seed)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "confetti.gif", "output file")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 1400*time.Millisecond, "burst duration")
	cmd.Flags().IntVar(&opts.Width, "width", 480, "width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 270, "height in pixels")
	cmd.Flags().IntVar(&opts.Particles, "particles", confetti.DefaultParticles, "particle count")
	cmd.Flags().IntVar(&opts.FPS, "fps", 50, "frames per second")
	return cmd
}
