package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/assets/procgen"
	"github.com/milk9111/zombieslice/geom"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"
)

var (
	maskIn   string
	maskFrom string
	maskTo   string
	maskOut  string
	maskSize string
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Cut a texture on the CPU and write both kept halves as PNG",
	Long: `mask applies the slice visibility test to a PNG without a GPU. The cut
runs from --from to --to in UV space (origin bottom-left, v up) and the two
halves are written to <out>_pos.png and <out>_neg.png. Without --in a
generated zombie is cut. --size resamples the input first, e.g. to the
game's 96x192 frame.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseUV(maskFrom)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := parseUV(maskTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		line, err := geom.NewCutLine(from, to)
		if err != nil {
			return err
		}

		src, err := readTexture(maskIn)
		if err != nil {
			return err
		}
		if maskSize != "" {
			w, h, err := parseSize(maskSize)
			if err != nil {
				return fmt.Errorf("--size: %w", err)
			}
			src = resize.Resize(w, h, src, resize.Bilinear)
		}

		for _, half := range []struct {
			side   int
			suffix string
		}{{1, "_pos.png"}, {-1, "_neg.png"}} {
			path := maskOut + half.suffix
			if err := writePNG(path, geom.MaskImage(src, line.Start, line.End, half.side)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	maskCmd.Flags().StringVar(&maskIn, "in", "", "input PNG (defaults to a generated zombie)")
	maskCmd.Flags().StringVar(&maskFrom, "from", "0,0.5", "cut start as u,v")
	maskCmd.Flags().StringVar(&maskTo, "to", "1,0.5", "cut end as u,v")
	maskCmd.Flags().StringVar(&maskOut, "out", "cut", "output path prefix")
	maskCmd.Flags().StringVar(&maskSize, "size", "", "resample the input to WxH before cutting")
}

func parseSize(s string) (uint, uint, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	w, err := strconv.ParseUint(strings.TrimSpace(ws), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.ParseUint(strings.TrimSpace(hs), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %q", s)
	}
	return uint(w), uint(h), nil
}

func parseUV(s string) (cp.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return cp.Vector{}, fmt.Errorf("want u,v, got %q", s)
	}
	u, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: u, Y: v}, nil
}

func readTexture(path string) (image.Image, error) {
	if path == "" {
		return procgen.Zombie(96, 192, 1), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mask: open %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mask: decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mask: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("mask: encode %s: %w", path, err)
	}
	return f.Close()
}
