package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/tuning"
	"github.com/spf13/cobra"
)

var (
	debug      bool
	seed       uint64
	tuningPath string
	lives      int
)

var rootCmd = &cobra.Command{
	Use:   "zombieslice",
	Short: "Slice the zombies before they reach you",
	Long: `zombieslice is an arcade game: zombies walk toward the screen and every
mouse drag (or hand swipe, press H) cuts the one under the start point in two.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadTuning(tuningPath)
		if err != nil {
			return err
		}
		if lives > 0 {
			cfg.Round.Lives = lives
		}

		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
		ebiten.SetWindowTitle("zombieslice")

		game, err := NewGame(cfg, Options{Debug: debug, Seed: seed, TuningPath: tuningPath})
		if err != nil {
			return err
		}
		defer game.Close()

		return ebiten.RunGame(game)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log rejected cuts, spawns and reloads")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.Flags().StringVar(&tuningPath, "tuning", "", "tuning YAML file (defaults to the embedded tuning)")
	rootCmd.Flags().IntVar(&lives, "lives", 0, "lives per round (overrides tuning)")
	rootCmd.AddCommand(maskCmd)
}

func loadTuning(path string) (tuning.Config, error) {
	if path == "" {
		return tuning.Load(tuning.DefaultFile)
	}
	return tuning.LoadFile(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
