package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

var (
	applyInverse bool
	applyJSON    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <turns>",
	Short: "Apply a turn sequence without a front end",
	Long: `Run a sequence of turns through the animator frame by frame, validate the
resulting lattice and print its three slabs.

Turns are space separated. Axis turns name the axis and layer, with a
trailing ' for counter-clockwise: X0 Y2' Z1. Face turns R L U D F B and
slice turns M E S are accepted too.

Examples:
  gocube-lattice apply "R U R' U'"
  gocube-lattice apply --inverse "X2 Y0' Z1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyInverse, "inverse", false, "Follow the sequence with its inverse")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Print the final frame as JSON")
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	turns, err := gocube.ParseTurns(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if applyInverse {
		turns = append(turns, gocube.InverseTurns(turns)...)
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	if resolveJournal(cfg) != "" {
		endJournal, err := startJournal(cfg, ctrl, "headless")
		if err != nil {
			return err
		}
		defer endJournal()
	}

	step := time.Second / time.Duration(cfg.Server.FPS)
	start := ctrl.Frame()
	if err := ctrl.Apply(step, turns...); err != nil {
		return err
	}
	if err := ctrl.Lattice().Validate(); err != nil {
		return err
	}

	if applyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ctrl.Snapshot())
	}

	fmt.Printf("Turns:  %s\n", gocube.FormatTurns(turns))
	fmt.Printf("Frames: %d\n", ctrl.Frame()-start)
	fmt.Printf("Solved: %t\n", ctrl.Lattice().Solved())
	fmt.Println()
	fmt.Print(ctrl.Lattice().String())
	return nil
}
