// GoCube Lattice - interactive 3x3x3 cube lattice with browser, terminal and desktop front ends.
package main

import (
	"github.com/SeamusWaldron/gocube_lattice/internal/cli"
)

func main() {
	cli.Execute()
}
