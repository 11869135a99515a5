// Package gocube models an interactive 3x3x3 lattice of cubes whose layers
// turn in animated quarter turns.
//
// # Features
//
//   - 27 uniquely identified cubes on a 3x3x3 grid, the black center cube
//     acting as pivot
//   - Layer selection by axis and coordinate with a tolerance
//   - Frame-driven quarter-turn animation with configurable easing
//   - Exact re-snapping of positions after every turn
//   - Ray picking through a perspective camera
//   - Axis and face turn notation (X2', R, U')
//
// # Quick Start
//
// Drive the lattice from a frame loop:
//
//	ctrl, err := gocube.NewController()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl.OnTurnComplete(func(ev gocube.TurnEvent) {
//	    fmt.Println("turned:", ev.Turn)
//	})
//
//	cam := gocube.DefaultCamera(ctrl.Lattice().Center(), 16.0/9.0)
//	ctrl.Pick(mgl64.Vec2{0, 0}, cam)
//	ctrl.HandleKey("KeyS")
//
//	for !ctrl.Idle() {
//	    ctrl.Tick(time.Second / 60)
//	}
//
// # Headless Turns
//
// Turns can be applied without a selection:
//
//	turns, _ := gocube.ParseTurns("R U R' U'")
//	ctrl.Apply(time.Second/60, turns...)
//	fmt.Println(ctrl.Lattice())
//
// # Keys
//
// DefaultKeyMap binds W/S to X, A/D to Y and Q/E to Z. Clockwise always
// means +90° about the positive axis. Keys are matched case-insensitively
// and browser codes such as "KeyW" are accepted.
package gocube
