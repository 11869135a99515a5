package gocube

import "errors"

// Sentinel errors for the gocube package.
//
// Rejections (ErrBusy, ErrNoSelection, ErrEmptyLayer, ErrUnknownKey) are
// dropped input: interactive front ends log them at debug level and carry on.
var (
	// Input rejections
	ErrBusy        = errors.New("gocube: a layer is already rotating")
	ErrNoSelection = errors.New("gocube: no cube selected")
	ErrUnknownKey  = errors.New("gocube: key is not bound to a turn")

	// Layer errors
	ErrEmptyLayer     = errors.New("gocube: layer has no cubes")
	ErrMalformedLayer = errors.New("gocube: layer does not hold 9 cubes")
	ErrInvalidLattice = errors.New("gocube: lattice slots are not a full 3x3x3 grid")

	// Parsing and configuration errors
	ErrInvalidNotation = errors.New("gocube: invalid turn notation")
	ErrInvalidOption   = errors.New("gocube: invalid option")
)
