package gocube

// Predefined face turns. Each face letter is a clockwise turn seen from
// outside that face, expressed as a layer turn.
//
// Example:
//
//	ctrl.Turn(gocube.R)
//	ctrl.Turn(gocube.UPrime)
var (
	// Right face, layer x=2
	R      = LayerTurn{Axis: AxisX, Layer: 2, Direction: CounterClockwise}
	RPrime = R.Inverse()

	// Left face, layer x=0
	L      = LayerTurn{Axis: AxisX, Layer: 0, Direction: Clockwise}
	LPrime = L.Inverse()

	// Up face, layer y=2
	U      = LayerTurn{Axis: AxisY, Layer: 2, Direction: CounterClockwise}
	UPrime = U.Inverse()

	// Down face, layer y=0
	D      = LayerTurn{Axis: AxisY, Layer: 0, Direction: Clockwise}
	DPrime = D.Inverse()

	// Front face, layer z=2
	F      = LayerTurn{Axis: AxisZ, Layer: 2, Direction: CounterClockwise}
	FPrime = F.Inverse()

	// Back face, layer z=0
	B      = LayerTurn{Axis: AxisZ, Layer: 0, Direction: Clockwise}
	BPrime = B.Inverse()

	// Middle slices
	M      = LayerTurn{Axis: AxisX, Layer: 1, Direction: Clockwise}
	MPrime = M.Inverse()
	E      = LayerTurn{Axis: AxisY, Layer: 1, Direction: Clockwise}
	EPrime = E.Inverse()
	S      = LayerTurn{Axis: AxisZ, Layer: 1, Direction: CounterClockwise}
	SPrime = S.Inverse()
)

// SexyMove is R U R' U', which returns to the start after six repetitions.
var SexyMove = []LayerTurn{R, U, RPrime, UPrime}

// InverseSexyMove is U R U' R'.
var InverseSexyMove = []LayerTurn{U, R, UPrime, RPrime}

// TPerm swaps two corners and two edges of the top layer.
var TPerm = []LayerTurn{R, U, RPrime, UPrime, RPrime, F, R, R, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
