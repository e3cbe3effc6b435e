package core

// ShapeKind is a fixed catalogue entry drawn with GPU instancing.
type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeCenteredCube
	ShapeArrowhead
	ShapeBillboardSquare
	ShapePositionCross
	ShapeSphere
	ShapeCylinder

	ShapeKindCount
)

var shapeNames = [ShapeKindCount]string{
	"cube",
	"centered_cube",
	"arrowhead",
	"billboard_square",
	"position_cross",
	"sphere",
	"cylinder",
}

func (k ShapeKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return shapeNames[k]
}

func (k ShapeKind) Valid() bool {
	return k >= 0 && k < ShapeKindCount
}

// AllShapeKinds lists the catalogue in enumeration order.
func AllShapeKinds() [ShapeKindCount]ShapeKind {
	var kinds [ShapeKindCount]ShapeKind
	for i := range kinds {
		kinds[i] = ShapeKind(i)
	}
	return kinds
}
