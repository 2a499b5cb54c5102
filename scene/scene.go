// Package scene defines the read-only scene graph consumed by the svglite
// draw-call compiler.
//
// A scene is a tree of nodes. Every node is one of four kinds:
//   - [*Group]: an ordered list of children
//   - [*Path]: filled vector geometry
//   - [*Image]: an embedded raster or nested vector document
//   - [*Text]: a run of characters rendered through glyph outlines
//
// The set of node kinds is closed: [Node] has an unexported method so that
// only this package can add variants, and consumers can dispatch with an
// exhaustive type switch.
//
// Scenes are normally produced by a document parser and are not modified
// after construction.
package scene

// Node is a scene graph element.
type Node interface {
	// LocalTransform returns the node-local transform applied on top of the
	// accumulated parent transform. Constructors set the identity; a
	// literal node must set it explicitly.
	LocalTransform() Transform
	// Visible reports whether the node should be rendered.
	Visible() bool

	node()
}

// Tree is a complete scene: a root group and the logical coordinate window
// (viewbox) that maps onto the device surface.
type Tree struct {
	ViewBox Rect
	Root    *Group
}

// NewTree creates a tree with the given viewbox and an empty root group.
func NewTree(viewBox Rect) *Tree {
	return &Tree{ViewBox: viewBox, Root: NewGroup()}
}

// Group is an ordered container of child nodes.
type Group struct {
	ID        string
	Transform Transform
	Hidden    bool
	Children  []Node
}

// NewGroup creates an empty, visible group with an identity transform.
func NewGroup(children ...Node) *Group {
	return &Group{Transform: Identity(), Children: children}
}

func (*Group) node() {}

// Visible reports whether the group should be rendered.
func (g *Group) Visible() bool { return !g.Hidden }

// LocalTransform returns the node-local transform.
func (g *Group) LocalTransform() Transform { return g.Transform }

// Add appends children and returns the group.
func (g *Group) Add(children ...Node) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// Image is an embedded picture placed into ViewBox.
type Image struct {
	ID        string
	Transform Transform
	Hidden    bool

	// ViewBox is the declared placement rectangle in the parent's
	// coordinate space.
	ViewBox Rect
	Kind    ImageKind
}

func (*Image) node() {}

// Visible reports whether the image should be rendered.
func (i *Image) Visible() bool { return !i.Hidden }

// LocalTransform returns the node-local transform.
func (i *Image) LocalTransform() Transform { return i.Transform }

// ImageKind is the payload of an Image: [RasterData] or [VectorData].
type ImageKind interface {
	imageKind()
}

// RasterData is an encoded raster image (PNG, JPEG, GIF, BMP, TIFF, WebP).
type RasterData struct {
	Data []byte
}

// VectorData is a nested vector document.
type VectorData struct {
	Tree *Tree
}

func (RasterData) imageKind() {}
func (VectorData) imageKind() {}

// Text is a single run of characters starting at (X, Y).
// Y is the baseline.
type Text struct {
	ID        string
	Transform Transform
	Hidden    bool

	X, Y    float64
	Size    float64
	Family  string
	Content string
	Fill    *Fill
}

func (*Text) node() {}

// Visible reports whether the text should be rendered.
func (t *Text) Visible() bool { return !t.Hidden }

// LocalTransform returns the node-local transform.
func (t *Text) LocalTransform() Transform { return t.Transform }
