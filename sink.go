package svgmorph

// NodeHandle is whatever a RenderSink uses to find one of its rendered
// nodes again. The morpher never looks inside it.
type NodeHandle any

// ItemFrame is the state of one animated item at one frame.
type ItemFrame struct {
	Index     int
	Path      string
	Attrs     StyleAttributes
	Style     StyleAttributes
	Transform string
}

// RenderSink receives the output of a Morpher. Create is called when an
// item slot is added, Update on every frame for every slot and Destroy when
// a slot is removed after a morph ends.
type RenderSink interface {
	Create(index int) NodeHandle
	Update(h NodeHandle, f ItemFrame)
	Destroy(h NodeHandle)
}

// Document is the frame and the definitions the rendered items refer to.
type Document struct {
	ViewBox ViewBox
	Defs    *Defs
}

// DocumentSink is implemented by sinks that also render the surrounding
// document. UpdateDocument is called at the start and end of each morph.
type DocumentSink interface {
	RenderSink
	UpdateDocument(doc Document)
}
