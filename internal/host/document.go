package host

import (
	"fmt"
	"sort"
)

// EntityKind identifies a sketch entity type.
type EntityKind string

const (
	EntityLine      EntityKind = "line"
	EntityCircle    EntityKind = "circle"
	EntityRectangle EntityKind = "rectangle"
	EntityArc       EntityKind = "arc"
	EntitySpline    EntityKind = "spline"
	EntityPolygon   EntityKind = "polygon"
	EntityPoint     EntityKind = "point"
)

// Entity is one sketch curve. Coordinates are in millimeters, as
// received at the tool surface. Only the fields relevant to the kind
// are set.
type Entity struct {
	Kind   EntityKind
	Center [2]float64
	Radius float64
	Start  [2]float64
	Mid    [2]float64
	End    [2]float64
	Points [][2]float64
	Sides  int
}

// Sketch is a 2D sketch on a construction plane.
type Sketch struct {
	Name     string
	Plane    string
	Entities []Entity
}

// AddEntity appends a curve to the sketch.
func (s *Sketch) AddEntity(e Entity) {
	s.Entities = append(s.Entities, e)
}

// Body is a solid body with its creating feature recorded as provenance.
type Body struct {
	Name       string
	Feature    string
	Transforms []string
}

// Parameter is a named user parameter.
type Parameter struct {
	Name    string
	Value   float64
	Unit    string
	Comment string
}

// TimelineEntry records one modeling operation for undo and inspection.
type TimelineEntry struct {
	Op     string
	Kind   string // "sketch", "body" or "other"
	Target string
}

// Document is the in-memory parametric design the bundled tools operate
// on. It is not safe for concurrent use: every mutation must happen on
// the host execution goroutine, which the bridge guarantees by routing
// all tool invocations through the host signal queue.
type Document struct {
	Name string

	sketches []*Sketch
	bodies   []*Body
	params   map[string]*Parameter
	timeline []TimelineEntry

	sketchSeq int
	bodySeq   int
}

// NewDocument creates an empty design document.
func NewDocument(name string) *Document {
	if name == "" {
		name = "Untitled"
	}
	return &Document{
		Name:   name,
		params: make(map[string]*Parameter),
	}
}

// AddSketch creates a new sketch on the named construction plane.
func (d *Document) AddSketch(plane string) *Sketch {
	d.sketchSeq++
	s := &Sketch{
		Name:  fmt.Sprintf("Sketch%d", d.sketchSeq),
		Plane: plane,
	}
	d.sketches = append(d.sketches, s)
	d.Record(TimelineEntry{Op: "create_sketch " + s.Name, Kind: "sketch", Target: s.Name})
	return s
}

// Sketches returns all sketches in creation order.
func (d *Document) Sketches() []*Sketch {
	return d.sketches
}

// SketchCount returns the number of sketches.
func (d *Document) SketchCount() int {
	return len(d.sketches)
}

// SketchByName returns a sketch by name.
func (d *Document) SketchByName(name string) (*Sketch, bool) {
	for _, s := range d.sketches {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// SketchAt returns the sketch at a 0-based index.
func (d *Document) SketchAt(index int) (*Sketch, bool) {
	if index < 0 || index >= len(d.sketches) {
		return nil, false
	}
	return d.sketches[index], true
}

// LastSketch returns the most recently created sketch.
func (d *Document) LastSketch() (*Sketch, bool) {
	if len(d.sketches) == 0 {
		return nil, false
	}
	return d.sketches[len(d.sketches)-1], true
}

// AddBody creates a body with the given name (auto-named when empty) and
// creating-feature description.
func (d *Document) AddBody(name, feature string) *Body {
	if name == "" {
		d.bodySeq++
		name = fmt.Sprintf("Body%d", d.bodySeq)
	}
	b := &Body{Name: name, Feature: feature}
	d.bodies = append(d.bodies, b)
	d.Record(TimelineEntry{Op: feature, Kind: "body", Target: b.Name})
	return b
}

// Bodies returns all bodies in creation order.
func (d *Document) Bodies() []*Body {
	return d.bodies
}

// Body returns a body by name.
func (d *Document) Body(name string) (*Body, bool) {
	for _, b := range d.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// RemoveBody deletes a body by name. Returns false if absent.
func (d *Document) RemoveBody(name string) bool {
	for i, b := range d.bodies {
		if b.Name == name {
			d.bodies = append(d.bodies[:i], d.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// RenameBody renames an existing body.
func (d *Document) RenameBody(oldName, newName string) error {
	if _, exists := d.Body(newName); exists {
		return fmt.Errorf("body already exists: %s", newName)
	}
	b, ok := d.Body(oldName)
	if !ok {
		return fmt.Errorf("body not found: %s", oldName)
	}
	b.Name = newName
	return nil
}

// SetParameter creates or updates a user parameter.
func (d *Document) SetParameter(name string, value float64, unit, comment string) {
	if p, ok := d.params[name]; ok {
		p.Value = value
		if unit != "" {
			p.Unit = unit
		}
		if comment != "" {
			p.Comment = comment
		}
		return
	}
	d.params[name] = &Parameter{Name: name, Value: value, Unit: unit, Comment: comment}
}

// Parameter returns a user parameter by name.
func (d *Document) Parameter(name string) (Parameter, bool) {
	p, ok := d.params[name]
	if !ok {
		return Parameter{}, false
	}
	return *p, true
}

// Parameters returns all user parameters sorted by name.
func (d *Document) Parameters() []Parameter {
	names := make([]string, 0, len(d.params))
	for name := range d.params {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Parameter, 0, len(names))
	for _, name := range names {
		out = append(out, *d.params[name])
	}
	return out
}

// Record appends an operation to the timeline.
func (d *Document) Record(entry TimelineEntry) {
	d.timeline = append(d.timeline, entry)
}

// Timeline returns the recorded operations, oldest first.
func (d *Document) Timeline() []TimelineEntry {
	return d.timeline
}

// UndoLast removes the most recent timeline entry and reverts the object
// it created. Returns the undone operation, or false on an empty timeline.
func (d *Document) UndoLast() (TimelineEntry, bool) {
	if len(d.timeline) == 0 {
		return TimelineEntry{}, false
	}
	entry := d.timeline[len(d.timeline)-1]
	d.timeline = d.timeline[:len(d.timeline)-1]

	switch entry.Kind {
	case "sketch":
		for i, s := range d.sketches {
			if s.Name == entry.Target {
				d.sketches = append(d.sketches[:i], d.sketches[i+1:]...)
				break
			}
		}
	case "body":
		d.RemoveBody(entry.Target)
	}
	return entry, true
}
