package inspector

import (
	"time"

	"github.com/muurk/propsheet/internal/logging"
	"github.com/muurk/propsheet/internal/schema"
)

// ChangeFunc is called after a property value changed and every editor was
// notified.
type ChangeFunc func(name string, value any)

// Options configures a root surface. Nested surfaces share their root's options.
type Options struct {
	// EnableExternalParameterEditor mounts the registry's external editor on
	// every eligible property.
	EnableExternalParameterEditor bool

	OnChange         ChangeFunc
	OnPopupDisplayed func()
	OnPopupHidden    func()

	// Registry holds the editor kinds. A nil registry has no kinds.
	Registry *Registry

	// Scheduler runs deferred animation steps. Nil, or a zero AnimationBudget,
	// applies expand/collapse immediately.
	Scheduler       Scheduler
	AnimationBudget time.Duration
}

// SurfaceID identifies a surface within its inspector instance.
type SurfaceID int

// instance is the state shared by a root surface and every nested surface.
type instance struct {
	id        string
	groups    *GroupManager
	container *Container
	registry  *Registry
	opts      Options

	surfaces    map[SurfaceID]*Surface
	nextSurface SurfaceID
	popups      int

	// animations holds the transition in flight for each group.
	animations map[GroupID]*animation
}

func (in *instance) register(s *Surface) {
	in.nextSurface++
	s.id = in.nextSurface
	in.surfaces[s.id] = s
}

// Surface is one property sheet: a schema, a value map and one editor per
// property. The root surface owns the GroupManager and the container; nested
// surfaces reference both.
type Surface struct {
	id       SurfaceID
	parentID SurfaceID
	shared   *instance

	container *Container
	group     *Group
	onChange  ChangeFunc

	defs     []schema.Property
	byName   map[string]schema.Property
	parsed   schema.Parsed
	values   map[string]any
	original map[string]any

	editors      []Editor
	editorByName map[string]Editor
	external     []ExternalParameterEditor
	externalBy   map[string]ExternalParameterEditor

	rows          map[string]*Row
	ownRows       []*Row
	createdGroups []GroupID
	children      []SurfaceID

	disposed bool
}

// New constructs and builds a root surface. instanceID must be stable for the
// inspected target; it seeds group IDs. A nil container creates one and nil
// values are treated as an empty map.
func New(container *Container, defs []schema.Property, values map[string]any, instanceID string, opts Options) (*Surface, error) {
	if instanceID == "" {
		return nil, NewMissingInstanceError()
	}
	if container == nil {
		container = NewContainer()
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}

	groups := NewGroupManager(instanceID)
	shared := &instance{
		id:        instanceID,
		groups:    groups,
		container: container,
		registry:  opts.Registry,
		opts:      opts,
		surfaces:  make(map[SurfaceID]*Surface),

		animations: make(map[GroupID]*animation),
	}

	s := newSurface(shared, container, defs, values, groups.CreateRoot(), opts.OnChange)
	if err := s.build(); err != nil {
		s.Dispose()
		return nil, err
	}
	return s, nil
}

// NewChild constructs a surface nested under parent. The child builds into its
// own container until it is merged with MergeChildSurface. A nil group roots the
// child at the parent's group.
func NewChild(parent *Surface, defs []schema.Property, values map[string]any, group *Group, onChange ChangeFunc) (*Surface, error) {
	if parent.disposed {
		return nil, ErrDisposed
	}
	if group == nil {
		group = parent.group
	}

	s := newSurface(parent.shared, NewContainer(), defs, values, group, onChange)
	s.parentID = parent.id
	parent.children = append(parent.children, s.id)

	if err := s.build(); err != nil {
		s.Dispose()
		return nil, err
	}
	return s, nil
}

func newSurface(shared *instance, container *Container, defs []schema.Property, values map[string]any, group *Group, onChange ChangeFunc) *Surface {
	if values == nil {
		values = map[string]any{}
	}

	s := &Surface{
		shared:       shared,
		container:    container,
		group:        group,
		onChange:     onChange,
		defs:         defs,
		byName:       make(map[string]schema.Property),
		parsed:       schema.Parse(defs),
		values:       deepCopyMap(values),
		original:     deepCopyMap(values),
		editorByName: make(map[string]Editor),
		externalBy:   make(map[string]ExternalParameterEditor),
		rows:         make(map[string]*Row),
	}
	for _, def := range defs {
		if !def.IsGroup() {
			s.byName[def.Property] = def
		}
	}
	shared.register(s)
	return s
}

// build emits one row per schema item and one editor per property.
func (s *Surface) build() error {
	// Unknown kinds fail before anything is created.
	for _, item := range s.parsed.Properties {
		if item.IsGroup() {
			continue
		}
		if _, err := s.shared.registry.Lookup(item.Type, item.Property.Property); err != nil {
			return err
		}
	}

	current := s.group
	markers := make(map[schema.GroupIndex]*Group)

	for _, item := range s.parsed.Properties {
		if item.IsGroup() {
			current = s.shared.groups.CreateGroup(item.GroupIndex, s.group)
			s.createdGroups = append(s.createdGroups, current.ID)
			markers[item.GroupIndex] = current
			s.emitGroupRow(item.Property, current)
			continue
		}

		if !item.Group.IsSet() {
			current = s.group
		} else if g, ok := markers[item.Group]; ok {
			current = g
		}

		row := s.emitPropertyRow(item.Property, current)
		if err := s.createEditor(item.Property, current, row); err != nil {
			return err
		}
	}

	logging.LogSurfaceBuilt(s.shared.id, s.parentID != 0, len(s.editors), len(s.createdGroups))
	return nil
}

func (s *Surface) emitGroupRow(def schema.Property, g *Group) *Row {
	row := &Row{
		Kind:          RowGroup,
		Title:         def.Label(),
		Description:   def.Description,
		GroupID:       g.ID,
		ParentGroupID: g.ParentID,
		Level:         g.Level,
		FullWidth:     true,
		Addressable:   true,
		Hidden:        !s.shared.groups.IsVisible(g.ParentID),
	}
	s.ownRows = append(s.ownRows, row)
	return s.container.Append(row)
}

func (s *Surface) emitPropertyRow(def schema.Property, g *Group) *Row {
	row := &Row{
		Kind:          RowProperty,
		Property:      def.Property,
		Title:         def.Label(),
		Description:   def.Description,
		ParentGroupID: g.ID,
		Level:         g.Level,
		Hidden:        !s.shared.groups.IsVisible(g.ID),
	}
	s.rows[def.Property] = row
	s.ownRows = append(s.ownRows, row)
	return s.container.Append(row)
}

func (s *Surface) createEditor(def schema.Property, g *Group, row *Row) error {
	factory, err := s.shared.registry.Lookup(def.Type, def.Property)
	if err != nil {
		return err
	}

	ctx := EditorContext{Surface: s, Definition: def, Group: g, Row: row}
	editor, err := factory(ctx)
	if err != nil {
		return NewEditorBuildError(def.Property, err)
	}

	s.editors = append(s.editors, editor)
	s.editorByName[def.Property] = editor

	if editor.IsGroupedEditor() {
		row.Kind = RowComposite
		row.Addressable = true
		if row.Content == "" {
			row.FullWidth = true
		}
		if composite, ok := editor.(CompositeEditor); ok {
			if child := composite.ChildSurface(); child != nil {
				row.GroupID = child.group.ID
			}
		}
	}

	if s.shared.opts.EnableExternalParameterEditor && def.ShowExternalParam &&
		editor.SupportsExternalParameterEditor() && s.shared.registry.external != nil {
		ext, err := s.shared.registry.external(ctx, editor)
		if err != nil {
			return NewEditorBuildError(def.Property, err)
		}
		if ext != nil {
			s.external = append(s.external, ext)
			s.externalBy[def.Property] = ext
		}
	}

	return nil
}

// ID returns the surface's ID within its inspector instance.
func (s *Surface) ID() SurfaceID {
	return s.id
}

// InstanceID returns the caller-supplied instance ID.
func (s *Surface) InstanceID() string {
	return s.shared.id
}

// Group returns the group the surface's properties are rooted under.
func (s *Surface) Group() *Group {
	return s.group
}

// Groups returns the shared GroupManager.
func (s *Surface) Groups() *GroupManager {
	return s.shared.groups
}

// Container returns the container the surface's rows currently live in.
func (s *Surface) Container() *Container {
	return s.container
}

// Parsed returns the parsed schema.
func (s *Surface) Parsed() schema.Parsed {
	return s.parsed
}

// Definition returns the schema item of a property.
func (s *Surface) Definition(name string) (schema.Property, bool) {
	def, ok := s.byName[name]
	return def, ok
}

// Editors returns the editors in schema order.
func (s *Surface) Editors() []Editor {
	out := make([]Editor, len(s.editors))
	copy(out, s.editors)
	return out
}

// Editor returns the editor of a property, or nil.
func (s *Surface) Editor(name string) Editor {
	return s.editorByName[name]
}

// ExternalEditor returns the external parameter editor of a property, or nil.
func (s *Surface) ExternalEditor(name string) ExternalParameterEditor {
	return s.externalBy[name]
}

// Row returns the row of a property, or nil.
func (s *Surface) Row(name string) *Row {
	return s.rows[name]
}

// Parent returns the parent surface, or nil for the root.
func (s *Surface) Parent() *Surface {
	if s.parentID == 0 {
		return nil
	}
	return s.shared.surfaces[s.parentID]
}

// IsRoot reports whether the surface is the root of its inspector instance.
func (s *Surface) IsRoot() bool {
	return s.parentID == 0
}

// Children returns the live nested surfaces.
func (s *Surface) Children() []*Surface {
	var out []*Surface
	for _, id := range s.children {
		if child := s.shared.surfaces[id]; child != nil {
			out = append(out, child)
		}
	}
	return out
}

// IsDisposed reports whether Dispose was called.
func (s *Surface) IsDisposed() bool {
	return s.disposed
}

// Surfaces returns how many surfaces of this inspector instance are alive.
func (s *Surface) Surfaces() int {
	return len(s.shared.surfaces)
}
