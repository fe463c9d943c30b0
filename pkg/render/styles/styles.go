// Package styles resolves entity and edge types to fixed visual attributes.
//
// Every lookup is a closed table keyed by a small enumeration. Declared type
// strings from diagram documents are parsed into the enumeration first
// (ParseContainerKind, ParseComponentKind, ClassKindOf); anything unrecognized
// becomes the level's Other kind, which maps to a neutral grey pair. Lookups
// never fail.
package styles

// Colors is a fill and border color pair in #rrggbb form.
type Colors struct {
	Fill   string
	Border string
}

// Neutral defaults for unrecognized types.
var (
	DefaultColors      = Colors{Fill: "#f5f5f5", Border: "#424242"}
	DefaultClassColors = Colors{Fill: "#ffffff", Border: "#424242"}
)

// ContextRole identifies the three kinds of boxes on a context diagram.
type ContextRole int

const (
	RoleSystem ContextRole = iota
	RoleUser
	RoleExternal
)

var contextColors = map[ContextRole]Colors{
	RoleSystem:   {Fill: "#f0f0f0", Border: "#000000"},
	RoleUser:     {Fill: "#e0f7fa", Border: "#0000ff"},
	RoleExternal: {Fill: "#e8f5e9", Border: "#008000"},
}

// ContextColors returns the colors for a context-diagram box.
func ContextColors(r ContextRole) Colors {
	if c, ok := contextColors[r]; ok {
		return c
	}
	return DefaultColors
}

// SystemColors is used for the subject system drawn at the center of a
// container diagram.
var SystemColors = Colors{Fill: "#bbdefb", Border: "#000000"}

// BoundaryColors is used for the enclosing container boundary of a component
// diagram.
var BoundaryColors = Colors{Fill: "#f5f5f5", Border: "#333333"}

// ContainerKind enumerates the container types with dedicated styling.
type ContainerKind int

const (
	ContainerOther ContainerKind = iota
	ContainerApplication
	ContainerDatabase
	ContainerQueue
	ContainerBrowser
	ContainerMobile
	ContainerAPI
)

var containerKinds = map[string]ContainerKind{
	"Application": ContainerApplication,
	"Database":    ContainerDatabase,
	"Queue":       ContainerQueue,
	"Browser":     ContainerBrowser,
	"Mobile":      ContainerMobile,
	"API":         ContainerAPI,
}

// ParseContainerKind maps a declared container type to its kind. Matching is
// exact; unknown types yield ContainerOther.
func ParseContainerKind(typ string) ContainerKind {
	return containerKinds[typ]
}

var containerColors = map[ContainerKind]Colors{
	ContainerOther:       DefaultColors,
	ContainerApplication: {Fill: "#e3f2fd", Border: "#1565c0"},
	ContainerDatabase:    {Fill: "#e8f5e9", Border: "#2e7d32"},
	ContainerQueue:       {Fill: "#fff3e0", Border: "#ef6c00"},
	ContainerBrowser:     {Fill: "#f3e5f5", Border: "#7b1fa2"},
	ContainerMobile:      {Fill: "#e0f7fa", Border: "#00838f"},
	ContainerAPI:         {Fill: "#ffebee", Border: "#c62828"},
}

// ContainerColors returns the colors for a container kind.
func ContainerColors(k ContainerKind) Colors {
	if c, ok := containerColors[k]; ok {
		return c
	}
	return DefaultColors
}

// ComponentKind enumerates the component types with dedicated styling.
type ComponentKind int

const (
	ComponentOther ComponentKind = iota
	ComponentService
	ComponentController
	ComponentRepository
	ComponentClient
	ComponentUtility
	ComponentGateway
)

var componentKinds = map[string]ComponentKind{
	"Service":    ComponentService,
	"Controller": ComponentController,
	"Repository": ComponentRepository,
	"Client":     ComponentClient,
	"Utility":    ComponentUtility,
	"Gateway":    ComponentGateway,
}

// ParseComponentKind maps a declared component type to its kind.
func ParseComponentKind(typ string) ComponentKind {
	return componentKinds[typ]
}

var componentColors = map[ComponentKind]Colors{
	ComponentOther:      DefaultColors,
	ComponentService:    {Fill: "#e3f2fd", Border: "#1565c0"},
	ComponentController: {Fill: "#e8f5e9", Border: "#2e7d32"},
	ComponentRepository: {Fill: "#fff3e0", Border: "#ef6c00"},
	ComponentClient:     {Fill: "#f3e5f5", Border: "#7b1fa2"},
	ComponentUtility:    {Fill: "#e0f7fa", Border: "#00838f"},
	ComponentGateway:    {Fill: "#ffebee", Border: "#c62828"},
}

// ComponentColors returns the colors for a component kind.
func ComponentColors(k ComponentKind) Colors {
	if c, ok := componentColors[k]; ok {
		return c
	}
	return DefaultColors
}

// ClassKind enumerates the class variants with dedicated styling.
type ClassKind int

const (
	ClassPlain ClassKind = iota
	ClassInterface
	ClassAbstract
	ClassEntity
	ClassService
	ClassRepository
)

// ClassKindOf classifies a class. The interface flag takes precedence over
// the abstract flag, which takes precedence over the declared type.
func ClassKindOf(typ string, isAbstract, isInterface bool) ClassKind {
	switch {
	case isInterface:
		return ClassInterface
	case isAbstract:
		return ClassAbstract
	}
	switch typ {
	case "Entity":
		return ClassEntity
	case "Service":
		return ClassService
	case "Repository":
		return ClassRepository
	}
	return ClassPlain
}

var classColors = map[ClassKind]Colors{
	ClassPlain:      DefaultClassColors,
	ClassInterface:  {Fill: "#f5f5f5", Border: "#7b1fa2"},
	ClassAbstract:   {Fill: "#e3f2fd", Border: "#0d47a1"},
	ClassEntity:     {Fill: "#e8f5e9", Border: "#2e7d32"},
	ClassService:    {Fill: "#fff3e0", Border: "#ef6c00"},
	ClassRepository: {Fill: "#fce4ec", Border: "#c2185b"},
}

// ClassColors returns the colors for a class kind.
func ClassColors(k ClassKind) Colors {
	if c, ok := classColors[k]; ok {
		return c
	}
	return DefaultClassColors
}

// Italic reports whether a class kind's name is set in italics.
func (k ClassKind) Italic() bool {
	return k == ClassInterface || k == ClassAbstract
}
