package domain

// EntityKind enumerates the structured value kinds the extractor recognizes.
type EntityKind string

const (
	EntityPath          EntityKind = "path"
	EntityEnvVar        EntityKind = "env_var"
	EntityFileExtension EntityKind = "file_extension"
	EntityClipboardRef  EntityKind = "clipboard_ref"
	EntityNumericLit    EntityKind = "numeric_literal"
)

// Entity is a structured value pulled out of raw input text. ResolvedValue is
// empty for env_var and clipboard_ref entities until execution time, when the
// planner fills it from the runtime environment; an entity that cannot be
// resolved is passed through with Resolved=false rather than failing.
type Entity struct {
	Kind          EntityKind
	RawText       string
	ResolvedValue string
	Resolved      bool
}
