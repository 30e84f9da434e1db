package domain

// Well-known SideEffects keys a handler may set on its ActionResult. The
// planner folds them into session state after a step commits; handlers never
// mutate the session directly.
const (
	SideEffectLastDirectory = "last_directory"
	SideEffectLastProcess   = "last_process"
	SideEffectClipboard     = "clipboard"
)
