package nexus

// SubmitOp describes one in-flight or completed submission to extension
// hooks. Grounded on the teacher's Operation, re-targeted from "resolve
// call description" to "submission description."
type SubmitOp struct {
	// Hooks is the caller-proposed candidate map, unmodified by owner
	// completion.
	Hooks map[*Hook]Value
	// Affected lists every hook whose nexus actually changed, populated
	// only by the time AfterSubmit runs.
	Affected []*Hook
	// Err is nil until AfterSubmit, then holds the submission's outcome.
	Err error
}

// ManagerExtension observes the submission, fusion, and isolation
// lifecycle without participating in validation or completion. Grounded on
// the teacher's Extension/BaseExtension (extension.go): a no-op base type
// lets a concrete extension override only the hooks it cares about.
// BeforeFusion/AfterFusion are called by Hook.Link only; Hook.LinkMany
// calls no extension method.
type ManagerExtension interface {
	BeforeSubmit(op *SubmitOp)
	AfterSubmit(op *SubmitOp)
	BeforeFusion(a, b *Hook)
	AfterFusion(a, b *Hook, err error)
	BeforeIsolate(h *Hook)
	AfterIsolate(h *Hook, err error)
}

// BaseExtension implements every ManagerExtension method as a no-op so that
// concrete extensions (see extensions/) can embed it and override only what
// they need.
type BaseExtension struct{}

func (BaseExtension) BeforeSubmit(*SubmitOp)             {}
func (BaseExtension) AfterSubmit(*SubmitOp)              {}
func (BaseExtension) BeforeFusion(a, b *Hook)             {}
func (BaseExtension) AfterFusion(a, b *Hook, err error)   {}
func (BaseExtension) BeforeIsolate(h *Hook)               {}
func (BaseExtension) AfterIsolate(h *Hook, err error)     {}
