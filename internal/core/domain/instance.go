package domain

// InstanceKind names the backend an instance lives in.
type InstanceKind string

const (
	KindProject InstanceKind = "project"
	KindProcess InstanceKind = "process"
)

// CompleteStateInProgress is the workflow completeState of a running instance.
const CompleteStateInProgress = 0

// ListResult is the outcome of searching one backend for active instances.
// A failed search carries Err and no serial numbers.
type ListResult struct {
	Kind          InstanceKind
	Code          string
	SerialNumbers []string
	Err           error
}

func (r ListResult) OK() bool {
	return r.Err == nil
}

// ActionResult is the outcome of one revoke or abort call.
type ActionResult struct {
	Kind         InstanceKind
	SerialNumber string
	Err          error
}

func (r ActionResult) OK() bool {
	return r.Err == nil
}
