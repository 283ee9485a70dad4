package doctor

// Status is the outcome of a single check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Result describes the outcome of one check.
type Result struct {
	Name   string
	Status Status
	Detail string // version, path or error message
	Hint   string // what to do about a warning or failure
}
