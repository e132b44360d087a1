package models

// ApexResult is the result payload of a single anonymous Apex execution.
// Older API versions omit the compiled and success flags entirely, and
// absence means true, so both are pointers with accessor methods.
type ApexResult struct {
	Compiled            *bool  `json:"compiled,omitempty"`
	Success             *bool  `json:"success,omitempty"`
	CompileProblem      string `json:"compileProblem,omitempty"`
	ExceptionMessage    string `json:"exceptionMessage,omitempty"`
	ExceptionStackTrace string `json:"exceptionStackTrace,omitempty"`
	Line                int    `json:"line,omitempty"`
	Column              int    `json:"column,omitempty"`
	Logs                string `json:"logs,omitempty"`
}

// CompiledOK reports whether the source compiled. An absent flag means
// the API predates it, which only ever happens on success.
func (r *ApexResult) CompiledOK() bool {
	return r.Compiled == nil || *r.Compiled
}

// Succeeded reports whether execution finished without an exception.
// Absent means true, same as the compiled flag.
func (r *ApexResult) Succeeded() bool {
	return r.Success == nil || *r.Success
}
