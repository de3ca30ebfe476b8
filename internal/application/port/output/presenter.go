package output

// Presenter renders use case results for a CLI invocation, decoupling the
// command tree from the output format (spec §6A).
type Presenter interface {
	// PresentSuccess presents a successful result.
	PresentSuccess(message string, data interface{}) error

	// PresentError presents an error.
	PresentError(err error) error
}
