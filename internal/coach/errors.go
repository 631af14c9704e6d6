package coach

import "errors"

var (
	// ErrInvalidJSON means the completion could not be decoded as JSON.
	ErrInvalidJSON = errors.New("AI returned invalid JSON")
	// ErrInvalidShape means the JSON decoded but does not match the expected schema.
	ErrInvalidShape = errors.New("AI returned an unexpected response shape")
	// ErrAnswerMismatch means the stated correct answer is not one of the options.
	ErrAnswerMismatch = errors.New("Correct answer mismatch")
)

// SchemaViolation returns the sentinel wrapped by err when it comes from
// interpreting the model output, or nil.
func SchemaViolation(err error) error {
	for _, sentinel := range []error{ErrInvalidJSON, ErrAnswerMismatch, ErrInvalidShape} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

// IsSchemaViolation reports whether err comes from interpreting the model output
// rather than from calling the model.
func IsSchemaViolation(err error) bool {
	return SchemaViolation(err) != nil
}
