package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialRequired signals that no API credential is active. It is
	// recoverable: the caller prompts for key selection and may resubmit.
	ErrCredentialRequired = errors.New("credential required")

	// ErrRunInFlight rejects a submission while another run for the same
	// session is still pending.
	ErrRunInFlight = errors.New("campaign run already in flight")

	ErrNotFound = errors.New("not found")
)

// GenerationStage names the pipeline step a failure belongs to.
type GenerationStage string

const (
	StageText      GenerationStage = "text"
	StageImage     GenerationStage = "image"
	StageImageEdit GenerationStage = "image_edit"
	StageVideo     GenerationStage = "video"
)

// GenerationError reports a generation call whose response was missing the
// expected payload. It is surfaced to users as a generic failure notice.
type GenerationError struct {
	Stage   GenerationStage
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError wraps err with a stage and a stable user-facing message.
func NewGenerationError(stage GenerationStage, message string, err error) *GenerationError {
	return &GenerationError{Stage: stage, Message: message, Err: err}
}

// IsGenerationError reports whether err carries a *GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
