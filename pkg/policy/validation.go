package policy

import "strings"

// FieldError scopes one validation message to the config field it concerns,
// so an authoring surface can render it inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is an ordered list of field-scoped validation failures.
// An empty list means the checked object is valid.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, fieldErr := range v {
		messages = append(messages, fieldErr.Field+": "+fieldErr.Message)
	}

	return strings.Join(messages, "; ")
}

// OrNil returns the list as an error, or a plain nil when there are no
// failures, so callers can compare the result against nil directly.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}

	return v
}
