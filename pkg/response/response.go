package response

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorBody is the standard error response: {message, errors?}
type ErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Error wraps a single error message
func Error(message string) ErrorBody {
	return ErrorBody{Message: message}
}

// ValidationError wraps a message plus a per-field error list
func ValidationError(message string, errs []string) ErrorBody {
	return ErrorBody{Message: message, Errors: errs}
}

// BindError converts a gin binding error into the standard error body,
// listing each failed field with the constraint it violated.
func BindError(err error) ErrorBody {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+": failed '"+fe.Tag()+"' validation")
		}
		return ValidationError("Invalid request payload", fields)
	}
	return Error("Invalid request payload: " + err.Error())
}
