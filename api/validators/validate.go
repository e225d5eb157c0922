package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/angelmondragon/sales-analytics/pkg/errors"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// checkVar validates a single query value against a validator tag.
func checkVar(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return formatValidationError(field, err)
	}
	return nil
}

func formatValidationError(field string, err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{
			field: validationMessage(errs[0]),
		})
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed").WithDetails(map[string]any{"field": field})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	case "number", "numeric":
		return "must be numeric"
	}
	return "is invalid"
}
