package draft

import "strings"

// ValidationError names the first field that failed and carries the
// operator-facing message.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate runs the submit-time checks in strict order and reports only the
// first failure: title, then description, then price, then discounted price.
func Validate(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: FieldTitle, Message: "Title is required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: FieldDescription, Message: "Description is required"}
	}
	if d.Price <= 0 {
		return &ValidationError{Field: FieldPrice, Message: "Invalid price"}
	}
	// strict inequality: a discount equal to the price is rejected here even
	// though the guarded setter lets it into the draft
	if d.DiscountedPrice <= 0 || d.DiscountedPrice >= d.Price {
		return &ValidationError{Field: FieldDiscountedPrice, Message: "Invalid discounted price"}
	}
	return nil
}
