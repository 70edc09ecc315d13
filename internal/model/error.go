package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidName      = "INVALID_NAME"
	ErrCodeInvalidType      = "INVALID_TYPE"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeInvalidStock     = "INVALID_STOCK"
	ErrCodeInvalidPage      = "INVALID_PAGE"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeNoImage          = "NO_IMAGE"
	ErrCodeUnsupportedImage = "UNSUPPORTED_IMAGE"
	ErrCodeImageTooLarge    = "IMAGE_TOO_LARGE"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidName      = NewDomainError(ErrCodeInvalidName, "Name is required")
	ErrInvalidType      = NewDomainError(ErrCodeInvalidType, "Type must be a known plant type")
	ErrInvalidPrice     = NewDomainError(ErrCodeInvalidPrice, "Price must be between 0 and 99999999.99 with at most two decimal places")
	ErrInvalidStock     = NewDomainError(ErrCodeInvalidStock, "Count in stock must be between 0 and 2147483647")
	ErrNoImage          = NewDomainError(ErrCodeNoImage, "No image uploaded")
	ErrUnsupportedImage = NewDomainError(ErrCodeUnsupportedImage, "Images only (jpg, jpeg, png)")
	ErrImageTooLarge    = NewDomainError(ErrCodeImageTooLarge, "Image exceeds the upload size limit")
)
