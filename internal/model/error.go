package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingField          = "MISSING_FIELD"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeCartLineNotFound      = "CART_LINE_NOT_FOUND"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeCartEmpty             = "CART_EMPTY"
	ErrCodeInvalidOrderStatus    = "INVALID_ORDER_STATUS"
	ErrCodeEmailTaken            = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodePaymentIntentNotFound = "PAYMENT_INTENT_NOT_FOUND"
	ErrCodePaymentNotSucceeded   = "PAYMENT_NOT_SUCCEEDED"
	ErrCodePaymentsDisabled      = "PAYMENTS_DISABLED"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// ErrorKind classifies a DomainError so the transport layer can pick a status.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalidInput
	KindInvalidState
	KindConflict
	KindUnauthorised
	KindForbidden
)

// Domain errors for business logic
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrUserNotFound            = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found.")
	ErrProductNotFound         = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found.")
	ErrCartLineNotFound        = NewDomainError(KindNotFound, ErrCodeCartLineNotFound, "Product not found in cart.")
	ErrOrderNotFound           = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found.")
	ErrPaymentIntentMissing    = NewDomainError(KindNotFound, ErrCodePaymentIntentNotFound, "Payment intent not found")
	ErrCartEmpty               = NewDomainError(KindInvalidState, ErrCodeCartEmpty, "Cart is empty.")
	ErrPaymentNotSucceeded     = NewDomainError(KindInvalidState, ErrCodePaymentNotSucceeded, "Payment has not succeeded")
	ErrPaymentsDisabled        = NewDomainError(KindInvalidState, ErrCodePaymentsDisabled, "Card payments are not configured")
	ErrSessionIDRequired       = NewDomainError(KindInvalidInput, ErrCodeMissingField, "Session ID is required")
	ErrShippingAddressRequired = NewDomainError(KindInvalidInput, ErrCodeMissingField, "Shipping address is required.")
	ErrOrderStatusRequired     = NewDomainError(KindInvalidInput, ErrCodeMissingField, "Order ID and new status are required.")
	ErrInvalidOrderStatus      = NewDomainError(KindInvalidInput, ErrCodeInvalidOrderStatus, "Invalid status provided.")
	ErrCredentialsRequired     = NewDomainError(KindInvalidInput, ErrCodeMissingField, "Email and password are required")
	ErrEmailTaken              = NewDomainError(KindConflict, ErrCodeEmailTaken, "Existing user found with this email")
	ErrInvalidCredentials      = NewDomainError(KindInvalidInput, ErrCodeInvalidCredentials, "Please try with correct email/password")
	ErrInvalidRole             = NewDomainError(KindInvalidInput, ErrCodeValidationFailed, "Invalid role provided")
	ErrAdminSignupDisabled     = NewDomainError(KindForbidden, ErrCodeForbidden, "Admin signup is disabled")
	ErrInvalidProduct          = NewDomainError(KindInvalidInput, ErrCodeValidationFailed, "Product name, category and a non-negative price are required")
	ErrCategoryRequired        = NewDomainError(KindInvalidInput, ErrCodeMissingField, "Category is required")
	ErrNoImagesUploaded        = NewDomainError(KindInvalidInput, ErrCodeMissingField, "No files uploaded")
	ErrInvalidItemID           = NewDomainError(KindInvalidInput, ErrCodeValidationFailed, "A valid itemId is required")
	ErrInvalidToken            = NewDomainError(KindUnauthorised, ErrCodeUnauthorised, "Please authenticate using a valid token")
	ErrAdminOnly               = NewDomainError(KindForbidden, ErrCodeForbidden, "Forbidden: Admins only")
)
