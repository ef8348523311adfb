package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrRecordDeleted    = NewDomainError("INVALID_STATE", "Record has been deleted and cannot be modified")
	ErrDataIntegrity    = NewDomainError("DATA_INTEGRITY", "Stored data violates an integrity invariant")
	ErrPeriodOverlap    = NewDomainError("PERIOD_OVERLAP", "Rate period overlaps an existing period")
	ErrNoRatePeriod     = NewDomainError("NOT_FOUND", "No rate period covers the requested date")
	ErrAmbiguousPeriod  = NewDomainError("DATA_INTEGRITY", "More than one rate period covers the requested date")
	ErrProjectMismatch  = NewDomainError("NOT_FOUND", "Record does not belong to this project")
	ErrDuplicateAccount = NewDomainError("ALREADY_EXISTS", "Ledger account code already exists for this project")
)
