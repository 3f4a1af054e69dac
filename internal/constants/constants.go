package constants

// Context keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)

// Role names
const (
	DefaultRoleName  = "User"
	EmployeeRoleName = "Employee"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Password hashing cost used at signup.
const BcryptCost = 10
