package constant

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	DefaultRole = RoleUser

	// OTP codes are six decimal digits.
	OTPMin = 100000
	OTPMax = 999999

	DefaultPageNumber = 0
	DefaultPageSize   = 3
	DefaultSortBy     = "id"
	DefaultSortDir    = "asc"
)
