package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	ValidationErrorCode     = 1
	UnauthorizedErrorCode   = 401
	RateLimitErrorCode      = 429
	InternalServerErrorCode = 500
)
