package response

const (
	MessageSuccess      = "success"
	DefaultErrorMessage = "Something went wrong"

	BadRequestCode          = 1
	TooManyRequestsCode     = 429
	InternalServerErrorCode = 500

	// DateTimeFormat is how DateTime values are written.
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)
