package slack

// Export internal functions for testing
var (
	ConvertMessage = convertMessage
	ConvertUser    = convertUser
)
