package api

// Client-facing error details.
const (
	DetailActivityNotFound = "Activity not found"
	DetailAlreadySignedUp  = "Student already signed up for this activity"
	DetailNotRegistered    = "Student not registered for this activity"
	DetailEmailRequired    = "email query parameter is required"
)
