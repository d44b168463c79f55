package signupcheck

// Roster actions, used as the last path segment.
const (
	ActionSignup     = "signup"
	ActionUnregister = "unregister"
)

// Details the service answers with for rejected roster changes.
const (
	DetailAlreadySignedUp = "Student already signed up for this activity"
	DetailNotRegistered   = "Student not registered for this activity"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// EmailDomain is the domain of generated student addresses.
const EmailDomain = "mergington.edu"

// PercentageMultiplier converts ratios to percentages.
const PercentageMultiplier = 100
