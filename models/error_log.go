package models

// ErrorLog is an internal server error persisted for later inspection.
type ErrorLog struct {
	FeatureName  string
	ProcessID    string
	UserID       *int64
	Error        string
	ErrorMessage string
	ErrorStack   *string
}
