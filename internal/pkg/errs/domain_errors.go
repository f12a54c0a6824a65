package errs

// Error classes shared by the usecase layers. Specific sentinels are marked with
// one of these so the transport layer can pick a status without knowing them all.
var (
	// Malformed input, rejected before any storage access
	ErrValidation = New("validation failed")

	ErrNotFound  = New("not found")
	ErrForbidden = New("forbidden")

	// The slot is held by someone else (pre-check hit or lost race)
	ErrConflict = New("slot unavailable")

	// Any persistence failure not covered above
	ErrStorageFailure = New("storage failure")

	ErrUpstream = New("upstream service failure")
)
