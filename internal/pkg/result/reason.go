package result

// PreconditionFailedReason classifies why a state precondition was not met.
type PreconditionFailedReason int

const (
	// PreconditionNotFound means an expected resource is absent.
	PreconditionNotFound PreconditionFailedReason = iota
	// PreconditionConflict means the resource is in a conflicting state.
	PreconditionConflict
	// PreconditionExpired means the resource existed but is no longer valid.
	PreconditionExpired
)

// String returns the string representation of the reason.
func (r PreconditionFailedReason) String() string {
	switch r {
	case PreconditionNotFound:
		return "NotFound"
	case PreconditionConflict:
		return "Conflict"
	case PreconditionExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Message returns the default user-facing message for the reason.
func (r PreconditionFailedReason) Message() string {
	switch r {
	case PreconditionNotFound:
		return "The requested resource was not found."
	case PreconditionConflict:
		return "The request conflicts with the current state of the resource."
	case PreconditionExpired:
		return "The requested resource has expired."
	default:
		return "A precondition for the request was not met."
	}
}

// DependencyFailedReason classifies how an external dependency failed.
type DependencyFailedReason int

const (
	// DependencyTimeout means the dependency did not answer in time.
	DependencyTimeout DependencyFailedReason = iota
	// DependencyUnavailable means the dependency refused or is down.
	DependencyUnavailable
)

// String returns the string representation of the reason.
func (r DependencyFailedReason) String() string {
	switch r {
	case DependencyTimeout:
		return "Timeout"
	case DependencyUnavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}
