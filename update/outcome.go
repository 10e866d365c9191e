package update

// Outcome reports how an Engine.Run call ended.
type Outcome int

const (
	// Success means the image was validated, copied, and verified.
	Success Outcome = iota
	// UntouchedFailure means the update was rejected before internal
	// flash was modified: the existing image is still intact.
	UntouchedFailure
	// ManglingFailure means the erase or copy failed, or the post-write
	// verification did not match: the existing image can no longer be
	// trusted.
	ManglingFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case UntouchedFailure:
		return "UntouchedFailure"
	case ManglingFailure:
		return "ManglingFailure"
	default:
		return "Outcome(?)"
	}
}
