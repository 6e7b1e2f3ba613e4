package lifecycle

// Reason classifies why a requested transition was rejected.
type Reason string

const (
	// ReasonUnknownStatus means the requested status is not a catalog member.
	ReasonUnknownStatus Reason = "unknown_status"
	// ReasonNoOp means the requested status equals the current one. Callers
	// may treat this as a silent success; it is signaled distinctly so they
	// can make that choice.
	ReasonNoOp Reason = "no_op"
	// ReasonNotAllowed means the move goes against a forward-only policy.
	ReasonNotAllowed Reason = "not_allowed"
)

// Decision is the outcome of validating a single transition.
type Decision struct {
	Accepted bool
	Reason   Reason
}

func accept() Decision              { return Decision{Accepted: true} }
func reject(reason Reason) Decision { return Decision{Reason: reason} }

// Validator decides whether a requested status change is allowed. The zero
// value is the permissive default: any catalog status is reachable from any
// other by direct staff action, so corrections (e.g. payment_pending back
// to detailing) never block the floor.
type Validator struct {
	forwardOnly bool
}

// ValidatorOption customizes a Validator.
type ValidatorOption func(*Validator)

// ForwardOnly restricts accepted transitions to later catalog positions.
// Not enabled by default.
func ForwardOnly() ValidatorOption {
	return func(v *Validator) {
		v.forwardOnly = true
	}
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate is a pure function from (current, requested) to a Decision.
// It never touches storage and returns the same result for the same input.
func (v *Validator) Validate(current, requested Status) Decision {
	if !IsValid(requested) {
		return reject(ReasonUnknownStatus)
	}
	if requested == current {
		return reject(ReasonNoOp)
	}
	if v.forwardOnly && index(requested) < index(current) {
		return reject(ReasonNotAllowed)
	}
	return accept()
}
