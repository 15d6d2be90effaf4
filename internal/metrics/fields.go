package metrics

// Attribute keys shared by every instrument.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrOperation = "op"
	AttrOutcome   = "outcome"
	AttrResource  = "resource"
)

// Carousel operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNoop     = "noop"
)
