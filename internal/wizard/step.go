package wizard

// Step is a wizard stage. Steps are ordered; Back moves exactly one step.
type Step int

const (
	StepIdea Step = iota
	StepMethodologySelection
	StepDetails
	StepReview
	StepCreating
)

func (s Step) String() string {
	switch s {
	case StepIdea:
		return "idea"
	case StepMethodologySelection:
		return "methodology_selection"
	case StepDetails:
		return "details"
	case StepReview:
		return "review"
	case StepCreating:
		return "creating"
	default:
		return "unknown"
	}
}

// previous returns the step Back leads to. Idea and Creating have none.
func (s Step) previous() (Step, bool) {
	switch s {
	case StepMethodologySelection:
		return StepIdea, true
	case StepDetails:
		return StepMethodologySelection, true
	case StepReview:
		return StepDetails, true
	default:
		return s, false
	}
}

// SubmissionState tracks the creation call.
type SubmissionState int

const (
	SubmissionIdle SubmissionState = iota
	SubmissionPending
	SubmissionFailed
)

func (s SubmissionState) String() string {
	switch s {
	case SubmissionIdle:
		return "idle"
	case SubmissionPending:
		return "pending"
	case SubmissionFailed:
		return "failed"
	default:
		return "unknown"
	}
}
