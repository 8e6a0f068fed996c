package onboarding

type Step int

const (
	StepBasicInfo    Step = 1
	StepSocialLinks  Step = 2
	StepProfileMedia Step = 3

	FirstStep = StepBasicInfo
	LastStep  = StepProfileMedia
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Next returns the following step, staying on the last step at the boundary.
func (s Step) Next() Step {
	if s >= LastStep {
		return LastStep
	}
	if s < FirstStep {
		return FirstStep
	}
	return s + 1
}

// Prev returns the previous step, staying on the first step at the boundary.
func (s Step) Prev() Step {
	if s <= FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s - 1
}

// Progress is the wizard completion percentage shown above the form.
func (s Step) Progress() int {
	if !s.Valid() {
		return 0
	}
	return int(s) * 100 / int(LastStep)
}

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepSocialLinks:
		return "social_links"
	case StepProfileMedia:
		return "profile_media"
	default:
		return "unknown"
	}
}
