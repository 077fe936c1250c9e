package domain

type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// FreePlanNoteLimit is the maximum number of notes a FREE tenant may hold.
const FreePlanNoteLimit = 3

type PlanLimits struct {
	Plan      Plan
	MaxNotes  int
	Unlimited bool
}

var PlanLimitsByPlan = map[Plan]PlanLimits{
	PlanFree: {
		Plan:     PlanFree,
		MaxNotes: FreePlanNoteLimit,
	},
	PlanPro: {
		Plan:      PlanPro,
		Unlimited: true,
	},
}

// GetPlanLimits returns the limits for p. Unknown plans get FREE limits.
func GetPlanLimits(p Plan) PlanLimits {
	if l, ok := PlanLimitsByPlan[p]; ok {
		return l
	}
	return PlanLimitsByPlan[PlanFree]
}

// AllowsAnotherNote reports whether a tenant on this plan that already holds
// count notes may create one more.
func (l PlanLimits) AllowsAnotherNote(count int) bool {
	if l.Unlimited {
		return true
	}
	return count < l.MaxNotes
}
