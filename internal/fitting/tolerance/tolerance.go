// Package tolerance defines how far a garment measurement may deviate from
// the body before the fit is considered poor, per fabric elasticity.
package tolerance

import "sizefit-engine/internal/models"

// Profile holds asymmetric fit tolerances as fractions of the user's own
// measurement. Tight bounds apply when the garment is smaller than the
// body, loose bounds when it is larger; each is split by primary/secondary
// measurement weight.
type Profile struct {
	TightPrimary   float64
	TightSecondary float64
	LoosePrimary   float64
	LooseSecondary float64
}

var fabricTolerances = map[models.FabricCategory]Profile{
	models.FabricStretchy: {TightPrimary: 0.08, TightSecondary: 0.10, LoosePrimary: 0.03, LooseSecondary: 0.05},
	models.FabricNormal:   {TightPrimary: 0.03, TightSecondary: 0.05, LoosePrimary: 0.03, LooseSecondary: 0.05},
	models.FabricRigid:    {TightPrimary: 0.02, TightSecondary: 0.02, LoosePrimary: 0.05, LooseSecondary: 0.05},
}

// For returns the tolerance profile for a fabric category. Unknown
// categories get the normal profile.
func For(fabric models.FabricCategory) Profile {
	if profile, ok := fabricTolerances[fabric]; ok {
		return profile
	}
	return fabricTolerances[models.FabricNormal]
}
