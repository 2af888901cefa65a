package simulation

import (
	"fmt"

	"recsim/engine"
	"recsim/policy"
)

// ScenarioMetadata is the full parameter surface of one simulation run,
// loaded from a JSON metadata file over the documented defaults.
type ScenarioMetadata struct {
	UniqueName string

	TrainUserCount    int
	InferUserCount    int
	PurchaseThreshold int
	TrainingEpochs    int
	Seed              int64

	ProposalsPerUser int
	LatentDim        int
	LearnRate        float64
	Regularization   float64
	OnlineSteps      int

	// TrialCount > 1 runs independent repeated trials with derived seeds.
	TrialCount int

	// Policies selects which policies run; empty means all registered.
	Policies []string
}

// DefaultScenarioMetadata returns the documented defaults.
func DefaultScenarioMetadata() *ScenarioMetadata {
	return &ScenarioMetadata{
		UniqueName:        "run",
		TrainUserCount:    500,
		InferUserCount:    200,
		PurchaseThreshold: 160,
		TrainingEpochs:    30,
		Seed:              42,
		ProposalsPerUser:  10,
		LatentDim:         8,
		LearnRate:         0.01,
		Regularization:    0.01,
		OnlineSteps:       3,
		TrialCount:        1,
	}
}

// Validate rejects parameter values for which the engine's behavior is
// undefined, before any work starts. Threshold 256 is allowed so a
// never-purchasing population is expressible.
func (m *ScenarioMetadata) Validate() error {
	if m.TrainUserCount <= 0 {
		return fmt.Errorf("invalid TrainUserCount %d: must be positive", m.TrainUserCount)
	}
	if m.InferUserCount <= 0 {
		return fmt.Errorf("invalid InferUserCount %d: must be positive", m.InferUserCount)
	}
	if m.PurchaseThreshold < 0 || m.PurchaseThreshold > 256 {
		return fmt.Errorf("invalid PurchaseThreshold %d: must be in [0,256]", m.PurchaseThreshold)
	}
	if m.TrainingEpochs <= 0 {
		return fmt.Errorf("invalid TrainingEpochs %d: must be positive", m.TrainingEpochs)
	}
	if m.ProposalsPerUser <= 0 {
		return fmt.Errorf("invalid ProposalsPerUser %d: must be positive", m.ProposalsPerUser)
	}
	if m.LatentDim <= 0 {
		return fmt.Errorf("invalid LatentDim %d: must be positive", m.LatentDim)
	}
	if m.OnlineSteps < 0 {
		return fmt.Errorf("invalid OnlineSteps %d: must be non-negative", m.OnlineSteps)
	}
	if m.TrialCount <= 0 {
		return fmt.Errorf("invalid TrialCount %d: must be positive", m.TrialCount)
	}
	for _, name := range m.Policies {
		if _, ok := GetDefaultPolicyFactoryDefs()[name]; !ok {
			return fmt.Errorf("unknown policy %q", name)
		}
	}
	return nil
}

// PolicyFactory builds a policy from run metadata.
type PolicyFactory func(m *ScenarioMetadata) engine.Policy

// PolicyOrder fixes the sequence policies run in; it is part of the RNG
// stream contract, since every policy consumes the same ordered stream.
var PolicyOrder = []string{"random", "memory", "model"}

// GetDefaultPolicyFactoryDefs returns the registered policy factories.
func GetDefaultPolicyFactoryDefs() map[string]PolicyFactory {
	return map[string]PolicyFactory{

		"random": func(m *ScenarioMetadata) engine.Policy {
			return policy.Random{}
		},

		"memory": func(m *ScenarioMetadata) engine.Policy {
			return policy.Memory{}
		},

		"model": func(m *ScenarioMetadata) engine.Policy {
			return policy.ModelBased{
				OnlineSteps:    m.OnlineSteps,
				LearnRate:      m.LearnRate,
				Regularization: m.Regularization,
			}
		},
	}
}

// BuildPolicies resolves the metadata's policy selection, in PolicyOrder.
func (m *ScenarioMetadata) BuildPolicies() []engine.Policy {
	selected := m.Policies
	if len(selected) == 0 {
		selected = PolicyOrder
	}
	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}

	defs := GetDefaultPolicyFactoryDefs()
	out := make([]engine.Policy, 0, len(selected))
	for _, name := range PolicyOrder {
		if wanted[name] {
			out = append(out, defs[name](m))
		}
	}
	return out
}
