package valuation

import (
	_ "embed"
	"fmt"

	"github.com/valora-ai/valora/internal/models"
	"gopkg.in/yaml.v3"
)

// growthHorizonYears is the explicit projection window before the
// perpetuity stage.
const growthHorizonYears = 5

// growthDecayStep is how much the projected growth rate drops each year
// after the first. The schedule is allowed to go negative.
const growthDecayStep = 0.01

//go:embed assumptions.yaml
var assumptionsYAML []byte

// Constants are the market-level figures shared by every persona.
type Constants struct {
	RiskFreeRate      float64 `yaml:"risk_free_rate"`
	MarketRiskPremium float64 `yaml:"market_risk_premium"`
	PerpetuityGrowth  float64 `yaml:"perpetuity_growth"`
	TaxRate           float64 `yaml:"tax_rate"`
	DefaultBeta       float64 `yaml:"default_beta"`
}

// Assumptions are the persona-specific rates fed into the analysis.
type Assumptions struct {
	DiscountRate   float64 `yaml:"discount_rate"`
	FCFGrowth      float64 `yaml:"fcf_growth"`
	DividendGrowth float64 `yaml:"dividend_growth"`
}

type assumptionsFile struct {
	Constants Constants                      `yaml:"constants"`
	Personas  map[models.Persona]Assumptions `yaml:"personas"`
}

var table assumptionsFile

func init() {
	if err := yaml.Unmarshal(assumptionsYAML, &table); err != nil {
		panic(fmt.Sprintf("valuation: bad embedded assumptions table: %v", err))
	}
	for _, persona := range []models.Persona{
		models.PersonaConservative,
		models.PersonaRealistic,
		models.PersonaOptimistic,
	} {
		if _, ok := table.Personas[persona]; !ok {
			panic(fmt.Sprintf("valuation: assumptions table missing persona %q", persona))
		}
	}
}

// MarketConstants returns the shared market-level assumptions.
func MarketConstants() Constants {
	return table.Constants
}

// ForPersona returns the assumption set for an investor persona.
func ForPersona(persona models.Persona) (Assumptions, error) {
	a, ok := table.Personas[persona]
	if !ok {
		return Assumptions{}, fmt.Errorf("unknown persona %q", persona)
	}
	return a, nil
}

// GrowthSchedule projects the five-year cash flow growth path for a
// persona. Year one uses the persona's growth rate and each following
// year decays by one percentage point, with no lower bound.
func (a Assumptions) GrowthSchedule() []float64 {
	schedule := make([]float64, growthHorizonYears)
	for i := range schedule {
		schedule[i] = a.FCFGrowth - float64(i)*growthDecayStep
	}
	return schedule
}
