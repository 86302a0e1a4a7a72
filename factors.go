package factorlab

// Names of the columns of the Fama-French five factor table.
const (
	MktRF = "Mkt-RF" // market excess return
	SMB   = "SMB"    // size: small minus big
	HML   = "HML"    // value: high minus low book-to-market
	RMW   = "RMW"    // profitability: robust minus weak
	CMA   = "CMA"    // investment: conservative minus aggressive
	RF    = "RF"     // risk-free rate
)

// Alpha is the name of the intercept parameter of a Model.
const Alpha = "Alpha"

// Factors is the list of explanatory variables of the five factor model, in display order.
var Factors = []string{MktRF, SMB, HML, RMW, CMA}

var factorLabels = map[string]string{
	MktRF: "Mkt-RF (Market)",
	SMB:   "SMB (Size)",
	HML:   "HML (Value)",
	RMW:   "RMW (Profitability)",
	CMA:   "CMA (Investment)",
}

// FactorLabel returns the display label of a factor, or the name itself for unknown factors.
func FactorLabel(name string) string {
	if l, ok := factorLabels[name]; ok {
		return l
	}
	return name
}
