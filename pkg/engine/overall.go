package engine

// ScoreBundle is the per-employee result handed to the presentation layer.
type ScoreBundle struct {
	Sales                float64 `json:"sales"`
	Mail                 float64 `json:"mail"`
	ChatRisk             float64 `json:"chatRisk"`
	InternetProductivity float64 `json:"internetProductivity"`
	RelativeInternet     float64 `json:"relativeInternet"`
	RelativeApp          float64 `json:"relativeApp"`
	Overall              float64 `json:"overall"`
}

// Weights of the overall score. They need not sum to 1; Combine normalizes.
type Weights struct {
	Sales                float64 `json:"sales" mapstructure:"sales"`
	Mail                 float64 `json:"mail" mapstructure:"mail"`
	ChatRisk             float64 `json:"chatRisk" mapstructure:"chat_risk"`
	InternetProductivity float64 `json:"internetProductivity" mapstructure:"internet_productivity"`
	RelativeInternet     float64 `json:"relativeInternet" mapstructure:"relative_internet"`
	RelativeApp          float64 `json:"relativeApp" mapstructure:"relative_app"`
}

// DefaultWeights favour sales, the one metric every employee has.
func DefaultWeights() Weights {
	return Weights{
		Sales:                0.40,
		Mail:                 0.15,
		ChatRisk:             0.10,
		InternetProductivity: 0.15,
		RelativeInternet:     0.10,
		RelativeApp:          0.10,
	}
}

// Combine returns the weighted mean of the bundle's sub-scores, rounded to
// 2 decimals. Negative weights count as 0; all-zero weights fall back to
// DefaultWeights.
func (w Weights) Combine(b ScoreBundle) float64 {
	pairs := [][2]float64{
		{w.Sales, b.Sales},
		{w.Mail, b.Mail},
		{w.ChatRisk, b.ChatRisk},
		{w.InternetProductivity, b.InternetProductivity},
		{w.RelativeInternet, b.RelativeInternet},
		{w.RelativeApp, b.RelativeApp},
	}

	var sum, total float64
	for _, p := range pairs {
		if p[0] <= 0 {
			continue
		}
		sum += p[0]
		total += p[0] * p[1]
	}
	if sum == 0 {
		return DefaultWeights().Combine(b)
	}
	return round2(total / sum)
}
