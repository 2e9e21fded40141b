package assist

// Decoding strategy names. Matching is exact: "stochastic" or its short
// form selects nucleus sampling, any other value decodes greedily.
const (
	StrategyStochastic      = "stochastic"
	StrategyStochasticShort = "s"
	StrategyGreedy          = "greedy"
)

// nucleusTopP is the fixed sampling mass used in stochastic mode.
const nucleusTopP = 0.95

// Stochastic reports whether strategy selects sampled decoding.
func Stochastic(strategy string) bool {
	return strategy == StrategyStochastic || strategy == StrategyStochasticShort
}
