package stats

import "math"

// Bounds for the automatic Box-Cox lambda search. The log-likelihood of
// real-world positive skewed data always peaks well inside this range.
const (
	lambdaMin  = -2.0
	lambdaMax  = 2.0
	lambdaStep = 0.01
)

// BoxCox applies the Box-Cox power transform with the given lambda.
// Values must be strictly positive; non-positive values map to NaN.
func BoxCox(values []float64, lambda float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			out[i] = math.NaN()
			continue
		}
		if lambda == 0 {
			out[i] = math.Log(v)
		} else {
			out[i] = (math.Pow(v, lambda) - 1) / lambda
		}
	}
	return out
}

// BoxCoxLambda selects the lambda maximizing the Box-Cox profile
// log-likelihood over a fixed grid. This mirrors the usual "auto" lambda
// behaviour of statistics packages without needing an optimizer.
func BoxCoxLambda(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	var sumLog float64
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
			sumLog += math.Log(v)
		}
	}
	if len(positive) < 2 {
		return 1 // identity transform when there is nothing to fit
	}

	bestLambda := 1.0
	bestLL := math.Inf(-1)

	steps := int(math.Round((lambdaMax - lambdaMin) / lambdaStep))
	for i := 0; i <= steps; i++ {
		lambda := lambdaMin + float64(i)*lambdaStep
		ll := boxCoxLogLikelihood(positive, sumLog, lambda)
		if ll > bestLL {
			bestLL = ll
			bestLambda = lambda
		}
	}
	return bestLambda
}

// boxCoxLogLikelihood evaluates the profile log-likelihood
// -n/2 * ln(var(y)) + (lambda-1) * sum(ln x) for transformed y.
func boxCoxLogLikelihood(positive []float64, sumLog, lambda float64) float64 {
	transformed := BoxCox(positive, lambda)

	n := float64(len(transformed))
	mean := Mean(transformed)
	var ss float64
	for _, y := range transformed {
		d := y - mean
		ss += d * d
	}
	variance := ss / n
	if variance <= 0 {
		return math.Inf(-1)
	}
	return -n/2*math.Log(variance) + (lambda-1)*sumLog
}
