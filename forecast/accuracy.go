package forecast

import "math"

// Metrics holds forecast accuracy measures against a held-out range.
type Metrics struct {
	RMSE float64
	MAE  float64
	MAPE float64
}

// Accuracy calculates accuracy metrics over the overlap of actual and
// predicted values.
func Accuracy(actual, predicted []float64) Metrics {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return Metrics{}
	}

	var rmse, mae, mape float64
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		rmse += d * d
		mae += math.Abs(d)
		if actual[i] != 0 {
			mape += math.Abs(d) / math.Abs(actual[i]) * 100
		}
	}
	return Metrics{
		RMSE: math.Sqrt(rmse / float64(n)),
		MAE:  mae / float64(n),
		MAPE: mape / float64(n),
	}
}
