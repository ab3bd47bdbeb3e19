// Package scale provides invertible linear scaling of series values.
//
// Neural regressors train poorly on raw count data; scaling values into a
// bounded range keeps gradients stable. The MinMax scaler records bounds
// once with Fit and then applies the same transform everywhere:
//
//	scaler := scale.NewMinMax()
//	if err := scaler.Fit(train.Values); err != nil {
//	    log.Fatal(err)
//	}
//	scaled, _ := scaler.TransformAll(train.Values)
//	// ... train, forecast ...
//	forecasts, _ := scaler.InverseAll(scaledForecasts)
//
// Fit only on the training portion when a held-out test set exists, so no
// information from the test range leaks into the transform.
package scale
