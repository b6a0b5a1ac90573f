// Package model provides PositionPredictor and IntensityClassifier
// implementations.
//
// SteeringPredictor and WindThresholdClassifier are deterministic and need no
// training: the first advects the storm along its steering flow plus beta
// drift, the second reads the category off the sustained wind. They back the
// service by default and serve as test doubles.
//
// LinearPositionModel and SoftmaxClassifier adapt externally trained
// coefficients (standard-scaled linear regressors and a multinomial logistic
// classifier) to the same interfaces. SteeringLinearCoefficients and
// WindCentroidCoefficients build coefficient sets in code, and Build selects a
// pairing by name for the service and the CLI.
package model
