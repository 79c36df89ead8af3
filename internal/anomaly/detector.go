// Package anomaly flags spending records for human review. Four detectors
// run independently over the same classified batch (high payments, duplicate
// payment patterns, supplier concentration by spend and by transaction count)
// and their findings are unioned into one report with a fixed schema.
package anomaly

import (
	"github.com/ciflikli/igc-spending-insights/internal/models"
)

// Detector is one independent anomaly scan over a batch. Detectors are pure:
// they never mutate their input and their output does not depend on the order
// other detectors run in. Finding nothing is the normal outcome and yields an
// empty slice, never an error.
type Detector interface {
	Detect(records []models.Transaction) []models.Anomaly

	// Name identifies the detector in logs.
	Name() string
}
