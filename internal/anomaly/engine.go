package anomaly

import (
	"github.com/sirupsen/logrus"

	"github.com/ciflikli/igc-spending-insights/internal/models"
	"github.com/ciflikli/igc-spending-insights/internal/rules"
)

// Engine runs every detector over the same classified batch and unions their
// findings.
type Engine struct {
	detectors []Detector
	logger    *logrus.Logger
}

// NewEngine builds the standard detector set from a validated rule set.
func NewEngine(ruleset *rules.Ruleset, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		detectors: []Detector{
			NewHighPaymentDetector(ruleset.Thresholds.HighPayment),
			NewDuplicatePatternDetector(ruleset.Thresholds.DuplicateWindowDays),
			NewConcentrationDetector(ruleset.Thresholds.ConcentrationSpend, ruleset.Thresholds.ConcentrationTxn),
		},
		logger: logger,
	}
}

// NewEngineWithDetectors builds an engine over an explicit detector list.
func NewEngineWithDetectors(logger *logrus.Logger, detectors ...Detector) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{detectors: detectors, logger: logger}
}

// Detect runs all detectors and returns the combined findings. The result is
// always a non-nil slice: zero findings is the empty report, not an absent
// one, so consumers handle "no anomalies" the same way as any other run.
func (e *Engine) Detect(records []models.Transaction) []models.Anomaly {
	e.logger.WithField("records", len(records)).Info("Detecting anomalies")

	combined := make([]models.Anomaly, 0)
	for _, detector := range e.detectors {
		found := detector.Detect(records)
		e.logger.WithFields(logrus.Fields{
			"detector": detector.Name(),
			"found":    len(found),
		}).Info("Detector finished")
		combined = append(combined, found...)
	}

	e.logger.WithField("total", len(combined)).Info("Anomaly detection complete")
	return combined
}
