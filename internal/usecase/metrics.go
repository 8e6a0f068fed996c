package usecase

// Metrics receives use case counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	ObserveOTPRequest(result string)
	ObserveAutoSave(outcome string)
}

const (
	OTPResultSent        = "sent"
	OTPResultInvalid     = "invalid"
	OTPResultRateLimited = "rate_limited"
	OTPResultFailed      = "failed"

	AutoSaveOutcomeSaved           = "saved"
	AutoSaveOutcomeSkipped         = "skipped"
	AutoSaveOutcomeSuperseded      = "superseded"
	AutoSaveOutcomeUnauthenticated = "unauthenticated"
	AutoSaveOutcomeFailed          = "failed"
)

type noopMetrics struct{}

func (noopMetrics) ObserveOTPRequest(string) {}
func (noopMetrics) ObserveAutoSave(string) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
