package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	SourceInfo(summary SourceSummary)
	EvaluationStarted(start EvaluationStart)
	SampleCompared(done, total int)
	EvaluationComplete(outcome EvaluationOutcome)
	BatchStarted(info BatchStartInfo)
	BatchComplete(summary BatchSummary)
	Warning(message string)
	Error(err ReporterError)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) SourceInfo(SourceSummary)           {}
func (NullReporter) EvaluationStarted(EvaluationStart)  {}
func (NullReporter) SampleCompared(int, int)            {}
func (NullReporter) EvaluationComplete(EvaluationOutcome) {}
func (NullReporter) BatchStarted(BatchStartInfo)        {}
func (NullReporter) BatchComplete(BatchSummary)         {}
func (NullReporter) Warning(string)                     {}
func (NullReporter) Error(ReporterError)                {}
func (NullReporter) Verbose(string)                     {}
