package common

// Observer receives the outcome of every evaluation and analysis run.
// Status is "ok" or an error kind for evaluations and "converged",
// "failed" or an error kind for analyses.
type Observer interface {
	ObserveEvaluation(mode, status string, points int)
	ObserveAnalysis(kind, status string, iterations int)
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(string, string, int) {}
func (nopObserver) ObserveAnalysis(string, string, int)   {}

// Observe returns the configured observer or a no-op one
func (m *MathOps) Observe() Observer {
	if m.Observer == nil {
		return nopObserver{}
	}
	return m.Observer
}
