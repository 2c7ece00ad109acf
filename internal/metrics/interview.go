package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interviewsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interviews_started_total",
		Help:      "Interviews successfully started",
	})

	answersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_submitted_total",
		Help:      "Answers accepted across all interviews",
	})

	interviewsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interviews_completed_total",
		Help:      "Interviews that reached their final answer",
	})

	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Interview scores persisted, by evaluator",
	}, []string{"evaluator"})

	evaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent scoring an interview",
		Buckets:   prometheus.DefBuckets,
	}, []string{"evaluator"})
)

func InterviewStarted()   { interviewsStarted.Inc() }
func AnswerSubmitted()    { answersSubmitted.Inc() }
func InterviewCompleted() { interviewsCompleted.Inc() }

func EvaluationRecorded(evaluator string, elapsed time.Duration) {
	evaluations.WithLabelValues(evaluator).Inc()
	evaluationDuration.WithLabelValues(evaluator).Observe(elapsed.Seconds())
}
