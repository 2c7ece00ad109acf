package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mockly/interview/internal/models"
	"mockly/interview/internal/store"
)

// first run looks this far back
const initialLookback = 24 * time.Hour

// TranscriptExporterJob periodically writes scored interview transcripts to
// JSONL files.
type TranscriptExporterJob struct {
	store  store.SessionStore
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 3 * * *" for 3 AM daily)
	ExportDir     string
	ExportEnabled bool
}

func NewTranscriptExporterJob(s store.SessionStore, config *ExporterConfig, logger *zap.Logger) *TranscriptExporterJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptExporterJob{
		store:  s,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the scheduled export job
func (j *TranscriptExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("transcript export is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.RunExport(context.Background()); err != nil {
			j.logger.Error("transcript export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	j.cron.Start()
	j.logger.Info("transcript exporter started", zap.String("schedule", j.config.Schedule))
	return nil
}

// Stop waits for a running export to finish.
func (j *TranscriptExporterJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// RunExport performs a single export run and returns the written file path,
// or "" when no session was scored since the previous run.
func (j *TranscriptExporterJob) RunExport(ctx context.Context) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	started := j.now()
	since := j.lastRun
	if since.IsZero() {
		since = started.Add(-initialLookback)
	}

	sessions, err := j.store.Find(ctx, store.Filter{
		Status:       models.StatusCompleted,
		ScoredOnly:   true,
		UpdatedSince: since,
	}, store.FindOptions{SortBy: store.SortByUpdatedAt})
	if err != nil {
		return "", fmt.Errorf("failed to load scored sessions: %w", err)
	}

	if len(sessions) == 0 {
		j.logger.Info("no scored interviews to export", zap.Time("since", since))
		j.lastRun = started
		return "", nil
	}

	data, err := encodeTranscripts(sessions)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(j.config.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := fmt.Sprintf("interviews_export_%s.jsonl", started.Format("20060102_150405"))
	path := filepath.Join(j.config.ExportDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	j.lastRun = started
	j.logger.Info("exported interview transcripts",
		zap.Int("count", len(sessions)),
		zap.String("path", path))
	return path, nil
}

func encodeTranscripts(sessions []models.InterviewSession) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range sessions {
		s := &sessions[i]
		if !s.HasScore() {
			continue
		}
		record := models.TranscriptRecord{
			Technology: s.Technology,
			Difficulty: s.Difficulty,
			Transcript: s.Questions,
			Score:      *s.OverallScore,
			Feedback:   *s.Feedback,
			Evaluator:  s.Evaluator,
		}
		if err := enc.Encode(record); err != nil {
			return nil, fmt.Errorf("failed to encode transcript %s: %w", s.ID, err)
		}
	}
	return buf.Bytes(), nil
}
