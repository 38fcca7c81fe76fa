package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// importMetrics times the stages of the destructive import route, the one
// request whose cost scales with document size.
type importMetrics struct {
	logger         *log.Logger
	start          time.Time
	readDuration   time.Duration
	backupDuration time.Duration
	applyDuration  time.Duration
	boards         int
	tasks          int
	notes          int
	errorStage     string
}

func newImportMetrics(logger *log.Logger) *importMetrics {
	return &importMetrics{logger: logger, start: time.Now()}
}

func (m *importMetrics) ObserveRead(d time.Duration) {
	if d > 0 {
		m.readDuration = d
	}
}

func (m *importMetrics) ObserveBackup(d time.Duration) {
	if d > 0 {
		m.backupDuration = d
	}
}

func (m *importMetrics) ObserveApply(d time.Duration) {
	if d > 0 {
		m.applyDuration = d
	}
}

func (m *importMetrics) SetRestored(boards, tasks, notes int) {
	m.boards = boards
	m.tasks = tasks
	m.notes = notes
}

func (m *importMetrics) SetErrorStage(stage string) {
	if stage != "" {
		m.errorStage = stage
	}
}

func (m *importMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"route":    "/api/import",
		"status":   status,
		"total_ms": durationToMillis(time.Since(m.start)),
		"boards":   m.boards,
		"tasks":    m.tasks,
		"notes":    m.notes,
	}
	if m.readDuration > 0 {
		fields["read_ms"] = durationToMillis(m.readDuration)
	}
	if m.backupDuration > 0 {
		fields["backup_ms"] = durationToMillis(m.backupDuration)
	}
	if m.applyDuration > 0 {
		fields["apply_ms"] = durationToMillis(m.applyDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	m.logger.WithFields(fields).Info("import.request.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
