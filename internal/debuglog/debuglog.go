// Package debuglog provides structured JSONL logging for gptcli.
// Writes to {stateDir}/gptcli.log at configurable debug levels.
package debuglog

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pbrown/gptcli/internal/models"
)

// FileName is the log file inside the state directory.
const FileName = "gptcli.log"

// Logger writes structured log entries to the debug log file. Every entry
// carries the run_id of the invocation that wrote it.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
	runID string
}

// New creates a Logger. Level 0 disables logging entirely and no file is
// created; 1 logs info, 2 debug, 3 trace.
func New(stateDir string, debugLevel int) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "event",
		},
	})
	log.SetOutput(io.Discard)
	log.SetLevel(levelFor(debugLevel))

	l := &Logger{runID: uuid.NewString()}

	if debugLevel >= 1 {
		if err := os.MkdirAll(stateDir, 0755); err == nil {
			f, err := os.OpenFile(filepath.Join(stateDir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err == nil {
				l.file = f
				log.SetOutput(f)
			}
		}
	}

	l.entry = log.WithField("run_id", l.runID)
	return l
}

// Discard returns a Logger that writes nothing.
func Discard() *Logger {
	return New("", 0)
}

func levelFor(debugLevel int) logrus.Level {
	switch {
	case debugLevel >= 3:
		return logrus.TraceLevel
	case debugLevel == 2:
		return logrus.DebugLevel
	case debugLevel == 1:
		return logrus.InfoLevel
	default:
		return logrus.PanicLevel
	}
}

// RunID identifies this invocation in the log
func (l *Logger) RunID() string {
	return l.runID
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// LogCommandStarted logs which command runs against which settings.
// The credential itself is never logged.
func (l *Logger) LogCommandStarted(command string, settings *models.Settings) {
	fields := logrus.Fields{"command": command}
	if settings != nil {
		fields["model"] = settings.ModelID
		fields["has_credential"] = settings.HasCredential()
		fields["transcript_len"] = len(settings.Transcript)
	}
	l.entry.WithFields(fields).Info("command_started")
}

// LogQuestionSent logs an outgoing request. The question text is only
// written at trace level.
func (l *Logger) LogQuestionSent(model string, transcriptLen int, question string) {
	e := l.entry.WithFields(logrus.Fields{
		"model":          model,
		"transcript_len": transcriptLen,
	})
	if l.entry.Logger.IsLevelEnabled(logrus.TraceLevel) {
		e = e.WithField("question", question)
	}
	e.Debug("question_sent")
}

// LogCompletion logs a successful response.
func (l *Logger) LogCompletion(record *models.CompletionRecord, requestMs int64) {
	fields := logrus.Fields{
		"id":                record.ID,
		"model":             record.Model,
		"choices":           len(record.Choices),
		"prompt_tokens":     record.Usage.PromptTokens,
		"completion_tokens": record.Usage.CompletionTokens,
		"total_tokens":      record.Usage.TotalTokens,
		"request_ms":        requestMs,
	}
	if len(record.Choices) > 0 {
		fields["finish_reason"] = record.Choices[0].FinishReason
	}
	l.entry.WithFields(fields).Info("completion_received")
}

// LogCompletionFailed logs a failed request with its error kind.
func (l *Logger) LogCompletionFailed(kind string, err error, requestMs int64) {
	l.entry.WithFields(logrus.Fields{
		"kind":       kind,
		"request_ms": requestMs,
	}).WithError(err).Warn("completion_failed")
}

// LogSettingsSaved logs the size of the record that was written.
func (l *Logger) LogSettingsSaved(path string, settings *models.Settings) {
	l.entry.WithFields(logrus.Fields{
		"path":           path,
		"transcript_len": len(settings.Transcript),
		"history_len":    len(settings.CompletionHistory),
	}).Debug("settings_saved")
}

// LogRunFinished logs the outcome and phase timings of the invocation.
func (l *Logger) LogRunFinished(command string, exitCode int, phases map[string]int64, err error) {
	fields := logrus.Fields{
		"command":   command,
		"exit_code": exitCode,
	}
	for k, v := range phases {
		fields[k] = v
	}
	e := l.entry.WithFields(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Info("run_finished")
}
