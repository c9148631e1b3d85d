package middleware

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// RequestLogFile receives one line per inbound request.
	RequestLogFile = "req.log"
	// ErrorLogFile receives one line per error handled by ErrorResponder.
	ErrorLogFile = "errLog.log"

	eventTimeLayout = "20060102\t15:04:05"
	permission      = 0664
)

// EventLog appends tab separated event lines to files under a directory.
// Write failures are logged and otherwise ignored.
type EventLog struct {
	dir string
	log zerolog.Logger
	now func() time.Time

	mu sync.Mutex
}

// NewEventLog returns an EventLog rooted at dir. The directory is created on
// the first write.
func NewEventLog(dir string, log zerolog.Logger) *EventLog {
	return &EventLog{dir: dir, log: log, now: time.Now}
}

// LogEvents appends "<date>\t<time>\t<uuid>\t<message>" to fileName.
func (l *EventLog) LogEvents(message, fileName string) {
	line := fmt.Sprintf("%s\t%s\t%s\n", l.now().Format(eventTimeLayout), uuid.NewString(), message)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.appendLine(fileName, line); err != nil {
		l.log.Error().Err(err).Str("file", fileName).Msg("error while appending file")
	}
}

func (l *EventLog) appendLine(fileName, line string) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(l.dir, fileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RequestLogger records every request in RequestLogFile and on the console logger.
func RequestLogger(events *EventLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request
		events.LogEvents(fmt.Sprintf("%s\t%s\t%s", r.Method, r.URL.RequestURI(), originOf(c)), RequestLogFile)
		events.log.Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		c.Next()
	}
}

func originOf(c *gin.Context) string {
	if o := c.GetHeader("Origin"); o != "" {
		return o
	}
	return "-"
}
