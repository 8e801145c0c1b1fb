package knitvis

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ProgressTimeFormat is the ISO 8601 layout of progress log timestamps.
const ProgressTimeFormat = "2006-01-02T15:04:05"

// ProgressLog appends knitting progress entries to a text sink, one line per entry:
//
//	2024-03-01T20:15:04 - Rows 12 and 13, sleeve part left
//
// Rows are knitted in pairs so an entry always names row n and n+1.
type ProgressLog struct {
	w      io.Writer
	closer io.Closer

	// Now returns the entry timestamp, time.Now by default.
	Now func() time.Time
}

// NewProgressLog returns a log writing to w.
func NewProgressLog(w io.Writer) *ProgressLog {
	return &ProgressLog{w: w, Now: time.Now}
}

// OpenProgressLog opens a log file for appending, creating it if needed.
func OpenProgressLog(filename string) (*ProgressLog, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := NewProgressLog(f)
	l.closer = f
	return l, nil
}

// Log appends an entry for rows row and row+1 of a section, worked in a direction.
func (l *ProgressLog) Log(row int, section, direction string) error {
	line := FormatProgress(l.Now(), row, section, direction)
	if _, err := io.WriteString(l.w, line+"\n"); err != nil {
		return err
	}
	Logger().Debug("progress logged", "row", row, "section", section, "direction", direction)
	return nil
}

// Close closes the underlying file if the log was opened with OpenProgressLog.
func (l *ProgressLog) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// FormatProgress returns a progress line without trailing newline.
func FormatProgress(t time.Time, row int, section, direction string) string {
	return fmt.Sprintf("%s - Rows %d and %d, %s part %s", t.Format(ProgressTimeFormat), row, row+1, section, direction)
}

// AppendProgress opens a log file, appends one entry, and closes it again.
func AppendProgress(filename string, row int, section, direction string) (err error) {
	l, err := OpenProgressLog(filename)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := l.Close(); err == nil {
			err = errClose
		}
	}()
	return l.Log(row, section, direction)
}
