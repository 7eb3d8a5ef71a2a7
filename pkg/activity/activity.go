package activity

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Structured data IDs. 32473 is the enterprise number reserved for
// documentation use, which is what an unregistered internal tool gets.
const (
	PaperbotPEN = 32473
	SDIDFetch   = "fetch@32473"
	SDIDPaper   = "paper@32473"
	SDIDAction  = "action@32473"
	SDIDConfig  = "config@32473"
	SDIDClient  = "client@32473"
)

// Syslog facilities the bot logs under.
const (
	FacilityUser   = 1 // LOG_USER - operator-initiated actions
	FacilityDaemon = 3 // LOG_DAEMON - background fetcher activity
)

// Severity is the syslog severity of an event (RFC5424 section 6.2.1).
// The panic end of the scale is omitted, nothing the bot does is an
// emergency.
type Severity int

const (
	SeverityError   Severity = 3
	SeverityWarning Severity = 4
	SeverityNotice  Severity = 5
	SeverityInfo    Severity = 6
	SeverityDebug   Severity = 7
)

// Event is anything the bot wants on the activity record.
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger renders events as RFC5424 syslog lines:
//
//	<PRI>1 TIMESTAMP HOSTNAME paperbot PID MSGID SD MSG
type Logger struct {
	out      io.Writer
	hostname string
	pid      int
}

// NewLogger returns a logger writing to stdout.
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "-"
	}
	return &Logger{out: os.Stdout, hostname: hostname, pid: os.Getpid()}
}

// SetWriter redirects output. Tests use this.
func (l *Logger) SetWriter(w io.Writer) {
	l.out = w
}

// Log writes one line for the event.
func (l *Logger) Log(event Event) {
	pri := event.Facility()*8 + int(event.Severity())
	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var b strings.Builder
	fmt.Fprintf(&b, "<%d>1 %s %s paperbot %d %s ",
		pri, timestamp, l.hostname, l.pid, event.MessageID())
	writeStructuredData(&b, event.StructuredData())
	b.WriteByte(' ')
	b.WriteString(event.Message())
	b.WriteByte('\n')

	_, _ = io.WriteString(l.out, b.String())
}

// writeStructuredData renders the SD elements with SDIDs and param names
// sorted, so two identical events always produce the same line.
func writeStructuredData(b *strings.Builder, sd map[string]map[string]string) {
	if len(sd) == 0 {
		b.WriteByte('-')
		return
	}

	sdids := make([]string, 0, len(sd))
	for sdid := range sd {
		sdids = append(sdids, sdid)
	}
	sort.Strings(sdids)

	for _, sdid := range sdids {
		params := sd[sdid]
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteByte('[')
		b.WriteString(sdid)
		for _, name := range names {
			fmt.Fprintf(b, " %s=%s", name, quoteSDValue(params[name]))
		}
		b.WriteByte(']')
	}
}

// quoteSDValue escapes backslash, double quote and closing bracket per
// RFC5424 section 6.3.3.
func quoteSDValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	value = strings.ReplaceAll(value, "]", `\]`)
	return `"` + value + `"`
}

// DefaultLogger writes to stdout.
var DefaultLogger = NewLogger()

// DefaultStore persists events when ACTIVITY_DATABASE_URL is set, and is
// nil otherwise. Save on a nil store is a no-op.
var DefaultStore *Store

var (
	enabled     = true
	enabledOnce sync.Once
	storeOnce   sync.Once
)

// IsEnabled reports whether activity logging is on. Setting
// PAPERBOT_ACTIVITY_ENABLED to false, 0 or no turns it off.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		if env := os.Getenv("PAPERBOT_ACTIVITY_ENABLED"); env != "" {
			enabled = env != "false" && env != "0" && env != "no"
		}
	})
	return enabled
}

// SetEnabled overrides the environment toggle. Call it before the first
// Log for a consistent record.
func SetEnabled(on bool) {
	enabled = on
}

// Log emits the event on DefaultLogger and persists it through
// DefaultStore. Database trouble goes to stderr and is otherwise ignored.
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeOnce.Do(func() {
		var err error
		DefaultStore, err = NewStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "activity: cannot open activity database: %v\n", err)
		}
	})

	if err := DefaultStore.Save(event); err != nil {
		fmt.Fprintf(os.Stderr, "activity: save failed: %v\n", err)
	}
}
