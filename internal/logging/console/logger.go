package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Level grades console output severity. Values are spaced so the zero value
// means Info and custom levels can slot between the named ones.
type Level int8

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
)

func (l Level) String() string {
	switch {
	case l <= LevelTrace:
		return "TRACE"
	case l <= LevelDebug:
		return "DEBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	case l <= LevelError:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// ParseLevel maps a configuration string to a Level. Unknown values fall
// back to Info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Options configures a console provider. The zero value writes Info and
// above to stdout with wall-clock timestamps.
type Options struct {
	Writer io.Writer
	Now    func() time.Time
	Level  Level
}

// Provider writes line-oriented key=value entries to a single writer. It is
// the fallback when no go-logger provider is configured.
type Provider struct {
	mu    sync.Mutex
	out   io.Writer
	now   func() time.Time
	level Level
}

// NewProvider builds a console provider from the supplied options.
func NewProvider(opts Options) *Provider {
	p := &Provider{
		out:   opts.Writer,
		now:   opts.Now,
		level: opts.Level,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// GetLogger returns a named logger writing through this provider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{provider: p, fields: map[string]any{"logger": name}}
}

type logger struct {
	provider *Provider
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }
func (l *logger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args...) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &logger{provider: l.provider, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{provider: l.provider, fields: l.fields, ctx: ctx}
}

func (l *logger) log(level Level, msg string, args ...any) {
	if l.provider == nil || level < l.provider.level {
		return
	}

	fields := make(map[string]any, len(l.fields)+len(args)/2+2)
	for key, value := range l.fields {
		fields[key] = value
	}
	for key, value := range logging.ContextFields(l.ctx) {
		fields[key] = value
	}
	collectArgs(fields, args)

	var buf bytes.Buffer
	buf.WriteString(l.provider.now().UTC().Format(time.RFC3339Nano))
	buf.WriteByte(' ')
	buf.WriteString(level.String())
	buf.WriteByte(' ')
	buf.WriteString(msg)
	for _, key := range sortedKeys(fields) {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(renderValue(fields[key]))
	}
	buf.WriteByte('\n')

	l.provider.mu.Lock()
	defer l.provider.mu.Unlock()
	// Diagnostics output is best effort; a failed write must not take the
	// caller down with it.
	_, _ = l.provider.out.Write(buf.Bytes())
}

// collectArgs pairs variadic key/value arguments into the field map. Non
// string or missing keys get positional names so no data is dropped.
func collectArgs(fields map[string]any, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg_" + strconv.Itoa(i/2)
		}
		fields[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		fields["arg_"+strconv.Itoa(len(args)/2)] = args[len(args)-1]
	}
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func renderValue(value any) string {
	var text string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		text = v
	case time.Time:
		text = v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return "null"
		}
		text = v.UTC().Format(time.RFC3339Nano)
	case error:
		text = v.Error()
	case fmt.Stringer:
		text = v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
	if text == "" || strings.ContainsAny(text, " =\t\n\"") {
		return strconv.Quote(text)
	}
	return text
}
