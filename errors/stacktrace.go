package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the innermost recorded stack trace of err, or nil.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	visit(err, func(cur error) bool {
		if t, ok := cur.(stackTracer); ok {
			st = t.StackTrace()
		}
		return len(st) > 0
	})
	return st
}

// Frames of these functions only tell where the error was wrapped, not
// where it happened.
var wrapperFuncs = []string{
	"github.com/nftrade/weave/errors.callers",
	"github.com/nftrade/weave/errors.Wrap",
	"github.com/nftrade/weave/errors.Field",
	"github.com/nftrade/weave/errors.Recover",
	"github.com/nftrade/weave/errors.(*Error).New",
	"runtime.call",
	"runtime.gopanic",
}

// Format prints the message with %s. With %v it adds the file and line the
// error originates from, with %+v the whole stack trace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	st := origin(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", st, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(st) > 0 {
		file, line := frameLine(st[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// origin drops the wrapper frames from the top of st and the runtime and
// testing frames from its bottom.
func origin(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && hasPrefix(frameFunc(st[0]), wrapperFuncs) {
		st = st[1:]
	}
	for len(st) > 1 && hasPrefix(frameFunc(st[len(st)-1]), []string{"runtime.", "testing."}) {
		st = st[:len(st)-1]
	}
	return st
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func frameFunc(f errors.Frame) string {
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

func frameLine(f errors.Frame) (string, int) {
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		return fn.FileLine(uintptr(f) - 1)
	}
	return "unknown", 0
}
