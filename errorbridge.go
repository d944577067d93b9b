package gosmt

import (
	"fmt"
	"log"

	"github.com/aclements/go-z3/z3"
)

// ConstructError marks an invariant violation during translation
// (width mismatch, an "uncanonicalized" operator at width 1, Boolean-
// sort mismatch in Iff, an unhandled expression kind, an array
// descriptor with no root): category 2 of §7, a caller bug that must
// never occur in a correct pipeline. construct() panics with one
// instead of returning it, mirroring the teacher's own panic-on-
// invariant convention in expr_builder.go's cache-eviction finalizers
// — this is a translation-time programmer error, not a recoverable
// data error the way the constant-arithmetic helpers' plain `error`
// returns are.
type ConstructError struct {
	msg string
}

func (e *ConstructError) Error() string { return e.msg }

func newConstructError(format string, args ...interface{}) *ConstructError {
	return &ConstructError{msg: fmt.Sprintf(format, args...)}
}

// installErrorHandler wires the process-wide handler §4.7 describes.
// A "canceled" message is cancellation (category 1): swallowed here,
// surfaced out-of-band by whatever drove the solver to time out. Any
// other message is solver misuse (category 3): print the code and
// message to stderr and abort the process, matching the original's
// fprintf(stderr, ...); abort() as closely as a hosted Go binary can
// without dropping a core file.
func installErrorHandler(ctx *z3.Context) {
	ctx.SetErrorHandler(func(code int, msg string) {
		if msg == "canceled" {
			return
		}
		log.Fatalf("gosmt: solver error %d: %s", code, msg)
	})
}
