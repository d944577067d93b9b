package gosmt

import (
	"testing"
)

func TestConstructErrorMessage(t *testing.T) {
	err := newConstructError("width mismatch: %d != %d", 32, 64)
	if err.Error() != "width mismatch: 32 != 64" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestConstructErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = newConstructError("boom")
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
}

// installErrorHandler's "canceled" swallow path and its log.Fatalf
// abort path both run inside the z3 callback and aren't reachable
// without triggering an actual solver error or a process exit, so
// they're exercised by the solver's own error-handling tests rather
// than here.
func TestInstallErrorHandlerDoesNotPanic(t *testing.T) {
	tr := NewTranslator()
	installErrorHandler(tr.Context())
}
