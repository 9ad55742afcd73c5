package tsm

import "testing"

func TestLogFuncNilIsNoop(t *testing.T) {
	var f LogFunc
	f.log(SeverityError, "vte", "unreachable %d", 1) // must not panic
}

func TestVTELogCallbackReceivesSubsystemAndArgs(t *testing.T) {
	var gotSev Severity
	var gotSubsys, gotMsg string
	s := NewScreen(WithSize(10, 3))
	v := NewVTE(s, func(p []byte) {}, WithVTELog(func(sev Severity, subsys, format string, args ...any) {
		gotSev = sev
		gotSubsys = subsys
		gotMsg = format
		_ = args
	}))
	v.Input([]byte("\x1b(9X")) // unknown SCS final byte logs at DEBUG
	if gotSubsys != "vte" {
		t.Errorf("subsys = %q, want \"vte\"", gotSubsys)
	}
	if gotSev != SeverityDebug {
		t.Errorf("severity = %v, want SeverityDebug", gotSev)
	}
	if gotMsg == "" {
		t.Error("expected a non-empty log format string")
	}
}

func TestScreenLogCallbackFires(t *testing.T) {
	var called bool
	s := NewScreen(WithSize(10, 3), WithLog(func(sev Severity, subsys, format string, args ...any) {
		called = true
	}))
	s.logf(SeverityWarning, "test message")
	if !called {
		t.Error("Screen's log callback should have fired")
	}
}
