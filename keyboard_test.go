package tsm

import "testing"

func TestKeyboardArrowKeysDefault(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyUp, 0, 0)
	if string(*replies) != "\x1b[A" {
		t.Errorf("KeyUp = %q, want \"\\x1b[A\"", string(*replies))
	}
}

func TestKeyboardArrowKeysApplicationMode(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.Input([]byte("\x1b[?1h")) // DECCKM on
	v.HandleKeyboard(KeyUp, 0, 0)
	if string(*replies) != "\x1bOA" {
		t.Errorf("KeyUp in application mode = %q, want \"\\x1bOA\"", string(*replies))
	}
}

func TestKeyboardArrowKeyWithShiftModifier(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyRight, ModShift, 0)
	if string(*replies) != "\x1b[1;2C" {
		t.Errorf("Shift+Right = %q, want \"\\x1b[1;2C\"", string(*replies))
	}
}

func TestKeyboardPageUpAndDeleteTildeKeys(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyPageUp, 0, 0)
	if string(*replies) != "\x1b[5~" {
		t.Errorf("KeyPageUp = %q, want \"\\x1b[5~\"", string(*replies))
	}
	*replies = nil
	v.HandleKeyboard(KeyDelete, ModControl, 0)
	if string(*replies) != "\x1b[3;5~" {
		t.Errorf("Ctrl+Delete = %q, want \"\\x1b[3;5~\"", string(*replies))
	}
}

func TestKeyboardFunctionKeysF1ToF4(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyF1, 0, 0)
	if string(*replies) != "\x1bOP" {
		t.Errorf("KeyF1 = %q, want \"\\x1bOP\"", string(*replies))
	}
}

func TestKeyboardFunctionKeysF5Upward(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyF5, 0, 0)
	if string(*replies) != "\x1b[15~" {
		t.Errorf("KeyF5 = %q, want \"\\x1b[15~\"", string(*replies))
	}
	*replies = nil
	v.HandleKeyboard(KeyF12, 0, 0)
	if string(*replies) != "\x1b[24~" {
		t.Errorf("KeyF12 = %q, want \"\\x1b[24~\"", string(*replies))
	}
}

func TestKeyboardBackspaceDefaultAndDelete(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyBackspace, 0, 0)
	if string(*replies) != "\x08" {
		t.Errorf("Backspace default = %q, want 0x08", string(*replies))
	}
	*replies = nil
	v.BackspaceSendsDelete(true)
	v.HandleKeyboard(KeyBackspace, 0, 0)
	if string(*replies) != "\x7f" {
		t.Errorf("Backspace after BackspaceSendsDelete(true) = %q, want 0x7f", string(*replies))
	}
}

func TestKeyboardShiftTabSendsCBT(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyTab, ModShift, 0)
	if string(*replies) != "\x1b[Z" {
		t.Errorf("Shift+Tab = %q, want \"\\x1b[Z\"", string(*replies))
	}
}

func TestKeyboardCtrlLetterProducesControlCode(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyNone, ModControl, 'a')
	if len(*replies) != 1 || (*replies)[0] != 0x01 {
		t.Errorf("Ctrl+a = %v, want [0x01]", *replies)
	}
}

func TestKeyboardAltPrefixesEscape(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyNone, ModAlt, 'x')
	if string(*replies) != "\x1bx" {
		t.Errorf("Alt+x = %q, want \"\\x1bx\"", string(*replies))
	}
}

func TestKeyboardPlainPrintableCharacter(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyNone, 0, 'z')
	if string(*replies) != "z" {
		t.Errorf("plain 'z' = %q, want \"z\"", string(*replies))
	}
}

func TestKeyboardShiftInsertIgnored(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyInsert, ModShift, 0)
	if len(*replies) != 0 {
		t.Errorf("Shift+Insert should be ignored (left to the widget layer), got %q", string(*replies))
	}
}

func TestKeyboardCtrlShiftCAndVIgnored(t *testing.T) {
	_, v, replies := newTestVTE(10, 3)
	v.HandleKeyboard(KeyNone, ModControl|ModShift, 'c')
	if len(*replies) != 0 {
		t.Errorf("Ctrl+Shift+C should be ignored (left to the widget layer), got %q", string(*replies))
	}
	v.HandleKeyboard(KeyNone, ModControl|ModShift, 'V')
	if len(*replies) != 0 {
		t.Errorf("Ctrl+Shift+V should be ignored (left to the widget layer), got %q", string(*replies))
	}
}
