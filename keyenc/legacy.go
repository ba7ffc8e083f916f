package keyenc

import "strconv"

// legacyModCode computes the classic xterm modifier parameter: 1 plus
// shift(1) + alt(2) + ctrl(4) + meta-or-super(8). Grounded on the
// teacher's own `mod := 1; if hasShift { mod += 1 } ...` in
// gtk/widget.go's onKeyPress.
func legacyModCode(m Mods) int {
	mod := 1
	if m.has(ModShift) {
		mod += 1
	}
	if m.has(ModAlt) {
		mod += 2
	}
	if m.has(ModCtrl) {
		mod += 4
	}
	if m.has(ModSuper) || m.has(ModMeta) {
		mod += 8
	}
	return mod
}

// cursorKeySeq builds the arrow/home/end family: ESC [ <letter> unmodified
// (or ESC O <letter> in application-cursor-keys mode), ESC [ 1 ; mod
// <letter> modified. Grounded on a terminal library's cursorKey.
func cursorKeySeq(letter byte, applicationMode bool, mod int, modified bool) []byte {
	if modified {
		return append([]byte("\x1b[1;"+strconv.Itoa(mod)), letter)
	}
	if applicationMode {
		return []byte{0x1b, 'O', letter}
	}
	return []byte{0x1b, '[', letter}
}

// tildeKeySeq builds the PgUp/PgDn/Insert/Delete/F5-F12 family: ESC [ <num>
// ~ unmodified, ESC [ <num> ; mod ~ modified. Grounded on a terminal library's
// tildeKey.
func tildeKeySeq(num, mod int, modified bool) []byte {
	out := append([]byte("\x1b["), []byte(strconv.Itoa(num))...)
	if modified {
		out = append(out, ';')
		out = append(out, []byte(strconv.Itoa(mod))...)
	}
	return append(out, '~')
}

// ss3KeySeq builds the F1-F4 family: ESC O <letter> unmodified, ESC [ 1 ;
// mod <letter> modified. Grounded on a terminal library's functionKey.
func ss3KeySeq(letter byte, mod int, modified bool) []byte {
	if modified {
		return append([]byte("\x1b[1;"+strconv.Itoa(mod)), letter)
	}
	return []byte{0x1b, 'O', letter}
}

// lookupFunctionKey implements the PC-style
// function-key table: named keys whose encoding depends on cursor/keypad
// application mode and, for modified presses, a dynamically computed
// modifier parameter rather than one static entry per combination.
func lookupFunctionKey(ev KeyEvent, binding Mods, st EncoderState) ([]byte, bool) {
	mod := legacyModCode(binding)
	modified := binding != 0

	switch ev.Key {
	case KeyUp, KeyKPUp:
		return cursorKeySeq('A', st.CursorKeyApplication, mod, modified), true
	case KeyDown, KeyKPDown:
		return cursorKeySeq('B', st.CursorKeyApplication, mod, modified), true
	case KeyRight, KeyKPRight:
		return cursorKeySeq('C', st.CursorKeyApplication, mod, modified), true
	case KeyLeft, KeyKPLeft:
		return cursorKeySeq('D', st.CursorKeyApplication, mod, modified), true
	case KeyHome:
		return cursorKeySeq('H', st.CursorKeyApplication, mod, modified), true
	case KeyEnd:
		return cursorKeySeq('F', st.CursorKeyApplication, mod, modified), true

	// The numeric keypad's Home/End answer to DECKPAM (keypad application
	// mode), a distinct mode from DECCKM (cursor key application mode)
	// that governs the arrow keys above — a keypad in numeric mode can
	// coexist with cursor keys in application mode, and vice versa.
	case KeyKPHome:
		return cursorKeySeq('H', st.KeypadKeyApplication, mod, modified), true
	case KeyKPEnd:
		return cursorKeySeq('F', st.KeypadKeyApplication, mod, modified), true

	case KeyPageUp, KeyKPPageUp:
		return tildeKeySeq(5, mod, modified), true
	case KeyPageDown, KeyKPPageDown:
		return tildeKeySeq(6, mod, modified), true
	case KeyInsert, KeyKPInsert:
		return tildeKeySeq(2, mod, modified), true
	case KeyDelete, KeyKPDelete:
		return tildeKeySeq(3, mod, modified), true

	case KeyF1:
		return ss3KeySeq('P', mod, modified), true
	case KeyF2:
		return ss3KeySeq('Q', mod, modified), true
	case KeyF3:
		return ss3KeySeq('R', mod, modified), true
	case KeyF4:
		return ss3KeySeq('S', mod, modified), true
	case KeyF5:
		return tildeKeySeq(15, mod, modified), true
	case KeyF6:
		return tildeKeySeq(17, mod, modified), true
	case KeyF7:
		return tildeKeySeq(18, mod, modified), true
	case KeyF8:
		return tildeKeySeq(19, mod, modified), true
	case KeyF9:
		return tildeKeySeq(20, mod, modified), true
	case KeyF10:
		return tildeKeySeq(21, mod, modified), true
	case KeyF11:
		return tildeKeySeq(23, mod, modified), true
	case KeyF12:
		return tildeKeySeq(24, mod, modified), true

	case KeyEnter, KeyKPEnter:
		// KP_Enter carries no DECKPAM-dependent form of its own; it always
		// sends plain CR, same as the main Enter key.
		if modified {
			return modifiedSpecialKey(mod, 13), true
		}
		return []byte{'\r'}, true

	case KeyTab:
		if modified {
			return modifiedSpecialKey(mod, 9), true
		}
		return []byte{'\t'}, true

	case KeyBackspace:
		switch {
		case binding.has(ModCtrl):
			return []byte{0x08}, true
		case binding.has(ModAlt):
			return []byte{0x1b, 0x7f}, true
		default:
			return []byte{0x7f}, true
		}

	case KeyEscape:
		if modified {
			return modifiedSpecialKey(mod, 27), true
		}
		return []byte{0x1b}, true

	case KeySpace:
		switch {
		case binding == ModCtrl:
			return []byte{0x00}, true
		case modified:
			return modifiedSpecialKey(mod, 32), true
		default:
			return []byte{' '}, true
		}
	}

	return nil, false
}

// modifiedSpecialKey builds the fixterms/Kitty-style CSI u sequence used
// for special keys once a modifier is present: ESC [ keycode ; mod u.
// Grounded on a terminal library's modifiedSpecialKey.
func modifiedSpecialKey(mod, keycode int) []byte {
	out := append([]byte("\x1b["), []byte(strconv.Itoa(keycode))...)
	out = append(out, ';')
	out = append(out, []byte(strconv.Itoa(mod))...)
	return append(out, 'u')
}

// c0Table maps ctrl+<key> to its hardcoded control byte. Ctrl+[ is
// deliberately absent: it is deferred to fixterms. Ctrl+2's NUL entry
// matches xterm on US layouts and is not logically derivable.
var c0Table = map[Key]byte{
	KeySpace: 0x00,
	KeyA:     0x01,
	KeyB:     0x02,
	KeyC:     0x03,
	KeyD:     0x04,
	KeyE:     0x05,
	KeyF:     0x06,
	KeyG:     0x07,
	KeyH:     0x08,
	// KeyI is absent: ctrl+i is deferred to fixterms, even though
	// ctrl+h above is handled directly.
	KeyJ: 0x0a,
	KeyK:     0x0b,
	KeyL:     0x0c,
	KeyM:     0x0d,
	KeyN:     0x0e,
	KeyO:     0x0f,
	KeyP:     0x10,
	KeyQ:     0x11,
	KeyR:     0x12,
	KeyS:     0x13,
	KeyT:     0x14,
	KeyU:     0x15,
	KeyV:     0x16,
	KeyW:     0x17,
	KeyX:     0x18,
	KeyY:     0x19,
	KeyZ:     0x1a,
	Key2:     0x00,
	Key3:     0x1b,
	Key4:     0x1c,
	Key5:     0x1d,
	Key6:     0x1e,
	Key7:     0x1f,
	Key8:     0x7f,
	KeyRightBracket: 0x1d,
	KeyBackslash:    0x1c,
	KeySlash:        0x1f,
	KeyMinus:        0x1f,
}

// lookupC0 maps ctrl+<key> to its control byte. binding must be exactly
// {ctrl}, with alt optionally prefixing an ESC byte; any other modifier
// disqualifies the match.
func lookupC0(ev KeyEvent, binding Mods) ([]byte, bool) {
	withoutAlt := binding &^ ModAlt
	if withoutAlt != ModCtrl {
		return nil, false
	}
	b, ok := c0Table[ev.Key]
	if !ok {
		return nil, false
	}
	if binding.has(ModAlt) {
		return []byte{0x1b, b}, true
	}
	return []byte{b}, true
}

// moKeysModRow maps a binding modifier bitset (shift, alt, ctrl only) to
// its modifyOtherKeys-state-2 numeric code, starting at 2. A bitset with
// none of the three has no row and yields 1, which legacyEncode does not
// emit.
func moKeysModRow(binding Mods) int {
	code := 0
	if binding.has(ModShift) {
		code |= 1
	}
	if binding.has(ModAlt) {
		code |= 2
	}
	if binding.has(ModCtrl) {
		code |= 4
	}
	return code + 1
}

// legacyEncode dispatches a key event through the full legacy pipeline:
// function-key table, C0 table, modifyOtherKeys, fixterms, and plain
// UTF-8 fallback, in that order.
func legacyEncode(ev KeyEvent, st EncoderState, buf []byte) (int, error) {
	if ev.Action != ActionPress && ev.Action != ActionRepeat {
		return 0, nil
	}
	if ev.Composing {
		return 0, nil
	}

	binding := ev.BindingMods()

	if seq, ok := lookupFunctionKey(ev, binding, st); ok {
		return writeSeq(buf, seq)
	}

	if seq, ok := lookupC0(ev, binding); ok {
		return writeSeq(buf, seq)
	}

	if ev.UTF8 == "" {
		return 0, nil
	}

	if st.ModifyOtherKeysState2 && isSingleCodepoint(ev.UTF8) {
		cp := []rune(ev.UTF8)[0]
		shouldModify := (cp >= 0x40 && cp <= 0x7f) ||
			(binding&^ModShift) != 0 ||
			(cp == ' ' && binding == ModShift)
		if n := moKeysModRow(binding); shouldModify && n >= 2 {
			seq := append([]byte("\x1b[27;"+strconv.Itoa(n)+";"+strconv.Itoa(int(cp))), '~')
			return writeSeq(buf, seq)
		}
	}

	if ev.Mods.has(ModCtrl) {
		// fixterms CSI u: the first *byte* of utf8, not the decoded
		// codepoint; preserved deliberately, not "fixed".
		firstByte := ev.UTF8[0]
		m := 0
		if ev.Mods.has(ModShift) {
			m |= 1
		}
		if ev.Mods.has(ModAlt) {
			m |= 2
		}
		if ev.Mods.has(ModCtrl) {
			m |= 4
		}
		seq := append([]byte("\x1b["+strconv.Itoa(int(firstByte))+";"+strconv.Itoa(m+1)), 'u')
		return writeSeq(buf, seq)
	}

	if binding.has(ModAlt) && st.AltEscPrefix {
		seq := append([]byte{0x1b}, ev.UTF8...)
		return writeSeq(buf, seq)
	}

	return writeSeq(buf, []byte(ev.UTF8))
}

func isSingleCodepoint(s string) bool {
	n := 0
	for range s {
		n++
		if n > 1 {
			return false
		}
	}
	return n == 1
}
