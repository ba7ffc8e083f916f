package keyenc

import "strconv"

// kittyEntry is one row of the Kitty functional-key table.
type kittyEntry struct {
	code     int
	final    byte
	modifier bool // true for a modifier key itself (left_shift, caps_lock, ...)
}

// kittyFuncKeyTable covers the named keys that need a fixed code/final
// pair: legacy-compatible keys keep the classic CSI letter/tilde finals so
// older terminfo entries still parse them, and the ten modifier keys (left
// and right shift/ctrl/alt/super, caps lock, num lock) get the numeric codes from the Kitty keyboard protocol's private-use range
// (kitty's functional_key_definitions.h) so the composition gate can
// report a bare modifier press on its own.
var kittyFuncKeyTable = map[Key]kittyEntry{
	KeyUp:    {code: 0, final: 'A'},
	KeyDown:  {code: 0, final: 'B'},
	KeyRight: {code: 0, final: 'C'},
	KeyLeft:  {code: 0, final: 'D'},
	KeyHome:  {code: 0, final: 'H'},
	KeyEnd:   {code: 0, final: 'F'},

	KeyF1: {code: 0, final: 'P'},
	KeyF2: {code: 0, final: 'Q'},
	KeyF3: {code: 0, final: 'R'},
	KeyF4: {code: 0, final: 'S'},

	KeyPageUp:   {code: 5, final: '~'},
	KeyPageDown: {code: 6, final: '~'},
	KeyInsert:   {code: 2, final: '~'},
	KeyDelete:   {code: 3, final: '~'},
	KeyF5:       {code: 15, final: '~'},
	KeyF6:       {code: 17, final: '~'},
	KeyF7:       {code: 18, final: '~'},
	KeyF8:       {code: 19, final: '~'},
	KeyF9:       {code: 20, final: '~'},
	KeyF10:      {code: 21, final: '~'},
	KeyF11:      {code: 23, final: '~'},
	KeyF12:      {code: 24, final: '~'},

	KeyEnter:     {code: 13, final: 'u'},
	KeyTab:       {code: 9, final: 'u'},
	KeyBackspace: {code: 127, final: 'u'},
	KeyEscape:    {code: 27, final: 'u'},
	KeySpace:     {code: 32, final: 'u'},

	KeyLeftShift:   {code: 57441, final: 'u', modifier: true},
	KeyLeftCtrl:    {code: 57442, final: 'u', modifier: true},
	KeyLeftAlt:     {code: 57443, final: 'u', modifier: true},
	KeyLeftSuper:   {code: 57444, final: 'u', modifier: true},
	KeyRightShift:  {code: 57447, final: 'u', modifier: true},
	KeyRightCtrl:   {code: 57448, final: 'u', modifier: true},
	KeyRightAlt:    {code: 57449, final: 'u', modifier: true},
	KeyRightSuper:  {code: 57450, final: 'u', modifier: true},
	KeyCapsLock:    {code: 57358, final: 'u', modifier: true},
	KeyNumLock:     {code: 57360, final: 'u', modifier: true},
}

// kittyModsFrom is the raw 8-bit bitmask plus 1. Mods is already laid out in exactly that bit order.
func kittyModsFrom(m Mods) int {
	return int(m) + 1
}

// kittyEvent maps an Action to the Kitty event tag: press is reported as
// ":1" rather than omitted, a deliberate divergence from the upstream
// Kitty keyboard protocol that is preserved here rather than normalized
// away.
func kittyEvent(a Action) int {
	switch a {
	case ActionPress:
		return 1
	case ActionRepeat:
		return 2
	case ActionRelease:
		return 3
	default:
		return 0
	}
}

// kittySequence is the resolved set of fields the final encoding step needs.
type kittySequence struct {
	key         int
	final       byte
	mods        int
	event       int // 0 = not reported
	alternates  []rune
	text        string
}

func kittyEncode(ev KeyEvent, st EncoderState, buf []byte) (int, error) {
	entry, found := kittyFuncKeyTable[ev.Key]
	if !found {
		if ev.UnshiftedCodepoint > 0 {
			entry = kittyEntry{code: int(ev.UnshiftedCodepoint), final: 'u'}
			found = true
		}
	}

	if ev.Composing {
		if !(found && entry.modifier) {
			return 0, nil
		}
	}

	binding := ev.BindingMods()
	if !st.KittyFlags.has(KittyReportAll) {
		effective := ev.EffectiveMods()
		if effective == 0 {
			switch ev.Key {
			case KeyEnter:
				return writeSeq(buf, []byte{'\r'})
			case KeyTab:
				return writeSeq(buf, []byte{'\t'})
			case KeyBackspace:
				return writeSeq(buf, []byte{0x7f})
			}
		}
		if ev.UTF8 != "" && binding == 0 && ev.Action != ActionRelease {
			return writeSeq(buf, []byte(ev.UTF8))
		}
	}

	if !found {
		return 0, nil
	}

	seq := kittySequence{key: entry.code, final: entry.final, mods: kittyModsFrom(ev.Mods)}

	if st.KittyFlags.has(KittyReportEvents) {
		seq.event = kittyEvent(ev.Action)
	}
	if st.KittyFlags.has(KittyReportAlternates) && isSingleCodepoint(ev.UTF8) {
		cp := []rune(ev.UTF8)[0]
		if int(cp) != entry.code {
			seq.alternates = []rune{cp}
		}
	}
	if st.KittyFlags.has(KittyReportAssociated) {
		seq.text = ev.UTF8
	}

	return writeSeq(buf, encodeKittySequence(seq))
}

func encodeKittySequence(seq kittySequence) []byte {
	if seq.final == 'u' || seq.final == '~' {
		return encodeKittyFullForm(seq)
	}
	return encodeKittySpecialForm(seq)
}

func encodeKittyFullForm(seq kittySequence) []byte {
	out := []byte("\x1b[")
	out = append(out, []byte(strconv.Itoa(seq.key))...)
	for _, alt := range seq.alternates {
		out = append(out, ':')
		out = append(out, []byte(strconv.Itoa(int(alt)))...)
	}

	emitMods := seq.event != 0 || seq.mods > 1
	hasText := seq.text != ""

	if emitMods || hasText {
		out = append(out, ';')
		if emitMods {
			out = append(out, []byte(strconv.Itoa(seq.mods))...)
			if seq.event != 0 {
				out = append(out, ':')
				out = append(out, []byte(strconv.Itoa(seq.event))...)
			}
		}
		if hasText {
			out = append(out, ';')
			first := true
			for _, r := range seq.text {
				if !first {
					out = append(out, ':')
				}
				first = false
				out = append(out, []byte(strconv.Itoa(int(r)))...)
			}
		}
	}

	return append(out, seq.final)
}

func encodeKittySpecialForm(seq kittySequence) []byte {
	switch {
	case seq.event != 0:
		out := []byte("\x1b[1;")
		out = append(out, []byte(strconv.Itoa(seq.mods))...)
		out = append(out, ':')
		out = append(out, []byte(strconv.Itoa(seq.event))...)
		return append(out, seq.final)
	case seq.mods > 1:
		out := []byte("\x1b[1;")
		out = append(out, []byte(strconv.Itoa(seq.mods))...)
		return append(out, seq.final)
	default:
		return []byte{0x1b, '[', seq.final}
	}
}
