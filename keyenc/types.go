// Package keyenc turns one keyboard event into the bytes a terminal writes
// to its PTY. It implements two independent protocols: the legacy path
// (C0 control bytes, xterm modifyOtherKeys, and the fixterms CSI u
// extension) and the Kitty keyboard protocol, selected by which
// EncoderState.KittyFlags bits are set.
package keyenc

// Key is the logical key identity behind an event, independent of the
// text it produced.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyKPUp
	KeyKPDown
	KeyKPLeft
	KeyKPRight
	KeyKPHome
	KeyKPEnd
	KeyKPPageUp
	KeyKPPageDown
	KeyKPInsert
	KeyKPDelete
	KeyKPEnter

	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyGraveAccent
	KeyMinus
	KeyEqual
	KeySemicolon
	KeyApostrophe
	KeyComma
	KeyPeriod
	KeySlash

	KeyLeftShift
	KeyRightShift
	KeyLeftAlt
	KeyRightAlt
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftSuper
	KeyRightSuper
	KeyCapsLock
	KeyNumLock
)

// IsModifier reports whether Key is itself a modifier key, the only kind of
// key the Kitty path still reports while composing (
// "Composition gate").
func (k Key) IsModifier() bool {
	switch k {
	case KeyLeftShift, KeyRightShift, KeyLeftAlt, KeyRightAlt,
		KeyLeftCtrl, KeyRightCtrl, KeyLeftSuper, KeyRightSuper,
		KeyCapsLock, KeyNumLock:
		return true
	default:
		return false
	}
}

// Action is what happened to the key.
type Action int

const (
	ActionPress Action = iota
	ActionRelease
	ActionRepeat
)

// Mods is the modifier bitset. Bit order matches the Kitty protocol's 8-bit
// layout exactly, so kittyModsFrom can
// read it directly without remapping.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

func (m Mods) has(bit Mods) bool { return m&bit != 0 }

// KeyEvent is one keyboard event handed to Encode.
type KeyEvent struct {
	Key    Key
	Action Action
	Mods   Mods

	// UTF8 is whatever text the OS/input method produced for this event;
	// it may be empty (named keys) or hold more than one codepoint
	// (dead-key composition resolving to a precomposed character).
	UTF8 string

	// UnshiftedCodepoint is the codepoint this key would produce with no
	// modifiers, 0 if unknown. Used to synthesize a Kitty table entry for
	// keys absent from the functional-key table; that entry's code is also
	// what the Kitty alternate-key report compares UTF8 against.
	UnshiftedCodepoint rune

	// Composing is true while an IME dead-key sequence is in progress.
	Composing bool
}

// EffectiveMods drops caps lock, which never participates in a protocol
// decision on its own.
func (e KeyEvent) EffectiveMods() Mods {
	return e.Mods &^ ModCapsLock
}

// BindingMods is the modifier set protocol decisions are actually made
// against. It returns exactly EffectiveMods: shift is kept even when it is
// already folded into UTF8, so shift+a with UTF8 "A" still reports shift
// (ESC [ 97 : 65 ; 2 u under Kitty disambiguate+report-alternates) — see
// DESIGN.md.
func (e KeyEvent) BindingMods() Mods {
	return e.EffectiveMods()
}

// EncoderState is the terminal mode state Encode needs to pick an encoding;
// it is read-only to Encode, a stateless transformer.
type EncoderState struct {
	AltEscPrefix          bool
	CursorKeyApplication  bool
	KeypadKeyApplication  bool
	ModifyOtherKeysState2 bool
	KittyFlags            KittyFlags
}

// KittyFlags is the Kitty keyboard protocol's progressive-enhancement
// bitset.
type KittyFlags uint8

const (
	KittyDisambiguate KittyFlags = 1 << iota
	KittyReportEvents
	KittyReportAlternates
	KittyReportAssociated
	KittyReportAll
)

func (f KittyFlags) has(bit KittyFlags) bool { return f&bit != 0 }
