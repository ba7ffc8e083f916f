// Command keyecho is a small demo that wires a real keyboard source
// (tcell) into keyenc.Encode and prints the resulting byte sequence for
// every key pressed, one line per event, until Ctrl+C.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/haldane/glterm/config"
	"github.com/haldane/glterm/keyenc"
)

func main() {
	configPath := flag.String("config", "keyecho.json", "path to a config.Config JSON file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("keyecho: load config: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("keyecho: new screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("keyecho: init: %v", err)
	}
	defer screen.Fini()

	state := keyenc.EncoderState{}
	buf := make([]byte, 128)
	var lines []string

	redraw := func() {
		screen.Clear()
		_, rows := screen.Size()
		start := 0
		if len(lines) > rows {
			start = len(lines) - rows
		}
		for row, line := range lines[start:] {
			for col, ch := range line {
				screen.SetContent(col, row, ch, nil, tcell.StyleDefault)
			}
		}
		screen.Show()
	}

	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			kev := convertEvent(e)
			if cfg.LogVerbose {
				lines = append(lines, fmt.Sprintf("raw: key=%v rune=%q mods=%v", e.Key(), e.Rune(), e.Modifiers()))
			}
			n, err := keyenc.Encode(kev, state, buf)
			if err != nil {
				lines = append(lines, fmt.Sprintf("encode error: %v", err))
			} else {
				lines = append(lines, fmt.Sprintf("%q", buf[:n]))
			}
			redraw()
			if e.Key() == tcell.KeyCtrlC {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
			redraw()
		}
	}
}

// convertEvent turns a tcell key event into the KeyEvent shape
// keyenc.Encode expects, mirroring the way a renderer backend adapts its
// UI toolkit's event type into a domain event before acting on it.
func convertEvent(e *tcell.EventKey) keyenc.KeyEvent {
	key, ok := keyTable[e.Key()]
	r := e.Rune()
	utf8 := ""
	if !ok {
		if r != 0 {
			key = runeToKey(r)
			utf8 = string(r)
		}
	} else if r != 0 {
		utf8 = string(r)
	}

	mods := convertMods(e.Modifiers())
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlH, tcell.KeyCtrlI:
		mods |= keyenc.ModCtrl
	}

	return keyenc.KeyEvent{
		Key:                key,
		Action:             keyenc.ActionPress,
		Mods:               mods,
		UTF8:               utf8,
		UnshiftedCodepoint: r,
	}
}

func convertMods(m tcell.ModMask) keyenc.Mods {
	var out keyenc.Mods
	if m&tcell.ModShift != 0 {
		out |= keyenc.ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= keyenc.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= keyenc.ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		out |= keyenc.ModMeta
	}
	return out
}

var keyTable = map[tcell.Key]keyenc.Key{
	tcell.KeyEnter:      keyenc.KeyEnter,
	tcell.KeyTab:        keyenc.KeyTab,
	tcell.KeyBackspace:  keyenc.KeyBackspace,
	tcell.KeyBackspace2: keyenc.KeyBackspace,
	tcell.KeyEsc:        keyenc.KeyEscape,
	tcell.KeyUp:         keyenc.KeyUp,
	tcell.KeyDown:       keyenc.KeyDown,
	tcell.KeyLeft:       keyenc.KeyLeft,
	tcell.KeyRight:      keyenc.KeyRight,
	tcell.KeyHome:       keyenc.KeyHome,
	tcell.KeyEnd:        keyenc.KeyEnd,
	tcell.KeyPgUp:       keyenc.KeyPageUp,
	tcell.KeyPgDn:       keyenc.KeyPageDown,
	tcell.KeyInsert:     keyenc.KeyInsert,
	tcell.KeyDelete:     keyenc.KeyDelete,
	tcell.KeyF1:         keyenc.KeyF1,
	tcell.KeyF2:         keyenc.KeyF2,
	tcell.KeyF3:         keyenc.KeyF3,
	tcell.KeyF4:         keyenc.KeyF4,
	tcell.KeyF5:         keyenc.KeyF5,
	tcell.KeyF6:         keyenc.KeyF6,
	tcell.KeyF7:         keyenc.KeyF7,
	tcell.KeyF8:         keyenc.KeyF8,
	tcell.KeyF9:         keyenc.KeyF9,
	tcell.KeyF10:        keyenc.KeyF10,
	tcell.KeyF11:        keyenc.KeyF11,
	tcell.KeyF12:        keyenc.KeyF12,
	tcell.KeyCtrlC:      keyenc.KeyC,
	tcell.KeyCtrlH:      keyenc.KeyH,
	tcell.KeyCtrlI:      keyenc.KeyI,
}

// runeToKey maps a printable rune to its logical Key identity when tcell
// reported it as KeyRune rather than a named constant. Only the ASCII
// letter/digit/punctuation range keyenc's tables care about is covered;
// anything else keeps KeyUnknown and still carries the rune through UTF8.
func runeToKey(r rune) keyenc.Key {
	switch {
	case r >= 'a' && r <= 'z':
		return keyenc.KeyA + keyenc.Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return keyenc.KeyA + keyenc.Key(r-'A')
	case r >= '0' && r <= '9':
		return keyenc.Key0 + keyenc.Key(r-'0')
	case r == ' ':
		return keyenc.KeySpace
	case r == '[':
		return keyenc.KeyLeftBracket
	case r == ']':
		return keyenc.KeyRightBracket
	case r == '\\':
		return keyenc.KeyBackslash
	case r == '`':
		return keyenc.KeyGraveAccent
	case r == '-':
		return keyenc.KeyMinus
	case r == '=':
		return keyenc.KeyEqual
	case r == ';':
		return keyenc.KeySemicolon
	case r == '\'':
		return keyenc.KeyApostrophe
	case r == ',':
		return keyenc.KeyComma
	case r == '.':
		return keyenc.KeyPeriod
	case r == '/':
		return keyenc.KeySlash
	default:
		return keyenc.KeyUnknown
	}
}
