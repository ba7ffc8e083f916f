package keyenc

import "errors"

// ErrBufferTooSmall is returned when buf cannot hold the encoded sequence.
// Callers are expected to provide at least 128 bytes;
// Encode never partially writes a sequence.
var ErrBufferTooSmall = errors.New("keyenc: buffer too small")

// writeSeq copies seq into buf, or reports ErrBufferTooSmall without
// writing anything if it does not fit.
func writeSeq(buf []byte, seq []byte) (int, error) {
	if len(seq) > len(buf) {
		return 0, ErrBufferTooSmall
	}
	copy(buf, seq)
	return len(seq), nil
}

// Encode turns ev into the PTY bytes it should produce, writing into buf
// and returning the written prefix length. It dispatches to the Kitty
// path if any EncoderState.KittyFlags bit is set, otherwise the legacy
// path. Encode is a pure function of its arguments: two calls with
// identical inputs always agree, and nothing about this call outlives it
// — no retries, no side effects.
func Encode(ev KeyEvent, st EncoderState, buf []byte) (int, error) {
	if st.KittyFlags != 0 {
		return kittyEncode(ev, st, buf)
	}
	return legacyEncode(ev, st, buf)
}
