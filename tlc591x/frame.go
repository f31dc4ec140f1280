// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"github.com/GermanBionicSystems/leddevices/tlc591x/segment"
)

// Frame is data to show on the chain. It is one of Text, Raw or Number.
type Frame interface {
	// wire returns the bytes in the order they are shifted out.
	wire(chips int) []byte
}

// Text is shown one character per chip through the 7-segment table,
// Text[0] on the first chip. Characters the table can't show, and chips past
// the end of the text, are blank.
type Text string

func (s Text) wire(chips int) []byte {
	w := make([]byte, chips)
	for i := 0; i < chips && i < len(s); i++ {
		w[chips-1-i] = segment.Lookup(rune(s[i]))
	}
	return w
}

// Raw is shown as is, Raw[0] on the first chip. Chips past the end of the
// slice get 0 and extra bytes are ignored.
type Raw []byte

func (r Raw) wire(chips int) []byte {
	w := make([]byte, chips)
	for i := 0; i < chips && i < len(r); i++ {
		w[chips-1-i] = r[i]
	}
	return w
}

// Number is shifted as two bytes, low byte first, and latched. On a two
// chip chain the high byte ends on the first chip and the low byte on the
// second. Bytes above the second are dropped. On longer chains only two bytes
// are shifted, so the rest of the chain gets what the first chips showed.
type Number uint

func (n Number) wire(chips int) []byte {
	size := chips
	if size > 2 {
		size = 2
	}
	w := make([]byte, size)
	for i := range w {
		w[i] = byte(n)
		n >>= 8
	}
	return w
}
