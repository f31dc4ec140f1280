// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segment

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	for c := rune(0x20); c <= 0x7f; c++ {
		if got := Lookup(c); got != table[c-0x20] {
			t.Errorf("Lookup(%#x) = %#x, want %#x", c, got, table[c-0x20])
		}
	}
	for _, c := range []rune{-1, 0, 0x0a, 0x1f, 0x80, 0xff, 'é', 0x10000} {
		if got := Lookup(c); got != Blank {
			t.Errorf("Lookup(%#x) = %#x, want blank", c, got)
		}
	}
}

func TestDigits(t *testing.T) {
	for _, tc := range []struct {
		c    rune
		want byte
	}{
		{'0', A | B | C | D | E | F},
		{'1', B | C},
		{'2', A | B | G | E | D},
		{'3', A | B | G | C | D},
		{'4', F | G | B | C},
		{'7', A | B | C},
		{'8', A | B | C | D | E | F | G},
		{'-', G},
		{'_', D},
		{' ', Blank},
	} {
		if got := Lookup(tc.c); got != tc.want {
			t.Errorf("Lookup(%q) = %#x, want %#x", tc.c, got, tc.want)
		}
	}
}

func TestEncode(t *testing.T) {
	got := Encode("12\x01é")
	want := []byte{Lookup('1'), Lookup('2'), Blank, Blank, Blank}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Encode() difference (-got +want):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	img, err := Render([]byte{A, Blank, Lookup('8') | DP}, nil)
	if err != nil {
		t.Fatal(err)
	}
	wantBounds := image.Rect(0, 0, 3*DefaultRenderOpts.DigitWidth, DefaultRenderOpts.DigitHeight+labelHeight)
	if diff := cmp.Diff(img.Bounds(), wantBounds); diff != "" {
		t.Errorf("Bounds() difference (-got +want):\n%s", diff)
	}
	w := DefaultRenderOpts.DigitWidth
	h := DefaultRenderOpts.DigitHeight
	// Center of segment A and of segment G of each digit.
	aX, aY := w/2, int(0.15*float64(h)/2)
	gX, gY := w/2, h/2
	for _, tc := range []struct {
		x, y int
		want color.Color
	}{
		{aX, aY, DefaultRenderOpts.On},
		{gX, gY, DefaultRenderOpts.Off},
		{w + aX, aY, DefaultRenderOpts.Off},
		{2*w + aX, aY, DefaultRenderOpts.On},
		{2*w + gX, gY, DefaultRenderOpts.On},
	} {
		if !sameColor(img.At(tc.x, tc.y), tc.want) {
			t.Errorf("At(%d, %d) = %v, want %v", tc.x, tc.y, img.At(tc.x, tc.y), tc.want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	if _, err := Render([]byte{A}, &RenderOpts{DigitWidth: 2, DigitHeight: 2}); err == nil {
		t.Error("expected an error for a tiny digit")
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
