// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen7seg

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"

	"github.com/GermanBionicSystems/leddevices/tlc591x/segment"
)

func newTestDev(digits int) (*Dev, *bytes.Buffer) {
	d := New(&Opts{
		Digits: digits,
		On:     color.White,
		Off:    color.NRGBA{R: 128, G: 128, B: 128, A: 255},
	})
	buf := &bytes.Buffer{}
	d.w = buf
	return d, buf
}

func TestWrite(t *testing.T) {
	for _, tc := range []struct {
		text string
		lit  int
	}{
		{"8", 7},
		{"1", 2},
		{" ", 0},
		{"88", 14},
		{"7", 3},
	} {
		d, buf := newTestDev(2)
		if err := d.Print(tc.text); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		on, off := d.palette.Block(d.on), d.palette.Block(d.off)
		if got := strings.Count(out, on); got != tc.lit {
			t.Errorf("Print(%q) lit %d segments, want %d", tc.text, got, tc.lit)
		}
		// Two digits of eight segments each.
		if got := strings.Count(out, on) + strings.Count(out, off); got != 16 {
			t.Errorf("Print(%q) drew %d segments, want 16", tc.text, got)
		}
		if got := strings.Count(out, "\n"); got != rows {
			t.Errorf("Print(%q) drew %d lines, want %d", tc.text, got, rows)
		}
	}
}

func TestWriteDP(t *testing.T) {
	d, buf := newTestDev(1)
	n, err := d.Write([]byte{segment.DP, segment.A})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Write() = %d, want 2", n)
	}
	if got := strings.Count(buf.String(), d.palette.Block(d.on)); got != 1 {
		t.Errorf("lit %d segments, want 1", got)
	}
}

func TestRedraw(t *testing.T) {
	d, buf := newTestDev(1)
	if err := d.Print("1"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\033[5A") {
		t.Error("first draw moved the cursor up")
	}
	buf.Reset()
	if err := d.Print("2"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[5A") {
		t.Errorf("redraw doesn't move the cursor up: %q", buf.String())
	}
}

func TestHalt(t *testing.T) {
	d, buf := newTestDev(1)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m\n" {
		t.Errorf("Halt() wrote %q", buf.String())
	}
	if s := d.String(); s != "Screen7Seg{1}" {
		t.Errorf("String() = %q", s)
	}
}

func TestDefaultPalette(t *testing.T) {
	d := New(&Opts{Digits: 1})
	buf := &bytes.Buffer{}
	d.w = buf
	if err := d.Print("1"); err != nil {
		t.Fatal(err)
	}
	red := ansi256.Default.Block(color.NRGBA{R: 255, A: 255})
	if got := strings.Count(buf.String(), red); got != 2 {
		t.Errorf("drew %d red segments, want 2", got)
	}
}
