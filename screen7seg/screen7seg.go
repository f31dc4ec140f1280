// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen7seg draws a row of 7-segment digits on the terminal
// (stdout) using ANSI color codes.
//
// Each byte written is one digit, with the segment bits of package
// tlc591x/segment. It mirrors a TLC591x chain wired to 7-segment displays, so
// text can be checked before the display is soldered.
package screen7seg

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/leddevices/tlc591x/segment"
)

// Opts represents the options available for this display.
type Opts struct {
	// Digits is the number of digits shown.
	Digits int
	// On and Off are the colors of lit and dark segments. They default to red
	// and dark red.
	On  color.Color
	Off color.Color

	Palette *ansi256.Palette

	_ struct{}
}

// rows is the height of a digit in terminal lines.
const rows = 5

// cells maps each cell of the 4x5 digit grid to the segment lighting it. 0 is
// background.
var cells = [rows][4]byte{
	{0, segment.A, 0, 0},
	{segment.F, 0, segment.B, 0},
	{0, segment.G, 0, 0},
	{segment.E, 0, segment.C, 0},
	{0, segment.D, 0, segment.DP},
}

// Dev is a 7-segment display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA

	patterns []byte
	// drawn is set once the digits are on screen, so the next refresh moves
	// the cursor back up over them.
	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on := opts.On
	if on == nil {
		on = color.NRGBA{R: 255, A: 255}
	}
	off := opts.Off
	if off == nil {
		off = color.NRGBA{R: 48, A: 255}
	}
	digits := opts.Digits
	if digits < 1 {
		digits = 1
	}
	return &Dev{
		w:        colorable.NewColorableStdout(),
		palette:  *p,
		on:       toNRGBA(on),
		off:      toNRGBA(off),
		patterns: make([]byte, digits),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen7Seg{%d}", len(d.patterns))
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write accepts one segment pattern per digit and redraws the display.
// Patterns past the number of digits are ignored, missing ones are blank.
func (d *Dev) Write(patterns []byte) (int, error) {
	n := copy(d.patterns, patterns)
	for i := n; i < len(d.patterns); i++ {
		d.patterns[i] = segment.Blank
	}
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(patterns), nil
}

// Print shows s through the 7-segment table.
func (d *Dev) Print(s string) error {
	_, err := d.Write(segment.Encode(s))
	return err
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", rows)
	}
	on := d.palette.Block(d.on)
	off := d.palette.Block(d.off)
	bg := d.palette.Block(color.NRGBA{A: 255})
	for _, row := range cells {
		_, _ = d.buf.WriteString("\r\033[0m")
		for _, p := range d.patterns {
			for _, seg := range row {
				switch {
				case seg == 0:
					_, _ = io.WriteString(&d.buf, bg)
				case p&seg != 0:
					_, _ = io.WriteString(&d.buf, on)
				default:
					_, _ = io.WriteString(&d.buf, off)
				}
			}
			_, _ = io.WriteString(&d.buf, bg)
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	d.drawn = true
	return err
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

var _ io.Writer = &Dev{}
var _ fmt.Stringer = &Dev{}
