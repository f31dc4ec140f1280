// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segment

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// RenderOpts controls the look of the image produced by Render.
type RenderOpts struct {
	// DigitWidth and DigitHeight are the size of one digit cell in pixels.
	DigitWidth  int
	DigitHeight int
	// On and Off are the colors of lit and dark segments.
	On  color.Color
	Off color.Color
	// Background fills the whole image.
	Background color.Color
	// Labels prints the chain position of each digit under it.
	Labels bool
}

// DefaultRenderOpts looks like a red LED display.
var DefaultRenderOpts = RenderOpts{
	DigitWidth:  60,
	DigitHeight: 100,
	On:          color.NRGBA{R: 0xff, G: 0x20, B: 0x10, A: 0xff},
	Off:         color.NRGBA{R: 0x30, G: 0x08, B: 0x08, A: 0xff},
	Background:  color.Black,
	Labels:      true,
}

const labelHeight = 20

// Render draws one 7-segment digit per pattern, left to right, chip 0 first.
func Render(patterns []byte, opts *RenderOpts) (image.Image, error) {
	if opts == nil {
		opts = &DefaultRenderOpts
	}
	if opts.DigitWidth < 8 || opts.DigitHeight < 16 {
		return nil, fmt.Errorf("segment: digit size %dx%d is too small", opts.DigitWidth, opts.DigitHeight)
	}
	n := len(patterns)
	if n == 0 {
		n = 1
	}
	h := opts.DigitHeight
	if opts.Labels {
		h += labelHeight
	}
	dc := gg.NewContext(n*opts.DigitWidth, h)
	dc.SetColor(opts.Background)
	dc.Clear()
	for i, p := range patterns {
		drawDigit(dc, float64(i*opts.DigitWidth), float64(opts.DigitWidth), float64(opts.DigitHeight), p, opts)
	}
	if opts.Labels {
		face, err := labelFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(opts.Off)
		for i := range patterns {
			x := float64(i*opts.DigitWidth) + float64(opts.DigitWidth)/2
			y := float64(opts.DigitHeight) + labelHeight/2
			dc.DrawStringAnchored(strconv.Itoa(i), x, y, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// segmentRect is a segment position in units of the digit cell, where the
// cell is 1 wide and 2 tall.
type segmentRect struct {
	bit        byte
	x, y, w, h float64
}

var segmentRects = []segmentRect{
	{A, 0.2, 0.1, 0.6, 0.1},
	{B, 0.8, 0.2, 0.1, 0.7},
	{C, 0.8, 1.1, 0.1, 0.7},
	{D, 0.2, 1.8, 0.6, 0.1},
	{E, 0.1, 1.1, 0.1, 0.7},
	{F, 0.1, 0.2, 0.1, 0.7},
	{G, 0.2, 0.95, 0.6, 0.1},
}

func drawDigit(dc *gg.Context, x0, w, h float64, p byte, opts *RenderOpts) {
	sx := w
	sy := h / 2
	for _, s := range segmentRects {
		setSegmentColor(dc, p&s.bit != 0, opts)
		dc.DrawRoundedRectangle(x0+s.x*sx, s.y*sy, s.w*sx, s.h*sy, 0.03*sx)
		dc.Fill()
	}
	setSegmentColor(dc, p&DP != 0, opts)
	dc.DrawCircle(x0+0.95*sx, 1.85*sy, 0.04*sx)
	dc.Fill()
}

func setSegmentColor(dc *gg.Context, on bool, opts *RenderOpts) {
	if on {
		dc.SetColor(opts.On)
	} else {
		dc.SetColor(opts.Off)
	}
}

func labelFace() (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: 12}), nil
}
