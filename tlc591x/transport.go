// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"math/bits"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
)

// maxSpeed is well below the 30MHz the chips are rated for.
const maxSpeed = 10 * physic.MegaHertz

// transport shifts bytes into the chain, least significant bit first.
type transport interface {
	writeByte(b byte) error
	// clock returns the CLK pin for the mode switch sequence, or nil if it
	// can't be driven directly.
	clock() gpio.PinOut
	// suspend hands the CLK pin over to direct GPIO control, resume takes it
	// back.
	suspend() error
	resume() error
	String() string
}

// pulse drives p High then Low. The chips need 20ns, which is shorter than
// any GPIO write.
func pulse(p gpio.PinOut) error {
	if err := p.Out(gpio.High); err != nil {
		return err
	}
	return p.Out(gpio.Low)
}

// bitBang toggles SDI and CLK directly.
type bitBang struct {
	sdi gpio.PinOut
	clk gpio.PinOut
}

func newBitBang(sdi, clk gpio.PinOut) (*bitBang, error) {
	if err := sdi.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := clk.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &bitBang{sdi: sdi, clk: clk}, nil
}

func (t *bitBang) writeByte(b byte) error {
	for i := 0; i < 8; i++ {
		if err := t.sdi.Out(gpio.Level(b&(1<<i) != 0)); err != nil {
			return err
		}
		if err := pulse(t.clk); err != nil {
			return err
		}
	}
	return nil
}

func (t *bitBang) clock() gpio.PinOut {
	return t.clk
}

func (t *bitBang) suspend() error {
	return nil
}

func (t *bitBang) resume() error {
	return nil
}

func (t *bitBang) String() string {
	return t.sdi.String() + "/" + t.clk.String()
}

// spiTransport sends one single byte transaction per byte.
type spiTransport struct {
	c   spi.Conn
	clk gpio.PinOut
	// mirror is set when the controller shifts MSB first only.
	mirror bool
	// fn is the CLK pin function saved by suspend.
	fn pin.Func
	w  [1]byte
}

func newSPITransport(p spi.Port, clk gpio.PinOut, msbFirstOnly bool) (*spiTransport, error) {
	mode := spi.Mode0 | spi.LSBFirst
	if msbFirstOnly {
		mode = spi.Mode0
	}
	c, err := p.Connect(maxSpeed, mode, 8)
	if err != nil {
		return nil, err
	}
	if !usablePin(clk) {
		clk = nil
		if pins, ok := p.(spi.Pins); ok && usablePin(pins.CLK()) {
			clk = pins.CLK()
		}
	}
	return &spiTransport{c: c, clk: clk, mirror: msbFirstOnly}, nil
}

func (t *spiTransport) writeByte(b byte) error {
	if t.mirror {
		b = bits.Reverse8(b)
	}
	t.w[0] = b
	return t.c.Tx(t.w[:], nil)
}

func (t *spiTransport) clock() gpio.PinOut {
	return t.clk
}

func (t *spiTransport) suspend() error {
	if pf, ok := t.clk.(pin.PinFunc); ok {
		t.fn = pf.Func()
		if err := pf.SetFunc(gpio.OUT_LOW); err != nil {
			return err
		}
	}
	if err := t.clk.Out(gpio.Low); err != nil {
		// Give the pin back to the SPI controller.
		_ = t.resume()
		return err
	}
	return nil
}

func (t *spiTransport) resume() error {
	pf, ok := t.clk.(pin.PinFunc)
	if !ok {
		return nil
	}
	fn := t.fn
	if fn.Generalize() != spi.CLK {
		fn = spi.CLK
	}
	return pf.SetFunc(fn)
}

func (t *spiTransport) String() string {
	return t.c.String()
}

// usablePin reports whether p is wired.
func usablePin(p gpio.PinOut) bool {
	return p != nil && p != gpio.INVALID
}
