// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"periph.io/x/conn/v3/gpio"
)

// Mode is the operating mode of the chips.
type Mode int

const (
	// Normal is the power on mode: LE latches the outputs.
	Normal Mode = iota
	// Special makes LE latch the configuration code instead.
	Special
)

func (m Mode) String() string {
	if m == Special {
		return "Special"
	}
	return "Normal"
}

// errorHandler runs a sequence of pin writes and keeps the first error.
type errorHandler struct {
	err error
}

func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) pulse(p gpio.PinOut) {
	if eh.err != nil {
		return
	}
	eh.err = pulse(p)
}

// NormalMode switches the chips to normal mode. If the display was enabled
// before the last SpecialMode, or is enabled now, it is enabled again at full
// brightness. It is a no-op when OE is not wired.
func (d *Dev) NormalMode() error {
	return wrap(d.switchMode(Normal))
}

// SpecialMode switches the chips to special mode. The chips blank their
// outputs while in special mode. It is a no-op when OE is not wired.
func (d *Dev) SpecialMode() error {
	return wrap(d.switchMode(Special))
}

// Mode returns the mode the driver last switched the chips to. The chips
// can't be read back, so this is Normal until a switch is done.
func (d *Dev) Mode() Mode {
	return d.mode
}

// switchMode clocks the mode switch sequence: OE High, Low, High on the first
// three CLK pulses, then LE sampled on the fourth pulse selects the mode.
func (d *Dev) switchMode(m Mode) error {
	if !d.oe.wired() {
		return nil
	}
	clk := d.t.clock()
	if clk == nil {
		return ErrNoClock
	}
	d.invalidateOutputs()
	if err := d.t.suspend(); err != nil {
		return err
	}
	oe := d.oe.p
	eh := errorHandler{}
	eh.out(oe, gpio.High)
	if eh.err == nil {
		// PWM is stopped and the chip blanks until the sequence completes.
		d.oe.state = Disabled
	}
	eh.pulse(clk)
	eh.out(oe, gpio.Low)
	eh.pulse(clk)
	eh.out(oe, gpio.High)
	eh.pulse(clk)
	if m == Special {
		eh.out(d.le, gpio.High)
	}
	eh.pulse(clk)
	if m == Special {
		eh.out(d.le, gpio.Low)
	}
	eh.pulse(clk)
	if eh.err == nil {
		d.mode = m
		if m == Normal && d.oe.wanted {
			eh.err = d.oe.enable()
		}
	}
	if err := d.t.resume(); eh.err == nil {
		eh.err = err
	}
	return eh.err
}

// WriteConfig writes one configuration code per chip, codes[0] going to the
// first chip of the chain. Missing codes are 0. The chips are switched to
// special mode for the write and back to normal mode after it.
//
// It returns ErrNoOutputEnable when OE is not wired, since the chips can't
// be switched to special mode without it.
func (d *Dev) WriteConfig(codes ...byte) error {
	if !d.oe.wired() {
		return ErrNoOutputEnable
	}
	if err := d.SpecialMode(); err != nil {
		return err
	}
	if err := d.Show(Raw(codes)); err != nil {
		return err
	}
	return d.NormalMode()
}
