// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// EnableState is the level presented on the OE line.
type EnableState int

const (
	// Disabled means OE is High and all outputs are off.
	Disabled EnableState = iota
	// Enabled means OE is Low and the outputs follow the output latches.
	Enabled
	// PWMEnabled means OE is driven by PWM to dim the outputs.
	PWMEnabled
)

func (s EnableState) String() string {
	switch s {
	case Disabled:
		return "Disabled"
	case Enabled:
		return "Enabled"
	case PWMEnabled:
		return "PWMEnabled"
	default:
		return "EnableState(?)"
	}
}

// outputEnable tracks the OE line. A nil pin means OE is not wired and every
// method is a no-op.
type outputEnable struct {
	p    gpio.PinOut
	freq physic.Frequency

	state EnableState
	// wanted is whether the display should be lit. It outlives a switch to
	// special mode, which blanks the chip, so that NormalMode restores it.
	wanted     bool
	brightness byte
}

func (o *outputEnable) wired() bool {
	return o.p != nil
}

func (o *outputEnable) enable() error {
	if !o.wired() {
		return nil
	}
	if err := o.p.Out(gpio.Low); err != nil {
		return err
	}
	o.state = Enabled
	o.wanted = true
	return nil
}

func (o *outputEnable) disable() error {
	if !o.wired() {
		return nil
	}
	if err := o.p.Out(gpio.High); err != nil {
		return err
	}
	o.state = Disabled
	o.wanted = false
	return nil
}

func (o *outputEnable) setBrightness(level byte) error {
	if !o.wired() {
		return nil
	}
	if err := o.p.PWM(duty(level), o.freq); err != nil {
		return err
	}
	o.state = PWMEnabled
	o.wanted = true
	o.brightness = level
	return nil
}

// hold stops PWM so OE presents a continuous level while a byte is shifted.
// It is a no-op unless PWM is running.
func (o *outputEnable) hold() error {
	if o.state != PWMEnabled {
		return nil
	}
	return o.p.Out(gpio.High)
}

// release restarts the PWM stopped by hold.
func (o *outputEnable) release() error {
	if o.state != PWMEnabled {
		return nil
	}
	return o.p.PWM(duty(o.brightness), o.freq)
}

// duty converts a level to the OE High time: 0 is always Low and 255 always
// High.
func duty(level byte) gpio.Duty {
	return gpio.Duty(int64(gpio.DutyMax) * int64(level) / 255)
}

// writeByte shifts b into the chain while OE holds a continuous level, then
// restores the brightness PWM, even when the transfer failed.
func writeByte(t transport, oe *outputEnable, b byte) error {
	if err := oe.hold(); err != nil {
		return err
	}
	err := t.writeByte(b)
	if err2 := oe.release(); err == nil {
		err = err2
	}
	return err
}

// Enable turns the outputs on at full brightness. It is a no-op when OE is not
// wired.
func (d *Dev) Enable() error {
	return wrap(d.oe.enable())
}

// Disable turns the outputs off. It is a no-op when OE is not wired.
func (d *Dev) Disable() error {
	return wrap(d.oe.disable())
}

// SetBrightness drives OE with PWM, High for level/255 of each period. OE is
// active low, so 0 is full brightness and 255 is dark. The level is kept and
// PWM restarted after every byte shifted into the chain. It is a no-op when
// OE is not wired.
func (d *Dev) SetBrightness(level byte) error {
	return wrap(d.oe.setBrightness(level))
}

// Backlight implements display.DisplayBacklight. 0 disables the outputs,
// 255 or more enables them, anything in between dims them with
// SetBrightness(255 - intensity).
func (d *Dev) Backlight(intensity display.Intensity) error {
	switch {
	case intensity <= 0:
		return d.Disable()
	case intensity >= 0xff:
		return d.Enable()
	default:
		return d.SetBrightness(byte(0xff - intensity))
	}
}

// State returns the level the driver last put on OE. It is always Disabled
// when OE is not wired.
func (d *Dev) State() EnableState {
	return d.oe.state
}

// Brightness returns the last level passed to SetBrightness.
func (d *Dev) Brightness() byte {
	return d.oe.brightness
}

var _ display.DisplayBacklight = &Dev{}
