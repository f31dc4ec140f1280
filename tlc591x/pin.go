// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one sink output of the chain. High sinks current, which lights the
// LED wired to it.
type Pin struct {
	dev    *Dev
	name   string
	number int
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the output.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the position of the output in the chain.
func (pin *Pin) Number() int {
	return pin.number
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out sets the output. The whole chain is shifted and latched when the
// resulting frame differs from the last one written through a Pin or Group.
func (pin *Pin) Out(l gpio.Level) error {
	v := gpio.GPIOValue(0)
	if l {
		v = 1
	}
	return pin.dev.writeOutputs([]int{pin.number}, v, 1)
}

// PWM is not supported per output; use Dev.SetBrightness to dim the chain.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *Pin) String() string {
	return pin.name
}

// writeOutputs sets output numbers[i] to bit i of value for every bit set in
// mask.
func (d *Dev) writeOutputs(numbers []int, value, mask gpio.GPIOValue) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next := make([]byte, len(d.outputs))
	copy(next, d.outputs)
	for ix, n := range numbers {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit == 0 {
			continue
		}
		if value&bit != 0 {
			next[n/outputsPerChip] |= 1 << (n % outputsPerChip)
		} else {
			next[n/outputsPerChip] &^= 1 << (n % outputsPerChip)
		}
	}
	if !d.stale && string(next) == string(d.outputs) {
		return nil
	}
	if err := d.shift(Raw(next).wire(d.chips)); err != nil {
		return wrap(err)
	}
	d.outputs = next
	d.stale = false
	return nil
}

var _ gpio.PinOut = &Pin{}
