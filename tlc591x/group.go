// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group implements gpio.Group and writes several outputs of the chain in a
// single shift.
type Group struct {
	dev  *Dev
	pins []Pin
}

// Group returns a subset of the chain outputs as a gpio.Group. At most 64
// outputs fit in a gpio.GPIOValue.
func (d *Dev) Group(pins ...int) (gpio.Group, error) {
	if len(pins) > 64 {
		return nil, fmt.Errorf("tlc591x: a group holds at most 64 outputs, got %d", len(pins))
	}
	gr := Group{dev: d, pins: make([]Pin, len(pins))}
	for ix, number := range pins {
		if number < 0 || number >= len(d.Pins) {
			return nil, fmt.Errorf("tlc591x: invalid output %d", number)
		}
		gr.pins[ix] = *d.Pins[number].(*Pin)
	}
	return &gr, nil
}

// Pins returns the outputs of the group.
func (gr *Group) Pins() []pin.Pin {
	result := make([]pin.Pin, len(gr.pins))
	for ix := range gr.pins {
		result[ix] = &gr.pins[ix]
	}
	return result
}

// ByOffset returns the pin at offset in the group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.pins) {
		return nil
	}
	return &gr.pins[offset]
}

// ByName returns the pin of the group with that name.
func (gr *Group) ByName(name string) pin.Pin {
	for ix := range gr.pins {
		if gr.pins[ix].name == name {
			return &gr.pins[ix]
		}
	}
	return nil
}

// ByNumber returns the pin of the group with that chain output number.
func (gr *Group) ByNumber(number int) pin.Pin {
	for ix := range gr.pins {
		if gr.pins[ix].number == number {
			return &gr.pins[ix]
		}
	}
	return nil
}

// Out writes value to the outputs of the group. Only outputs identified by
// mask are modified; a mask of 0 means all of them.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = ^gpio.GPIOValue(0)
		if len(gr.pins) < 64 {
			mask = gpio.GPIOValue(1)<<len(gr.pins) - 1
		}
	}
	numbers := make([]int, len(gr.pins))
	for ix := range gr.pins {
		numbers[ix] = gr.pins[ix].number
	}
	return gr.dev.writeOutputs(numbers, value, mask)
}

// Read is not available, the chips have no readback.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, gpio.ErrGroupFeatureNotImplemented
}

// WaitForEdge is not available, the outputs are write only.
func (gr *Group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, gpio.ErrGroupFeatureNotImplemented
}

// Halt frees the group's resources and prevents it from being used again.
func (gr *Group) Halt() error {
	gr.pins = nil
	return nil
}

func (gr *Group) String() string {
	var sb strings.Builder
	sb.WriteString(devName + "[ ")
	for ix := range gr.pins {
		fmt.Fprintf(&sb, "%d ", gr.pins[ix].number)
	}
	sb.WriteString("]")
	return sb.String()
}

var _ gpio.Group = &Group{}
