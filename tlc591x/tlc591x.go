// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	// MinChips and MaxChips bound Opts.Chips. Values outside are clamped.
	MinChips = 1
	MaxChips = 254

	devName = "TLC591x"
	// outputsPerChip is the number of sink outputs of one chip.
	outputsPerChip = 8
)

var (
	// ErrNoOutputEnable is returned by operations that can't be done without
	// the OE pin.
	ErrNoOutputEnable = errors.New("tlc591x: OE pin is not wired")
	// ErrNoClock is returned by mode switches on a SPI port that doesn't
	// expose its CLK pin, when Opts.CLK is not set either.
	ErrNoClock = errors.New("tlc591x: CLK pin is not available for the mode switch")
	// ErrNotImplemented is returned by Pin.PWM.
	ErrNotImplemented = errors.New("tlc591x: not implemented")
)

// Opts is the chain configuration.
type Opts struct {
	// Chips is the number of chips daisy-chained.
	Chips int
	// OE is the output enable pin. Leave nil when OE is tied low; enable,
	// brightness and mode switching are then no-ops.
	OE gpio.PinOut
	// PWMFrequency is the OE PWM frequency for SetBrightness. 0 lets the pin
	// pick.
	PWMFrequency physic.Frequency
	// CLK is the SPI clock pin, used by NewSPI for mode switching when the
	// port doesn't implement spi.Pins.
	CLK gpio.PinOut
	// MSBFirstOnly is for SPI controllers that can't shift LSB first, like the
	// BCM283x. Bytes are then mirrored before being sent.
	MSBFirstOnly bool
}

// DefaultOpts is a single chip with OE tied low.
var DefaultOpts = Opts{Chips: 1}

// Dev is a chain of TLC5916 or TLC5917.
//
// Dev is not safe for concurrent use, except for the Pins and Group writes.
type Dev struct {
	// Pins are the sink outputs of the chain, 8 per chip. Pin n is output
	// n%8 of chip n/8.
	Pins []gpio.PinOut

	t     transport
	le    gpio.PinOut
	oe    outputEnable
	chips int
	mode  Mode

	// mu guards outputs, the frame last written through Pins or a Group.
	mu      sync.Mutex
	outputs []byte
	stale   bool
}

// NewBitBang returns a chain driven by toggling the sdi and clk GPIOs. le is
// the latch pin.
func NewBitBang(sdi, clk, le gpio.PinOut, opts *Opts) (*Dev, error) {
	if !usablePin(sdi) || !usablePin(clk) || !usablePin(le) {
		return nil, errors.New("tlc591x: SDI, CLK and LE pins are required")
	}
	t, err := newBitBang(sdi, clk)
	if err != nil {
		return nil, wrap(err)
	}
	return newDev(t, le, opts)
}

// NewSPI returns a chain driven through the SPI port p, connected at 10MHz in
// mode 0, LSB first. le is the latch pin.
func NewSPI(p spi.Port, le gpio.PinOut, opts *Opts) (*Dev, error) {
	if !usablePin(le) {
		return nil, errors.New("tlc591x: LE pin is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	t, err := newSPITransport(p, opts.CLK, opts.MSBFirstOnly)
	if err != nil {
		return nil, wrap(err)
	}
	return newDev(t, le, opts)
}

func newDev(t transport, le gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		t:     t,
		le:    le,
		chips: clampChips(opts.Chips),
		stale: true,
	}
	if usablePin(opts.OE) {
		d.oe = outputEnable{p: opts.OE, freq: opts.PWMFrequency}
		// Start blanked until the first Enable.
		if err := opts.OE.Out(gpio.High); err != nil {
			return nil, wrap(err)
		}
	}
	if err := le.Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	d.outputs = make([]byte, d.chips)
	d.Pins = make([]gpio.PinOut, d.chips*outputsPerChip)
	for ix := range d.Pins {
		d.Pins[ix] = &Pin{number: ix, name: fmt.Sprintf("%s_OUT%d", devName, ix), dev: d}
	}
	return d, nil
}

func clampChips(n int) int {
	if n < MinChips {
		return MinChips
	}
	if n > MaxChips {
		return MaxChips
	}
	return n
}

// Chips returns the length of the chain.
func (d *Dev) Chips() int {
	return d.chips
}

// Show shifts f into the chain and latches it.
func (d *Dev) Show(f Frame) error {
	d.invalidateOutputs()
	return wrap(d.shift(f.wire(d.chips)))
}

// Print shows s on a chain of 7-segment digits, one character per chip.
func (d *Dev) Print(s string) error {
	return d.Show(Text(s))
}

// PrintRaw shows b unchanged, one byte per chip.
func (d *Dev) PrintRaw(b []byte) error {
	return d.Show(Raw(b))
}

// PrintNumber shows the low 16 bits of n on the first two chips.
func (d *Dev) PrintNumber(n uint) error {
	return d.Show(Number(n))
}

// invalidateOutputs forces the next Pin or Group write to shift, after the
// chain was written some other way.
func (d *Dev) invalidateOutputs() {
	d.mu.Lock()
	d.stale = true
	d.mu.Unlock()
}

// shift sends w then pulses LE once.
func (d *Dev) shift(w []byte) error {
	for _, b := range w {
		if err := writeByte(d.t, &d.oe, b); err != nil {
			return err
		}
	}
	return pulse(d.le)
}

// Scroll scrolls text right to left across the chain count times, moving one
// character per interval, with a blank between repetitions. Text that fits
// on the chain is shown for as long as scrolling it would have taken.
func (d *Dev) Scroll(text string, count int, interval time.Duration) error {
	if len(text) <= d.chips {
		if err := d.Print(text); err != nil {
			return err
		}
		time.Sleep(time.Duration(count*len(text)) * interval)
		return nil
	}
	data := text + " " + text
	var pos int
	for shifts := count * (len(text) + 1); shifts > 0; shifts-- {
		if err := d.Print(data[pos : pos+d.chips]); err != nil {
			return err
		}
		pos++
		if pos > len(text) {
			pos = 0
		}
		time.Sleep(interval)
	}
	return nil
}

// Halt implements conn.Resource. It disables the outputs when OE is wired
// and leaves every other pin as is.
func (d *Dev) Halt() error {
	return d.Disable()
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s, chips: %d}", devName, d.t, d.chips)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoClock) || errors.Is(err, ErrNoOutputEnable) {
		return err
	}
	return fmt.Errorf("tlc591x: %w", err)
}

var _ conn.Resource = &Dev{}
