// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tlc591xtest simulates a chain of TLC5916 to test and demo drivers
// without hardware.
//
// The chain decodes what is written to its SDI, CLK, LE and OE pins, or sent
// over its fake SPI port: it shifts data on CLK rising edges, latches it when
// LE falls, and recognizes the OE sequence that switches between normal and
// special mode.
package tlc591xtest

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
)

type role int

const (
	roleSDI role = iota
	roleCLK
	roleLE
	roleOE
)

// sample is the state of OE and LE at a CLK rising edge.
type sample struct {
	oe gpio.Level
	le gpio.Level
	// pwm is set when OE was running PWM, which can't be sampled.
	pwm bool
}

// Chain is a simulated chain of TLC5916.
type Chain struct {
	SDI *Pin
	CLK *Pin
	LE  *Pin
	OE  *Pin

	// Verbose logs every pin write.
	Verbose bool
	// OnChange is called after the visible outputs may have changed: after a
	// latch or an OE change. It is called without any lock held.
	OnChange func(c *Chain)

	mu      sync.Mutex
	shift   []byte
	outputs []byte
	config  []byte
	special bool
	latches int
	edges   int
	// samples holds the last few CLK edges for the mode switch detection.
	samples []sample
}

// NewChain returns a chain of chips in normal mode with every latch cleared.
func NewChain(chips int) *Chain {
	if chips < 1 {
		chips = 1
	}
	c := &Chain{
		shift:   make([]byte, chips),
		outputs: make([]byte, chips),
		config:  make([]byte, chips),
	}
	c.SDI = &Pin{c: c, N: "SDI", role: roleSDI}
	c.CLK = &Pin{c: c, N: "CLK", Num: 1, role: roleCLK, fn: gpio.OUT}
	c.LE = &Pin{c: c, N: "LE", Num: 2, role: roleLE}
	// OE has a pull up on every board worth its name.
	c.OE = &Pin{c: c, N: "OE", Num: 3, role: roleOE, l: gpio.High}
	return c
}

// Chips returns the length of the chain.
func (c *Chain) Chips() int {
	return len(c.outputs)
}

// Outputs returns the output latches, chip 0 first.
func (c *Chain) Outputs() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.outputs...)
}

// Config returns the configuration latches, chip 0 first.
func (c *Chain) Config() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.config...)
}

// Special returns true when the chain is in special mode.
func (c *Chain) Special() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.special
}

// Latches returns the number of LE pulses that latched data.
func (c *Chain) Latches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latches
}

// Edges returns the number of CLK rising edges seen.
func (c *Chain) Edges() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edges
}

// Brightness returns the fraction of time the outputs are on: the time OE is
// Low, so 1 minus the PWM duty when OE runs PWM.
func (c *Chain) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brightness()
}

func (c *Chain) brightness() float64 {
	if c.OE.pwm {
		return 1 - float64(c.OE.d)/float64(gpio.DutyMax)
	}
	if c.OE.l == gpio.Low {
		return 1
	}
	return 0
}

// Lit returns the outputs as seen on the LEDs: the output latches when OE
// lets them through, all off otherwise.
func (c *Chain) Lit() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	lit := make([]byte, len(c.outputs))
	if c.brightness() > 0 {
		copy(lit, c.outputs)
	}
	return lit
}

// switching is true between the OE High, Low, High sequence and the fifth
// CLK edge that completes the mode switch. LE doesn't latch meanwhile.
func (c *Chain) switching() bool {
	n := len(c.samples)
	for k := 3; k <= 4 && k <= n; k++ {
		s := c.samples[n-k:]
		if s[0].isLevel(gpio.High) && s[1].isLevel(gpio.Low) && s[2].isLevel(gpio.High) {
			return true
		}
	}
	return false
}

func (s sample) isLevel(l gpio.Level) bool {
	return !s.pwm && s.oe == l
}

// clockEdge processes a CLK rising edge. c.mu must be held.
func (c *Chain) clockEdge() {
	c.edges++
	// Shift toward SDO: the first bit in ends in bit 0 of the last chip.
	carry := byte(0)
	if c.SDI.l {
		carry = 0x80
	}
	for i := range c.shift {
		next := (c.shift[i] & 1) << 7
		c.shift[i] = c.shift[i]>>1 | carry
		carry = next
	}
	c.samples = append(c.samples, sample{oe: c.OE.l, le: c.LE.l, pwm: c.OE.pwm})
	if len(c.samples) > 5 {
		c.samples = c.samples[1:]
	}
	if len(c.samples) == 5 {
		s := c.samples
		if s[0].isLevel(gpio.High) && s[1].isLevel(gpio.Low) && s[2].isLevel(gpio.High) && s[3].isLevel(gpio.High) && s[4].isLevel(gpio.High) {
			// LE at the fourth edge selects the mode.
			c.special = s[3].le == gpio.High
			c.samples = c.samples[:0]
			c.logf("mode switch: special=%t", c.special)
		}
	}
}

// latch processes a LE falling edge. c.mu must be held.
func (c *Chain) latch() {
	if c.switching() {
		return
	}
	c.latches++
	if c.special {
		copy(c.config, c.shift)
	} else {
		copy(c.outputs, c.shift)
	}
}

func (c *Chain) logf(format string, args ...interface{}) {
	if c.Verbose {
		log.Printf("tlc591xtest: "+format, args...)
	}
}

func (c *Chain) changed() {
	if c.OnChange != nil {
		c.OnChange(c)
	}
}

// Pin is a pin of the simulated chain. It implements gpio.PinOut and
// pin.PinFunc.
type Pin struct {
	N   string
	Num int

	c    *Chain
	role role
	// Grab c.mu before accessing the following members.
	l   gpio.Level
	pwm bool
	d   gpio.Duty
	fn  pin.Func
}

// String implements conn.Resource.
func (p *Pin) String() string {
	return fmt.Sprintf("%s(%d)", p.N, p.Num)
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.N
}

// Number implements pin.Pin.
func (p *Pin) Number() int {
	return p.Num
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return string(p.Func())
}

// Func implements pin.PinFunc.
func (p *Pin) Func() pin.Func {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.fn == "" {
		return gpio.OUT
	}
	return p.fn
}

// SupportedFuncs implements pin.PinFunc.
func (p *Pin) SupportedFuncs() []pin.Func {
	if p.role == roleCLK {
		return []pin.Func{gpio.OUT, spi.CLK}
	}
	if p.role == roleOE {
		return []pin.Func{gpio.OUT, gpio.PWM}
	}
	return []pin.Func{gpio.OUT}
}

// SetFunc implements pin.PinFunc.
func (p *Pin) SetFunc(f pin.Func) error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	switch f {
	case gpio.OUT:
		p.fn = gpio.OUT
		return nil
	case gpio.OUT_LOW, gpio.OUT_HIGH:
		p.fn = gpio.OUT
		p.setLevel(gpio.Level(f == gpio.OUT_HIGH))
		return nil
	}
	for _, s := range p.SupportedFuncs() {
		if f.Generalize() == s {
			p.fn = s
			return nil
		}
	}
	return fmt.Errorf("tlc591xtest: %s can't be set to %s", p, f)
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	p.c.mu.Lock()
	if p.fn != "" && p.fn != gpio.OUT {
		p.c.mu.Unlock()
		return fmt.Errorf("tlc591xtest: %s is set to %s", p, p.fn)
	}
	p.c.logf("%s.Out(%s)", p, l)
	notify := p.setLevel(l)
	p.c.mu.Unlock()
	if notify {
		p.c.changed()
	}
	return nil
}

// setLevel drives the pin and returns true if the visible outputs may have
// changed. c.mu must be held.
func (p *Pin) setLevel(l gpio.Level) bool {
	prev := p.l
	wasPWM := p.pwm
	p.l = l
	p.pwm = false
	switch p.role {
	case roleCLK:
		if !prev && l {
			p.c.clockEdge()
		}
	case roleLE:
		if prev && !l {
			p.c.latch()
			return true
		}
	case roleOE:
		return prev != l || wasPWM
	}
	return false
}

// PWM implements gpio.PinOut. Only OE supports it.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	if p.role != roleOE {
		return errors.New("tlc591xtest: PWM is only supported on OE")
	}
	if !duty.Valid() {
		return fmt.Errorf("tlc591xtest: invalid duty %d", duty)
	}
	p.c.mu.Lock()
	p.c.logf("%s.PWM(%s, %s)", p, duty, f)
	p.pwm = true
	p.d = duty
	p.c.mu.Unlock()
	p.c.changed()
	return nil
}

var _ gpio.PinOut = &Pin{}
var _ pin.PinFunc = &Pin{}
