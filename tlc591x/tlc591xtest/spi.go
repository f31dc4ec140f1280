// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tlc591xtest

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPI returns a fake SPI port wired to the chain: MOSI is SDI and CLK is the
// chain's CLK pin, which is switched to its SPI function. The port only
// shifts while the CLK pin is in that function.
func (c *Chain) SPI() *Port {
	c.mu.Lock()
	c.CLK.fn = spi.CLK
	c.mu.Unlock()
	return &Port{c: c}
}

// Port implements spi.PortCloser and spi.Pins.
type Port struct {
	c         *Chain
	connected bool
	// Mode and Freq are the values passed to Connect.
	Mode spi.Mode
	Freq physic.Frequency
}

func (p *Port) String() string {
	return "tlc591xtest-spi"
}

// Close implements spi.PortCloser.
func (p *Port) Close() error {
	return nil
}

// LimitSpeed implements spi.PortCloser.
func (p *Port) LimitSpeed(f physic.Frequency) error {
	return nil
}

// Connect implements spi.Port. Only mode 0 with 8 bits words is supported.
func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.connected {
		return nil, errors.New("tlc591xtest: Connect cannot be called twice")
	}
	if mode&spi.Mode3 != spi.Mode0 {
		return nil, fmt.Errorf("tlc591xtest: the chips sample on the rising edge, %s doesn't", mode)
	}
	if bits != 8 {
		return nil, fmt.Errorf("tlc591xtest: invalid bits %d", bits)
	}
	p.connected = true
	p.Mode = mode
	p.Freq = f
	return &portConn{p: p}, nil
}

// CLK implements spi.Pins.
func (p *Port) CLK() gpio.PinOut {
	return p.c.CLK
}

// MOSI implements spi.Pins.
func (p *Port) MOSI() gpio.PinOut {
	return p.c.SDI
}

// MISO implements spi.Pins. SDO is not simulated.
func (p *Port) MISO() gpio.PinIn {
	return gpio.INVALID
}

// CS implements spi.Pins. The chips have no chip select.
func (p *Port) CS() gpio.PinOut {
	return gpio.INVALID
}

type portConn struct {
	p *Port
}

func (pc *portConn) String() string {
	return pc.p.String()
}

func (pc *portConn) Duplex() conn.Duplex {
	return conn.Half
}

// Tx clocks w into the chain. Reading is not supported.
func (pc *portConn) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("tlc591xtest: SDO is not simulated")
	}
	c := pc.p.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.CLK.fn != spi.CLK {
		return fmt.Errorf("tlc591xtest: %s is set to %s, not %s", c.CLK, c.CLK.fn, spi.CLK)
	}
	for _, b := range w {
		for i := 0; i < 8; i++ {
			bit := b & (0x80 >> i)
			if pc.p.Mode&spi.LSBFirst != 0 {
				bit = b & (1 << i)
			}
			c.SDI.l = bit != 0
			c.CLK.l = gpio.High
			c.clockEdge()
			c.CLK.l = gpio.Low
		}
	}
	return nil
}

// TxPackets implements spi.Conn.
func (pc *portConn) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		if err := pc.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

var _ spi.PortCloser = &Port{}
var _ spi.Pins = &Port{}
