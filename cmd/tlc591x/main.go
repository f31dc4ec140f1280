// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tlc591x writes text, numbers or raw patterns to a chain of TLC5916 or
// TLC5917 LED sink drivers.
//
// Without hardware, -sim drives a simulated chain shown on the terminal as
// 7-segment digits:
//
//	tlc591x -sim -chips 4 -brightness 128 HELO
//
// On a Raspberry Pi, bit banged:
//
//	tlc591x -sdi GPIO17 -clk GPIO27 -le GPIO22 -oe GPIO18 -chips 2 42
//
// or through SPI0, which only shifts MSB first:
//
//	tlc591x -spi -msb -le GPIO25 -oe GPIO18 -number 1234
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/leddevices/screen7seg"
	"github.com/GermanBionicSystems/leddevices/tlc591x"
	"github.com/GermanBionicSystems/leddevices/tlc591x/segment"
	"github.com/GermanBionicSystems/leddevices/tlc591x/tlc591xtest"
)

var (
	chips      = flag.Int("chips", 4, "number of chips in the chain")
	sdiName    = flag.String("sdi", "GPIO17", "SDI pin, when bit banging")
	clkName    = flag.String("clk", "GPIO27", "CLK pin, when bit banging")
	leName     = flag.String("le", "GPIO22", "LE pin")
	oeName     = flag.String("oe", "", "OE pin, leave empty when OE is tied low")
	useSPI     = flag.Bool("spi", false, "use a SPI port instead of bit banging")
	portName   = flag.String("port", "", "SPI port name, empty for the first one")
	msbFirst   = flag.Bool("msb", false, "the SPI controller only shifts MSB first")
	sim        = flag.Bool("sim", false, "drive a simulated chain shown on the terminal")
	pngPath    = flag.String("png", "", "save the displayed digits as a PNG")
	brightness = flag.Int("brightness", 255, "0 turns the outputs off, 255 fully on, anything between dims them with OE High for (255-brightness)/255 of the time")
	mode       = flag.String("mode", "", "switch the chips to normal or special mode")
	number     = flag.Int("number", -1, "show a 16 bits number on the first two chips")
	raw        = flag.String("raw", "", "show raw hex encoded patterns, first chip first")
	config     = flag.String("config", "", "write hex encoded configuration codes, first chip first")
	scroll     = flag.Int("scroll", 0, "scroll the text that many times")
	interval   = flag.Duration("interval", 300*time.Millisecond, "scroll interval")
	verbose    = flag.Bool("v", false, "log the simulated pin traffic")
)

// open returns the device on the simulated chain or on the host.
func open() (*tlc591x.Dev, *tlc591xtest.Chain, error) {
	opts := &tlc591x.Opts{Chips: *chips, MSBFirstOnly: *msbFirst}
	if *sim {
		c := tlc591xtest.NewChain(*chips)
		c.Verbose = *verbose
		screen := screen7seg.New(&screen7seg.Opts{Digits: c.Chips()})
		c.OnChange = func(c *tlc591xtest.Chain) {
			if _, err := screen.Write(c.Lit()); err != nil {
				log.Print(err)
			}
		}
		opts.OE = c.OE
		var dev *tlc591x.Dev
		var err error
		if *useSPI {
			dev, err = tlc591x.NewSPI(c.SPI(), c.LE, opts)
		} else {
			dev, err = tlc591x.NewBitBang(c.SDI, c.CLK, c.LE, opts)
		}
		return dev, c, err
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	le, err := pinByName(*leName)
	if err != nil {
		return nil, nil, err
	}
	if *oeName != "" {
		if opts.OE, err = pinByName(*oeName); err != nil {
			return nil, nil, err
		}
	}
	if *useSPI {
		// The port is left open for the life of the process.
		p, err := spireg.Open(*portName)
		if err != nil {
			return nil, nil, err
		}
		dev, err := tlc591x.NewSPI(p, le, opts)
		return dev, nil, err
	}
	sdi, err := pinByName(*sdiName)
	if err != nil {
		return nil, nil, err
	}
	clk, err := pinByName(*clkName)
	if err != nil {
		return nil, nil, err
	}
	dev, err := tlc591x.NewBitBang(sdi, clk, le, opts)
	return dev, nil, err
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("invalid pin %q", name)
	}
	return p, nil
}

// show writes what the flags ask for and returns the patterns displayed, first
// chip first.
func show(dev *tlc591x.Dev) ([]byte, error) {
	shown := make([]byte, dev.Chips())
	switch {
	case *raw != "":
		b, err := hex.DecodeString(*raw)
		if err != nil {
			return nil, err
		}
		copy(shown, b)
		return shown, dev.PrintRaw(b)
	case *number >= 0:
		if *number > 0xffff {
			return nil, errors.New("-number must fit in 16 bits")
		}
		if len(shown) == 1 {
			shown[0] = byte(*number)
		} else {
			shown[0] = byte(*number >> 8)
			shown[1] = byte(*number)
		}
		return shown, dev.PrintNumber(uint(*number))
	case flag.NArg() != 0:
		text := strings.Join(flag.Args(), " ")
		if *scroll > 0 {
			err := dev.Scroll(text, *scroll, *interval)
			copy(shown, segment.Encode(text))
			return shown, err
		}
		copy(shown, segment.Encode(text))
		return shown, dev.Print(text)
	}
	return nil, nil
}

func mainImpl() error {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	dev, c, err := open()
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("using %s", dev)
	}
	if *config != "" {
		codes, err := hex.DecodeString(*config)
		if err != nil {
			return err
		}
		if err := dev.WriteConfig(codes...); err != nil {
			return err
		}
	}
	if err := dev.Backlight(display.Intensity(*brightness)); err != nil {
		return err
	}
	shown, err := show(dev)
	if err != nil {
		return err
	}
	switch *mode {
	case "":
	case "normal":
		err = dev.NormalMode()
	case "special":
		err = dev.SpecialMode()
	default:
		err = fmt.Errorf("invalid -mode %q", *mode)
	}
	if err != nil {
		return err
	}
	if c != nil {
		// The simulated chain knows better, Number leaves part of the
		// previous frame on longer chains.
		shown = c.Lit()
	}
	if *pngPath != "" && shown != nil {
		return savePNG(*pngPath, shown)
	}
	return nil
}

func savePNG(path string, patterns []byte) error {
	img, err := segment.Render(patterns, &segment.DefaultRenderOpts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tlc591x: %s.\n", err)
		os.Exit(1)
	}
}
