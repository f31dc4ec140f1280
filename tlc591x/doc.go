// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tlc591x controls a chain of Texas Instruments TLC5916 or TLC5917
// 8-channel constant-current LED sink drivers.
//
// The chips are shift registers: data is clocked in on SDI least significant
// bit first, and a pulse on LE copies the shift register to the output
// latches. Chips are daisy-chained SDO to SDI, so the byte for the last chip
// of the chain is sent first. The active low OE line blanks the outputs and
// can be driven with PWM to dim them.
//
// The bus can be bit-banged on two GPIO pins (NewBitBang) or use an SPI
// port (NewSPI), in which case only LE and, optionally, OE are GPIOs.
//
// # Special mode
//
// Both chips have a special mode in which LE stores the shift register into
// a configuration latch that sets the output current gain. The chip is
// switched between modes with a sequence of OE levels sampled on CLK rising
// edges, so switching needs the OE pin, and with SPI it needs to borrow the
// CLK pin from the SPI controller for the duration of the sequence.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/tlc5916.pdf
package tlc591x
