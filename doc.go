// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package leddevices is a container for LED driver chips and their tooling.
//
// tlc591x drives chains of TLC5916 and TLC5917 constant current sink drivers,
// tlc591x/tlc591xtest simulates such a chain and screen7seg shows 7-segment
// digits on the terminal.
package leddevices
