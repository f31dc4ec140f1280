// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segment maps printable ASCII characters to 7-segment LED patterns.
//
// One byte drives one digit. The bit assignment matches the usual wiring of a
// common anode digit to the OUT0-OUT7 sinks of a TLC5916:
//
//	   --A--
//	  |     |
//	  F     B
//	  |     |
//	   --G--
//	  |     |
//	  E     C
//	  |     |
//	   --D--   .DP
//
// Characters that cannot be represented are blank.
package segment

// Segment bits.
const (
	D  byte = 0x01
	F  byte = 0x02
	G  byte = 0x04
	E  byte = 0x08
	C  byte = 0x10
	B  byte = 0x20
	A  byte = 0x40
	DP byte = 0x80

	// Blank is the pattern of a dark digit.
	Blank byte = 0x00
)

const (
	firstCode = 0x20
	lastCode  = 0x7f
)

// table holds the patterns for ASCII 0x20 through 0x7f. Control characters
// are not stored.
var table = [96]byte{
	0x00, 0x67, 0x22, 0x41, 0x18, 0x12, 0x45, 0x20, // 20: spc ! " # $ % & '
	0x49, 0x51, 0x63, 0x28, 0x10, 0x04, 0x00, 0x2c, // 28:   ( ) * + , - . /
	0x7b, 0x30, 0x6d, 0x75, 0x36, 0x57, 0x5f, 0x70, // 30:   0 1 2 3 4 5 6 7
	0x7f, 0x77, 0x44, 0x5d, 0x0d, 0x05, 0x15, 0x6c, // 38:   8 9 : ; < = > ?
	0x00, 0x7e, 0x1f, 0x4b, 0x3d, 0x4f, 0x4e, 0x5b, // 40:   @ A B C D E F G
	0x3e, 0x0a, 0x39, 0x0f, 0x0b, 0x5c, 0x1c, 0x7b, // 48:   H I J K L M N O
	0x6e, 0x76, 0x0c, 0x57, 0x4a, 0x3b, 0x3b, 0x59, // 50:   P Q R S T U V W
	0x3a, 0x37, 0x7d, 0x4b, 0x16, 0x71, 0x62, 0x01, // 58:   X Y Z [ \ ] ^ _
	0x02, 0x7e, 0x1f, 0x0d, 0x3d, 0x4f, 0x4e, 0x5b, // 60:   ` a b c d e f g
	0x1e, 0x08, 0x39, 0x0f, 0x0b, 0x5c, 0x1c, 0x1d, // 68:   h i j k l m n o
	0x6e, 0x76, 0x0c, 0x57, 0x4a, 0x19, 0x19, 0x59, // 70:   p q r s t u v w
	0x3a, 0x37, 0x7d, 0x4d, 0x08, 0x55, 0x66, 0x00, // 78:   x y z { | } ~ DEL
}

// Lookup returns the segment pattern for the character code c. Codes outside
// of 0x20-0x7f, negative ones included, return Blank.
func Lookup(c rune) byte {
	if c < firstCode || c > lastCode {
		return Blank
	}
	return table[c-firstCode]
}

// Encode converts s byte by byte. Bytes above 0x7f, which includes every
// byte of a multi-byte UTF-8 sequence, are blank.
func Encode(s string) []byte {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = Lookup(rune(s[i]))
	}
	return b
}
