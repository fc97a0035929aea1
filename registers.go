// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fxas21002c

import "periph.io/x/conn/v3/physic"

// Register addresses. The output registers form one contiguous block so a
// status+axis read can be done in a single transaction starting at regStatus.
const (
	regStatus  byte = 0x00 // data ready flags, start of the burst read block
	regOutXMSB byte = 0x01
	regOutXLSB byte = 0x02
	regOutYMSB byte = 0x03
	regOutYLSB byte = 0x04
	regOutZMSB byte = 0x05
	regOutZLSB byte = 0x06
	regWhoAmI  byte = 0x0C // fixed identity, 0xD7
	regCtrl0   byte = 0x0D // full-scale selection, filters
	regCtrl1   byte = 0x13 // reset, output data rate, run state
	regCtrl2   byte = 0x14 // interrupt configuration, not used by this driver
)

const (
	// chipID is the WHO_AM_I value of a genuine FXAS21002C.
	chipID byte = 0xD7

	// autoIncrement, OR'd into a register address, makes the device advance
	// the register pointer after every byte of a read.
	autoIncrement byte = 0x80

	// runActive is the run-state field value for normal measurement
	// (READY and ACTIVE both set). All-zero is standby.
	runActive byte = 0x03
)

// field is a bit field within a control register, identified by the register
// address plus bit offset and width. Going through insert guarantees a
// read-modify-write never disturbs bits outside the field.
type field struct {
	reg   byte
	shift uint
	width uint
}

func (f field) mask() byte {
	return byte(1<<f.width-1) << f.shift
}

// insert returns regVal with the field replaced by v. Bits of v outside the
// field width are discarded.
func (f field) insert(regVal, v byte) byte {
	return regVal&^f.mask() | v<<f.shift&f.mask()
}

func (f field) extract(regVal byte) byte {
	return (regVal & f.mask()) >> f.shift
}

var (
	// CTRL_REG0 bits 1:0, full-scale range. Legal to change only while the
	// run-state bits are zero.
	fsField = field{reg: regCtrl0, shift: 0, width: 2}
	// CTRL_REG1 bits 4:2, output data rate.
	odrField = field{reg: regCtrl1, shift: 2, width: 3}
	// CTRL_REG1 bit 6, software reset. Self-clearing.
	resetField = field{reg: regCtrl1, shift: 6, width: 1}
	// CTRL_REG1 bits 1:0, READY/ACTIVE run state.
	runField = field{reg: regCtrl1, shift: 0, width: 2}
)

// Range selects the full-scale measurement range in degree/s.
type Range uint16

const (
	Range250DPS  Range = 250
	Range500DPS  Range = 500
	Range1000DPS Range = 1000
	Range2000DPS Range = 2000
)

// rangeParams pairs each range with its CTRL_REG0 encoding and its LSB
// sensitivity in degree/s per count (datasheet table 35). Encoding and
// sensitivity are a fixed pair; neither is ever computed from the numeric
// range at runtime. Full scale is 1.024x the nominal range on every setting.
var rangeParams = map[Range]struct {
	bits        byte
	sensitivity float64
}{
	Range250DPS:  {0x03, 0.0078125},
	Range500DPS:  {0x02, 0.015625},
	Range1000DPS: {0x01, 0.03125},
	Range2000DPS: {0x00, 0.0625},
}

// Output data rates with a CTRL_REG1 encoding. 0x07 also selects 12.5Hz on
// this device; the driver only ever writes 0x06.
const (
	ODR800Hz  physic.Frequency = 800 * physic.Hertz
	ODR400Hz  physic.Frequency = 400 * physic.Hertz
	ODR200Hz  physic.Frequency = 200 * physic.Hertz
	ODR100Hz  physic.Frequency = 100 * physic.Hertz
	ODR50Hz   physic.Frequency = 50 * physic.Hertz
	ODR25Hz   physic.Frequency = 25 * physic.Hertz
	ODR12p5Hz physic.Frequency = 12500 * physic.MilliHertz
)

var odrBits = map[physic.Frequency]byte{
	ODR800Hz:  0x00,
	ODR400Hz:  0x01,
	ODR200Hz:  0x02,
	ODR100Hz:  0x03,
	ODR50Hz:   0x04,
	ODR25Hz:   0x05,
	ODR12p5Hz: 0x06,
}
