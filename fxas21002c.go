// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fxas21002c

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddr is the I²C address of the device with the SA0 pin high, as
// wired on the Adafruit breakout.
const DefaultAddr uint16 = 0x21

// settleDelay is the wait after a run-state transition before register and
// output state is guaranteed valid. The datasheet requires 60ms plus one
// sample period at the configured rate; 100ms covers every rate down to
// 25Hz and matches the reference bring-up sequence.
const settleDelay = 100 * time.Millisecond

const degToRad = math.Pi / 180

// ErrWrongDevice is returned by NewI2C when the WHO_AM_I register does not
// match the expected identity. It usually means a wrong bus address or an
// absent device.
var ErrWrongDevice = errors.New("fxas21002c: unexpected device identity")

var errUnknownRange = errors.New("fxas21002c: unknown measurement range")

// PowerState is the device power mode as tracked by the driver. It changes
// only through NewI2C, SetRange, SetODR, Standby and Halt.
type PowerState uint8

const (
	PowerUnknown PowerState = iota
	PowerStandby
	PowerActive
	PowerResetting
)

func (p PowerState) String() string {
	switch p {
	case PowerStandby:
		return "standby"
	case PowerActive:
		return "active"
	case PowerResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// RawSample is one uncalibrated reading, in device counts.
type RawSample struct {
	X, Y, Z int16
}

func (r RawSample) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", r.X, r.Y, r.Z)
}

// Sample is one calibrated angular velocity reading in radian/s.
type Sample struct {
	X, Y, Z  float32
	Time     time.Time // from time.Now, carries a monotonic reading
	SensorID int32     // Opts.SensorID of the originating device
}

func (s Sample) String() string {
	return fmt.Sprintf("X:%.4frad/s Y:%.4frad/s Z:%.4frad/s", s.X, s.Y, s.Z)
}

// Descriptor describes the sensor for generic consumers, in the shape of a
// unified sensor descriptor.
type Descriptor struct {
	Name     string
	SensorID int32
	// Measurable extremes in radian/s at the current range.
	MaxValue float64
	MinValue float64
	// Resolution is not specified by the datasheet and is left zero.
	Resolution float64
}

// Opts is the configuration applied at bring-up.
type Opts struct {
	// Range is the full-scale measurement range.
	Range Range
	// ODR is the output data rate. Values without a register encoding are
	// kept as the reported rate but the device stays at its previous rate;
	// see SetODR.
	ODR physic.Frequency
	// SensorID is an opaque tag copied into every Sample.
	SensorID int32
	// ChipID overrides the expected WHO_AM_I value. Leave zero for a
	// genuine FXAS21002C.
	ChipID byte
}

// DefaultOpts matches the reference bring-up: ±250°/s at 100Hz.
var DefaultOpts = Opts{
	Range:    Range250DPS,
	ODR:      ODR100Hz,
	SensorID: -1,
}

// Dev is a handle to an FXAS21002C. It owns its transport binding; all
// methods serialize on an internal lock, so a Dev may not be shared across
// independent bring-up attempts but is otherwise safe to use from multiple
// goroutines.
type Dev struct {
	d        *i2c.Dev
	opts     Opts
	mu       sync.Mutex
	shutdown chan struct{}
	rng      Range
	odr      physic.Frequency
	state    PowerState
	raw      RawSample
}

// NewI2C brings up an FXAS21002C on the given bus: it verifies the device
// identity, resets it, programs the configured range and rate and leaves it
// active. The identity check issues a single read and a mismatch aborts
// bring-up before any register is written; the returned error then matches
// ErrWrongDevice.
//
// A failed bring-up can be retried by calling NewI2C again.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.ChipID == 0 {
		o.ChipID = chipID
	}
	if o.Range == 0 {
		o.Range = Range250DPS
	}
	if _, ok := rangeParams[o.Range]; !ok {
		return nil, errUnknownRange
	}
	if o.ODR == 0 {
		o.ODR = ODR100Hz
	}
	d := &Dev{
		d:     &i2c.Dev{Bus: b, Addr: addr},
		opts:  o,
		rng:   o.Range,
		odr:   o.ODR,
		state: PowerUnknown,
	}
	if err := d.bringUp(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("fxas21002c: %s", d.d.String())
}

func (d *Dev) bringUp() error {
	id, err := d.readReg(regWhoAmI)
	if err != nil {
		return fmt.Errorf("fxas21002c: identity read: %w", err)
	}
	if id != d.opts.ChipID {
		return fmt.Errorf("%w: WHO_AM_I %#02x, want %#02x", ErrWrongDevice, id, d.opts.ChipID)
	}
	// Run-state bits must be zero before anything else in CTRL_REG1 or
	// CTRL_REG0 is touched.
	if err := d.writeReg(regCtrl1, 0x00); err != nil {
		return fmt.Errorf("fxas21002c: standby: %w", err)
	}
	d.state = PowerStandby
	if err := d.writeReg(regCtrl1, resetField.mask()); err != nil {
		return fmt.Errorf("fxas21002c: reset: %w", err)
	}
	d.state = PowerResetting
	// The reset bit self-clears and the part boots into standby with all
	// registers at defaults, so absolute writes are safe from here.
	if err := d.writeReg(regCtrl0, fsField.insert(0, rangeParams[d.rng].bits)); err != nil {
		return fmt.Errorf("fxas21002c: range: %w", err)
	}
	bits, ok := odrBits[d.odr]
	if !ok {
		bits = odrBits[ODR100Hz]
	}
	v := runField.insert(odrField.insert(0, bits), runActive)
	if err := d.writeReg(regCtrl1, v); err != nil {
		return fmt.Errorf("fxas21002c: activate: %w", err)
	}
	time.Sleep(settleDelay)
	d.state = PowerActive
	return nil
}

// Sense reads one sample and writes the calibrated angular velocity into s.
// A failed or short bus transaction is returned as an error; s is then left
// zeroed rather than filled with made-up values.
func (d *Dev) Sense(s *Sample) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	*s = Sample{}
	// Single burst transaction: status byte followed by the MSB/LSB pairs
	// for X, Y, Z.
	var buf [7]byte
	if err := d.d.Tx([]byte{regStatus | autoIncrement}, buf[:]); err != nil {
		return fmt.Errorf("fxas21002c: sample read: %w", err)
	}
	d.raw = RawSample{
		X: int16(binary.BigEndian.Uint16(buf[1:3])),
		Y: int16(binary.BigEndian.Uint16(buf[3:5])),
		Z: int16(binary.BigEndian.Uint16(buf[5:7])),
	}
	k := rangeParams[d.rng].sensitivity * degToRad
	s.X = float32(float64(d.raw.X) * k)
	s.Y = float32(float64(d.raw.Y) * k)
	s.Z = float32(float64(d.raw.Z) * k)
	s.Time = time.Now()
	s.SensorID = d.opts.SensorID
	return nil
}

// SenseContinuous reads from the device at the given interval and writes
// samples to the returned channel. To terminate it, call Halt().
//
// interval may not be shorter than the sample period at the configured
// output data rate.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		return nil, errors.New("fxas21002c: SenseContinuous already running")
	}
	if _, ok := odrBits[d.odr]; ok {
		period := time.Duration(int64(time.Second) * int64(physic.Hertz) / int64(d.odr))
		if interval < period {
			return nil, errors.New("fxas21002c: interval is shorter than the device sample period")
		}
	} else if interval <= 0 {
		return nil, errors.New("fxas21002c: invalid interval")
	}
	d.shutdown = make(chan struct{})
	ch := make(chan Sample, 16)
	go func(ch chan Sample, shutdown <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-shutdown:
				return
			case <-ticker.C:
				var s Sample
				if err := d.Sense(&s); err == nil && len(ch) < cap(ch) {
					ch <- s
				}
			}
		}
	}(ch, d.shutdown)
	return ch, nil
}

// Raw returns the uncalibrated counts of the most recent Sense.
func (d *Dev) Raw() RawSample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Range returns the active full-scale range.
func (d *Dev) Range() Range {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng
}

// SetRange changes the full-scale range. The device's full-scale bits may
// only be written while the run-state bits are zero, so the device is
// dropped into standby for the update and the previous run state is
// restored afterwards, in that order.
func (d *Dev) SetRange(r Range) error {
	p, ok := rangeParams[r]
	if !ok {
		return errUnknownRange
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	reg1, err := d.readReg(regCtrl1)
	if err != nil {
		return fmt.Errorf("fxas21002c: set range: %w", err)
	}
	if err := d.writeReg(regCtrl1, runField.insert(reg1, 0)); err != nil {
		return fmt.Errorf("fxas21002c: set range: %w", err)
	}
	d.state = PowerStandby
	reg0, err := d.readReg(regCtrl0)
	if err != nil {
		return fmt.Errorf("fxas21002c: set range: %w", err)
	}
	if err := d.writeReg(regCtrl0, fsField.insert(reg0, p.bits)); err != nil {
		return fmt.Errorf("fxas21002c: set range: %w", err)
	}
	// Restore the previous run state last.
	if err := d.writeReg(regCtrl1, reg1); err != nil {
		return fmt.Errorf("fxas21002c: set range: %w", err)
	}
	if runField.extract(reg1) != 0 {
		d.state = PowerActive
	}
	d.rng = r
	return nil
}

// ODR returns the output data rate as last requested. After a SetODR with a
// value the device has no encoding for, this reflects the requested value,
// not the rate the hardware is running at.
func (d *Dev) ODR() physic.Frequency {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.odr
}

// SetODR changes the output data rate. Like the full-scale bits, the rate
// field shares CTRL_REG1 with the run-state bits and is only written while
// those are zero; the previous run state is restored last.
//
// A rate with no register encoding is recorded as the value ODR reports but
// leaves the hardware at its previous rate. This mirrors the reference
// implementation; pass one of the ODR* constants to stay consistent with
// the device.
func (d *Dev) SetODR(odr physic.Frequency) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.odr = odr
	bits, ok := odrBits[odr]
	if !ok {
		return nil
	}
	reg1, err := d.readReg(regCtrl1)
	if err != nil {
		return fmt.Errorf("fxas21002c: set odr: %w", err)
	}
	run := runField.extract(reg1)
	v := runField.insert(reg1, 0)
	if err := d.writeReg(regCtrl1, v); err != nil {
		return fmt.Errorf("fxas21002c: set odr: %w", err)
	}
	d.state = PowerStandby
	v = odrField.insert(v, bits)
	if err := d.writeReg(regCtrl1, v); err != nil {
		return fmt.Errorf("fxas21002c: set odr: %w", err)
	}
	if err := d.writeReg(regCtrl1, runField.insert(v, run)); err != nil {
		return fmt.Errorf("fxas21002c: set odr: %w", err)
	}
	if run != 0 {
		d.state = PowerActive
	}
	return nil
}

// PowerState returns the power mode the driver last put the device in.
func (d *Dev) PowerState() PowerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Standby moves the device into standby (enter=true) or back into active
// measurement (enter=false) by toggling the run-state bits. Entering
// standby blocks for the settle delay; leaving does not.
func (d *Dev) Standby(enter bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.standby(enter)
}

func (d *Dev) standby(enter bool) error {
	reg1, err := d.readReg(regCtrl1)
	if err != nil {
		return fmt.Errorf("fxas21002c: standby: %w", err)
	}
	run := runActive
	if enter {
		run = 0
	}
	if err := d.writeReg(regCtrl1, runField.insert(reg1, run)); err != nil {
		return fmt.Errorf("fxas21002c: standby: %w", err)
	}
	if enter {
		d.state = PowerStandby
		time.Sleep(settleDelay)
	} else {
		d.state = PowerActive
	}
	return nil
}

// Describe returns the sensor descriptor at the current range.
func (d *Dev) Describe() Descriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	max := float64(d.rng) * degToRad
	return Descriptor{
		Name:     "FXAS21002C",
		SensorID: d.opts.SensorID,
		MaxValue: max,
		MinValue: -max,
	}
}

// Halt stops a SenseContinuous operation if one is running and places the
// device in standby. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shutdown != nil {
		close(d.shutdown)
		d.shutdown = nil
	}
	return d.standby(true)
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Dev) writeReg(reg, val byte) error {
	return d.d.Tx([]byte{reg, val}, nil)
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
