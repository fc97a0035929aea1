// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fxas21002c

import (
	"math"
	"testing"
)

func TestFieldMask(t *testing.T) {
	tests := []struct {
		f    field
		want byte
	}{
		{fsField, 0x03},
		{odrField, 0x1C},
		{resetField, 0x40},
		{runField, 0x03},
	}
	for _, test := range tests {
		if got := test.f.mask(); got != test.want {
			t.Errorf("mask of field at %d/%d: got %#02x, want %#02x", test.f.shift, test.f.width, got, test.want)
		}
	}
}

// TestFieldInsert checks that writes through a field never disturb bits
// outside the field, for every field and a spread of register values.
func TestFieldInsert(t *testing.T) {
	fields := []field{fsField, odrField, resetField, runField}
	for _, f := range fields {
		for _, regVal := range []byte{0x00, 0x0F, 0xA5, 0xFF} {
			for _, v := range []byte{0x00, 0x01, 0xFF} {
				got := f.insert(regVal, v)
				if got&^f.mask() != regVal&^f.mask() {
					t.Errorf("field %d/%d: insert(%#02x, %#02x) = %#02x disturbed outside bits", f.shift, f.width, regVal, v, got)
				}
				if f.extract(got) != v&byte(1<<f.width-1) {
					t.Errorf("field %d/%d: extract(insert(%#02x, %#02x)) = %#02x", f.shift, f.width, regVal, v, f.extract(got))
				}
			}
		}
	}
}

// TestRangeParams checks that the range table covers every defined range,
// that the encodings are distinct, and that each sensitivity matches its
// range: full scale is 1.024x nominal on every setting, so
// sensitivity*32768 == range*1.024.
func TestRangeParams(t *testing.T) {
	seen := map[byte]Range{}
	for _, r := range []Range{Range250DPS, Range500DPS, Range1000DPS, Range2000DPS} {
		p, ok := rangeParams[r]
		if !ok {
			t.Fatalf("range %d missing from table", r)
		}
		if prev, dup := seen[p.bits]; dup {
			t.Errorf("ranges %d and %d share encoding %#02x", prev, r, p.bits)
		}
		seen[p.bits] = r
		if got, want := p.sensitivity*32768, float64(r)*1.024; math.Abs(got-want) > 1e-9 {
			t.Errorf("range %d: full scale %f°/s, want %f°/s", r, got, want)
		}
		// Full scale converted to radian/s stays within 2.5% of the
		// documented maximum for the range.
		fullScale := p.sensitivity * 32767 * degToRad
		if limit := float64(r) * degToRad * 1.024; fullScale > limit {
			t.Errorf("range %d: full scale %frad/s exceeds %frad/s", r, fullScale, limit)
		}
	}
}

func TestODRBits(t *testing.T) {
	seen := map[byte]bool{}
	for odr, bits := range odrBits {
		if bits > 0x07 {
			t.Errorf("odr %s: encoding %#02x does not fit the 3-bit field", odr, bits)
		}
		if seen[bits] {
			t.Errorf("duplicate odr encoding %#02x", bits)
		}
		seen[bits] = true
	}
	if len(odrBits) != 7 {
		t.Errorf("odr table has %d entries, want 7", len(odrBits))
	}
}
