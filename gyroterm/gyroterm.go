// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gyroterm renders gyroscope samples as colored bars on the
// terminal (stdout) using ANSI color codes.
//
// Useful to eyeball sensor noise and axis response without wiring up a
// display: each axis is one bar whose length is the magnitude of the
// angular velocity relative to a full-scale value.
package gyroterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/mems-drivers/fxas21002c"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width is the bar length in terminal cells per axis.
	Width int
	// FullScale is the angular velocity in radian/s shown as a full bar.
	FullScale float64
	// Writer overrides the output; nil means stdout.
	Writer  io.Writer
	Palette *ansi256.Palette

	_ struct{}
}

var axisColors = [3]color.NRGBA{
	{R: 255, A: 255}, // X
	{G: 255, A: 255}, // Y
	{B: 255, A: 255}, // Z
}

// Dev draws angular velocity bars to the console.
type Dev struct {
	w         io.Writer
	width     int
	fullScale float64
	palette   ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	fs := opts.FullScale
	if fs == 0 {
		fs = 250 * math.Pi / 180
	}
	return &Dev{
		w:         w,
		width:     opts.Width,
		fullScale: fs,
		palette:   *p,
	}
}

func (d *Dev) String() string {
	return "GyroTerm"
}

// Halt resets the terminal colors so the display is not corrupted.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Draw renders one sample in place, overwriting the current line.
func (d *Dev) Draw(s fxas21002c.Sample) error {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i, v := range [3]float64{float64(s.X), float64(s.Y), float64(s.Z)} {
		d.bar(v, axisColors[i])
		_, _ = d.buf.WriteString("\033[0m ")
	}
	fmt.Fprintf(&d.buf, "% 8.4f % 8.4f % 8.4f rad/s", s.X, s.Y, s.Z)
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) bar(v float64, c color.NRGBA) {
	n := int(math.Abs(v) / d.fullScale * float64(d.width))
	if n > d.width {
		n = d.width
	}
	off := color.NRGBA{R: 32, G: 32, B: 32, A: 255}
	for i := 0; i < d.width; i++ {
		if i < n {
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		} else {
			_, _ = io.WriteString(&d.buf, d.palette.Block(off))
		}
	}
}

var _ fmt.Stringer = &Dev{}
