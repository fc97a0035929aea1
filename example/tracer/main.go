// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tracer records gyroscope samples for a few seconds, shows them live as
// terminal bars and writes a PNG strip chart of all three axes.
//
// Useful to check axis wiring and to get a feel for the noise floor at a
// given range and data rate.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/mems-drivers/fxas21002c"
	"github.com/mems-drivers/fxas21002c/gyroterm"
)

var axisNames = [3]string{"X", "Y", "Z"}

var axisColors = [3][3]float64{
	{1, 0, 0},
	{0, 0.8, 0},
	{0, 0, 1},
}

func main() {
	busName := flag.String("bus", "", "I²C bus to use, empty for the first available")
	addr := flag.Uint("addr", uint(fxas21002c.DefaultAddr), "I²C address of the device")
	duration := flag.Duration("duration", 5*time.Second, "how long to record")
	interval := flag.Duration("interval", 50*time.Millisecond, "sampling interval")
	out := flag.String("out", "trace.png", "strip chart output file")
	flag.Parse()

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	d, err := fxas21002c.NewI2C(bus, uint16(*addr), &fxas21002c.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	desc := d.Describe()
	fmt.Printf("%s, ±%.2frad/s at %s\n", d, desc.MaxValue, d.ODR())

	term := gyroterm.New(&gyroterm.Opts{Width: 20, FullScale: desc.MaxValue})
	defer term.Halt()

	ch, err := d.SenseContinuous(*interval)
	if err != nil {
		log.Fatal(err)
	}
	var samples []fxas21002c.Sample
	stop := time.After(*duration)
loop:
	for {
		select {
		case <-stop:
			break loop
		case s := <-ch:
			samples = append(samples, s)
			if err := term.Draw(s); err != nil {
				log.Fatal(err)
			}
		}
	}
	if err := d.Halt(); err != nil {
		log.Fatal(err)
	}
	if len(samples) == 0 {
		log.Fatal("no samples recorded")
	}
	if err := plot(samples, desc.MaxValue, *out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n%d samples written to %s\n", len(samples), *out)
}

// plot renders the recorded samples as one line per axis, full scale top to
// bottom, zero in the middle.
func plot(samples []fxas21002c.Sample, fullScale float64, path string) error {
	const w, h = 800, 300
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Zero line.
	dc.SetRGB(0.7, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, h/2, w, h/2)
	dc.Stroke()

	step := w / float64(len(samples))
	dc.SetFontFace(basicfont.Face7x13)
	for axis := 0; axis < 3; axis++ {
		c := axisColors[axis]
		dc.SetRGB(c[0], c[1], c[2])
		for i, s := range samples {
			v := [3]float32{s.X, s.Y, s.Z}[axis]
			x := float64(i) * step
			y := h/2 - float64(v)/fullScale*(h/2)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		dc.DrawString(axisNames[axis], float64(10+axis*20), 15)
	}
	return dc.SavePNG(path)
}
