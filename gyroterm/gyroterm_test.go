// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gyroterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mems-drivers/fxas21002c"
)

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Width: 8, FullScale: 1, Writer: &out})
	if err := d.Draw(fxas21002c.Sample{X: 0.5, Y: -0.25, Z: 2}); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "\r") {
		t.Error("draw does not rewrite the current line")
	}
	if !strings.Contains(s, "rad/s") {
		t.Errorf("missing numeric readout: %q", s)
	}
	out.Reset()
	// Values beyond full scale must clamp, not panic or overrun.
	if err := d.Draw(fxas21002c.Sample{X: 100, Y: -100, Z: 100}); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\033[0m") {
		t.Error("halt does not reset terminal colors")
	}
}

func TestString(t *testing.T) {
	d := New(&Opts{Width: 4})
	if len(d.String()) == 0 {
		t.Error("invalid String() result")
	}
}
