// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fxas21002c controls an NXP FXAS21002C 3-axis gyroscope over I²C.
// The device measures angular velocity on three axes at up to ±2000°/s full
// scale and is found on the Adafruit precision gyroscope breakout (product
// 3463).
//
// Readings are reported in radian/s. Changing the measurement range or the
// output data rate drops the device into standby for the duration of the
// register update, as the datasheet requires, and restores the previous run
// state afterwards.
//
// **Datasheet:** https://www.nxp.com/docs/en/data-sheet/FXAS21002.pdf
package fxas21002c
