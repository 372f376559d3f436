// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7021

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// SensorAddress is the fixed 7-bit I²C address of the Si7021.
const SensorAddress i2c.Addr = 0x40

const (
	// Byte commands for the device. Reset, heater control and measurement
	// resolution configuration are not implemented.

	// Triggers a humidity conversion. The device measures temperature
	// first and latches it internally.
	cmdMeasureHumidity byte = 0xE5
	// Triggers a standalone temperature conversion.
	cmdMeasureTemperature byte = 0xE3
	// Reads the temperature latched by the most recent humidity
	// conversion. Does not trigger a new conversion.
	cmdReadTemperature byte = 0xE0
)

// Dev represents a Si7021 relative humidity/temperature sensor.
//
// The driver assumes exclusive, uncontended access to its connection for
// the duration of each call. Callers sharing one bus across devices or
// goroutines must serialize access themselves.
type Dev struct {
	c conn.Conn
}

// New returns a driver communicating with the sensor over c. No I/O is
// performed.
func New(c conn.Conn) *Dev {
	return &Dev{c: c}
}

// NewI2C returns a driver using the sensor's fixed address on bus b.
func NewI2C(b i2c.Bus) (*Dev, error) {
	return New(&i2c.Dev{Bus: b, Addr: uint16(SensorAddress)}), nil
}

// RelativeHumidity triggers a humidity conversion and returns the result,
// clamped into 0..100%RH per the datasheet. The device also latches the
// temperature it measured during the conversion; retrieve it with
// LastTemperature.
func (d *Dev) RelativeHumidity() (physic.RelativeHumidity, error) {
	count, err := d.readWord(cmdMeasureHumidity)
	if err != nil {
		return 0, err
	}
	return countToHumidity(count), nil
}

// Temperature triggers a temperature conversion and returns the result.
func (d *Dev) Temperature() (physic.Temperature, error) {
	count, err := d.readWord(cmdMeasureTemperature)
	if err != nil {
		return 0, err
	}
	return countToTemperature(count), nil
}

// LastTemperature returns the temperature latched by the most recent
// humidity conversion, without triggering a new conversion. If no humidity
// measurement was ever performed the register contents are device-defined;
// the driver does not track measurement ordering.
func (d *Dev) LastTemperature() (physic.Temperature, error) {
	count, err := d.readWord(cmdReadTemperature)
	if err != nil {
		return 0, err
	}
	return countToTemperature(count), nil
}

// Sense measures humidity, then reads the temperature latched by that
// measurement. Pressure is always 0, the device does not measure it.
func (d *Dev) Sense(e *physic.Env) error {
	e.Pressure = 0
	h, err := d.RelativeHumidity()
	if err != nil {
		return err
	}
	t, err := d.LastTemperature()
	if err != nil {
		return err
	}
	e.Humidity = h
	e.Temperature = t
	return nil
}

// Precision returns the smallest change in readings the device produces at
// its default resolution (12 bit humidity, 14 bit temperature).
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 100
	e.Humidity = physic.PercentRH / 100
	e.Pressure = 0
}

// Halt implements conn.Resource. The driver runs nothing in the
// background, so there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("si7021: %s", d.c)
}

// readWord writes a single command byte, reads the two byte reply and
// returns it as a big-endian uint16. Each measurement is exactly one write
// followed by one read; a failed write returns before the read is
// attempted. Transport errors are returned as-is.
func (d *Dev) readWord(cmd byte) (uint16, error) {
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return 0, err
	}
	r := make([]byte, 2)
	if err := d.c.Tx(nil, r); err != nil {
		return 0, err
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

// Transfer functions from section 5.1 of the datasheet. The status bits
// some parts report in the low bits of the count are not masked off before
// conversion.

func countToHumidity(count uint16) physic.RelativeHumidity {
	// %RH = 125*count/65536 - 6
	rh := physic.RelativeHumidity((125.0*float64(count)/65536.0 - 6.0) * float64(physic.PercentRH))
	// The linear formula can stray slightly outside 0..100%RH near the
	// extremes; the datasheet says to clamp.
	if rh < 0 {
		rh = 0
	} else if rh > 100*physic.PercentRH {
		rh = 100 * physic.PercentRH
	}
	return rh
}

func countToTemperature(count uint16) physic.Temperature {
	// T = 175.72*count/65536 - 46.85
	// The datasheet defines no hard bound, so no clamp is applied.
	return physic.Temperature(float64(physic.Kelvin)*(175.72*float64(count)/65536.0-46.85)) + physic.ZeroCelsius
}

var _ conn.Resource = &Dev{}
