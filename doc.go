// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package si7021 controls a Silicon Labs Si7021 relative humidity and
// temperature sensor over I²C.
//
// The driver issues the hold-master measurement commands and converts the
// raw 16-bit readings with the datasheet transfer functions. It does not
// implement sensor reset, heater control, resolution configuration or
// checksum validation. Note that some parts of the Si7021 family report
// status flags in the two low bits of the raw measurement; those bits are
// fed to the transfer function unmasked.
//
// # Datasheet
//
// https://www.silabs.com/documents/public/data-sheets/Si7021-A20.pdf
package si7021
