// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm implements the bytecode stack machine described in §4.4 of
// the specification: a small tagged-value stack VM that executes the
// Instruction streams of an ir.Function against a host-supplied state
// and host-function table.
package vm
