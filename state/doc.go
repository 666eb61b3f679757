// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package state implements the reactive state manager of §4.5: a
// non-blocking FIFO update queue, a timeout-driven flush, and the
// profiling counters and change-callback fanout that follow a flush.
package state
