// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collab declares the external-collaborator contracts named in
// §1/§6: surface-syntax parsers, an HTML/CSS emission backend, and a
// file-watch source for hot reload. None of these is implemented here
// — a concrete Parser lives with its own language tooling, a concrete
// Backend lives with its own rendering stack, and a concrete
// FileWatcher lives with its own OS-notification layer (the teacher's
// own GUI backends are assembled the same way, as a small interface the
// core tree/layout packages depend on and a separate package satisfies).
package collab
