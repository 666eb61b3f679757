// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir defines the typed Intermediate Representation shared by every
// surface-syntax parser and both downstream consumers (the layout engine
// and the HTML/CSS backend): a component tree, its style and layout
// specifications, and the reactive manifest and bytecode metadata that
// describe runtime behavior.
package ir
