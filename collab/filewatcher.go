// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collab

// FileWatcher sources the file-change events that drive hot reload
// (§6), mirroring the add-path/poll shape of fsnotify-style watchers
// without pulling an OS-notification dependency into IR-core. AddPath
// registers a source file (a DSL document, a stylesheet) to watch.
// Poll returns the paths that changed since the previous Poll call and
// is expected to be non-blocking, matching this module's "no
// suspension points" concurrency model (§5): a caller on its own
// timer loop calls Poll and re-parses whatever Parser owns each
// changed path.
type FileWatcher interface {
	AddPath(path string) error
	Poll() (changed []string, err error)
}
