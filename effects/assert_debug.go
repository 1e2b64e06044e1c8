// SPDX-License-Identifier: EPL-2.0

//go:build otodebug

package effects

func assertPrepared() { panic(ErrNotPrepared) }
