// SPDX-License-Identifier: EPL-2.0

//go:build !otodebug

package effects

const debugBuild = false
