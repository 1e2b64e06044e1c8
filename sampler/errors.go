// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	// ErrMissingAsset is returned for a sample id with no matching file.
	ErrMissingAsset = errors.New("sample asset not found")

	// ErrNoSamplesDir is returned when no Assets/Samples directory exists.
	ErrNoSamplesDir = errors.New("samples directory not found")
)
