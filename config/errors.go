// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownBackend is returned for a device backend other than oto, headless or wav
	ErrUnknownBackend = errors.New("unknown device backend")

	// ErrUnknownLogFormat is returned for a logging format other than text or json
	ErrUnknownLogFormat = errors.New("unknown log format")
)
