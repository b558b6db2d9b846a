//go:build !darwin && !linux && !windows

package input

import (
	"fmt"
)

func newPlatformDevice() (Device, error) {
	return nil, fmt.Errorf("input injection not supported on this platform")
}
