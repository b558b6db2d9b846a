//go:build linux

package input

func newPlatformDevice() (Device, error) {
	return NewXdotool()
}
