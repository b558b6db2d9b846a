//go:build !windows

package launcher

import "errors"

func shellExecute(string) error {
	return errors.New("ShellExecute is only available on Windows")
}
