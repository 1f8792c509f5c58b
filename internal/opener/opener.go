package opener

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open opens path with the platform's default application. The file must
// already exist; nothing is created on its behalf.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	cmd, err := command(runtime.GOOS, path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", goos)
}
