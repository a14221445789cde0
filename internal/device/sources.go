package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"openway/internal/model"
)

// EnvDeviceID is the environment variable read by EnvSource.
const EnvDeviceID = "OPENWAY_DEVICE_ID"

var errNoID = errors.New("no device id available")

// StaticSource always returns the same identifier.
type StaticSource string

func (s StaticSource) UniqueID(ctx context.Context) (string, error) {
	if s == "" {
		return "", errNoID
	}
	return string(s), nil
}

// EnvSource reads the id from an environment variable.
type EnvSource struct {
	Key string
}

func (s EnvSource) UniqueID(ctx context.Context) (string, error) {
	key := s.Key
	if key == "" {
		key = EnvDeviceID
	}
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%s: %w", key, errNoID)
	}
	return v, nil
}

// InstallSource returns a random id generated on first use and persisted in
// Path, so it is stable for the lifetime of the install.
type InstallSource struct {
	Path string
}

func (s InstallSource) UniqueID(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read install id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return "", fmt.Errorf("create install id dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write install id: %w", err)
	}
	return id, nil
}

// ChainSource tries each source in order and returns the first id that is
// still non-empty after sanitizing.
type ChainSource []Source

func (c ChainSource) UniqueID(ctx context.Context) (string, error) {
	var errs []error
	for _, src := range c {
		id, err := src.UniqueID(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !model.SanitizeDeviceID(id).IsZero() {
			return id, nil
		}
	}
	if len(errs) == 0 {
		return "", errNoID
	}
	return "", errors.Join(errs...)
}

// HostSource reads the hardware/OS identifier of the current machine.
type HostSource struct{}

func (HostSource) UniqueID(ctx context.Context) (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return macOSUUID(ctx)
	case "linux":
		return linuxUUID()
	case "windows":
		return windowsUUID(ctx)
	case "android", "ios":
		// Only the app itself can read ANDROID_ID / identifierForVendor.
		return "", fmt.Errorf("%s: device id must be supplied by the app", runtime.GOOS)
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func macOSUUID(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", fmt.Errorf("ioreg: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		parts := strings.Split(line, "\"")
		if len(parts) >= 4 {
			return parts[3], nil
		}
	}
	return "", errors.New("no IOPlatformUUID found")
}

func linuxUUID() (string, error) {
	for _, path := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id", "/sys/class/dmi/id/product_uuid"} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}
	return "", errors.New("no machine id found on linux")
}

func windowsUUID(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "wmic", "csproduct", "get", "UUID").Output()
	if err != nil {
		return "", fmt.Errorf("wmic: %w", err)
	}
	for _, line := range bytes.Split(out, []byte("\n")) {
		str := strings.TrimSpace(string(line))
		if str != "" && !strings.EqualFold(str, "UUID") {
			return str, nil
		}
	}
	return "", errors.New("no hardware UUID found on windows")
}
