// Package volume turns declared volume specs into concrete mount
// arguments for the container runtime. Named volumes resolve to managed
// directories under the user's home; everything else is treated as a
// bind mount and validated against the filesystem.
package volume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// managedDir is the on-disk root for named volumes, relative to the home
// directory. It is the only persistent state the engine owns.
const managedDir = ".container-compose/volumes"

// ErrHomeDirectory indicates the user's home directory could not be
// resolved, so named volumes have nowhere to live.
var ErrHomeDirectory = errors.New("could not resolve home directory")

// AnonymousVolumeError reports a volume spec without a host part. The
// target runtime has no anonymous-volume concept, so these always fail.
type AnonymousVolumeError struct {
	Spec string
}

func (e *AnonymousVolumeError) Error() string {
	return fmt.Sprintf("anonymous volumes are not supported: %s", e.Spec)
}

// SourceNotFoundError reports a bind-mount source that does not exist,
// naming both the spec as written and the path it resolved to.
type SourceNotFoundError struct {
	Spec     string
	Resolved string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("volume mount source path does not exist: %s (resolved to: %s)", e.Spec, e.Resolved)
}

// Resolver resolves raw volume specs against a named-volume set, a
// working directory, and a home directory. Resolution is deterministic
// for fixed inputs.
type Resolver struct {
	named   map[string]struct{}
	workDir string
	home    string
}

// New creates a Resolver with explicit directories, mainly for tests.
func New(named []string, workDir, home string) *Resolver {
	set := make(map[string]struct{}, len(named))
	for _, name := range named {
		set[name] = struct{}{}
	}
	return &Resolver{named: set, workDir: workDir, home: home}
}

// NewFromEnv creates a Resolver using the process working directory and
// the user's home directory.
func NewFromEnv(named []string) (*Resolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not resolve working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHomeDirectory, err)
	}
	return New(named, wd, home), nil
}

// Resolve turns a raw volume spec into a mount argument of the form
// <host-path>:<container-path>[:<options>]. A non-empty warning is
// advisory and must not abort the caller.
func (r *Resolver) Resolve(raw string) (mount string, warning string, err error) {
	if !strings.Contains(raw, ":") {
		return "", "", &AnonymousVolumeError{Spec: raw}
	}

	parts := strings.SplitN(raw, ":", 3)
	hostPart, containerPath := parts[0], parts[1]
	suffix := ""
	if len(parts) == 3 {
		suffix = ":" + parts[2]
	}

	if _, ok := r.named[hostPart]; ok {
		hostPath, err := r.ensureNamedDir(hostPart)
		if err != nil {
			return "", "", err
		}
		return hostPath + ":" + containerPath + suffix, "", nil
	}

	resolved := hostPart
	switch {
	case strings.HasPrefix(hostPart, "./"):
		resolved = filepath.Join(r.workDir, hostPart[2:])
	case !strings.HasPrefix(hostPart, "/") && !strings.Contains(hostPart, "/"):
		resolved = filepath.Join(r.workDir, hostPart)
	}

	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", "", &SourceNotFoundError{Spec: hostPart, Resolved: resolved}
		}
		return "", "", fmt.Errorf("checking volume source %s: %w", resolved, err)
	}

	if strings.Contains(resolved, " ") {
		warning = fmt.Sprintf("Volume path contains spaces, this may cause issues: %s", resolved)
	}

	return resolved + ":" + containerPath + suffix, warning, nil
}

// NamedVolumePath returns the managed directory backing a named volume.
// The directory may not exist yet.
func (r *Resolver) NamedVolumePath(name string) string {
	return filepath.Join(r.home, managedDir, name)
}

// EnsureNamedVolumes creates the managed directory for every declared
// named volume. Creation is idempotent.
func (r *Resolver) EnsureNamedVolumes() error {
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := r.ensureNamedDir(name); err != nil {
			return err
		}
	}
	return nil
}

// RemoveNamedVolume deletes the managed directory backing a named volume.
func (r *Resolver) RemoveNamedVolume(name string) error {
	if _, ok := r.named[name]; !ok {
		return fmt.Errorf("unknown named volume %q", name)
	}
	return os.RemoveAll(r.NamedVolumePath(name))
}

func (r *Resolver) ensureNamedDir(name string) (string, error) {
	path := r.NamedVolumePath(name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating volume directory %s: %w", path, err)
	}
	return path, nil
}
