// SPDX-License-Identifier: MPL-2.0

package container

import (
	"os"
	"os/exec"
	"strings"
)

const selinuxEnforcePath = "/sys/fs/selinux/enforce"

// PodmanEngine implements Engine using the Podman CLI.
// Rootless runs keep the host user id so packaged files stay owned by the caller.
// With SELinux enforcing, volume mounts are labeled :z.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a Podman engine.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := exec.LookPath(string(EngineTypePodman))
	defaults := []BaseCLIEngineOption{
		WithName(string(EngineTypePodman)),
		WithExtraRunArgs("--userns=keep-id"),
		WithVolumeFormatter(func(v VolumeMount) string {
			return addSELinuxLabel(v.String(), isSELinuxEnabled())
		}),
	}
	return &PodmanEngine{BaseCLIEngine: NewBaseCLIEngine(path, append(defaults, opts...)...)}
}

func isSELinuxEnabled() bool {
	data, err := os.ReadFile(selinuxEnforcePath)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// addSELinuxLabel appends the shared label to a "host:container[:options]"
// mount unless it already carries z or Z.
func addSELinuxLabel(volume string, enabled bool) string {
	if !enabled {
		return volume
	}
	parts := strings.Split(volume, ":")
	if len(parts) < 2 {
		return volume
	}
	if len(parts) >= 3 {
		for opt := range strings.SplitSeq(parts[len(parts)-1], ",") {
			if opt == "z" || opt == "Z" {
				return volume
			}
		}
		return volume + ",z"
	}
	return volume + ":z"
}
