// SPDX-License-Identifier: MPL-2.0

// Package container runs one-shot commands through a container engine CLI
// (Docker or Podman). It is used to invoke the vendor tool from an image
// when it is not installed on the host.
package container
