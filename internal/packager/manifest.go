// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sebo83910/litex-axi-converter/internal/catalog"
	"github.com/sebo83910/litex-axi-converter/internal/params"
)

type (
	// Manifest records what a package run produced. The project stage reads
	// it to find the core.
	Manifest struct {
		BuildName  string             `toml:"build_name"`
		Files      []string           `toml:"files"`
		Core       ManifestCore       `toml:"core"`
		Parameters ManifestParameters `toml:"parameters"`
	}

	// ManifestCore identifies the packaged core.
	ManifestCore struct {
		Vendor   string `toml:"vendor"`
		Library  string `toml:"library"`
		Name     string `toml:"name"`
		Version  string `toml:"version"`
		Revision int    `toml:"revision"`
		Archive  string `toml:"archive"`
	}

	// ManifestParameters is the build configuration of the package.
	ManifestParameters struct {
		AddressWidth int  `toml:"address_width"`
		InputWidth   int  `toml:"input_width"`
		OutputWidth  int  `toml:"output_width"`
		UserWidth    int  `toml:"user_width"`
		Reverse      bool `toml:"reverse"`
	}
)

// NewManifest describes one package run.
func NewManifest(meta catalog.VersionMetadata, cfg params.BuildConfiguration, files []string) Manifest {
	return Manifest{
		BuildName: meta.IPName,
		Files:     append([]string{}, files...),
		Core: ManifestCore{
			Vendor:   meta.Vendor,
			Library:  meta.Library,
			Name:     meta.IPName,
			Version:  meta.Version,
			Revision: meta.Revision,
			Archive:  meta.ArchiveName(),
		},
		Parameters: ManifestParameters{
			AddressWidth: cfg.AddressWidth(),
			InputWidth:   cfg.InputWidth(),
			OutputWidth:  cfg.OutputWidth(),
			UserWidth:    cfg.UserWidth(),
			Reverse:      cfg.Reverse(),
		},
	}
}

// VLNV returns the identifier of the packaged core.
func (m Manifest) VLNV() catalog.VLNV {
	return catalog.VLNV{Vendor: m.Core.Vendor, Library: m.Core.Library, Name: m.Core.Name, Version: m.Core.Version}
}

// WriteManifest writes m as TOML.
func WriteManifest(path string, m Manifest) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest. A missing file
// is reported as a *MissingArtifactError.
func ReadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, &MissingArtifactError{Stage: StageProject, Path: path, Reason: "run the package stage first"}
		}
		return Manifest{}, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	var m Manifest
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return m, nil
}
