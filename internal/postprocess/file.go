// SPDX-License-Identifier: MPL-2.0

package postprocess

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sebo83910/litex-axi-converter/internal/params"
)

// InjectParametersFile writes the netlist at src, with parameters
// injected, to dst. src and dst may be the same file.
func InjectParametersFile(src, dst string, cfg params.BuildConfiguration) error {
	err := transformFile(src, dst, func(r io.Reader, w io.Writer) error {
		return InjectParameters(r, w, cfg)
	})
	var mme *MissingMarkerError
	if errors.As(err, &mme) {
		mme.File = src
	}
	return err
}

// TruncateConstraintsFile writes the constraints at src, truncated, to dst.
// It reports whether the marker was found; dst is empty otherwise.
func TruncateConstraintsFile(src, dst string) (found bool, err error) {
	err = transformFile(src, dst, func(r io.Reader, w io.Writer) error {
		var terr error
		found, terr = TruncateConstraints(r, w)
		return terr
	})
	return found, err
}

// transformFile streams src through fn into a temporary file next to dst
// and renames it to dst, keeping src's permission bits. On error dst is
// left untouched.
func transformFile(src, dst string, fn func(io.Reader, io.Writer) error) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fn(in, tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
