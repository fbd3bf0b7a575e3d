package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// defaultBase names output files when the input did not come from a file.
const defaultBase = "tree"

// stdinMarker selects standard input as the source or sink.
const stdinMarker = "-"

// source is a resolved input array.
type source struct {
	text string
	base string // output path stem derived from the input
}

// readSource resolves the input array from --file, a "-" argument (stdin) or
// the argument itself.
func readSource(args []string, file string, stdin io.Reader) (source, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			if os.IsNotExist(err) {
				return source{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", file)
			}
			return source{}, fmt.Errorf("read %s: %w", file, err)
		}
		return source{text: string(data), base: trimExt(file)}, nil
	case len(args) == 0 || args[0] == stdinMarker:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{text: string(data), base: defaultBase}, nil
	default:
		return source{text: strings.Join(args, " "), base: defaultBase}, nil
	}
}

// isGraphFile reports whether arg names an existing JSON structure file.
func isGraphFile(arg string) bool {
	if !strings.EqualFold(filepath.Ext(arg), ".json") {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// basePath derives the output stem. A known format extension on output is
// stripped so "out.svg" with -f svg,png yields out.svg and out.png.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	longest := ""
	for _, f := range pipeline.Formats {
		if ext := pipeline.Extension(f); strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// "-" selects os.Stdout; anything else is created or truncated.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdinMarker {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// artifactWriteParams groups what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // stem used when output is empty
	output    string // explicit -o value
}

// writeArtifacts writes each artifact in format order and returns the paths
// written. A single text format with -o - goes to stdout.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == stdinMarker && len(p.formats) == 1 {
		f := p.formats[0]
		if pipeline.IsBinary(f) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "%s output cannot be written to stdout", f)
		}
		_, err := os.Stdout.Write(p.artifacts[f])
		return nil, err
	}

	base := basePath(p.output, p.base)
	paths := make([]string, 0, len(p.formats))
	for _, f := range p.formats {
		data, ok := p.artifacts[f]
		if !ok {
			continue
		}
		path := base + pipeline.Extension(f)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
