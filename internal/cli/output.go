package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/permnet/pkg/pipeline"
)

// defaultBase names output files when neither -o nor an input file gives one.
const defaultBase = "network"

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input file, used to derive output names; may be empty
	output    string // -o flag; may be empty
}

// writeArtifacts writes rendered artifacts. A single textual format with no
// -o goes to stdout; everything else goes to files named after -o, the input
// file, or "network".
func writeArtifacts(p artifactWriteParams) error {
	if p.toStdout() {
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return err
	}
	for _, format := range p.formats {
		if err := writeFile(p.path(format), p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func (p artifactWriteParams) toStdout() bool {
	return len(p.formats) == 1 && p.output == "" && isTextual(p.formats[0])
}

// path is the file the artifact for format is written to.
func (p artifactWriteParams) path(format string) string {
	if len(p.formats) == 1 && p.output != "" && hasFormatExt(p.output) {
		return p.output
	}
	base := basePath(p.output, p.input)
	if format == pipeline.FormatText {
		return base + ".txt"
	}
	return base + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

func isTextual(format string) bool {
	switch format {
	case pipeline.FormatText, pipeline.FormatJSON, pipeline.FormatDOT:
		return true
	}
	return false
}

func hasFormatExt(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return ext == "txt" || pipeline.ValidFormats[ext]
}

// basePath derives the base output path from the output and input paths,
// stripping a known format extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if hasFormatExt(output) {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
