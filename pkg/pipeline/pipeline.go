// Package pipeline provides the synthesis pipeline shared by the CLI and the
// HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Resolve the permutation from explicit values, text input, or a
//     keyed random draw
//  2. Synthesize: Build and verify the network (cached by permutation hash)
//  3. Render: Generate output in the requested formats (cached by network
//     hash and format)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "3,2,1,0",
//	    Formats: []string{"text", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/cache"
	"github.com/matzehuels/permnet/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxSize bounds the permutation size accepted by the pipeline.
	// The engine itself has no limit; this protects the API and renderers.
	DefaultMaxSize = 1 << 16

	// DefaultSeed is the key used for random permutations when none is given.
	DefaultSeed = "permnet"

	// MaxRenderSize bounds the size rendered to DOT, SVG and PNG. Larger
	// networks are still available as JSON and text.
	MaxRenderSize = 256
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// graphFormats need Graphviz-sized networks.
var graphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the synthesis pipeline.
// This struct supports JSON serialization for API requests.
//
// Exactly one permutation source must be set: Permutation, Input or Random.
type Options struct {
	// Parse options
	Permutation []int  `json:"permutation,omitempty"`
	Input       string `json:"input,omitempty"`  // JSON array or comma/space separated text
	Random      int    `json:"random,omitempty"` // size of a keyed random permutation
	Seed        string `json:"seed,omitempty"`   // key for Random
	MaxSize     int    `json:"max_size,omitempty"`

	// Synthesis options
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Sentinels bool     `json:"sentinels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Permutation is the resolved permutation.
	Permutation []int

	// Network is the synthesized network.
	Network *benes.Network

	// NetworkHash is the content hash of the network document.
	NetworkHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	N              int
	Levels         int
	Columns        int
	Switches       int
	SynthesizeTime time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SynthesizeHit bool // Whether the network came from cache
	RenderHit     bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that exactly one permutation source is set.
func (o *Options) ValidateForParse() error {
	sources := 0
	if o.Permutation != nil {
		sources++
	}
	if o.Input != "" {
		sources++
	}
	if o.Random != 0 {
		sources++
	}
	switch {
	case sources == 0:
		return errors.New(errors.ErrCodeInvalidInput, "permutation, input or random is required")
	case sources > 1:
		return errors.New(errors.ErrCodeInvalidInput, "permutation, input and random are mutually exclusive")
	}

	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.Random != 0 {
		if err := errors.ValidateSize(o.Random, o.MaxSize); err != nil {
			return err
		}
		if o.Seed == "" {
			o.Seed = DefaultSeed
		}
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// NeedsGraphviz reports whether any requested format goes through DOT.
func (o *Options) NeedsGraphviz() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool { return graphFormats[f] })
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Labels:    o.Labels,
		Sentinels: o.Sentinels,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
