package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/pipeline"
)

func TestSourceFlagsOptions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "perm.json")
	if err := os.WriteFile(file, []byte("[2, 0, 1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		flags sourceFlags
		args  []string
		want  []int
	}{
		{"separate args", sourceFlags{}, []string{"3", "2", "1", "0"}, []int{3, 2, 1, 0}},
		{"comma list", sourceFlags{}, []string{"1,0"}, []int{1, 0}},
		{"json arg", sourceFlags{}, []string{"[1, 2, 0]"}, []int{1, 2, 0}},
		{"file", sourceFlags{file: file}, nil, []int{2, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options(tt.args)
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			got, err := pipeline.Parse(opts)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("permutation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSourceFlagsRandom(t *testing.T) {
	f := sourceFlags{random: 16, seed: "abc"}
	opts, err := f.options(nil)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := pipeline.Parse(opts)
	b, _ := pipeline.Parse(opts)
	if len(a) != 16 || !cmp.Equal(a, b) {
		t.Errorf("random permutations should be reproducible: %v %v", a, b)
	}
}

func TestSourceFlagsErrors(t *testing.T) {
	if _, err := (&sourceFlags{}).options(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no source: err = %v", err)
	}
	if _, err := (&sourceFlags{random: 4}).options([]string{"0"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("two sources: err = %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.txt")
	if _, err := (&sourceFlags{file: missing}).options(nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}
