package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/perm"
)

// ParsePermutation parses a JSON array or a comma/whitespace separated list
// of integers and validates the result.
func ParsePermutation(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty permutation")
	}

	var p []int
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode permutation")
		}
	} else {
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		p = make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid integer %q", f)
			}
			p = append(p, v)
		}
	}
	if err := perm.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadPermutation reads all of r and parses it with [ParsePermutation].
func ReadPermutation(r io.Reader) ([]int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ParsePermutation(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
}

// ImportPermutation reads a permutation from the file at path.
func ImportPermutation(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPermutation(f)
}

// FormatPermutation renders p as a comma separated list.
func FormatPermutation(p []int) string {
	var b strings.Builder
	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
