package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/perm"
)

// FormatVersion is the current network document version.
const FormatVersion = 1

// NetworkDoc is the serialized form of a network.
type NetworkDoc struct {
	Format      int      `json:"format" bson:"format"`
	N           int      `json:"n" bson:"n"`
	Levels      int      `json:"levels" bson:"levels"`
	Columns     int      `json:"columns" bson:"columns"`
	Permutation []int    `json:"permutation,omitempty" bson:"permutation,omitempty"`
	Matrix      [][]int8 `json:"matrix" bson:"matrix"`
}

// NewNetworkDoc describes net. dest may be nil when the realized permutation
// should not be recorded.
func NewNetworkDoc(net *benes.Network, dest []int) NetworkDoc {
	codes := net.Matrix.Codes()
	if codes == nil {
		codes = [][]int8{}
	}
	return NetworkDoc{
		Format:      FormatVersion,
		N:           net.N,
		Levels:      net.Levels(),
		Columns:     net.Columns(),
		Permutation: dest,
		Matrix:      codes,
	}
}

// Network rebuilds and checks the network described by d.
func (d NetworkDoc) Network() (*benes.Network, error) {
	if d.Format != 0 && d.Format != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported network format %d", d.Format)
	}
	net, err := benes.NewNetwork(d.N, d.Matrix)
	if err != nil {
		return nil, err
	}
	if d.Levels != net.Levels() || (d.Levels > 0 && d.Columns != net.Columns()) {
		return nil, errors.New(errors.ErrCodeInvalidNetwork,
			"declared shape %dx%d does not match matrix %dx%d", d.Levels, d.Columns, net.Levels(), net.Columns())
	}
	if d.Permutation != nil {
		if err := perm.Validate(d.Permutation); err != nil {
			return nil, err
		}
		if err := benes.Verify(net, d.Permutation); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidNetwork, err, "matrix does not realize its permutation")
		}
	}
	return net, nil
}

// MarshalNetwork encodes net as indented JSON.
func MarshalNetwork(net *benes.Network, dest []int) ([]byte, error) {
	return json.MarshalIndent(NewNetworkDoc(net, dest), "", "  ")
}

// UnmarshalNetwork decodes and checks a network document.
func UnmarshalNetwork(data []byte) (*benes.Network, []int, error) {
	var d NetworkDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode network")
	}
	net, err := d.Network()
	if err != nil {
		return nil, nil, err
	}
	return net, d.Permutation, nil
}

// WriteNetwork encodes net as JSON and writes it to w.
func WriteNetwork(net *benes.Network, dest []int, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewNetworkDoc(net, dest)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadNetwork decodes a network document from r. It returns the network and
// the recorded permutation, which is nil when the document carries none.
// ReadNetwork does not close r.
func ReadNetwork(r io.Reader) (*benes.Network, []int, error) {
	var d NetworkDoc
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode network")
	}
	net, err := d.Network()
	if err != nil {
		return nil, nil, err
	}
	return net, d.Permutation, nil
}

// ExportNetwork writes net to a JSON file at path.
func ExportNetwork(net *benes.Network, dest []int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteNetwork(net, dest, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportNetwork reads a network document from the file at path.
func ImportNetwork(path string) (*benes.Network, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNetwork(f)
}
