package image

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// container is the on-disk layout of a self-describing payload file. Unlike
// the raw buffer dump, it records the kind and the extents, so the reader
// needs no out-of-band knowledge.
type container struct {
	Kind int    `msgpack:"kind"`
	XDim int    `msgpack:"x_dim"`
	YDim int    `msgpack:"y_dim"`
	Pix  []byte `msgpack:"pix"`
}

// Save writes the payload to path as a self-describing msgpack container,
// truncating any existing file.
func (p *Payload) Save(path string) error {
	data, err := msgpack.Marshal(container{
		Kind: int(p.kind),
		XDim: p.xDim,
		YDim: p.yDim,
		Pix:  p.Data(),
	})
	if err != nil {
		return fmt.Errorf("save payload: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save payload: %w", err)
	}

	return nil
}

// OpenPayload reads a payload previously written with Save.
func OpenPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open payload: %w", err)
	}

	var c container
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("open payload: %w", err)
	}

	return NewPayload(Kind(c.Kind), c.Pix, c.XDim, c.YDim)
}
