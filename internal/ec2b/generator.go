package ec2b

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Artifacts is a generated seed file and its xorpad, both ready to be
// written verbatim.
type Artifacts struct {
	SeedFile []byte
	Xorpad   []byte
}

// Generator produces artifact pairs from fresh random keys.
type Generator struct {
	deriver *Deriver
	random  io.Reader
}

// NewGenerator creates a Generator drawing keys and data from random.
// A nil random uses crypto/rand.
func NewGenerator(d *Deriver, random io.Reader) *Generator {
	if random == nil {
		random = rand.Reader
	}
	return &Generator{deriver: d, random: random}
}

// GenerateArtifacts draws a random key and data buffer and derives the
// artifact pair from them.
func (g *Generator) GenerateArtifacts() (*Artifacts, error) {
	sf := &SeedFile{}
	if _, err := io.ReadFull(g.random, sf.Key[:]); err != nil {
		return nil, fmt.Errorf("reading random key: %w", err)
	}
	if _, err := io.ReadFull(g.random, sf.Data[:]); err != nil {
		return nil, fmt.Errorf("reading random data: %w", err)
	}

	seed, err := sf.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding seed file: %w", err)
	}
	xorpad, err := g.Reproduce(sf)
	if err != nil {
		return nil, err
	}
	return &Artifacts{SeedFile: seed, Xorpad: xorpad}, nil
}

// Reproduce derives the xorpad that belongs to an existing seed file.
func (g *Generator) Reproduce(sf *SeedFile) ([]byte, error) {
	key, err := g.deriver.DeriveKey(sf.Key[:])
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	xorpad, err := DeriveKeystream(key, sf.Data[:], XorpadSize)
	if err != nil {
		return nil, fmt.Errorf("deriving keystream: %w", err)
	}
	return xorpad, nil
}
