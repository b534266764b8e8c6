package repository

import (
	"bytes"
	"fmt"

	"github.com/stwalsh4118/building/internal/models"
	"gopkg.in/yaml.v3"
)

// Codec converts a Building to and from its persisted text form.
type Codec interface {
	Marshal(b *models.Building) ([]byte, error)
	Unmarshal(data []byte) (*models.Building, error)
}

// yamlCodec stores buildings as YAML with two-space indentation.
type yamlCodec struct{}

// NewYAMLCodec returns the YAML codec used for building data files.
func NewYAMLCodec() Codec {
	return yamlCodec{}
}

func (yamlCodec) Marshal(b *models.Building) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("failed to encode building as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data and checks that every apartment has a code. Unknown
// fields are ignored.
func (yamlCodec) Unmarshal(data []byte) (*models.Building, error) {
	var b models.Building
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode building YAML: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
