package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one entry of a batch file.
type Case struct {
	Name       string  `yaml:"name"`
	Input      string  `yaml:"input"`
	Controller string  `yaml:"controller"`
	K          float64 `yaml:"k"`
	Theta      float64 `yaml:"theta"`
	Tau        float64 `yaml:"tau"`
}

type Batch struct {
	Cases []Case `yaml:"cases"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("config: parse batch %s: %w", path, err)
	}
	for i := range b.Cases {
		if b.Cases[i].Name == "" {
			b.Cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &b, nil
}
