package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"soilai/entities"
	"soilai/pkg/crop"
)

// document is the object form of a JSON/YAML source; the other accepted form is a bare
// list of crop names.
type document struct {
	Crops    []string                            `json:"crops" yaml:"crops"`
	Profiles map[string]entities.ProfileOverride `json:"profiles" yaml:"profiles"`
}

func (d document) overlay() crop.Overlay {
	return crop.Overlay{Crops: d.Crops, Profiles: d.Profiles}
}

func readJSON(path string) (crop.Overlay, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return crop.Overlay{}, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return crop.Overlay{}, errors.New("empty file")
	}
	if b[0] == '[' {
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return crop.Overlay{}, err
		}
		return crop.Overlay{Crops: names}, nil
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return crop.Overlay{}, err
	}
	return doc.overlay(), nil
}

func readYAML(path string) (crop.Overlay, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return crop.Overlay{}, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return crop.Overlay{}, err
	}
	if len(root.Content) == 0 {
		return crop.Overlay{}, errors.New("empty file")
	}
	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var names []string
		if err := root.Content[0].Decode(&names); err != nil {
			return crop.Overlay{}, err
		}
		return crop.Overlay{Crops: names}, nil
	case yaml.MappingNode:
		var doc document
		if err := root.Content[0].Decode(&doc); err != nil {
			return crop.Overlay{}, err
		}
		return doc.overlay(), nil
	default:
		return crop.Overlay{}, errors.New("expected a list of crops or a crops/profiles mapping")
	}
}
