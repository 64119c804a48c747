package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultVersion = "1.0"

// Config is the parsed compose file: the full set of services, named
// volumes, and networks for one invocation. It is loaded once, validated
// once, and never mutated afterwards.
type Config struct {
	Version  string
	Services map[string]*Service
	Volumes  map[string]Volume
	Networks map[string]Network

	// ServiceOrder preserves the order services were declared in the
	// compose file. Stop processing walks this order in reverse.
	ServiceOrder []string
}

// Service describes one container: its image, mounts, environment,
// dependencies, and optional command/workdir overrides.
type Service struct {
	Name        string          `yaml:"-"`
	Image       string          `yaml:"image"`
	Ports       []string        `yaml:"ports"`
	Volumes     []string        `yaml:"volumes"`
	Environment EnvironmentList `yaml:"environment"`
	DependsOn   []string        `yaml:"depends_on"`
	Command     []string        `yaml:"command"`
	WorkingDir  string          `yaml:"working_dir"`
}

// Volume is a declared named volume. The driver is advisory; resolution
// only cares that the name exists.
type Volume struct {
	Driver string `yaml:"driver"`
}

// Network is passthrough data; the engine does not consume it.
type Network struct {
	Driver string `yaml:"driver"`
}

// EnvironmentList normalizes the two compose shapes for environment
// entries (a sequence of "KEY=VALUE" strings, or a mapping of KEY to
// VALUE) into an ordered list of "KEY=VALUE" strings.
type EnvironmentList []string

func (e *EnvironmentList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []string
		if err := node.Decode(&entries); err != nil {
			return err
		}
		*e = entries
	case yaml.MappingNode:
		entries := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entries = append(entries, node.Content[i].Value+"="+node.Content[i+1].Value)
		}
		*e = entries
	case yaml.ScalarNode:
		if node.Tag != "!!null" && node.Value != "" {
			*e = EnvironmentList{node.Value}
		}
	}
	return nil
}

// UnmarshalYAML decodes the compose document while recording the order
// in which services were declared. Plain struct decoding would lose it,
// and the stop protocol depends on it.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Version  string             `yaml:"version"`
		Services yaml.Node          `yaml:"services"`
		Volumes  map[string]Volume  `yaml:"volumes"`
		Networks map[string]Network `yaml:"networks"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	if c.Version == "" {
		c.Version = defaultVersion
	}

	c.Volumes = raw.Volumes
	if c.Volumes == nil {
		c.Volumes = make(map[string]Volume)
	}

	c.Networks = raw.Networks
	if c.Networks == nil {
		c.Networks = make(map[string]Network)
	}
	for name, network := range c.Networks {
		if network.Driver == "" {
			network.Driver = "bridge"
			c.Networks[name] = network
		}
	}

	if raw.Services.IsZero() {
		return fmt.Errorf("compose file has no services section")
	}
	if raw.Services.Kind != yaml.MappingNode {
		return fmt.Errorf("services section must be a mapping")
	}

	c.Services = make(map[string]*Service, len(raw.Services.Content)/2)
	c.ServiceOrder = make([]string, 0, len(raw.Services.Content)/2)
	for i := 0; i+1 < len(raw.Services.Content); i += 2 {
		name := raw.Services.Content[i].Value
		var svc Service
		if err := raw.Services.Content[i+1].Decode(&svc); err != nil {
			return fmt.Errorf("service %q: %w", name, err)
		}
		svc.Name = name
		c.Services[name] = &svc
		c.ServiceOrder = append(c.ServiceOrder, name)
	}

	return nil
}
