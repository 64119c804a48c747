package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a compose file. The returned Config has not been
// validated; callers must invoke Validate before handing it to the engine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compose file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing compose file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate enforces the schema rules the engine is allowed to assume:
// every service names an image, and every dependency refers to a
// declared service.
func (c *Config) Validate() error {
	for _, name := range c.ServiceOrder {
		if c.Services[name].Image == "" {
			return fmt.Errorf("service %q has no image specified", name)
		}
	}

	for _, name := range c.ServiceOrder {
		for _, dep := range c.Services[name].DependsOn {
			if _, ok := c.Services[dep]; !ok {
				return fmt.Errorf("service %q depends on %q which doesn't exist", name, dep)
			}
		}
	}

	return nil
}
