// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are YAML and JSON serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/gowalker/body"
	env "github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/environment/humanoid"
	"github.com/samuelfneumann/gowalker/physics/planar"
	ts "github.com/samuelfneumann/gowalker/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Humanoid EnvName = "Humanoid"
)

// TaskName stores the tasks that can be configured with this package.
// Note that not all tasks can be used with all environments. The tasks
// that can be used with each environment are as follows:
//
//	Environment			Task
//	Humanoid			Walk
type TaskName string

// Tasks available for configuration
const (
	Walk TaskName = "Walk"
)

// Config implements a specific configuration of a specific environment
// and specific task. Not all environments can have all tasks.
type Config struct {
	Environment EnvName  `yaml:"environment" json:"environment"`
	Task        TaskName `yaml:"task" json:"task"`
	Seed        uint64   `yaml:"seed" json:"seed"`

	Humanoid humanoid.Config     `yaml:"humanoid" json:"humanoid"`
	Walk     humanoid.TaskConfig `yaml:"walk" json:"walk"`
	Physics  planar.Config       `yaml:"physics" json:"physics"`
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.Environment != Humanoid {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Task != Walk {
		return fmt.Errorf("validate: environment %v has no task %q",
			c.Environment, c.Task)
	}
	if err := c.Humanoid.Validate(); err != nil {
		return fmt.Errorf("validate: humanoid: %v", err)
	}
	if err := c.Walk.Validate(); err != nil {
		return fmt.Errorf("validate: walk: %v", err)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("validate: physics: %v", err)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create(logger *zap.Logger) (env.Environment, ts.TimeStep,
	error) {
	switch c.Environment {
	case Humanoid:
		h, _, step, err := c.CreateHumanoid(logger)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return h, step, nil
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}

// CreateHumanoid is a factory for creating the Humanoid environment
// simulated by a planar world. The world is returned along with the
// environment so that it can be rendered.
func (c Config) CreateHumanoid(logger *zap.Logger) (*humanoid.Humanoid,
	*planar.World, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("createHumanoid: %v", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	world, err := planar.New(c.Physics, planar.DefaultSkeleton())
	if err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("createHumanoid: %v", err)
	}

	var task env.Task
	switch c.Task {
	case Walk:
		task, err = humanoid.NewWalk(c.Walk, c.Seed)
		if err != nil {
			return nil, nil, ts.TimeStep{}, fmt.Errorf("createHumanoid: %v",
				err)
		}
	}

	h, step, err := humanoid.New(world, task, c.Humanoid, c.Seed,
		humanoid.WithLogger(logger.Named("humanoid")))
	if err != nil {
		return nil, nil, ts.TimeStep{}, fmt.Errorf("createHumanoid: %w", err)
	}
	return h, world, step, nil
}

// segmentsFile holds the undecoded per-segment values of a
// configuration file
type segmentsFile[T any] struct {
	Humanoid struct {
		Segments map[string]T `yaml:"segments" json:"segments"`
	} `yaml:"humanoid" json:"humanoid"`
}

// Load reads a Config from path. Values missing from the file keep
// their defaults, including the fields of a segment which the file
// configures only in part. Files with a .json extension are decoded as
// JSON, all others as YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	c := Default()
	if isJSON(path) {
		err = decodeJSON(data, &c)
	} else {
		err = decodeYAML(data, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load: could not decode %v: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}
	return c, nil
}

// Save writes the Config to path in the format given by the extension
// of path
func (c Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "\t")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, c *Config) error {
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	var raw segmentsFile[json.RawMessage]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return mergeSegments(c, raw.Humanoid.Segments,
		func(m json.RawMessage, sc *humanoid.SegmentConfig) error {
			return json.Unmarshal(m, sc)
		})
}

func decodeYAML(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	var raw segmentsFile[yaml.Node]
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	return mergeSegments(c, raw.Humanoid.Segments,
		func(n yaml.Node, sc *humanoid.SegmentConfig) error {
			return n.Decode(sc)
		})
}

// mergeSegments decodes each raw segment value over the default
// configuration of its segment. Unknown segment names are left for
// Validate to reject.
func mergeSegments[T any](c *Config, raw map[string]T,
	decode func(T, *humanoid.SegmentConfig) error) error {
	for name, value := range raw {
		s, err := body.ParseSegment(name)
		if err != nil {
			continue
		}

		sc := humanoid.DefaultSegmentConfig(s)
		if err := decode(value, &sc); err != nil {
			return fmt.Errorf("mergeSegments: %v: %w", name, err)
		}
		c.Humanoid.Segments[name] = sc
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
