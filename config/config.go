// Package config builds classifiers from YAML configuration. The k field
// accepts the three neighbourhood-size forms: an integer count, a fraction
// in (0,1], or the string "all".
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/frnn"
	"github.com/viant/frnn/classifier"
	"github.com/viant/frnn/index"
	"github.com/viant/frnn/metric"
	"github.com/viant/frnn/owa"
)

// Config is the YAML shape of a classifier configuration:
//
//	weighting:
//	  family: exponential
//	  decay: 2
//	k: 0.5        # or "all", or an integer
//	metric: euclidean
//	index: cover
//	vote: weighted
//
// Absent fields keep the classifier defaults.
type Config struct {
	Weighting struct {
		Family string  `yaml:"family"`
		Decay  float64 `yaml:"decay"`
	} `yaml:"weighting"`
	K      kSpec  `yaml:"k"`
	Metric string `yaml:"metric"`
	Index  string `yaml:"index"`
	Vote   string `yaml:"vote"`
}

// kSpec adapts owa.K to YAML scalars.
type kSpec struct {
	set bool
	k   owa.K
}

func (s *kSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: k must be a scalar: %w", frnn.ErrInvalidConfiguration)
	}
	k, err := owa.ParseK(node.Value)
	if err != nil {
		return err
	}
	s.set = true
	s.k = k
	return nil
}

// Parse decodes a YAML document into a Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %v: %w", err, frnn.ErrInvalidConfiguration)
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Classifier converts the configuration into a classifier spec, validating
// family, metric, index kind and vote mode. Unset fields stay zero so the
// classifier defaults apply at construct time.
func (c Config) Classifier() (classifier.FRNN, error) {
	out := classifier.FRNN{
		Weighting: owa.Weighting{Family: owa.Family(c.Weighting.Family), Decay: c.Weighting.Decay},
		Metric:    metric.Metric(c.Metric),
		Index:     index.Kind(c.Index),
		Vote:      classifier.Vote(c.Vote),
	}
	if c.K.set {
		out.K = c.K.k
	}
	if out.Weighting.Family != "" && !out.Weighting.Family.Valid() {
		return classifier.FRNN{}, fmt.Errorf("config: unknown weight family %q: %w", c.Weighting.Family, frnn.ErrInvalidConfiguration)
	}
	if out.Metric != "" {
		if err := out.Metric.Validate(); err != nil {
			return classifier.FRNN{}, err
		}
	}
	if out.Index != "" && out.Index != index.KindBrute && out.Index != index.KindCover {
		return classifier.FRNN{}, fmt.Errorf("config: unknown index kind %q: %w", c.Index, frnn.ErrInvalidConfiguration)
	}
	if out.Vote != "" && out.Vote != classifier.VoteWeighted && out.Vote != classifier.VoteUpperApprox && out.Vote != classifier.VoteLowerApprox {
		return classifier.FRNN{}, fmt.Errorf("config: unknown vote mode %q: %w", c.Vote, frnn.ErrInvalidConfiguration)
	}
	return out, nil
}
