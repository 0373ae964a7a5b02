// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// job.go - the YAML job document and its loading.
//
// Contract:
//   • Unknown keys are rejected.
//   • Load validates structure only (names, kinds, signs); shape and AOF
//     parameters are checked when the function is built.
//   • Omitted pwt, relevance and weights take the Default* constants.

package builder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ivpbuild/domain"
)

// Job describes one coupled function.
type Job struct {
	Context   string         `yaml:"context"`
	Domain    string         `yaml:"domain"`
	PWT       *float64       `yaml:"pwt"`
	Relevance *float64       `yaml:"relevance"`
	Normalize *bool          `yaml:"normalize"`
	Functions []FunctionSpec `yaml:"functions"`
	Couple    []string       `yaml:"couple"`
}

// FunctionSpec describes one function of a job. Which fields apply
// depends on Kind.
type FunctionSpec struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Weight *float64 `yaml:"weight"`

	// ZAIC kinds.
	Var     string   `yaml:"var"`
	MinUtil *float64 `yaml:"min_util"`
	MaxUtil *float64 `yaml:"max_util"`

	// zaic_peak.
	Summits      []SummitSpec `yaml:"summits"`
	ValueWrap    bool         `yaml:"value_wrap"`
	SummitInsist *bool        `yaml:"summit_insist"`
	MaxVal       *bool        `yaml:"maxval"`

	// zaic_leq, zaic_heq.
	Summit      float64 `yaml:"summit"`
	BaseWidth   float64 `yaml:"base_width"`
	SummitDelta float64 `yaml:"summit_delta"`
	BreakTies   float64 `yaml:"break_ties"`

	// zaic_vector.
	Values    []float64 `yaml:"values"`
	Utilities []float64 `yaml:"utilities"`

	// aof.
	AOF       string   `yaml:"aof"`
	Vars      []string `yaml:"vars"`
	Params    []string `yaml:"params"`
	Reflector string   `yaml:"reflector"`
	Pieces    int      `yaml:"pieces"`
	Rate      int      `yaml:"rate"`
	Raw       bool     `yaml:"raw"`
}

// SummitSpec is one summit of a zaic_peak spec.
type SummitSpec struct {
	Summit    float64  `yaml:"summit"`
	PeakWidth float64  `yaml:"peak_width"`
	BaseWidth float64  `yaml:"base_width"`
	Delta     float64  `yaml:"delta"`
	MinUtil   float64  `yaml:"min_util"`
	MaxUtil   *float64 `yaml:"max_util"`
}

// LoadJob decodes and validates a job from r.
func LoadJob(r io.Reader) (Job, error) {
	var job Job
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		if errors.Is(err, io.EOF) {
			return Job{}, builderErrorf(MethodLoadJob, "empty document: %w", ErrJob)
		}
		return Job{}, builderErrorf(MethodLoadJob, "%v: %w", err, ErrJob)
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	return job, nil
}

// LoadJobFile reads a job from the file at path.
func LoadJobFile(path string) (Job, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Job{}, fmt.Errorf("%s(%s): %w", MethodLoadJob, path, err)
	}
	defer fh.Close()
	return LoadJob(fh)
}

// ParsedDomain parses the job's domain string.
func (j Job) ParsedDomain() (domain.Domain, error) {
	dom, err := domain.Parse(j.Domain)
	if err != nil {
		return domain.Domain{}, builderErrorf(MethodLoadJob, "domain %q: %w: %w", j.Domain, err, ErrJob)
	}
	return dom, nil
}

// Validate checks the job's structure.
func (j Job) Validate() error {
	dom, err := j.ParsedDomain()
	if err != nil {
		return err
	}
	if dom.Size() == 0 {
		return builderErrorf(MethodLoadJob, "domain has no variables: %w", ErrJob)
	}
	if err := validateMin(MethodLoadJob, "functions", len(j.Functions), MinFunctions); err != nil {
		return err
	}
	if j.PWT != nil {
		if err := validateNonNegative(MethodLoadJob, "pwt", *j.PWT); err != nil {
			return err
		}
	}
	if j.Relevance != nil {
		if err := validateNonNegative(MethodLoadJob, "relevance", *j.Relevance); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(j.Functions))
	for i, fs := range j.Functions {
		name := fs.Label(i)
		if names[name] {
			return builderErrorf(MethodLoadJob, "duplicate function name %q: %w", name, ErrJob)
		}
		names[name] = true
		if err := fs.validate(name, dom); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(j.Couple))
	for _, name := range j.Couple {
		if !names[name] {
			return builderErrorf(MethodLoadJob, "couple names %q: %w", name, ErrUnknownFunction)
		}
		if seen[name] {
			return builderErrorf(MethodLoadJob, "couple repeats %q: %w", name, ErrJob)
		}
		seen[name] = true
	}
	return nil
}

// Label is the spec's name, or "f<i>" when it has none.
func (fs FunctionSpec) Label(i int) string {
	if fs.Name != "" {
		return fs.Name
	}
	return fmt.Sprintf("f%d", i)
}

func (fs FunctionSpec) validate(name string, dom domain.Domain) error {
	method := fmt.Sprintf("%s(%s)", MethodLoadJob, name)
	if fs.Weight != nil {
		if err := validatePositive(method, "weight", *fs.Weight); err != nil {
			return err
		}
	}
	switch fs.Kind {
	case KindZAICPeak, KindZAICLEQ, KindZAICHEQ, KindZAICVector:
		if !dom.Has(fs.Var) {
			return builderErrorf(method, "var %q not in domain: %w", fs.Var, ErrJob)
		}
		if fs.Kind == KindZAICPeak {
			return validateMin(method, "summits", len(fs.Summits), MinSummits)
		}
		if fs.Kind == KindZAICVector && len(fs.Values) != len(fs.Utilities) {
			return builderErrorf(method, "%d values for %d utilities: %w", len(fs.Values), len(fs.Utilities), ErrJob)
		}
	case KindAOF:
		if strings.TrimSpace(fs.AOF) == "" {
			return builderErrorf(method, "aof kind missing: %w", ErrJob)
		}
		for _, v := range fs.Vars {
			if !dom.Has(v) {
				return builderErrorf(method, "var %q not in domain: %w", v, ErrJob)
			}
		}
		for _, p := range fs.Params {
			if _, _, ok := strings.Cut(p, "="); !ok {
				return builderErrorf(method, "param %q is not name=value: %w", p, ErrJob)
			}
		}
		if err := validateMin(method, "pieces", fs.Pieces, 0); err != nil {
			return err
		}
		return validateMin(method, "rate", fs.Rate, 0)
	default:
		return builderErrorf(method, "%q: %w", fs.Kind, ErrUnknownKind)
	}
	return nil
}

func (j Job) pwt() float64 {
	if j.PWT == nil {
		return DefaultPWT
	}
	return *j.PWT
}

func (j Job) relevance() float64 {
	if j.Relevance == nil {
		return DefaultRelevance
	}
	return *j.Relevance
}

func (j Job) normalize() bool { return j.Normalize == nil || *j.Normalize }

func (fs FunctionSpec) weight() float64 {
	if fs.Weight == nil {
		return DefaultCoupleWeight
	}
	return *fs.Weight
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func orTrue(p *bool) bool { return p == nil || *p }
