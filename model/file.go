package model

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/gomory/rational"
)

// problemFile is the on-disk YAML layout. Numbers are kept as strings so
// fractions such as "1/3" survive decoding exactly.
type problemFile struct {
	Direction   string           `yaml:"direction"`
	Integer     bool             `yaml:"integer"`
	Objective   []string         `yaml:"objective"`
	Constraints []constraintFile `yaml:"constraints"`
}

type constraintFile struct {
	Coefficients []string `yaml:"coefficients"`
	Relation     string   `yaml:"relation"`
	RHS          string   `yaml:"rhs"`
}

// LoadYAML reads a problem file from disk.
func LoadYAML(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "model: open problem file")
	}
	defer f.Close()

	m, err := ReadYAML(f)
	if err != nil {
		return nil, errors.Wrapf(err, "model: %s", path)
	}
	return m, nil
}

// ReadYAML decodes and validates a problem.
func ReadYAML(r io.Reader) (*Model, error) {
	var pf problemFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, errors.Wrap(ErrInvalidProblem, err.Error())
	}

	dir, err := ParseDirection(pf.Direction)
	if err != nil {
		return nil, err
	}
	c, err := parseVector(pf.Objective)
	if err != nil {
		return nil, errors.Wrap(err, "objective")
	}

	a := make([][]rational.Rational, len(pf.Constraints))
	b := make([]rational.Rational, len(pf.Constraints))
	rels := make([]Relation, len(pf.Constraints))
	for i, cf := range pf.Constraints {
		if a[i], err = parseVector(cf.Coefficients); err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i+1)
		}
		if rels[i], err = ParseRelation(cf.Relation); err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i+1)
		}
		if b[i], err = parseValue(cf.RHS); err != nil {
			return nil, errors.Wrapf(err, "constraint %d rhs", i+1)
		}
	}
	return New(c, a, b, rels, dir, pf.Integer)
}

func parseVector(vals []string) ([]rational.Rational, error) {
	out := make([]rational.Rational, len(vals))
	for i, s := range vals {
		v, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseValue(s string) (rational.Rational, error) {
	if s == "" {
		return rational.Zero, nil
	}
	v, err := rational.Parse(s)
	if err != nil {
		return rational.Zero, errors.Wrap(ErrInvalidProblem, err.Error())
	}
	return v, nil
}
