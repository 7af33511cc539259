// Package rule evaluates user-written CEL conditions against inventory artifacts, e.g.
//
//	set == "emblem" && slot == "sands" && main == "er" && subs["cr"] > 6.0
package rule

import (
	"fmt"
	"os"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// NewArtifactEnv declares the variables a rule may reference.
func NewArtifactEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("set", cel.StringType),
		cel.Variable("slot", cel.StringType),
		cel.Variable("rarity", cel.IntType),
		cel.Variable("level", cel.IntType),
		cel.Variable("main", cel.StringType),
		cel.Variable("lock", cel.BoolType),
		cel.Variable("subs", cel.MapType(cel.StringType, cel.DoubleType)),
		cel.Variable("score", cel.DoubleType),
		cel.Variable("percent", cel.DoubleType),
	)
}

// Scored carries the score values exposed to rules.
type Scored struct {
	Score   float64
	Percent float64
}

// Vars builds the activation for one artifact. Absent substats are missing from subs; guard
// with `"cr" in subs`.
func Vars(a domain.Artifact, s Scored) map[string]any {
	subs := make(map[string]float64, len(a.Substats))
	for _, sub := range a.Substats {
		if sub.Stat.Valid() {
			subs[sub.Stat.String()] = sub.Value
		}
	}
	return map[string]any{
		"id":      a.ID,
		"set":     a.SetKey,
		"slot":    string(a.Slot),
		"rarity":  int64(a.Rarity),
		"level":   int64(a.Level),
		"main":    a.MainStat.String(),
		"lock":    a.Lock,
		"subs":    subs,
		"score":   s.Score,
		"percent": s.Percent,
	}
}

// Rule is a named boolean CEL condition. The program is compiled by Init.
type Rule struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`

	program cel.Program
}

// Compile builds a ready rule from a single expression.
func Compile(name, expr string) (*Rule, error) {
	env, err := NewArtifactEnv()
	if err != nil {
		return nil, err
	}
	r := &Rule{Name: name, When: expr}
	if err := r.Init(env); err != nil {
		return nil, err
	}
	return r, nil
}

// Init parses and type-checks When. The expression must yield a bool.
func (r *Rule) Init(env *cel.Env) error {
	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return fmt.Errorf("rule %q: %w", r.Name, iss.Err())
	}
	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return fmt.Errorf("rule %q: %w", r.Name, iss.Err())
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("rule %q: expression must return bool, got %s", r.Name, checked.OutputType())
	}

	var err error
	r.program, err = env.Program(checked)
	if err != nil {
		return fmt.Errorf("rule %q: %w", r.Name, err)
	}
	return nil
}

// Match evaluates the rule. Evaluation errors, such as a missing map key, are logged and
// count as no match.
func (r *Rule) Match(a domain.Artifact, s Scored) bool {
	if r.program == nil {
		return false
	}
	out, _, err := r.program.Eval(Vars(a, s))
	if err != nil {
		log.Debug().Err(err).Str("rule", r.Name).Str("artifact", a.ID).Msg("Rule evaluation failed")
		return false
	}
	return out.Value() == true
}

// LoadFromFile reads a yaml list of rules and compiles each one.
func LoadFromFile(file string) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(content, &rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", file, err)
	}

	env, err := NewArtifactEnv()
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if err := rules[i].Init(env); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// Predicate combines rules with AND; scoreFn may be nil when no rule reads score.
func Predicate(rules []*Rule, scoreFn func(domain.Artifact) Scored) func(domain.Artifact) bool {
	return func(a domain.Artifact) bool {
		var s Scored
		if scoreFn != nil {
			s = scoreFn(a)
		}
		for _, r := range rules {
			if !r.Match(a, s) {
				return false
			}
		}
		return true
	}
}
