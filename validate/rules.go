package validate

import (
	"github.com/expr-lang/expr"

	"github.com/engindearing/pbxgraph/graph"
)

// ruleEnv builds the expression environment for one build
// configuration: its name and its settings as plain Go values.
func ruleEnv(rec *graph.Record) map[string]any {
	settings := rec.Get("buildSettings").Any()
	if settings == nil {
		settings = map[string]any{}
	}
	return map[string]any{
		"name":     rec.GetString("name"),
		"settings": settings,
	}
}

func (v *validator) evalRules(doc *graph.Document, rep *Report) {
	if len(v.rules) == 0 {
		return
	}
	s := doc.Section(graph.KindBuildConfiguration)
	if s == nil {
		return
	}
	for _, rec := range s.Records {
		env := ruleEnv(rec)
		for _, rl := range v.rules {
			prg, err := expr.Compile(rl.src, expr.Env(env), expr.AsBool())
			if err != nil {
				rep.add(Issue{
					Kind:     RuleError,
					Section:  graph.KindBuildConfiguration,
					Record:   rec.ID,
					Msg:      "rule " + rl.name + ": " + err.Error(),
					Blocking: true,
				})
				continue
			}
			res, err := expr.Run(prg, env)
			if err != nil {
				rep.add(Issue{
					Kind:     RuleError,
					Section:  graph.KindBuildConfiguration,
					Record:   rec.ID,
					Msg:      "rule " + rl.name + ": " + err.Error(),
					Blocking: true,
				})
				continue
			}
			if ok, _ := res.(bool); !ok {
				rep.add(Issue{
					Kind:    RuleViolation,
					Section: graph.KindBuildConfiguration,
					Record:  rec.ID,
					Msg:     "rule " + rl.name + " failed for configuration " + rec.GetString("name"),
				})
			}
		}
	}
}
