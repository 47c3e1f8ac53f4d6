// Package facts supplies the variables interpolated into lookup precedence
// templates and data file values when running from the command line.
//
// A [Set] combines literal facts, YAML facts files, facts computed by
// expr-lang expressions, the process environment (env.NAME) and built-in
// host facts:
//
//	s := facts.New(
//		facts.WithFact("environment", "production"),
//		facts.WithExpr("role", `hostname matches "^web" ? "frontend" : "backend"`),
//	)
//	v, err := s.Resolve("role")
package facts
