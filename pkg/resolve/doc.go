// Package resolve computes the effective rule settings for a file path from a
// layered, glob-scoped configuration.
//
// # Model
//
// A Configuration has a base Layer and an ordered list of override Layers.
// Each Layer carries a RuleMap and may be scoped to file globs; a Layer without
// globs applies to every path. Layers may nest further Layers, which are only
// considered when their parent matched.
//
// # Resolution
//
// Resolution seeds a working map from the base layer, then walks the overrides
// in declaration order. Every matching layer overlays its rules (insert or
// replace), followed by its nested layers in their declared order. The last
// matching layer that defines a rule wins. An explicit off replaces an earlier
// warn or error; a rule no layer defines stays absent.
//
//	cfg := resolve.Configuration{
//		Base: resolve.Layer{Rules: core.RuleMap{"no-var": core.Setting(core.SeverityError)}},
//		Overrides: []resolve.Layer{{
//			Files: []string{"*.test.ts"},
//			Rules: core.RuleMap{"no-var": core.Setting(core.SeverityOff)},
//		}},
//	}
//	rules := resolve.Resolve(cfg, "app.test.ts") // no-var: off
//
// # Globs
//
// "*" matches within a path segment and "**" across segments. A pattern without
// a slash is matched against the base name of the path, and a leading "**/" may
// match zero directories. Brace alternatives ("{*.ts,lib/*.js}") are expanded
// before that decision, so each alternative is matched on its own terms.
//
// Resolution is a pure function of its inputs. A compiled Resolver is read-only
// and may be shared between goroutines.
package resolve
