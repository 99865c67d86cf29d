// Package document decodes authored configuration documents into the layered
// model of package resolve.
//
// Documents can be written as YAML, JSON, TOML or Starlark. All formats share
// one schema:
//
//	name: ts
//	extends: [base]
//	ignore_patterns: ["*.d.ts"]
//	plugins: ["@typescript-eslint"]
//	rules:
//	  no-var: error
//	  "@typescript-eslint/no-shadow": [error, {builtinGlobals: true}]
//	overrides:
//	  - files: ["**/test/**", "*.test.*"]
//	    rules:
//	      "@typescript-eslint/no-magic-numbers": off
//
// The camelCase spellings ignorePatterns and excludedFiles are accepted too.
//
// A Starlark document assigns a dict to the global "config". OFF, WARN and
// ERROR are predeclared:
//
//	config = {
//	    "rules": {"no-var": ERROR},
//	}
package document
