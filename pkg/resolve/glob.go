package resolve

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// Pattern is a compiled file glob.
type Pattern struct {
	raw   string
	globs []matcher
}

// matcher is one brace alternative of a pattern.
type matcher struct {
	glob     glob.Glob
	baseName bool
}

// CompilePattern compiles a file glob.
//
// A pattern without a slash matches the base name of a path ("*.test.ts"
// matches "src/app.test.ts"). A trailing slash means everything below that
// directory. "**" may stand for zero directories at the start or in the
// middle of a pattern. Brace alternatives are expanded first and each one
// decides on its own whether it matches the base name, so "{*.ts,lib/*.js}"
// matches both "src/a.ts" and "lib/b.js".
func CompilePattern(raw string) (*Pattern, error) {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidPattern, raw)
	}
	if strings.HasSuffix(p, "/") {
		p += "**"
	}

	pat := &Pattern{raw: raw}
	for _, expanded := range expandBraces(p) {
		baseName := !strings.Contains(expanded, "/")
		for _, alt := range patternAlternatives(expanded) {
			g, err := glob.Compile(alt, '/')
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, raw, err)
			}
			pat.globs = append(pat.globs, matcher{glob: g, baseName: baseName})
		}
	}
	return pat, nil
}

// expandBraces expands brace alternatives, nested ones included:
// "*.{ts,{m,c}js}" gives "*.ts", "*.mjs" and "*.cjs". Unbalanced braces are
// left in place for the glob compiler to reject.
func expandBraces(p string) []string {
	open, depth := -1, 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			i++
		case '{':
			if depth == 0 {
				open = i
			}
			depth++
		case '}':
			if depth == 0 {
				return []string{p}
			}
			depth--
			if depth > 0 {
				continue
			}
			var out []string
			for _, alt := range splitAlternatives(p[open+1 : i]) {
				for _, rest := range expandBraces(alt + p[i+1:]) {
					out = append(out, p[:open]+rest)
				}
			}
			return out
		}
	}
	return []string{p}
}

// splitAlternatives splits the body of a brace group on its top-level commas.
func splitAlternatives(body string) []string {
	var (
		alts  []string
		depth int
		start int
	)
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(alts, body[start:])
}

// patternAlternatives expands the zero-directory forms of "**".
func patternAlternatives(p string) []string {
	alts := []string{p}
	add := func(s string) {
		if s == "" {
			return
		}
		for _, a := range alts {
			if a == s {
				return
			}
		}
		alts = append(alts, s)
	}

	trimmed := strings.TrimPrefix(p, "**/")
	add(trimmed)
	add(collapseDoubleStar(p))
	add(collapseDoubleStar(trimmed))
	return alts
}

func collapseDoubleStar(p string) string {
	for strings.Contains(p, "/**/") {
		p = strings.Replace(p, "/**/", "/", 1)
	}
	return p
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether a normalized path matches the pattern.
func (p *Pattern) Match(filePath string) bool {
	base := path.Base(filePath)
	for _, m := range p.globs {
		target := filePath
		if m.baseName {
			target = base
		}
		if m.glob.Match(target) {
			return true
		}
	}
	return false
}

// NormalizePath prepares a path for matching: forward slashes, NFC, cleaned,
// and relative to baseDir when it lies inside it.
func NormalizePath(filePath, baseDir string) string {
	p := norm.NFC.String(strings.ReplaceAll(filePath, `\`, "/"))
	if p == "" {
		return p
	}
	p = path.Clean(p)

	if baseDir != "" && path.IsAbs(p) {
		base := path.Clean(norm.NFC.String(strings.ReplaceAll(baseDir, `\`, "/")))
		if p == base {
			return "."
		}
		prefix := strings.TrimSuffix(base, "/") + "/"
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix)
		}
	}
	return p
}

// compilePatterns compiles a list of globs. In lenient mode invalid patterns
// are dropped instead of failing.
func compilePatterns(raw []string, lenient bool) ([]*Pattern, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*Pattern, 0, len(raw))
	for _, r := range raw {
		p, err := CompilePattern(r)
		if err != nil {
			if lenient {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func matchAny(patterns []*Pattern, filePath string) bool {
	for _, p := range patterns {
		if p.Match(filePath) {
			return true
		}
	}
	return false
}
