// Package naming resolves clean, collision-safe filenames for exported
// artifacts.
//
// Source locators are often signed storage URLs whose last segment is an
// opaque object ID followed by a query string. None of that may leak into
// a filename that a DAW project references.
package naming

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/simonhull/dawmark/internal/types"
)

// MaxStem bounds the length of a filename stem in bytes.
const MaxStem = 120

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
	opaqueHex     = regexp.MustCompile(`^[0-9a-fA-F_-]{16,}$`)
)

// Sanitize makes name safe to use as a single path segment on common
// filesystems. It may return "".
func Sanitize(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = repeatedSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if len(name) > MaxStem {
		name = name[:MaxStem]
		for !utf8.ValidString(name) {
			name = name[:len(name)-1]
		}
		name = strings.TrimSpace(name)
	}
	return name
}

// BaseName returns the unescaped last path segment of a URL or file path,
// without query string or fragment.
func BaseName(locator string) string {
	p := locator
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, `\`, "/")
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// Opaque reports whether stem looks like a machine identifier (a UUID or
// a long hex/object key) rather than a name a person chose.
func Opaque(stem string) bool {
	if _, err := uuid.Parse(stem); err == nil {
		return true
	}
	return opaqueHex.MatchString(stem)
}

// Stem returns name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// AudioName picks the filename for the bundled audio copy. Candidates in
// order: the caller's explicit name, the locator's last segment unless it
// is opaque, the project title, then "audio". The extension always comes
// from the detected format.
func AudioName(explicit, locator, title string, f types.Format) string {
	return ResolveStem(explicit, locator, title) + f.Extension()
}

// ResolveStem is AudioName without the extension.
func ResolveStem(explicit, locator, title string) string {
	candidates := []string{
		Stem(BaseName(explicit)),
		Stem(BaseName(locator)),
		title,
	}
	for i, c := range candidates {
		c = Sanitize(c)
		if c == "" || (i < 2 && Opaque(c)) {
			continue
		}
		return c
	}
	return "audio"
}

// Set hands out unique names within one package. Comparison ignores case
// so archives extract cleanly on case-insensitive filesystems.
//
// The zero value is ready to use.
type Set struct {
	used map[string]bool
}

// Claim returns name, or name with " (n)" inserted before the extension
// when it is already taken.
func (s *Set) Claim(name string) string {
	if s.used == nil {
		s.used = make(map[string]bool)
	}

	candidate := name
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; s.used[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	s.used[strings.ToLower(candidate)] = true
	return candidate
}
