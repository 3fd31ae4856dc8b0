// ABOUTME: HTML utilities for stripping tags and decoding entities
// ABOUTME: Produces plain text fit for voice synthesis and logs

package html

import (
	"strings"
)

// StripHTML removes tags and script/style bodies from a fragment and
// decodes common entities. Whitespace collapses to single spaces.
func StripHTML(fragment string) string {
	var b strings.Builder
	b.Grow(len(fragment))

	skip := "" // inside <script> or <style>, drop until this closer
	for i := 0; i < len(fragment); {
		if skip != "" {
			end := strings.Index(strings.ToLower(fragment[i:]), skip)
			if end < 0 {
				break
			}
			i += end + len(skip)
			skip = ""
			continue
		}

		if fragment[i] == '<' {
			end := strings.IndexByte(fragment[i:], '>')
			if end < 0 {
				break
			}
			tag := strings.ToLower(strings.TrimSpace(fragment[i+1 : i+end]))
			if tag == "script" || strings.HasPrefix(tag, "script ") {
				skip = "</script>"
			} else if tag == "style" || strings.HasPrefix(tag, "style ") {
				skip = "</style>"
			}
			b.WriteByte(' ')
			i += end + 1
			continue
		}

		b.WriteByte(fragment[i])
		i++
	}

	return strings.Join(strings.Fields(DecodeEntities(b.String())), " ")
}

// DecodeEntities decodes the entities feeds actually emit, simplifying
// typographic characters to their ASCII forms.
func DecodeEntities(text string) string {
	replacements := map[string]string{
		"&nbsp;":   " ",
		"&amp;":    "&",
		"&lt;":     "<",
		"&gt;":     ">",
		"&quot;":   "\"",
		"&#39;":    "'",
		"&apos;":   "'",
		"&#8230;":  "...",
		"&#8217;":  "'",
		"&#8220;":  "\"",
		"&#8221;":  "\"",
		"&ldquo;":  "\"",
		"&rdquo;":  "\"",
		"&lsquo;":  "'",
		"&rsquo;":  "'",
		"&mdash;":  "-",
		"&ndash;":  "-",
		"&hellip;": "...",
		"&copy;":   "(c)",
		"&reg;":    "(R)",
		"&trade;":  "(TM)",
	}

	result := text
	for entity, replacement := range replacements {
		result = strings.ReplaceAll(result, entity, replacement)
	}

	return result
}
