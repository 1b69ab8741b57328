// Package render is the deterministic markdown-to-HTML fallback used when no
// generation service is configured or the call to one fails.
package render

import "strings"

// Fragment converts markdown to an HTML fragment using a line-oriented pass.
// It recognizes headings (levels 1-3), unordered lists, and paragraphs;
// everything else becomes a paragraph. Content is embedded unescaped - the
// input is our own extraction output, not untrusted user markup.
//
// The only state is whether a list is open; blank lines close it and
// otherwise produce no output.
func Fragment(markdown string) string {
	lines := strings.Split(markdown, "\n")
	htmlLines := make([]string, 0, len(lines))
	inList := false

	closeList := func() {
		if inList {
			htmlLines = append(htmlLines, "</ul>")
			inList = false
		}
	}

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\n\v\f")

		switch {
		case line == "":
			closeList()

		case strings.HasPrefix(line, "# "):
			closeList()
			htmlLines = append(htmlLines, "<h1>"+strings.TrimSpace(line[2:])+"</h1>")

		case strings.HasPrefix(line, "## "):
			closeList()
			htmlLines = append(htmlLines, "<h2>"+strings.TrimSpace(line[3:])+"</h2>")

		case strings.HasPrefix(line, "### "):
			closeList()
			htmlLines = append(htmlLines, "<h3>"+strings.TrimSpace(line[4:])+"</h3>")

		case strings.HasPrefix(line, "- "):
			if !inList {
				htmlLines = append(htmlLines, "<ul>")
				inList = true
			}
			htmlLines = append(htmlLines, "<li>"+strings.TrimSpace(line[2:])+"</li>")

		default:
			closeList()
			htmlLines = append(htmlLines, "<p>"+line+"</p>")
		}
	}

	closeList()

	return strings.Join(htmlLines, "\n")
}
