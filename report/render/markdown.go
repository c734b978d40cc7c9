package render

import (
	"regexp"
	"strings"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
)

type block struct {
	kind blockKind
	text string
}

var (
	emphasisPattern = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	numberedPattern = regexp.MustCompile(`^\d+[.)]\s+`)
)

// blocks splits generated text into paragraphs, headings and bullets with markdown markers removed.
func blocks(body string) []block {
	var out []block
	var para []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, block{kind: blockParagraph, text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, raw := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			flush()
			if text := inline(strings.TrimLeft(line, "# ")); text != "" {
				out = append(out, block{kind: blockHeading, text: text})
			}
		case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "- "), strings.HasPrefix(line, "+ "):
			flush()
			out = append(out, block{kind: blockBullet, text: inline(line[2:])})
		default:
			if loc := numberedPattern.FindStringIndex(line); loc != nil {
				flush()
				out = append(out, block{kind: blockBullet, text: inline(line)})
				continue
			}
			para = append(para, inline(line))
		}
	}
	flush()
	return out
}

func inline(s string) string {
	s = emphasisPattern.ReplaceAllString(s, "$2")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}
