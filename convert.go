package pagecopy

import (
	"regexp"
	"strconv"
	"strings"
)

// blankRunRe matches three or more consecutive newlines.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// languageReplacer strips the class-name noise highlighters put around
// the language of a code block.
var languageReplacer = strings.NewReplacer("language-", "", "lang-", "", "hljs", "")

// Convert renders a content subtree as Markdown-flavoured plain text.
//
// Each element emits generous separation around itself; the result is then
// normalized once for the whole document: runs of three or more newlines
// collapse to two and the output is trimmed. Convert never mutates root, but
// callers that filter nodes before converting should pass a Fragment root.
func Convert(root ContentNode) string {
	if root == nil {
		return ""
	}
	return Normalize(convertNode(root, ""))
}

// Normalize applies the document-level whitespace rules to s.
func Normalize(s string) string {
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	s = strings.Trim(s, "\n")
	return strings.TrimSpace(s)
}

func convertNode(n ContentNode, parentTag string) string {
	switch n.Kind() {
	case TextNode:
		return n.Text()
	case ElementNode:
	default:
		return ""
	}

	tag := n.Tag()
	if tag == "ol" {
		return "\n" + convertOrderedList(n)
	}

	var sb strings.Builder
	for _, c := range n.Children() {
		sb.WriteString(convertNode(c, tag))
	}
	children := sb.String()
	trimmed := strings.TrimSpace(children)

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(tag[1:])
		return "\n" + strings.Repeat("#", level) + " " + trimmed + "\n\n"
	case "p":
		if trimmed == "" {
			return "\n"
		}
		return trimmed + "\n\n"
	case "strong", "b":
		return "**" + children + "**"
	case "em", "i":
		return "*" + children + "*"
	case "code":
		if parentTag == "pre" {
			return children
		}
		return "`" + children + "`"
	case "pre":
		return "\n```" + codeLanguage(n) + "\n" + trimmed + "\n```\n\n"
	case "ul":
		return "\n" + children
	case "li":
		return "- " + trimmed + "\n"
	case "a":
		href, _ := n.Attr("href")
		if href != "" && !strings.HasPrefix(href, "#") && trimmed != "" {
			return "[" + trimmed + "](" + href + ")"
		}
		return children
	case "br":
		return "\n"
	case "div", "section", "article":
		return children + "\n"
	case "blockquote":
		return "\n> " + trimmed + "\n\n"
	case "table":
		return "\n" + children + "\n"
	case "tr":
		return children + "\n"
	case "th", "td":
		return "| " + trimmed + " "
	case "img":
		src, _ := n.Attr("src")
		if src == "" {
			return ""
		}
		alt, _ := n.Attr("alt")
		return "![" + alt + "](" + src + ")"
	default:
		// thead, tbody and unknown tags are transparent.
		return children
	}
}

// convertOrderedList numbers the direct li children of an ol from 1,
// ignoring any start or value attributes and any non-li children.
func convertOrderedList(n ContentNode) string {
	var sb strings.Builder
	index := 0
	for _, c := range n.Children() {
		if c.Kind() != ElementNode || c.Tag() != "li" {
			continue
		}
		index++
		item := strings.TrimPrefix(convertNode(c, "ol"), "- ")
		sb.WriteString(strconv.Itoa(index))
		sb.WriteString(". ")
		sb.WriteString(item)
	}
	return sb.String()
}

// codeLanguage derives the fence language tag of a pre block from the
// class of the first code element it contains. Returns "" when there is
// no code element or no class.
func codeLanguage(pre ContentNode) string {
	code := findFirst(pre, "code")
	if code == nil {
		return ""
	}
	class, _ := code.Attr("class")
	fields := strings.Fields(languageReplacer.Replace(class))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// findFirst returns the first descendant element of n with the given tag,
// in document order.
func findFirst(n ContentNode, tag string) ContentNode {
	for _, c := range n.Children() {
		if c.Kind() != ElementNode {
			continue
		}
		if c.Tag() == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}
