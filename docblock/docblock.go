// Package docblock parses structured doc comments: a free-text summary and
// description followed by machine-readable "@tag body" lines.
//
// Both Go line comments and block comments are accepted, as is text that
// already had its comment markers removed (go/ast CommentGroup.Text):
//
//	// Show returns a single user.
//	//
//	// The user is looked up by its public ID.
//	//
//	// @response 404 User not found
//	// @deprecated
//
// The summary is the first paragraph, cut short by a line ending in a
// period. The description is the remaining free text before the first tag.
// Lines that follow a tag and do not start a new tag continue its body.
package docblock

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformed is matched by every error returned from Parse.
var ErrMalformed = errors.New("docblock: malformed comment")

// SyntaxError reports where a comment could not be parsed.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("docblock: line %d: %s", e.Line, e.Msg)
}

// Is reports whether target is ErrMalformed.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformed
}

// Tag is a single "@name body" entry.
type Tag struct {
	Name string
	Body string
}

// Comment is a parsed doc comment.
type Comment struct {
	Summary     string
	Description string
	Tags        []Tag
}

// HasTag reports whether a tag with the given name is present.
func (c *Comment) HasTag(name string) bool {
	for _, tag := range c.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

// TagsByName returns the tags with the given name in declaration order.
func (c *Comment) TagsByName(name string) []Tag {
	var out []Tag
	for _, tag := range c.Tags {
		if tag.Name == name {
			out = append(out, tag)
		}
	}
	return out
}

// Parser parses doc comments. The zero value is ready to use.
type Parser struct{}

// Parse parses text with a zero Parser.
func Parse(text string) (*Comment, error) {
	return Parser{}.Parse(text)
}

// Parse parses a doc comment.
func (Parser) Parse(text string) (*Comment, error) {
	lines, err := stripMarkers(text)
	if err != nil {
		return nil, err
	}

	comment := &Comment{}
	var prose []string
	var current *Tag

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "@") {
			name, body, err := splitTag(trimmed)
			if err != nil {
				return nil, &SyntaxError{Line: i + 1, Msg: err.Error()}
			}
			comment.Tags = append(comment.Tags, Tag{Name: name, Body: body})
			current = &comment.Tags[len(comment.Tags)-1]
			continue
		}

		if current != nil {
			if trimmed == "" {
				current = nil
				continue
			}
			if current.Body == "" {
				current.Body = trimmed
			} else {
				current.Body += "\n" + trimmed
			}
			continue
		}

		if len(comment.Tags) == 0 {
			prose = append(prose, trimmed)
		}
	}

	comment.Summary, comment.Description = splitProse(prose)
	return comment, nil
}

// stripMarkers removes "//", "/*", "*/" and leading "*" decorations.
func stripMarkers(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/*") {
		if !strings.HasSuffix(text, "*/") || len(text) < 4 {
			return nil, &SyntaxError{Line: 1, Msg: "unterminated block comment"}
		}
		text = strings.TrimPrefix(text, "/**")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "//"):
			line = strings.TrimPrefix(line, "//")
		case strings.HasPrefix(line, "*/"):
			line = ""
		case strings.HasPrefix(line, "*"):
			line = strings.TrimPrefix(line, "*")
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// splitTag splits "@name body" into its parts.
func splitTag(line string) (string, string, error) {
	rest := line[1:]
	end := strings.IndexFunc(rest, unicode.IsSpace)
	name, body := rest, ""
	if end >= 0 {
		name, body = rest[:end], strings.TrimSpace(rest[end:])
	}

	if name == "" {
		return "", "", errors.New("empty tag name")
	}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '\\' || (i > 0 && (unicode.IsDigit(r) || r == '-' || r == '_' || r == ':')) {
			continue
		}
		return "", "", fmt.Errorf("invalid tag name %q", name)
	}
	return name, body, nil
}

// splitProse separates the summary paragraph from the description.
func splitProse(lines []string) (string, string) {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	var summary []string
	i := 0
	for ; i < len(lines); i++ {
		if lines[i] == "" {
			break
		}
		summary = append(summary, lines[i])
		if strings.HasSuffix(lines[i], ".") {
			i++
			break
		}
	}

	description := strings.TrimSpace(strings.Join(lines[i:], "\n"))
	return strings.Join(summary, " "), description
}
