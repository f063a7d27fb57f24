package generator

import (
	"strings"
	"unicode"

	"github.com/vitalvas/routedoc/docblock"
)

// CommentParser parses structured doc comments. docblock.Parser is the
// default implementation.
type CommentParser interface {
	Parse(text string) (*docblock.Comment, error)
}

// CommentSource finds the doc comment of a handler by its name, as
// produced by routes.HandlerName.
type CommentSource interface {
	Comment(handlerName string) (string, bool)
}

// MapCommentSource is a CommentSource backed by a map.
type MapCommentSource map[string]string

// Comment returns the comment registered for handlerName.
func (m MapCommentSource) Comment(handlerName string) (string, bool) {
	c, ok := m[handlerName]
	return c, ok
}

// ResponseTag is a "@response <code> <description>" entry.
type ResponseTag struct {
	Code        string
	Description string
}

// CommentMetadata is what a handler comment contributes to an operation.
type CommentMetadata struct {
	Deprecated  bool
	Summary     string
	Description string
	Responses   []ResponseTag
}

// ExtractComment reads operation metadata from a raw handler comment.
//
// A disabled extractor or an empty comment yields zero metadata and no
// error. When the parser fails, the zero metadata is returned together with
// the parse error; callers use the metadata and may report the error.
func ExtractComment(parser CommentParser, raw string, enabled bool) (CommentMetadata, error) {
	if !enabled || strings.TrimSpace(raw) == "" {
		return CommentMetadata{}, nil
	}
	if parser == nil {
		parser = docblock.Parser{}
	}

	comment, err := parser.Parse(raw)
	if err != nil {
		return CommentMetadata{}, err
	}

	meta := CommentMetadata{
		Deprecated:  comment.HasTag("deprecated"),
		Summary:     comment.Summary,
		Description: comment.Description,
	}
	for _, tag := range comment.TagsByName("response") {
		if resp, ok := parseResponseTag(tag.Body); ok {
			meta.Responses = append(meta.Responses, resp)
		}
	}
	return meta, nil
}

// parseResponseTag splits "<code> <description>" on the first run of
// whitespace. A body without whitespace is a code with an empty
// description; an empty body is dropped.
func parseResponseTag(body string) (ResponseTag, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return ResponseTag{}, false
	}

	i := strings.IndexFunc(body, unicode.IsSpace)
	if i < 0 {
		return ResponseTag{Code: body}, true
	}
	return ResponseTag{
		Code:        body[:i],
		Description: strings.TrimSpace(body[i:]),
	}, true
}
