package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-view/pkg/render/template"
)

// Default helper names registered by New.
const (
	HelperEscapeHTML  = "e"
	HelperEscapeSlash = "j"
)

var (
	// Single quotes are left untouched.
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
	)
	slashEscaper = strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`"`, `\"`,
		"\x00", `\0`,
	)
)

// EscapeHTML escapes the characters that are significant in HTML text and
// double-quoted attributes.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeSlashes backslash-escapes quotes, backslashes and NUL bytes.
func EscapeSlashes(s string) string {
	return slashEscaper.Replace(s)
}

func escapeHTMLHelper(_ template.View, args ...any) (any, error) {
	s, err := stringArg(HelperEscapeHTML, args)
	if err != nil {
		return nil, err
	}
	return EscapeHTML(s), nil
}

func escapeSlashHelper(_ template.View, args ...any) (any, error) {
	s, err := stringArg(HelperEscapeSlash, args)
	if err != nil {
		return nil, err
	}
	return EscapeSlashes(s), nil
}

func stringArg(helper string, args []any) (string, error) {
	if len(args) != 1 {
		return "", invalidArgument("helper %q expects 1 argument, got %d", helper, len(args))
	}
	return ToString(args[0]), nil
}

// ToString converts a template value into its textual form. nil becomes the
// empty string.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case template.Markup:
		return string(v)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
