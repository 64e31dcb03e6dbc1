package markup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-view/pkg/render"
	"github.com/goliatone/go-view/pkg/render/template"
)

// Helper names registered by Register.
const (
	HelperSanitize = "sanitize"
	HelperMarkdown = "markdown"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Sanitize strips markup that is unsafe in user generated content.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return sanitizer().Sanitize(trimmed)
}

// SanitizeHelper is the helper form of Sanitize.
func SanitizeHelper(_ template.View, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: helper %q expects 1 argument, got %d", render.ErrInvalidArgument, HelperSanitize, len(args))
	}
	return template.Markup(Sanitize(render.ToString(args[0]))), nil
}

// Register adds the sanitize and markdown helpers to r.
func Register(r *render.Renderer) error {
	if err := r.AddHelper(HelperSanitize, SanitizeHelper); err != nil {
		return err
	}
	return r.AddHelper(HelperMarkdown, MarkdownHelper)
}

func sanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
		ugcPolicy = policy
	})
	return ugcPolicy
}
