package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-view/pkg/render"
	"github.com/goliatone/go-view/pkg/render/template"
	"github.com/goliatone/go-view/pkg/testsupport"
)

func TestEscapeHTML(t *testing.T) {
	got := render.EscapeHTML(`<a href="x">Tom & 'Jerry'</a>`)
	want := `&lt;a href=&quot;x&quot;&gt;Tom &amp; 'Jerry'&lt;/a&gt;`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEscapeSlashes(t *testing.T) {
	got := render.EscapeSlashes("O'Reilly \"quoted\" back\\slash \x00")
	want := `O\'Reilly \"quoted\" back\\slash \0`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{template.Markup("<b>"), "<b>"},
		{[]byte("bytes"), "bytes"},
		{42, "42"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := render.ToString(tc.in); got != tc.want {
			t.Fatalf("ToString(%#v): want %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestRenderer_DefaultHelpers(t *testing.T) {
	r := newRenderer(t, nil)

	if diff := cmp.Diff([]string{"e", "j"}, r.Helpers()); diff != "" {
		t.Fatalf("default helpers mismatch (-want +got):\n%s", diff)
	}

	out, err := r.Call(testsupport.Context(), "e", "<p>")
	if err != nil {
		t.Fatalf("call e: %v", err)
	}
	if out != "&lt;p&gt;" {
		t.Fatalf("e helper: got %v", out)
	}

	out, err = r.Call(testsupport.Context(), "j", "it's")
	if err != nil {
		t.Fatalf("call j: %v", err)
	}
	if out != `it\'s` {
		t.Fatalf("j helper: got %v", out)
	}

	if _, err := r.Call(testsupport.Context(), "e"); !errors.Is(err, render.ErrInvalidArgument) {
		t.Fatalf("expected arity error, got %v", err)
	}
}

func TestRenderer_UnknownHelper(t *testing.T) {
	r := newRenderer(t, nil)
	if err := r.AddHelper("upper", func(_ template.View, args ...any) (any, error) {
		return strings.ToUpper(render.ToString(args[0])), nil
	}); err != nil {
		t.Fatalf("add helper: %v", err)
	}

	_, err := r.Call(testsupport.Context(), "missing")
	if !errors.Is(err, render.ErrUnknownHelper) {
		t.Fatalf("expected ErrUnknownHelper, got %v", err)
	}
	if !strings.Contains(err.Error(), "e, j, upper") {
		t.Fatalf("message should list helpers, got %q", err.Error())
	}

	var herr *render.UnknownHelperError
	if !errors.As(err, &herr) || herr.Name != "missing" {
		t.Fatalf("expected *UnknownHelperError for missing, got %v", err)
	}
}

func TestRenderer_AddHelperValidation(t *testing.T) {
	r := newRenderer(t, nil)

	if err := r.AddHelper("", func(template.View, ...any) (any, error) { return nil, nil }); !errors.Is(err, render.ErrInvalidArgument) {
		t.Fatalf("empty name: expected ErrInvalidArgument, got %v", err)
	}
	if err := r.AddHelper("nil", nil); !errors.Is(err, render.ErrInvalidArgument) {
		t.Fatalf("nil helper: expected ErrInvalidArgument, got %v", err)
	}
}

func TestHelpers_ReceiveActiveView(t *testing.T) {
	title := func(view template.View, args ...any) (any, error) {
		view.SetGlobal("title", render.ToString(args[0]))
		return "", nil
	}
	section := func(view template.View, args ...any) (any, error) {
		return view.Render(render.ToString(args[0]), nil)
	}

	r := newRenderer(t, map[string]tplFunc{
		"page.tpl": func(view template.View, _ map[string]any) (string, error) {
			if _, err := view.Call("title", "Inside"); err != nil {
				return "", err
			}
			out, err := view.Call("section", "sub.tpl")
			if err != nil {
				return "", err
			}
			return render.ToString(out), nil
		},
		"sub.tpl": echo("title"),
	}, render.WithHelper("title", title), render.WithHelper("section", section))

	if got := mustRender(t, r, "page.tpl", nil); got != "Inside" {
		t.Fatalf("helper should act on the tree, got %q", got)
	}
	if r.Get("title") != nil {
		t.Fatal("helper called inside a render must not persist globals")
	}

	if _, err := r.Call(testsupport.Context(), "title", "Outside"); err != nil {
		t.Fatalf("call title: %v", err)
	}
	if got := r.Get("title"); got != "Outside" {
		t.Fatalf("helper called outside a render should persist, got %v", got)
	}
}

func TestHelperRegistry(t *testing.T) {
	reg := render.NewHelperRegistry()
	noop := func(template.View, ...any) (any, error) { return "first", nil }

	reg.MustRegister("b", noop)
	reg.MustRegister("a", noop)
	if !reg.Has("a") || reg.Has("c") {
		t.Fatal("unexpected Has results")
	}
	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	reg.MustRegister("a", func(template.View, ...any) (any, error) { return "second", nil })
	helper, err := reg.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out, _ := helper(nil); out != "second" {
		t.Fatalf("register should replace, got %v", out)
	}
}
