package convert

import (
	"strings"
	"testing"
)

func mustTransduce(t *testing.T, input string) string {
	t.Helper()
	got, err := New().Transduce(input)
	if err != nil {
		t.Fatalf("Transduce() error = %v", err)
	}
	return got
}

func TestTransduce_CodeFence(t *testing.T) {
	got := mustTransduce(t, `<pre><code class="language-swift">let x = 1</code></pre>`)

	if !strings.Contains(got, "```swift\nlet x = 1\n```") {
		t.Errorf("expected swift fence, got %q", got)
	}
	if strings.Contains(got, "````") {
		t.Errorf("expected no extra backticks, got %q", got)
	}
	if strings.Count(got, "```") != 2 {
		t.Errorf("expected exactly one opening and one closing fence, got %q", got)
	}
}

func TestTransduce_CodeFenceWithoutLanguage(t *testing.T) {
	got := mustTransduce(t, "<pre><code>make build\nmake test\n</code></pre>")

	if !strings.Contains(got, "```\nmake build\nmake test\n```") {
		t.Errorf("expected untagged fence, got %q", got)
	}
}

func TestTransduce_InlineCode(t *testing.T) {
	got := mustTransduce(t, `<p>Run <code>make build</code> first.</p>`)

	if !strings.Contains(got, "`make build`") {
		t.Errorf("expected inline code, got %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("inline code must not be fenced, got %q", got)
	}
}

func TestTransduce_OrderedListRenumbers(t *testing.T) {
	got := mustTransduce(t, `<ol start="4"><li value="9">A</li><li value="2">B</li><li>C</li></ol>`)

	if !strings.Contains(got, "1. A\n2. B\n3. C") {
		t.Errorf("expected sequential numbering, got %q", got)
	}
}

func TestTransduce_UnorderedList(t *testing.T) {
	got := mustTransduce(t, `<ul><li>Alpha</li><li></li><li>Beta</li></ul>`)

	if !strings.Contains(got, "- Alpha\n- Beta") {
		t.Errorf("expected dash bullets without empty items, got %q", got)
	}
}

func TestTransduce_NestedList(t *testing.T) {
	got := mustTransduce(t, `<ol><li>Parent<ul><li>Child</li></ul></li><li>Next</li></ol>`)

	for _, want := range []string{"1. Parent", "   - Child", "2. Next"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestTransduce_Links(t *testing.T) {
	got := mustTransduce(t, `<p>See <a href="https://example.com/docs">the docs</a>, <a href="#">top</a> and <a>anchor</a>.</p>`)

	if !strings.Contains(got, "[the docs](https://example.com/docs)") {
		t.Errorf("expected inline link, got %q", got)
	}
	for _, bare := range []string{"top", "anchor"} {
		if !strings.Contains(got, bare) {
			t.Errorf("expected bare text %q, got %q", bare, got)
		}
		if strings.Contains(got, "["+bare+"]") {
			t.Errorf("expected link markup dropped for %q, got %q", bare, got)
		}
	}
}

func TestTransduce_DefaultRule(t *testing.T) {
	got := mustTransduce(t, `<h1>H1</h1><h2>H2</h2><h3>H3</h3><p><em>soft</em> and <strong>loud</strong></p>`)

	for _, want := range []string{"# H1", "## H2", "### H3", "*soft*", "**loud**"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestTransduce_Degrades(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "whitespace input", input: "  \n ", want: ""},
		{name: "empty ordered list", input: "<ol></ol>", want: ""},
		{name: "empty unordered list", input: "<ul><li> </li></ul>", want: ""},
		{name: "empty inline code", input: "<code></code>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustTransduce(t, tt.input)
			if strings.TrimSpace(got) != tt.want {
				t.Errorf("Transduce(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransduce_UnknownElement(t *testing.T) {
	got := mustTransduce(t, `<x-tabs><x-tab>Inner text</x-tab></x-tabs>`)

	if !strings.Contains(got, "Inner text") {
		t.Errorf("expected child text of unknown element, got %q", got)
	}
}

func TestTransduce_RuleTagsInContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "pre", input: `<p>Before</p><pre><code class="language-go">x := 1</code></pre><p>After</p>`, want: []string{"Before", "```go\nx := 1\n```", "After"}},
		{name: "code", input: `<p>Call <code>Init()</code> once</p>`, want: []string{"Call `Init()` once"}},
		{name: "ol", input: `<p>Steps</p><ol><li>First</li><li>Second</li></ol>`, want: []string{"1. First", "2. Second"}},
		{name: "ul", input: `<p>Items</p><ul><li>First</li></ul>`, want: []string{"- First"}},
		{name: "a", input: `<p>Read <a href="/guide">the guide</a> now</p>`, want: []string{"Read [the guide](/guide) now"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustTransduce(t, tt.input)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
		})
	}
}
