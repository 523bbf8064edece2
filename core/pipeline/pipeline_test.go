package pipeline

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/docmark/core/extract"
)

const longArticle = `<html lang="en"><head><title>Install Guide</title></head><body>
<nav>Products Pricing Docs</nav>
<div class="sidebar">Sidebar links</div>
<main><article>
<h1>Installing the agent</h1>
<p>The agent runs on every host that needs monitoring and reports metrics back to the collector.</p>
<ol><li value="3">Download the package.</li><li value="7">Run the installer.</li></ol>
<pre><code class="language-bash">sudo ./install.sh</code></pre>
</article></main>
<footer>Copyright Example Corp</footer>
</body></html>`

func TestProcess_EndToEnd(t *testing.T) {
	input := `<html><body><nav>Skip</nav><article><h1>Title</h1><p>Intro.</p><ol><li>One</li><li>Two</li></ol></article></body></html>`

	res, err := New().Process(input)
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent for a short page, got %v", err)
	}
	if res == nil {
		t.Fatal("expected a result alongside the error")
	}

	md := res.Markdown
	if !strings.Contains(md, "# Title") {
		t.Errorf("expected heading, got %q", md)
	}
	if strings.Contains(md, "Skip") {
		t.Errorf("expected nav removed, got %q", md)
	}
	lines := strings.Split(md, "\n")
	for _, want := range []string{"1. One", "2. Two"} {
		found := false
		for _, line := range lines {
			if line == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected line %q in %q", want, md)
		}
	}
}

func TestProcess_SelectsRegion(t *testing.T) {
	res, err := New().Process(longArticle)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.Rule != "main article" || res.Fallback {
		t.Errorf("expected main article rule, got rule=%q fallback=%v", res.Rule, res.Fallback)
	}
	if res.Title != "Install Guide" || res.Language != "en" {
		t.Errorf("unexpected metadata: title=%q lang=%q", res.Title, res.Language)
	}
	for _, unwanted := range []string{"Products", "Sidebar", "Copyright"} {
		if strings.Contains(res.Markdown, unwanted) {
			t.Errorf("expected %q excluded, got %q", unwanted, res.Markdown)
		}
	}
	for _, want := range []string{"# Installing the agent", "1. Download the package.", "2. Run the installer.", "```bash\nsudo ./install.sh\n```"} {
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("expected %q in %q", want, res.Markdown)
		}
	}
	if res.Length < MinContentLength {
		t.Errorf("expected length >= %d, got %d", MinContentLength, res.Length)
	}
}

func TestProcess_BodyFallback(t *testing.T) {
	body := strings.Repeat("Plain body paragraph with enough words to be useful. ", 4)
	input := `<html><body><header>Site header</header><div>` + body + `</div><aside>Related</aside></body></html>`

	res, err := New().Process(input)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !res.Fallback || res.Rule != "" {
		t.Errorf("expected body fallback, got rule=%q fallback=%v", res.Rule, res.Fallback)
	}
	if !strings.Contains(res.Markdown, "Plain body paragraph") {
		t.Errorf("expected body text, got %q", res.Markdown)
	}
	if strings.Contains(res.Markdown, "Related") || strings.Contains(res.Markdown, "Site header") {
		t.Errorf("expected chrome removed, got %q", res.Markdown)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	p := New()
	res, err := p.Process(longArticle)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if again := p.NormalizeMarkdown(res.Markdown); again != res.Markdown {
		t.Errorf("normalizing output changed it:\n%q\n%q", res.Markdown, again)
	}
}

func TestProcessMarkdown(t *testing.T) {
	p := New()

	res, err := p.ProcessMarkdown("* a\n\n\n\n3 min read\n")
	if !errors.Is(err, ErrInsufficientContent) {
		t.Errorf("expected ErrInsufficientContent, got %v", err)
	}
	if res.Markdown != "- a" {
		t.Errorf("ProcessMarkdown() = %q, want %q", res.Markdown, "- a")
	}

	long := strings.Repeat("word ", 30)
	res, err = p.ProcessMarkdown(long)
	if err != nil {
		t.Errorf("ProcessMarkdown() error = %v", err)
	}
	if res.Length != len(strings.TrimSpace(long)) {
		t.Errorf("Length = %d, want %d", res.Length, len(strings.TrimSpace(long)))
	}
}

func TestWithMinLength(t *testing.T) {
	p := New(WithMinLength(0))
	if _, err := p.ProcessMarkdown("short"); err != nil {
		t.Errorf("expected no error with check disabled, got %v", err)
	}

	p = New(WithMinLength(-5))
	if _, err := p.ProcessMarkdown("short"); !errors.Is(err, ErrInsufficientContent) {
		t.Errorf("expected negative min length ignored, got %v", err)
	}
}

func TestWithSelector(t *testing.T) {
	sel := extract.New(extract.WithRules(extract.CSS("#docs")))
	p := New(WithSelector(sel), WithMinLength(0))

	res, err := p.Process(`<html><body><div id="docs">Short docs body.</div><div>Other</div></body></html>`)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// The custom rule still needs enough text to be accepted.
	if !res.Fallback {
		t.Errorf("expected fallback for short candidate, got rule %q", res.Rule)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	if _, err := p.Process(longArticle); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"rule":"main article"`) {
		t.Errorf("expected rule in debug log, got %q", out)
	}
	if !strings.Contains(out, `"sweeps"`) {
		t.Errorf("expected sweep count in debug log, got %q", out)
	}
}

func TestPackageFunctions(t *testing.T) {
	fragment, err := ExtractContentRegion(longArticle)
	if err != nil {
		t.Fatalf("ExtractContentRegion() error = %v", err)
	}
	if !strings.Contains(fragment, "<h1>Installing the agent</h1>") {
		t.Errorf("expected region HTML, got %q", fragment)
	}
	if strings.Contains(fragment, "<nav>") {
		t.Errorf("expected nav removed, got %q", fragment)
	}

	if got := NormalizeMarkdown("####### Deep"); got != "##### Deep" {
		t.Errorf("NormalizeMarkdown() = %q", got)
	}
}

func TestProcess_Concurrent(t *testing.T) {
	want, err := defaultPipeline.Process(longArticle)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				got, err := defaultPipeline.Process(longArticle)
				if err != nil {
					t.Errorf("Process() error = %v", err)
					return
				}
				if got.Markdown != want.Markdown || got.Rule != want.Rule {
					t.Errorf("concurrent result differs:\n%q\nwant\n%q", got.Markdown, want.Markdown)
					return
				}
			}
		}()
	}
	wg.Wait()

	fragment, err := ExtractContentRegion(longArticle)
	if err != nil || !strings.Contains(fragment, "Installing the agent") {
		t.Errorf("ExtractContentRegion() = %q, %v after concurrent use", fragment, err)
	}
}
