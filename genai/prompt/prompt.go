package prompt

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	afs "github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/agno/internal/templating"
)

//go:embed template/translate.vm
var defaultTemplate string

// Default returns the built-in translation template (velty syntax).
func Default() *Prompt {
	return &Prompt{Text: defaultTemplate}
}

const (
	EngineVelty = "velty"
	EngineGo    = "go"
)

type Prompt struct {
	Text   string `yaml:"text,omitempty" json:"text,omitempty"`
	URI    string `yaml:"uri,omitempty" json:"uri,omitempty"`
	Engine string `yaml:"engine,omitempty" json:"engine,omitempty"`

	mux      sync.Mutex
	velty    *templating.Template
	goTmpl   *template.Template
	compiled bool
}

// Init resolves URI into Text and compiles the template.
func (p *Prompt) Init(ctx context.Context) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.init(ctx)
}

func (p *Prompt) init(ctx context.Context) error {
	if p.compiled {
		return nil
	}
	if strings.TrimSpace(p.Text) == "" && strings.TrimSpace(p.URI) != "" {
		uri := strings.TrimSpace(p.URI)
		if url.Scheme(uri, "") == "" {
			uri = file.Scheme + "://" + uri
		}
		data, err := afs.New().DownloadWithURL(ctx, uri)
		if err != nil {
			return fmt.Errorf("failed to load prompt %v: %w", p.URI, err)
		}
		p.Text = string(data)
	}
	if strings.TrimSpace(p.Text) == "" {
		return errors.New("prompt was empty")
	}

	switch engine := strings.ToLower(strings.TrimSpace(p.Engine)); engine {
	case EngineGo, "gotmpl", "text/template":
		tmpl, err := template.New("prompt").Option("missingkey=error").Parse(p.Text)
		if err != nil {
			return fmt.Errorf("failed to parse prompt: %w", err)
		}
		p.goTmpl = tmpl
	case EngineVelty, "vm", "":
		tmpl, err := templating.Compile(p.Text, (&Binding{}).Data())
		if err != nil {
			return err
		}
		p.velty = tmpl
	default:
		return errors.New("unsupported prompt engine: " + engine)
	}
	p.compiled = true
	return nil
}

// Generate renders the prompt with binding, compiling it on first use.
func (p *Prompt) Generate(ctx context.Context, binding *Binding) (string, error) {
	if p == nil {
		return "", errors.New("prompt was nil")
	}
	p.mux.Lock()
	if err := p.init(ctx); err != nil {
		p.mux.Unlock()
		return "", err
	}
	veltyTmpl, goTmpl := p.velty, p.goTmpl
	p.mux.Unlock()

	data := binding.Data()
	if goTmpl != nil {
		var buf bytes.Buffer
		if err := goTmpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return veltyTmpl.Expand(data)
}
