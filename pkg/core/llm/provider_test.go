package llm

import "testing"

func TestNewProvider_Selection(t *testing.T) {
	p, err := NewProvider("", "")
	if err != nil {
		t.Fatalf("empty name should select the default provider: %v", err)
	}
	if _, ok := p.(*GeminiProvider); !ok {
		t.Errorf("expected GeminiProvider by default, got %T", p)
	}

	p, err = NewProvider("googleai", "gemini-1.5-flash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := p.(*GoogleAIProvider)
	if !ok {
		t.Fatalf("expected GoogleAIProvider, got %T", p)
	}
	if g.Model != "gemini-1.5-flash" {
		t.Errorf("model should pass through, got %q", g.Model)
	}

	if p, _ = NewProvider("Gemini", "m"); p == nil {
		t.Error("names should match case-insensitively")
	}
}

func TestNewProvider_UnknownName(t *testing.T) {
	if _, err := NewProvider("openai", ""); err == nil {
		t.Fatal("expected an error for an unknown provider name")
	}
}
