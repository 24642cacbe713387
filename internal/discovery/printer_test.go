package discovery

import "testing"

func TestPrinter_String(t *testing.T) {
	p := &Printer{
		ID:       "a1b2c3",
		Hostname: "scribe-a1b2c3.local",
		IP:       "192.168.1.42",
		Port:     80,
	}

	expected := "Scribe printer a1b2c3 (scribe-a1b2c3.local) at 192.168.1.42:80"
	if p.String() != expected {
		t.Errorf("String() = %v, want %v", p.String(), expected)
	}
}

func TestPrinter_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		printer  *Printer
		expected string
	}{
		{
			name:     "standard HTTP port",
			printer:  &Printer{IP: "192.168.1.42", Port: 80},
			expected: "http://192.168.1.42:80",
		},
		{
			name:     "custom port",
			printer:  &Printer{IP: "10.0.0.5", Port: 8080},
			expected: "http://10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.printer.BaseURL(); got != tt.expected {
				t.Errorf("BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPrinter_GetMetadata(t *testing.T) {
	p := &Printer{
		Metadata: map[string]string{
			"path":    "/",
			"version": "0.2.0",
		},
	}

	if got := p.GetMetadata("path"); got != "/" {
		t.Errorf("GetMetadata(path) = %v", got)
	}
	if got := p.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty", got)
	}

	empty := &Printer{}
	if got := empty.GetMetadata("anything"); got != "" {
		t.Errorf("GetMetadata on nil map = %v, want empty", got)
	}
}
