package fold

import (
	"errors"
	"testing"
)

func TestFoldText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want string
	}{
		{
			name: "embedded document",
			doc:  `{"x":"{\"y\": 1}"}`,
			want: "x;y 1\n",
		},
		{
			name: "grouped",
			doc:  `[{"id":"a","n":10},{"id":"b","n":5}]`,
			opts: Options{GroupKeys: []string{"id"}},
			want: "[];id=a;id 3\n[];id=b;id 3\n[];id=a;n 2\n[];id=b;n 1\n",
		},
		{
			name: "root scalar",
			doc:  `"hello"`,
			want: " 7\n",
		},
		{
			name: "float written as encoding/json writes it",
			doc:  `{"a": 1.0, "b": 1e3, "c": 1.50}`,
			want: "b 4\nc 3\na 1\n",
		},
		{
			name: "embedded number beyond float64 keeps its literal length",
			doc:  `{"a": "1e400"}`,
			want: "a 5\n",
		},
		{
			name: "empty object",
			doc:  `{}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FoldText(tt.doc, tt.opts)
			if err != nil {
				t.Fatalf("FoldText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FoldText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFoldText_Errors(t *testing.T) {
	if _, err := FoldText(`{"a":`, Options{}); err == nil {
		t.Error("expected error for truncated document")
	}
	if _, err := FoldText(`{} {}`, Options{}); err == nil {
		t.Error("expected error for trailing data")
	}

	_, err := FoldText(`{"a":{"b":1}}`, Options{MaxDepth: 1})
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("errors.Is(err, ErrDepthExceeded) = false, err = %v", err)
	}
}
