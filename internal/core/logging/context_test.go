package logging

import (
	"context"
	"testing"
)

func TestWithDocumentID(t *testing.T) {
	ctx := WithDocumentID(context.Background(), "doc-123")

	if got := GetDocumentID(ctx); got != "doc-123" {
		t.Errorf("GetDocumentID() = %q, want %q", got, "doc-123")
	}
}

func TestWithView(t *testing.T) {
	ctx := WithView(context.Background(), "secondary")

	if got := GetView(ctx); got != "secondary" {
		t.Errorf("GetView() = %q, want %q", got, "secondary")
	}
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetDocumentID(ctx); got != "" {
		t.Errorf("GetDocumentID() = %q, want empty string", got)
	}
	if got := GetView(ctx); got != "" {
		t.Errorf("GetView() = %q, want empty string", got)
	}
}
