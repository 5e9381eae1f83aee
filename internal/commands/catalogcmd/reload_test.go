package catalogcmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type stubReloader struct {
	calls int
	err   error
}

func (s *stubReloader) Reload(context.Context) error {
	s.calls++
	return s.err
}

func TestReloadCatalogHandler(t *testing.T) {
	reloader := &stubReloader{}
	handler := NewReloadCatalogHandler(reloader, nil)

	if err := handler.Execute(context.Background(), ReloadCatalogCommand{Reason: "domains changed"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if reloader.calls != 1 {
		t.Fatalf("expected one reload, got %d", reloader.calls)
	}
}

func TestReloadCatalogHandlerWrapsFailures(t *testing.T) {
	reloader := &stubReloader{err: errors.New("catalogue unavailable")}
	handler := NewReloadCatalogHandler(reloader, nil)

	err := handler.Execute(context.Background(), ReloadCatalogCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestReloadCatalogCommandValidation(t *testing.T) {
	reloader := &stubReloader{}
	handler := NewReloadCatalogHandler(reloader, nil)

	err := handler.Execute(context.Background(), ReloadCatalogCommand{Reason: strings.Repeat("x", 300)})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if reloader.calls != 0 {
		t.Fatal("expected reload to be skipped")
	}
	if (ReloadCatalogCommand{}).Type() != "fluent.catalog.reload" {
		t.Fatal("unexpected message type")
	}
}
