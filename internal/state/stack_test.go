package state

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestWithScopeAppliesOverridesAndRestores(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ", ActiveHostname: " WWW.Example.DE "})

	if got := stack.Current().ActiveHostname; got != "www.example.de" {
		t.Fatalf("expected normalised hostname, got %q", got)
	}

	result, err := WithScope(stack, Overrides{}.WithLocale("de_DE").WithDomainMode(true), func(ctx ExecutionContext) (string, error) {
		if stack.Depth() != 2 {
			t.Fatalf("expected depth 2 inside scope, got %d", stack.Depth())
		}
		if !ctx.IsDomainMode || ctx.Locale != "de_DE" {
			t.Fatalf("unexpected scoped context %+v", ctx)
		}
		if ctx.ActiveHostname != "www.example.de" {
			t.Fatalf("expected hostname inherited, got %q", ctx.ActiveHostname)
		}
		return ctx.Locale, nil
	})
	if err != nil {
		t.Fatalf("WithScope: %v", err)
	}
	if result != "de_DE" {
		t.Fatalf("expected body result, got %q", result)
	}

	current := stack.Current()
	if current.Locale != "en_NZ" || current.IsDomainMode {
		t.Fatalf("expected base frame restored, got %+v", current)
	}
	if stack.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", stack.Depth())
	}
}

func TestWithScopeRestoresOnError(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ"})
	boom := errors.New("boom")

	_, err := WithScope(stack, Overrides{}.WithFrontend(true), func(ExecutionContext) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected body error, got %v", err)
	}
	if stack.Depth() != 1 || stack.Current().IsFrontend {
		t.Fatalf("expected base frame after error, got %+v", stack.Current())
	}
}

func TestWithScopeRestoresOnPanic(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ"})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_, _ = WithScope(stack, Overrides{}.WithLocale("de_DE"), func(ExecutionContext) (int, error) {
			panic("boom")
		})
	}()

	if stack.Depth() != 1 || stack.Current().Locale != "en_NZ" {
		t.Fatalf("expected base frame after panic, got depth %d %+v", stack.Depth(), stack.Current())
	}
}

func TestWithScopeNesting(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ"})

	err := stack.Do(Overrides{}.WithLocale("de_DE"), func(outer ExecutionContext) error {
		return stack.Do(Overrides{}.WithDomainMode(true), func(inner ExecutionContext) error {
			if inner.Locale != "de_DE" || !inner.IsDomainMode {
				t.Fatalf("expected inner frame to inherit outer locale, got %+v", inner)
			}
			if stack.Depth() != 3 {
				t.Fatalf("expected depth 3, got %d", stack.Depth())
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if stack.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", stack.Depth())
	}
}

func TestWithScopeDropsFramesLeakedByBody(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ"})

	_ = stack.Do(Overrides{}, func(ExecutionContext) error {
		stack.Push(Overrides{}.WithLocale("zh_CN"))
		return nil
	})

	if stack.Depth() != 1 || stack.Current().Locale != "en_NZ" {
		t.Fatalf("expected leaked frame removed, got %+v", stack.Current())
	}
}

func TestUpdateMutatesTopFrameOnly(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_NZ"})
	stack.Push(Overrides{})

	stack.Update(func(ctx *ExecutionContext) {
		ctx.Locale = "de_DE"
	})
	if stack.Current().Locale != "de_DE" {
		t.Fatalf("expected top frame updated, got %q", stack.Current().Locale)
	}
	if err := stack.Pop(); err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if stack.Current().Locale != "en_NZ" {
		t.Fatalf("expected base frame untouched, got %q", stack.Current().Locale)
	}
}

func TestPopBaseFrameUnderflows(t *testing.T) {
	stack := NewStack(ExecutionContext{})

	err := stack.Pop()
	if err == nil {
		t.Fatal("expected underflow error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Fatalf("expected internal category, got %v", err)
	}
	if stack.Depth() != 1 {
		t.Fatalf("expected base frame kept, got depth %d", stack.Depth())
	}
}

func TestStackContextCarrier(t *testing.T) {
	stack := NewStack(ExecutionContext{Locale: "en_US"})
	ctx := ContextWithStack(context.Background(), stack)

	got, ok := StackFromContext(ctx)
	if !ok || got != stack {
		t.Fatal("expected stack from context")
	}
	if _, ok := StackFromContext(context.Background()); ok {
		t.Fatal("expected no stack on bare context")
	}
}
