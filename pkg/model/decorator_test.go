package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-changewizard/pkg/model"
)

func TestChainStopsAtFirstError(t *testing.T) {
	var calls []string
	step := func(name string, err error) model.Decorator {
		return model.DecoratorFunc(func(form *model.FormModel) error {
			calls = append(calls, name)
			form.Summary += name
			return err
		})
	}
	boom := errors.New("boom")

	var form model.FormModel
	err := model.Chain{step("a", nil), nil, step("b", boom), step("c", nil)}.Decorate(&form)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if form.Summary != "ab" || len(calls) != 2 {
		t.Fatalf("unexpected run: summary=%q calls=%v", form.Summary, calls)
	}
}
