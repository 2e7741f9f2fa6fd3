package model

// Decorator adjusts a built form model, for example to group fields into
// wizard steps.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc lets a plain function act as a Decorator.
type DecoratorFunc func(*FormModel) error

func (fn DecoratorFunc) Decorate(form *FormModel) error { return fn(form) }

// Chain runs decorators in order and stops at the first error. Nil entries
// are skipped.
type Chain []Decorator

func (c Chain) Decorate(form *FormModel) error {
	for _, d := range c {
		if d == nil {
			continue
		}
		if err := d.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
