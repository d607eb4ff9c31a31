// Package reconciler renders declarative element trees into persistent
// instances and keeps them in sync across re-renders. Instances are told
// about every change through three lifecycle hooks.
package reconciler

import (
	"errors"
	"fmt"

	"github.com/pstuifzand/tui-treeview/internal/model"
)

// ErrUnknownKind is returned when an element kind has no registered
// materialization function
var ErrUnknownKind = errors.New("unknown element kind")

// Instance is the persistent node created for an element
type Instance interface {
	Kind() string
	Props() model.Props
	SetProps(props model.Props)
	Children() []Instance
	InsertChild(child Instance, index int)
	RemoveChild(child Instance)

	// OnChildrenChanged is called after every single insert, removal or
	// move of a child, before the pass settles
	OnChildrenChanged() error
	// OnFinalizeChildren is called once per pass after the children settled
	OnFinalizeChildren() error
	// OnPropsChanged is called after SetProps replaced the props with
	// different display data
	OnPropsChanged() error
}

// ContainerInstance is the synthetic root that owns the top-level instances
type ContainerInstance interface {
	Instance
	Clear() error
}

// MaterializeFunc creates the instance for an element kind
type MaterializeFunc[C any] func(kind string, props model.Props, ctx C) (Instance, error)

// ElementSetup binds element kinds to materialization functions and the
// context handed to each of them
type ElementSetup[C any] struct {
	ctx   C
	kinds map[string]MaterializeFunc[C]
}

// SetupElements creates an ElementSetup for the given kinds
func SetupElements[C any](ctx C, kinds map[string]MaterializeFunc[C]) *ElementSetup[C] {
	registered := make(map[string]MaterializeFunc[C], len(kinds))
	for kind, fn := range kinds {
		registered[kind] = fn
	}
	return &ElementSetup[C]{ctx: ctx, kinds: registered}
}

// Renderer drives a container from a declarative root element
type Renderer[C any] struct {
	setup     *ElementSetup[C]
	container ContainerInstance
	root      *model.Element
}

// New creates a renderer; nothing is rendered until Render is called
func New[C any](root *model.Element, setup *ElementSetup[C], container ContainerInstance) *Renderer[C] {
	return &Renderer[C]{
		setup:     setup,
		container: container,
		root:      root,
	}
}

// Root returns the element tree that was rendered last
func (r *Renderer[C]) Root() *model.Element {
	return r.root
}

// Container returns the synthetic root
func (r *Renderer[C]) Container() ContainerInstance {
	return r.container
}

// Render performs a full pass over the current root element
func (r *Renderer[C]) Render() error {
	return r.Update(r.root)
}

// Update reconciles the container against a new root element
func (r *Renderer[C]) Update(root *model.Element) error {
	r.root = root
	var elements []*model.Element
	if root != nil {
		elements = model.Flatten([]*model.Element{root})
	}
	return r.reconcileChildren(r.container, elements)
}

// Reset removes every instance from the container
func (r *Renderer[C]) Reset() error {
	if err := r.container.Clear(); err != nil {
		return fmt.Errorf("failed to clear container: %w", err)
	}
	return r.container.OnChildrenChanged()
}

// Rebuild tears the instance tree down and renders root from scratch
func (r *Renderer[C]) Rebuild(root *model.Element) error {
	if err := r.Reset(); err != nil {
		return err
	}
	return r.Update(root)
}

// identity decides which existing instance an element may reuse:
// same kind and key, or same kind and position among unkeyed siblings
type identity struct {
	kind  string
	key   string
	index int
}

func identities(kinds []string, keys []string) []identity {
	result := make([]identity, len(kinds))
	unkeyed := 0
	for i := range kinds {
		if keys[i] != "" {
			result[i] = identity{kind: kinds[i], key: keys[i], index: -1}
			continue
		}
		result[i] = identity{kind: kinds[i], index: unkeyed}
		unkeyed++
	}
	return result
}

func (r *Renderer[C]) reconcileChildren(parent Instance, next []*model.Element) error {
	// RemoveChild may shift the instance's own slice, so work on a copy
	old := append([]Instance(nil), parent.Children()...)

	oldKinds := make([]string, len(old))
	oldKeys := make([]string, len(old))
	for i, inst := range old {
		oldKinds[i] = inst.Kind()
		oldKeys[i] = inst.Props().Key
	}
	existing := make(map[identity]Instance, len(old))
	for i, id := range identities(oldKinds, oldKeys) {
		if _, dup := existing[id]; !dup {
			existing[id] = old[i]
		}
	}

	nextKinds := make([]string, len(next))
	nextKeys := make([]string, len(next))
	for i, el := range next {
		nextKinds[i] = el.Kind
		nextKeys[i] = el.Key()
	}

	desired := make([]Instance, len(next))
	reused := make(map[Instance]bool, len(next))
	for i, id := range identities(nextKinds, nextKeys) {
		el := next[i]
		if inst, ok := existing[id]; ok {
			delete(existing, id)
			reused[inst] = true
			if err := r.updateInstance(inst, el); err != nil {
				return err
			}
			desired[i] = inst
			continue
		}
		inst, err := r.createInstance(el)
		if err != nil {
			return err
		}
		desired[i] = inst
	}

	mutated := false

	for _, inst := range old {
		if reused[inst] {
			continue
		}
		parent.RemoveChild(inst)
		mutated = true
		if err := parent.OnChildrenChanged(); err != nil {
			return err
		}
	}

	for i, want := range desired {
		current := parent.Children()
		if i < len(current) && current[i] == want {
			continue
		}
		if reused[want] {
			parent.RemoveChild(want)
		}
		parent.InsertChild(want, i)
		mutated = true
		if err := parent.OnChildrenChanged(); err != nil {
			return err
		}
	}

	if mutated {
		return parent.OnFinalizeChildren()
	}
	return nil
}

func (r *Renderer[C]) updateInstance(inst Instance, el *model.Element) error {
	changed := !inst.Props().SameDisplay(el.Props)
	inst.SetProps(el.Props)
	if changed {
		if err := inst.OnPropsChanged(); err != nil {
			return err
		}
	}
	return r.reconcileChildren(inst, model.Flatten(el.Children))
}

func (r *Renderer[C]) createInstance(el *model.Element) (Instance, error) {
	materialize, ok := r.setup.kinds[el.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, el.Kind)
	}
	inst, err := materialize(el.Kind, el.Props, r.setup.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize %s: %w", el.Kind, err)
	}

	children := model.Flatten(el.Children)
	for i, childEl := range children {
		child, err := r.createInstance(childEl)
		if err != nil {
			return nil, err
		}
		inst.InsertChild(child, i)
	}
	if err := inst.OnFinalizeChildren(); err != nil {
		return nil, err
	}
	return inst, nil
}
