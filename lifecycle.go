package gosmt

import (
	"github.com/aclements/go-z3/z3"
)

// NewTranslator creates a context (installing the process-wide error
// handler at the same time, per §4.7) and the cooperating pieces that
// hang off it. One Translator per solver session: the context is not
// thread-safe and must not be shared across translators (§5). This is
// the trimmed survivor of the teacher's solver.go: NewZ3Solver's job
// of owning a backend and handing it to callers, minus the
// incremental constraint-dependency bookkeeping (symToContraints,
// symDependencies, getDependentConstraints) that belongs to the
// out-of-scope incremental-solver driver, not to expression
// translation.
func NewTranslator(opts ...Option) *Translator {
	cfg := newConfig(opts...)

	zcfg := z3.NewContextConfig()
	ctx := z3.NewContext(zcfg)
	installErrorHandler(ctx)

	sf := newSortFactory(ctx)
	prim := newPrimitives(ctx, sf)

	t := &Translator{
		ctx:         ctx,
		cfg:         cfg,
		sf:          sf,
		prim:        prim,
		f80:         newF80Shim(ctx, sf, prim),
		constructed: make(map[uintptr]z3.Value),
	}
	t.arru = newArrayUpdateTranslator(ctx, sf, prim, t.constructScalar)
	return t
}

// Context exposes the underlying solver context to the driver for
// assert/check-sat, per §6's "Exposed" interface.
func (t *Translator) Context() *z3.Context { return t.ctx }

// ClearConstructCache drops the per-expression memoisation. When the
// driver sets auto_clear_construct_cache (§2 Lifecycle), it calls
// this once per top-level construct() instead of threading a second
// config flag through — §6 recognises only use-construct-hash as a
// persistent option.
func (t *Translator) ClearConstructCache() {
	t.constructed = make(map[uintptr]z3.Value)
}

// Close releases the translator's caches ahead of the context itself,
// matching §5's required destructor order (constructed cache, then
// the array/update-node caches folded into arru, then the context
// last). Go's GC eventually reclaims the z3.Context regardless, but a
// driver that wants deterministic teardown (e.g. before spawning a
// fresh Translator in the same process) should call this first.
func (t *Translator) Close() {
	t.constructed = nil
	if t.arru != nil {
		t.arru.updateNodeHash = nil
		t.arru.arrayHash = nil
	}
}
