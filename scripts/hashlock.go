package scripts

// TimeLock restricts when a script is satisfied: NotBefore and
// NotAfter are inclusive/exclusive slot bounds. A nil
// bound is unconstrained on that side.
type TimeLock struct {
	NotBefore *uint64
	NotAfter  *uint64
}

func (t TimeLock) Evaluate(ctx Context) error {
	if t.NotBefore != nil && ctx.CurrentSlot < *t.NotBefore {
		return ErrNotSatisfied
	}
	if t.NotAfter != nil && ctx.CurrentSlot >= *t.NotAfter {
		return ErrNotSatisfied
	}
	return nil
}

func (t TimeLock) encode(e *encoder) {
	e.uvarint(scriptKindTimeLock)
	e.optionalUint64(t.NotBefore)
	e.optionalUint64(t.NotAfter)
}

// scriptKind discriminants for the canonical encoding; not exported
// since scripts never appear standalone in ledger-state serialization,
// only nested inside a WitnessSet that txs.Encoder drives.
const (
	scriptKindMultiSig uint64 = iota
	scriptKindTimeLock
	scriptKindAll
	scriptKindAny
)

// All is satisfied when every sub-script is satisfied.
type All struct{ Scripts []Script }

func (a All) Evaluate(ctx Context) error {
	for _, s := range a.Scripts {
		if err := s.Evaluate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a All) encode(e *encoder) {
	e.uvarint(scriptKindAll)
	e.uvarint(uint64(len(a.Scripts)))
	for _, s := range a.Scripts {
		s.encode(e)
	}
}

// Any is satisfied when at least one sub-script is satisfied.
type Any struct{ Scripts []Script }

func (a Any) Evaluate(ctx Context) error {
	for _, s := range a.Scripts {
		if s.Evaluate(ctx) == nil {
			return nil
		}
	}
	return ErrNotSatisfied
}

func (a Any) encode(e *encoder) {
	e.uvarint(scriptKindAny)
	e.uvarint(uint64(len(a.Scripts)))
	for _, s := range a.Scripts {
		s.encode(e)
	}
}
