package core

// MotionKind tags the three constructors of a small closed composition
// language: a tagged tree evaluated by a single switch, not a chain of
// callbacks.
type MotionKind int

const (
	MotionSingle MotionKind = iota
	MotionCommand
	MotionRepeating
)

// Motion is the closed composition tree: one action, an operator applied
// to the MoveInfo an inner motion produces, or a repetition of an inner
// motion.
type Motion struct {
	Kind     MotionKind
	Action   Action  // Single
	Operator Action  // Command: the unresolved operator action
	Inner    *Motion // Command, Repeating
	Count    int     // Repeating
}

func SingleMotion(a Action) Motion {
	return Motion{Kind: MotionSingle, Action: a}
}

func CommandMotion(op Action, inner Motion) Motion {
	return Motion{Kind: MotionCommand, Operator: op, Inner: &inner}
}

func RepeatingMotion(count int, inner Motion) Motion {
	return Motion{Kind: MotionRepeating, Count: count, Inner: &inner}
}
