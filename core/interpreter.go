package core

// pendingOperator is the interpreter's waiting_action slot: an operator
// key has been typed and is waiting for a motion to act on.
type pendingOperator struct {
	count    *int
	operator Action
}

// KeyInterpreter is the modal key state machine: it turns a stream of
// key events into Actions applied to an Editor, tracking a pending
// repeat count, a pending operator awaiting its motion, and a pending
// single-key argument (for f/t). It holds no reference to the Editor or
// any Component; HandleKey is given everything it needs to dispatch or
// mutate interpreter state.
type KeyInterpreter struct {
	repeater      *int
	waitingAction *pendingOperator
	waitingInput  *Action

	// QuitRequested is set when Ctrl-Q is seen in Normal or Visual mode;
	// callers read it after HandleKey (ClientLoop.ShouldQuit reports it).
	QuitRequested bool
}

func NewKeyInterpreter() *KeyInterpreter {
	return &KeyInterpreter{}
}

// Reset clears all pending interpreter state without applying anything.
func (ki *KeyInterpreter) Reset() {
	ki.repeater = nil
	ki.waitingAction = nil
	ki.waitingInput = nil
}

// HandleKey dispatches key against e's current mode.
func (ki *KeyInterpreter) HandleKey(e *Editor, pane *EditorPane, key KeyEvent) {
	switch e.Mode() {
	case InsertMode:
		ki.handleInsertKey(e, key)
	case VisualMode:
		ki.handleVisualKey(e, pane, key)
	default:
		ki.handleNormalKey(e, pane, key)
	}
}

func (ki *KeyInterpreter) handleInsertKey(e *Editor, key KeyEvent) {
	switch {
	case key.Key == KeyEscape:
		e.SwitchMode(NormalMode)
		ki.Reset()
	case key.Key == KeyEnter:
		e.PutNewline()
	case key.Key == KeyBackspace:
		e.PopBackspace()
	case key.Key == KeyTab:
		e.PutChar('\t')
	case key.Key == KeyLeft:
		e.MoveCursorLeft(1)
	case key.Key == KeyRight:
		e.MoveCursorRight(1)
	case key.Key == KeyUp:
		e.MoveCursorUp(1)
	case key.Key == KeyDown:
		e.MoveCursorDown(1)
	case key.IsPrintable():
		e.PutChar(key.Rune)
	}
}

func (ki *KeyInterpreter) handleVisualKey(e *Editor, pane *EditorPane, key KeyEvent) {
	if key.Key == KeyEscape {
		e.SwitchMode(NormalMode)
		ki.Reset()
		return
	}
	if key.Modifiers&ModCtrl != 0 && key.Rune == 'q' {
		ki.QuitRequested = true
		return
	}
	switch {
	case key.Rune == 'd':
		ki.evaluateAndApply(e, pane, SingleMotion(Action{Kind: ActionDeleteVisualMode}))
		return
	case key.Rune == 'c':
		ki.evaluateAndApply(e, pane, SingleMotion(Action{Kind: ActionChangeVisualMode}))
		return
	case key.Rune == 'y':
		ki.evaluateAndApply(e, pane, SingleMotion(Action{Kind: ActionCopyVisualMode}))
		return
	}
	if a, ok := motionActionFor(key); ok {
		evalAction(e, a)
	}
}

func (ki *KeyInterpreter) handleNormalKey(e *Editor, pane *EditorPane, key KeyEvent) {
	if ki.waitingInput != nil {
		if key.Key == KeyEscape {
			ki.Reset()
			return
		}
		if key.Rune != 0 {
			pending := *ki.waitingInput
			ki.waitingInput = nil
			pending.Char = key.Rune
			if pending.Kind == ActionMoveToUnresolved {
				pending.Kind = ActionMoveTo
			} else {
				pending.Kind = ActionMoveUntil
			}
			ki.flushMotion(e, pane, SingleMotion(pending))
		}
		return
	}
	if key.Key == KeyEscape {
		ki.Reset()
		return
	}
	if key.Modifiers&ModCtrl != 0 {
		switch key.Rune {
		case 's':
			ki.flushMotion(e, pane, SingleMotion(Action{Kind: ActionWriteCurrentBuffer}))
		case 'q':
			ki.QuitRequested = true
		}
		return
	}

	if (key.Rune >= '1' && key.Rune <= '9') || (key.Rune == '0' && ki.repeater != nil) {
		d := int(key.Rune - '0')
		if ki.repeater == nil {
			v := 0
			ki.repeater = &v
		}
		*ki.repeater = *ki.repeater*10 + d
		return
	}

	if op, isOperator := normalOperatorFor(key); isOperator {
		if ki.waitingAction != nil && ki.waitingAction.operator.Kind == op.Kind {
			count := ki.waitingAction.count
			if ki.repeater != nil {
				count = ki.repeater
			}
			ki.waitingAction = nil
			ki.repeater = nil
			m := SingleMotion(Action{Kind: ActionActOnSelf})
			m = CommandMotion(op, m)
			if count != nil {
				m = RepeatingMotion(*count, m)
			}
			ki.evaluateAndApply(e, pane, m)
			return
		}
		ki.waitingAction = &pendingOperator{count: ki.repeater, operator: op}
		ki.repeater = nil
		return
	}

	if key.Rune == 'i' {
		ki.flushMotion(e, pane, SingleMotion(Action{Kind: ActionSwitchMode, Mode: InsertMode}))
		return
	}
	if key.Rune == 'a' {
		e.AppendAfterCursor()
		ki.Reset()
		return
	}
	if key.Rune == 'A' {
		ki.flushMotion(e, pane, SingleMotion(Action{Kind: ActionAppendEndOfLine}))
		return
	}
	if key.Rune == 'v' {
		ki.flushMotion(e, pane, SingleMotion(Action{Kind: ActionSwitchMode, Mode: VisualMode}))
		return
	}
	if key.Rune == 'f' {
		ki.waitingInput = &Action{Kind: ActionMoveToUnresolved}
		return
	}
	if key.Rune == 't' {
		ki.waitingInput = &Action{Kind: ActionMoveUntilUnresolved}
		return
	}

	if a, ok := normalActionFor(key); ok {
		ki.flushMotion(e, pane, SingleMotion(a))
		return
	}

	ki.repeater = nil
}

// flushMotion wraps a completed motion in any pending repeat count
// and/or pending operator, then evaluates the result.
func (ki *KeyInterpreter) flushMotion(e *Editor, pane *EditorPane, m Motion) {
	if ki.repeater != nil {
		m = RepeatingMotion(*ki.repeater, m)
		ki.repeater = nil
	}
	if ki.waitingAction != nil {
		op := ki.waitingAction.operator
		count := ki.waitingAction.count
		ki.waitingAction = nil
		cmd := CommandMotion(op, m)
		if count != nil {
			cmd = RepeatingMotion(*count, cmd)
		}
		m = cmd
	}
	ki.evaluateAndApply(e, pane, m)
}

func (ki *KeyInterpreter) evaluateAndApply(e *Editor, pane *EditorPane, m Motion) {
	action, move := Evaluate(e, m)
	switch action.Kind {
	case ActionCenter:
		pane.CenterOn(move.GetOrdered().End.Y)
	case ActionCopy, ActionCopyVisualMode:
		pane.MarkYank(move)
	}
}

// ---- key -> Action tables --------------------------------------------------

func motionActionFor(key KeyEvent) (Action, bool) {
	switch {
	case key.Rune == 'h' || key.Key == KeyLeft:
		return Action{Kind: ActionMoveBackward}, true
	case key.Rune == 'l' || key.Key == KeyRight:
		return Action{Kind: ActionMoveForward}, true
	case key.Rune == 'j' || key.Key == KeyDown:
		return Action{Kind: ActionMoveDown}, true
	case key.Rune == 'k' || key.Key == KeyUp:
		return Action{Kind: ActionMoveUp}, true
	case key.Rune == 'w':
		return Action{Kind: ActionMoveWord}, true
	case key.Rune == 'e':
		return Action{Kind: ActionMoveEndWord}, true
	case key.Rune == 'b':
		return Action{Kind: ActionMoveBackWord}, true
	case key.Rune == '$':
		return Action{Kind: ActionMoveEndOfLine}, true
	}
	return Action{}, false
}

func normalActionFor(key KeyEvent) (Action, bool) {
	if a, ok := motionActionFor(key); ok {
		return a, true
	}
	switch key.Rune {
	case 'x':
		return Action{Kind: ActionPopChar}, true
	case 'p':
		return Action{Kind: ActionPaste}, true
	}
	return Action{}, false
}

func normalOperatorFor(key KeyEvent) (Action, bool) {
	switch key.Rune {
	case 'd':
		return Action{Kind: ActionDeleteUnresolved}, true
	case 'c':
		return Action{Kind: ActionChangeUnresolved}, true
	case 'y':
		return Action{Kind: ActionCopyUnresolved}, true
	case 'z':
		return Action{Kind: ActionCenterUnresolved}, true
	}
	return Action{}, false
}

// ---- the Action/Motion evaluator -------------------------------------------

// Evaluate runs m to completion against e, returning the last resolved
// Action and the MoveInfo it produced. For a Repeating motion the
// MoveInfo runs from the first hop's Start to the last hop's End.
func Evaluate(e *Editor, m Motion) (Action, MoveInfo) {
	switch m.Kind {
	case MotionRepeating:
		n := m.Count
		if n <= 0 {
			n = 1
		}
		var a Action
		var mv MoveInfo
		for i := 0; i < n; i++ {
			var hop MoveInfo
			a, hop = Evaluate(e, *m.Inner)
			if i == 0 {
				mv.Start = hop.Start
			}
			mv.End = hop.End
		}
		return a, mv
	case MotionCommand:
		innerAction, moveInfo := Evaluate(e, *m.Inner)
		resolved := resolveOperator(m.Operator, innerAction, moveInfo)
		return evalAction(e, resolved)
	default:
		return evalAction(e, m.Action)
	}
}

func resolveOperator(op, inner Action, move MoveInfo) Action {
	innerCopy := inner
	switch op.Kind {
	case ActionDeleteUnresolved:
		return Action{Kind: ActionDelete, Inner: &innerCopy, Span: move}
	case ActionChangeUnresolved:
		return Action{Kind: ActionChange, Inner: &innerCopy, Span: move}
	case ActionCopyUnresolved:
		return Action{Kind: ActionCopy, Inner: &innerCopy, Span: move}
	case ActionCenterUnresolved:
		return Action{Kind: ActionCenter, Inner: &innerCopy, Span: move}
	}
	return op
}

// evalAction is the terminal dispatch: every concrete Action maps to
// Editor calls here.
func evalAction(e *Editor, a Action) (Action, MoveInfo) {
	switch a.Kind {
	case ActionMoveForward:
		return a, e.MoveCursorRight(1)
	case ActionMoveBackward:
		return a, e.MoveCursorLeft(1)
	case ActionMoveUp:
		return a, e.MoveCursorUp(1)
	case ActionMoveDown:
		return a, e.MoveCursorDown(1)
	case ActionMoveWord:
		return a, e.MoveWord(1)
	case ActionMoveEndWord:
		return a, e.MoveEndWord(1)
	case ActionMoveBackWord:
		return a, e.MoveEndWordBackwards(1)
	case ActionMoveEndOfLine:
		return a, e.MoveToEnd()
	case ActionMoveTo:
		return a, e.MoveTo(a.Char, 1, 0)
	case ActionMoveUntil:
		return a, e.MoveTo(a.Char, 1, -1)
	case ActionActOnSelf:
		y := e.Cursor().Y
		return a, MoveInfo{Start: Position{X: 0, Y: y}, End: Position{X: 0, Y: y}}

	case ActionInsertChar:
		e.PutChar(a.Char)
	case ActionPopChar:
		e.PopChar()
	case ActionPopBackspace:
		e.PopBackspace()
	case ActionPutNewlineInsert:
		e.PutNewline()
	case ActionPaste:
		e.Paste()
	case ActionWriteCurrentBuffer:
		n, lines, err := e.buffer.WriteToFile()
		if err != nil {
			e.DispatchError(ErrIO, err)
		} else {
			e.DispatchMessage(changesSavedMessage, lines, n, e.buffer.Path())
		}
	case ActionSwitchMode:
		e.SwitchMode(a.Mode)
	case ActionAppendEndOfLine:
		start := e.cursor
		line := e.currentLineRunes()
		e.cursor.X = len(line)
		e.SwitchMode(InsertMode)
		return a, MoveInfo{Start: start, End: e.cursor}

	case ActionDeleteVisualMode:
		if sel, ok := e.CurrentSelection(); ok {
			e.DeleteSelection(sel.GetOrdered())
			e.DispatchMessage(linesDeletedMessage)
		}
		e.SwitchMode(NormalMode)
	case ActionChangeVisualMode:
		if sel, ok := e.CurrentSelection(); ok {
			e.DeleteSelection(sel.GetOrdered())
		}
		e.SwitchMode(InsertMode)
	case ActionCopyVisualMode:
		var result MoveInfo
		if sel, ok := e.CurrentSelection(); ok {
			ordered := sel.GetOrdered()
			// Visual selections are end-inclusive; Copy's span is not, so
			// widen by one column to carry the last selected cell along.
			copySpan := ordered
			copySpan.End.X++
			e.Copy(copySpan)
			e.DispatchMessage(yankMessage)
			e.cursor = ordered.Start
			e.setCursorX(ordered.Start.X)
			result = ordered
		}
		e.SwitchMode(NormalMode)
		return a, result

	case ActionDelete:
		ordered := a.Span.GetOrdered()
		if a.isWholeLineOperand() {
			e.DeleteLines(ordered)
		} else {
			e.DeleteSelection(ordered)
		}
		e.DispatchMessage(linesDeletedMessage)
		return a, a.Span
	case ActionChange:
		ordered := a.Span.GetOrdered()
		if a.isWholeLineOperand() {
			e.DeleteLines(ordered)
		} else {
			e.DeleteSelection(ordered)
		}
		e.SwitchMode(InsertMode)
		return a, a.Span
	case ActionCopy:
		var result MoveInfo
		if a.isWholeLineOperand() {
			result = e.CopyLines(a.Span)
		} else {
			result = e.Copy(a.Span)
		}
		e.DispatchMessage(yankMessage)
		ordered := a.Span.GetOrdered()
		e.cursor = ordered.Start
		e.setCursorX(ordered.Start.X)
		return a, result
	case ActionCenter:
		return a, a.Span
	}
	return a, MoveInfo{Start: e.Cursor(), End: e.Cursor()}
}
