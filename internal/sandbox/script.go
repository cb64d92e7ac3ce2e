package sandbox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/cavern/internal/core"
)

// ErrInvalidScript is returned for malformed input scripts.
var ErrInvalidScript = errors.New("invalid input script")

// ScriptStep holds one set of actions for a number of ticks.
type ScriptStep struct {
	Actions []core.Action
	Ticks   int
}

// Script is a scripted input sequence for headless runs.
//
// The text form is a comma separated list of KEYS or KEYS*TICKS, where KEYS
// uses L (left), R (right) and J (jump), or "-" for no input:
//
//	R*30,RJ,R*60,-*20
type Script []ScriptStep

// ParseScript parses the text form of a script.
func ParseScript(text string) (Script, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty script", ErrInvalidScript)
	}

	var script Script
	for i, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		keys, count, hasCount := strings.Cut(field, "*")

		step := ScriptStep{Ticks: 1}
		if hasCount {
			n, err := strconv.Atoi(count)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: step %d: bad tick count %q", ErrInvalidScript, i+1, count)
			}
			step.Ticks = n
		}

		if keys != "-" {
			if keys == "" {
				return nil, fmt.Errorf("%w: step %d: no keys", ErrInvalidScript, i+1)
			}
			for _, k := range strings.ToUpper(keys) {
				switch k {
				case 'L':
					step.Actions = append(step.Actions, core.ActionLeft)
				case 'R':
					step.Actions = append(step.Actions, core.ActionRight)
				case 'J':
					step.Actions = append(step.Actions, core.ActionJump)
				default:
					return nil, fmt.Errorf("%w: step %d: unknown key %q", ErrInvalidScript, i+1, k)
				}
			}
		}
		script = append(script, step)
	}
	return script, nil
}

// Len returns the number of ticks the script covers.
func (sc Script) Len() int {
	n := 0
	for _, st := range sc {
		n += st.Ticks
	}
	return n
}

// Frame returns the input for the given tick; ticks past the end are idle.
func (sc Script) Frame(tick int) core.InputFrame {
	frame := core.NewInputFrame()
	for _, st := range sc {
		if tick < st.Ticks {
			for _, a := range st.Actions {
				frame.Set(a)
			}
			return frame
		}
		tick -= st.Ticks
	}
	return frame
}
