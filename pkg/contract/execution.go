package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Placeholder is replaced by the actual value in an ExecutionProperty.
const Placeholder = "$it"

// ExecutionProperty is a command template run against an actual value
// instead of comparing it with a declared one.
type ExecutionProperty struct {
	command string
}

// Execute returns an ExecutionProperty for command.
func Execute(command string) ExecutionProperty {
	return ExecutionProperty{command: command}
}

func (e ExecutionProperty) Command() string { return e.command }
func (e ExecutionProperty) String() string  { return e.command }

// InsertValue replaces every occurrence of $it in the command with v. The
// inserted text is not interpreted, so a v containing "$it" stays as is.
func (e ExecutionProperty) InsertValue(v string) string {
	return strings.ReplaceAll(e.command, Placeholder, v)
}

// MarshalJSON renders the property as {"command": "<template>"}.
func (e ExecutionProperty) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"command": e.command})
}

// Evaluate runs the command as an expr-lang expression with $it bound to
// value, e.g. "$it > 10" or "len($it) == 3".
func (e ExecutionProperty) Evaluate(value any) (any, error) {
	source := strings.ReplaceAll(e.command, Placeholder, "it")
	program, err := compileCommand(source)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", e.command, err)
	}
	result, err := expr.Run(program, map[string]any{"it": value})
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", e.command, err)
	}
	return result, nil
}

var (
	programMu    sync.RWMutex
	programCache = map[string]*vm.Program{}
)

func compileCommand(source string) (*vm.Program, error) {
	programMu.RLock()
	if program, ok := programCache[source]; ok {
		programMu.RUnlock()
		return program, nil
	}
	programMu.RUnlock()

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	programMu.Lock()
	if existing, ok := programCache[source]; ok {
		programMu.Unlock()
		return existing, nil
	}
	programCache[source] = program
	programMu.Unlock()

	return program, nil
}
