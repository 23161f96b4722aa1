package asset

import (
	"strings"
	"sync"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Expression a compiled registration condition, e.g. `environment != "production"`
type Expression struct {
	program *vm.Program
}

// EvalBool runs the expression against the environment, falsy results ("", 0, -1, "false", nil) are false
func (e *Expression) EvalBool(env map[string]interface{}) (bool, error) {
	if e == nil {
		return false, nil
	}
	result, err := expr.Run(e.program, env)
	if err != nil {
		return false, err
	}
	if result == nil || result == false || result == -1 || result == 0 || result == "false" || result == "" {
		return false, nil
	}
	return true, nil
}

var (
	cachedExpressions   = map[string]*Expression{}
	cachedExpressionsMu sync.Mutex
)

// ParseExpression compiles an expression once per process
func ParseExpression(exp string) (*Expression, error) {
	exp = strings.TrimSpace(exp)

	cachedExpressionsMu.Lock()
	defer cachedExpressionsMu.Unlock()

	expression, exists := cachedExpressions[exp]
	if exists {
		return expression, nil
	}
	program, err := expr.Compile(exp)
	if err != nil {
		return nil, err
	}
	expression = &Expression{program: program}
	cachedExpressions[exp] = expression
	return expression, nil
}
