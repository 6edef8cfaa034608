package catalog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// placeholderPattern matches %(name)s parameter references
var placeholderPattern = regexp.MustCompile(`%\((\w+)\)s`)

// Placeholders returns the distinct parameter names referenced by statement,
// in order of first appearance
func Placeholders(statement string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(statement, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Resolve filters params down to the names def accepts and fills missing ones
// with their documented default. Unknown names are dropped.
func Resolve(def *domain.QueryDefinition, params map[string]string) map[string]string {
	resolved := make(map[string]string, len(def.Params))
	for _, p := range def.Params {
		if v, ok := params[p.Name]; ok && v != "" {
			resolved[p.Name] = v
			continue
		}
		resolved[p.Name] = p.Default
	}
	return resolved
}

// Bind resolves params against def and rewrites every %(name)s placeholder
// into a positional $n argument. Values are never interpolated into the
// statement text. A name used several times maps to the same position.
func Bind(def *domain.QueryDefinition, params map[string]string) (string, []any, error) {
	resolved := Resolve(def, params)
	positions := make(map[string]int)
	var args []any
	var bindErr error

	statement := placeholderPattern.ReplaceAllStringFunc(def.Statement, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if pos, ok := positions[name]; ok {
			return "$" + strconv.Itoa(pos)
		}
		value, ok := resolved[name]
		if !ok {
			if bindErr == nil {
				bindErr = errors.NewAppError(errors.ErrCodeInvalidInput,
					fmt.Sprintf("query '%s' has no value for parameter '%s'", def.Name, name), nil)
			}
			return match
		}
		args = append(args, value)
		positions[name] = len(args)
		return "$" + strconv.Itoa(len(args))
	})
	if bindErr != nil {
		return "", nil, bindErr
	}
	return statement, args, nil
}
