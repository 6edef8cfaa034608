package catalog

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// Catalog is the registry of named analytical queries. Each definition is
// bound to exactly one record schema.
type Catalog struct {
	mu      sync.RWMutex
	defs    []*domain.QueryDefinition
	byName  map[string]*domain.QueryDefinition
	schemas map[string]reflect.Type
}

type entry struct {
	def    *domain.QueryDefinition
	schema reflect.Type
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{
		byName:  make(map[string]*domain.QueryDefinition),
		schemas: make(map[string]reflect.Type),
	}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in travel analytics catalog
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		c := New()
		for _, group := range [][]entry{bookingQueries, flightQueries, paymentQueries, customerQueries, eventQueries, countQueries} {
			for _, e := range group {
				if err := c.Register(e.def, e.schema); err != nil {
					defaultErr = err
					return
				}
			}
		}
		defaultCatalog = c
	})
	return defaultCatalog, defaultErr
}

// MustDefault is like Default but panics when the built-in catalog is invalid
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Register adds def to the catalog bound to schema
func (c *Catalog) Register(def *domain.QueryDefinition, schema reflect.Type) error {
	if err := def.Validate(); err != nil {
		return errors.WrapError(errors.ErrCodeValidationError, "invalid query definition", err)
	}
	if schema == nil || schema.Kind() != reflect.Struct {
		return errors.NewAppError(errors.ErrCodeValidationError,
			fmt.Sprintf("query '%s' has no record schema", def.Name), nil)
	}
	if err := checkPlaceholders(def); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[def.Name]; exists {
		return errors.NewAppError(errors.ErrCodeValidationError,
			fmt.Sprintf("query '%s' is already registered", def.Name), nil)
	}
	c.defs = append(c.defs, def)
	c.byName[def.Name] = def
	c.schemas[def.Name] = schema
	return nil
}

// checkPlaceholders verifies the statement references exactly the declared params
func checkPlaceholders(def *domain.QueryDefinition) error {
	used := Placeholders(def.Statement)
	for _, name := range used {
		if _, ok := def.Param(name); !ok {
			return errors.NewAppError(errors.ErrCodeValidationError,
				fmt.Sprintf("query '%s' references undeclared parameter '%s'", def.Name, name), nil)
		}
	}
	for _, p := range def.Params {
		if !slices.Contains(used, p.Name) {
			return errors.NewAppError(errors.ErrCodeValidationError,
				fmt.Sprintf("query '%s' declares unused parameter '%s'", def.Name, p.Name), nil)
		}
	}
	return nil
}

// Get returns the definition registered under name
func (c *Catalog) Get(name string) (*domain.QueryDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.byName[name]
	if !ok {
		return nil, errors.NotFound(name)
	}
	return def, nil
}

// Schema returns the record type bound to name
func (c *Catalog) Schema(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.schemas[name]
	return t, ok
}

// All returns every definition in registration order
func (c *Catalog) All() []*domain.QueryDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.defs)
}

// Resources returns the definitions published as list endpoints, which is
// every definition outside the count group
func (c *Catalog) Resources() []*domain.QueryDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*domain.QueryDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		if def.Group != domain.GroupCount {
			out = append(out, def)
		}
	}
	return out
}

// Group returns the definitions of one group in registration order
func (c *Catalog) Group(group domain.QueryGroup) []*domain.QueryDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*domain.QueryDefinition
	for _, def := range c.defs {
		if def.Group == group {
			out = append(out, def)
		}
	}
	return out
}

// Groups returns the distinct groups in order of first registration
func (c *Catalog) Groups() []domain.QueryGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.QueryGroup
	for _, def := range c.defs {
		if !slices.Contains(out, def.Group) {
			out = append(out, def.Group)
		}
	}
	return out
}

// Len returns the number of registered definitions
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.defs)
}
