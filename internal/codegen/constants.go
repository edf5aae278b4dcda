package codegen

import "fmt"

// ConstantPool interns string constants used by generated code, chiefly
// the mangled names keying dynamic-namespace cells. Interning keeps the
// accessor stable across uses so the emitted definition table stays
// de-duplicated.
type ConstantPool struct {
	indexes map[string]int
	values  []string
}

// NewConstantPool creates an empty pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{indexes: make(map[string]int)}
}

// ConstantCode returns the C++ expression accessing the interned constant
// for value, adding it to the pool on first use.
func (p *ConstantPool) ConstantCode(value string) string {
	index, ok := p.indexes[value]
	if !ok {
		index = len(p.values)
		p.indexes[value] = index
		p.values = append(p.values, value)
	}
	return fmt.Sprintf("_kstr_%d", index)
}

// Values returns the interned values in pool order; the position of each
// value is its accessor index.
func (p *ConstantPool) Values() []string {
	values := make([]string, len(p.values))
	copy(values, p.values)
	return values
}

// ConstantCode returns the access expression for a string constant in
// ctx's module. This is the materialization service used by declaration
// emission for dict-cell name keys.
func ConstantCode(ctx Context, value string) string {
	return ctx.Module().Constants().ConstantCode(value)
}

// GlobalNameConstant returns the C++ identifier of the de-duplicated name
// constant a module emits for each registered global-name usage.
func GlobalNameConstant(moduleCodeName, name string) string {
	return fmt.Sprintf("_kname_%s_%s", moduleCodeName, name)
}
