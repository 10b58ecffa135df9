package glacier

// Pick is the sentinel marking a scalar or enum leaf in a selection. Any int
// works; Pick is the conventional spelling.
//
//	glacier.Sel{{"name", glacier.Pick}, {"email", glacier.Pick}}
const Pick = 1

// Sel is an ordered object selection. Slice order is the caller's literal
// order and determines output field order and variable numbering, so
// encoding the same Sel twice yields byte-identical query text.
type Sel []SelField

// SelField names one selected field and its selection value: Pick for a
// leaf, a nested Sel for an object field, or a Call for an argumented field.
type SelField struct {
	Name  string
	Value any
}

// Call selects a field invoked with arguments. Sel holds the selection on
// the field's result: Pick when the result is a leaf, a glacier.Sel when it
// is an object.
type Call struct {
	Args Args
	Sel  any
}

// Args is an ordered argument list. Arguments with a nil value are treated
// as absent and never reach the wire.
type Args []ArgValue

// ArgValue is one named argument value in domain form.
type ArgValue struct {
	Name  string
	Value any
}
