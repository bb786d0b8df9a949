package export

// DropMember is the generated member name for drop targets; releasing a
// remote object invokes `TypeName::__drop`.
const DropMember = "__drop"

// BuildName constructs the logical export name for a type's member.
func BuildName(typeName, member string) string {
	return typeName + "::" + member
}

// DropName constructs the generated drop target for a type.
func DropName(typeName string) string {
	return BuildName(typeName, DropMember)
}
