package graph

import "fmt"

// Kind is the role a node plays in the graph. The declaration order is the
// order kinds appear in the assembled node list.
type Kind int

const (
	KindFile Kind = iota
	KindClass
	KindField
	KindMethod
	KindParameter
)

// Kinds lists every kind in output order.
var Kinds = []Kind{KindFile, KindClass, KindField, KindMethod, KindParameter}

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindParameter:
		return "parameter"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for _, candidate := range Kinds {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// IsVariable reports whether k is a field or a parameter.
func (k Kind) IsVariable() bool {
	return k == KindField || k == KindParameter
}

// Namespace is an identity space in the registry. Keys only collide within
// the same namespace.
type Namespace int

const (
	NamespaceFile Namespace = iota
	NamespaceClass
	NamespaceMethod
	NamespaceVariable

	namespaceCount
)

func (n Namespace) String() string {
	switch n {
	case NamespaceFile:
		return "file"
	case NamespaceClass:
		return "class"
	case NamespaceMethod:
		return "method"
	case NamespaceVariable:
		return "variable"
	default:
		return fmt.Sprintf("namespace(%d)", int(n))
	}
}

// NamespaceOf maps a kind to the namespace its ids live in.
func NamespaceOf(k Kind) Namespace {
	switch k {
	case KindFile:
		return NamespaceFile
	case KindClass:
		return NamespaceClass
	case KindMethod:
		return NamespaceMethod
	default:
		return NamespaceVariable
	}
}

// Key identifies a node in the registry.
type Key struct {
	Namespace Namespace
	ID        string
}

func (k Key) String() string {
	return k.Namespace.String() + ":" + k.ID
}
