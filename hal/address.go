package hal

import "fmt"

// Property scopes. A scope selects the signal path a property applies
// to.
const (
	ScopeGlobal      FourCC = 'g'<<24 | 'l'<<16 | 'o'<<8 | 'b'
	ScopeInput       FourCC = 'i'<<24 | 'n'<<16 | 'p'<<8 | 't'
	ScopeOutput      FourCC = 'o'<<24 | 'u'<<16 | 't'<<8 | 'p'
	ScopePlayThrough FourCC = 'p'<<24 | 't'<<16 | 'r'<<8 | 'u'
	ScopeWildcard    FourCC = '*'<<24 | '*'<<16 | '*'<<8 | '*'
)

// SelectorWildcard matches every selector in a congruence comparison.
const SelectorWildcard FourCC = '*'<<24 | '*'<<16 | '*'<<8 | '*'

// Property elements. Element 0 addresses the object as a whole,
// elements >= 1 address individual channels.
const (
	ElementMain     uint32 = 0
	ElementWildcard uint32 = 0xFFFFFFFF
)

// PropertyAddress identifies one property of one object as the triple
// (selector, scope, element). It is an immutable value type; two
// addresses are equal iff all three fields are equal.
type PropertyAddress struct {
	Selector FourCC
	Scope    FourCC
	Element  uint32
}

// Address constructs a fully specified property address.
func Address(selector, scope FourCC, element uint32) PropertyAddress {
	return PropertyAddress{Selector: selector, Scope: scope, Element: element}
}

// GlobalAddress constructs an address in the global scope on the main
// element, the most common case by far.
func GlobalAddress(selector FourCC) PropertyAddress {
	return PropertyAddress{Selector: selector, Scope: ScopeGlobal, Element: ElementMain}
}

// Congruent reports whether the two addresses match when wildcard
// fields are treated as matching anything. The HAL delivers change
// notifications with wildcard scopes or elements when a whole family
// of properties changed; congruence is how such a notification is
// matched against a concrete registration.
func (a PropertyAddress) Congruent(b PropertyAddress) bool {
	if a.Selector != b.Selector && a.Selector != SelectorWildcard && b.Selector != SelectorWildcard {
		return false
	}
	if a.Scope != b.Scope && a.Scope != ScopeWildcard && b.Scope != ScopeWildcard {
		return false
	}
	if a.Element != b.Element && a.Element != ElementWildcard && b.Element != ElementWildcard {
		return false
	}
	return true
}

func (a PropertyAddress) String() string {
	if a.Element == ElementWildcard {
		return fmt.Sprintf("(%v, %v, *)", a.Selector, a.Scope)
	}
	return fmt.Sprintf("(%v, %v, %d)", a.Selector, a.Scope, a.Element)
}
