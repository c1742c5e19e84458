// metadata/descriptor.go
package metadata

// NavigationProperty is a declared member of an entity or complex type. Type is always the bare
// type name, with the namespace qualifier and any Collection(...) wrapper removed.
type NavigationProperty struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsCollection bool   `json:"isCollection"`
}

// EntityDescriptor describes either an entity set (IsEntitySet, EntityType set) or an entity/complex
// type (Navigations populated). Entity set descriptors carry no navigations of their own.
type EntityDescriptor struct {
	Name        string               `json:"name"`
	IsEntitySet bool                 `json:"isEntitySet"`
	EntityType  string               `json:"entityType,omitempty"`
	Navigations []NavigationProperty `json:"navigations"`
}

// Navigation returns the first navigation named name.
func (e *EntityDescriptor) Navigation(name string) (NavigationProperty, bool) {
	if e == nil {
		return NavigationProperty{}, false
	}
	for _, nav := range e.Navigations {
		if nav.Name == name {
			return nav, true
		}
	}
	return NavigationProperty{}, false
}

// SingleNavigation returns the first non-collection navigation named name.
func (e *EntityDescriptor) SingleNavigation(name string) (NavigationProperty, bool) {
	if e == nil {
		return NavigationProperty{}, false
	}
	for _, nav := range e.Navigations {
		if nav.Name == name && !nav.IsCollection {
			return nav, true
		}
	}
	return NavigationProperty{}, false
}

// Mapping indexes descriptors by name. Entity sets and entity types live in separate mappings,
// so the same name may appear in both.
type Mapping map[string]*EntityDescriptor

// Lookup returns the descriptor for name, if any.
func (m Mapping) Lookup(name string) (*EntityDescriptor, bool) {
	d, ok := m[name]
	return d, ok && d != nil
}

// Document holds both mappings parsed from one $metadata document.
type Document struct {
	EntitySets  Mapping
	EntityTypes Mapping
}
