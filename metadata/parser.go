// metadata/parser.go
// Package metadata turns a Microsoft Graph OData $metadata (CSDL) document into the two lookup
// tables the explorer resolves URLs against: entity sets by name and entity/complex types by name.
//
// Parsing is best effort. Elements missing the attributes a descriptor needs are skipped, and a
// document that does not parse at all yields empty mappings alongside the error.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

const collectionPrefix = "Collection("

// ErrEmptyDocument is returned when there is nothing to parse.
var ErrEmptyDocument = errors.New("metadata document is empty")

// DecodeDocument unwraps a metadata payload. The explorer transport hands the XML over as a
// JSON encoded string; anything that is not a JSON string literal is returned as-is.
func DecodeDocument(raw []byte) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", ErrEmptyDocument
	}
	if strings.HasPrefix(trimmed, `"`) {
		var unwrapped string
		if err := json.Unmarshal([]byte(trimmed), &unwrapped); err != nil {
			return "", fmt.Errorf("failed to decode JSON wrapped metadata: %w", err)
		}
		return strings.TrimSpace(unwrapped), nil
	}
	return trimmed, nil
}

// ParseDocument parses doc once and builds both mappings.
func ParseDocument(doc string) (*Document, error) {
	root, err := parseXML(doc)
	if err != nil {
		return &Document{EntitySets: Mapping{}, EntityTypes: Mapping{}}, err
	}
	return &Document{
		EntitySets:  entitySets(root),
		EntityTypes: entityTypes(root),
	}, nil
}

// ParseEntitySets returns entity-set name -> descriptor for the first EntityContainer in doc.
func ParseEntitySets(doc string) (Mapping, error) {
	root, err := parseXML(doc)
	if err != nil {
		return Mapping{}, err
	}
	return entitySets(root), nil
}

// ParseEntityTypes returns type name -> descriptor for every EntityType and ComplexType in doc.
// Both kinds share one name space; a complex type replaces an entity type of the same name.
func ParseEntityTypes(doc string) (Mapping, error) {
	root, err := parseXML(doc)
	if err != nil {
		return Mapping{}, err
	}
	return entityTypes(root), nil
}

func parseXML(doc string) (*xmlquery.Node, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, ErrEmptyDocument
	}
	root, err := xmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata XML: %w", err)
	}
	return root, nil
}

func entitySets(root *xmlquery.Node) Mapping {
	sets := Mapping{}

	container := xmlquery.FindOne(root, "//*[local-name()='EntityContainer']")
	if container == nil {
		return sets
	}

	for _, child := range childElements(container) {
		name := cleanAttr(child.SelectAttr("Name"))
		// Singletons such as "me" declare Type rather than EntityType.
		typeAttr := child.SelectAttr("EntityType")
		if typeAttr == "" {
			typeAttr = child.SelectAttr("Type")
		}
		entityType := bareTypeName(cleanAttr(typeAttr))
		if name == "" || entityType == "" {
			continue
		}
		sets[name] = &EntityDescriptor{
			Name:        name,
			IsEntitySet: true,
			EntityType:  entityType,
			Navigations: []NavigationProperty{},
		}
	}

	return sets
}

func entityTypes(root *xmlquery.Node) Mapping {
	types := Mapping{}
	collectTypes(types, xmlquery.Find(root, "//*[local-name()='EntityType']"))
	collectTypes(types, xmlquery.Find(root, "//*[local-name()='ComplexType']"))
	return types
}

func collectTypes(into Mapping, nodes []*xmlquery.Node) {
	for _, node := range nodes {
		name := cleanAttr(node.SelectAttr("Name"))
		if name == "" {
			continue
		}
		descriptor := &EntityDescriptor{
			Name:        name,
			Navigations: []NavigationProperty{},
		}
		for _, child := range childElements(node) {
			if nav, ok := parseNavigation(child); ok {
				descriptor.Navigations = append(descriptor.Navigations, nav)
			}
		}
		into[name] = descriptor
	}
}

// parseNavigation reads a Property or NavigationProperty child. Children without both a
// Name and a Type (Key, Annotation, ...) are skipped.
func parseNavigation(node *xmlquery.Node) (NavigationProperty, bool) {
	name := cleanAttr(node.SelectAttr("Name"))
	rawType := cleanAttr(node.SelectAttr("Type"))
	if name == "" || rawType == "" {
		return NavigationProperty{}, false
	}

	isCollection := false
	if strings.HasPrefix(rawType, collectionPrefix) {
		isCollection = true
		rawType = strings.TrimSuffix(strings.TrimPrefix(rawType, collectionPrefix), ")")
	}

	typeName := bareTypeName(rawType)
	if typeName == "" {
		return NavigationProperty{}, false
	}

	return NavigationProperty{
		Name:         name,
		Type:         typeName,
		IsCollection: isCollection,
	}, true
}

func childElements(node *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// bareTypeName strips the namespace qualifier: "microsoft.graph.user" -> "user".
func bareTypeName(qualified string) string {
	qualified = strings.TrimSpace(qualified)
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		qualified = qualified[i+1:]
	}
	return strings.TrimRight(qualified, ")")
}

// cleanAttr removes quoting left behind when the document was escaped more than once.
func cleanAttr(value string) string {
	return strings.Trim(strings.TrimSpace(value), `\"'`)
}
