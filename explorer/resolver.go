// explorer/resolver.go
package explorer

import (
	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/metadata"
)

// Resolution is the outcome of resolving a URL. Entity is nil when the URL could not be matched,
// which is a normal outcome rather than an error.
type Resolution struct {
	Entity *metadata.EntityDescriptor
	// IsID is set when the last segment was classified as a key into a collection.
	IsID bool
}

// Resolved reports whether an entity was found.
func (r Resolution) Resolved() bool {
	return r.Entity != nil
}

// ResolveEntity works out which entity set or type currentURL points at, looking back at most two
// segments. The metadata for selectedVersion must already be in store; otherwise nothing resolves.
func ResolveEntity(currentURL, selectedVersion string, store cache.Store, lastCallSucceeded bool) Resolution {
	segments := splitSegments(currentURL)
	entityName := segments[len(segments)-1]

	if entityName == selectedVersion {
		return Resolution{Entity: &metadata.EntityDescriptor{Name: selectedVersion}}
	}

	sets, setsOK := cache.EntitySets(store, selectedVersion)
	types, typesOK := cache.EntityTypes(store, selectedVersion)
	if !setsOK || !typesOK {
		return Resolution{}
	}

	prevCallName, twoPrevCallsName := lookback(segments, entityName)
	prevCallName, twoPrevCallsName = applyMePolicy(entityName, prevCallName, twoPrevCallsName, lastCallSucceeded)

	entitySet, _ := sets.Lookup(prevCallName)
	entityType, _ := types.Lookup(prevCallName)
	twoPrevEntitySet, _ := sets.Lookup(twoPrevCallsName)
	twoPrevEntityType, _ := types.Lookup(twoPrevCallsName)

	isACollection := false
	collectionType := ""
	if twoPrevEntitySet != nil {
		// A set shadows a type of the same name here, and sets carry no navigations of their
		// own, so the last match wins without recording a type.
		for _, nav := range twoPrevEntitySet.Navigations {
			if nav.Name == prevCallName {
				isACollection = nav.IsCollection
			}
		}
	} else if twoPrevEntityType != nil {
		if nav, ok := twoPrevEntityType.Navigation(prevCallName); ok {
			isACollection = nav.IsCollection
			collectionType = nav.Type
		}
	}

	setOnly := entitySet != nil && entityType == nil
	setBelowRoot := entitySet != nil && twoPrevCallsName == selectedVersion
	isID := ((setOnly || setBelowRoot) && lastCallSucceeded && prevCallName != meSegment) ||
		(isACollection && lastCallSucceeded)

	if isID {
		typeName := ""
		if isACollection {
			typeName = collectionType
		} else if entitySet != nil {
			typeName = entitySet.EntityType
		}
		entity, _ := types.Lookup(typeName)
		return Resolution{Entity: entity, IsID: true}
	}

	if entityType == nil && entitySet != nil {
		entityType = ResolveSetOrType(entitySet.EntityType, selectedVersion, store, "")
	}

	if entityType != nil {
		nav, ok := entityType.SingleNavigation(entityName)
		if !ok {
			return Resolution{}
		}
		return Resolution{Entity: ResolveSetOrType(nav.Type, selectedVersion, store, "")}
	}

	return Resolution{Entity: ResolveSetOrType(entityName, selectedVersion, store, prevCallName)}
}

// ResolveSetOrType looks name up as both an entity set and a type. When it is both, the set wins
// only directly below the service root (prevCallName equal to the version). Returns nil when name
// is unknown or the version's metadata is not cached.
func ResolveSetOrType(name, selectedVersion string, store cache.Store, prevCallName string) *metadata.EntityDescriptor {
	sets, _ := cache.EntitySets(store, selectedVersion)
	types, _ := cache.EntityTypes(store, selectedVersion)

	set, isSet := sets.Lookup(name)
	typ, isType := types.Lookup(name)

	switch {
	case isSet && !isType:
		return set
	case isType && !isSet:
		return typ
	case isSet && isType:
		if prevCallName == selectedVersion {
			return set
		}
		return typ
	default:
		return nil
	}
}
