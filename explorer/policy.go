// explorer/policy.go
package explorer

// Graph exposes the signed-in user as the "me" singleton. When the previous call succeeded the
// resolver treats it as an element of the users collection, or as the user type when it sits two
// segments back. This is specific to Graph and not derived from the metadata.
const (
	meSegment      = "me"
	meBackingSet   = "users"
	meBackingType  = "user"
	defaultTypeKey = "user"
)

func applyMePolicy(entityName, prev, twoPrev string, lastCallSucceeded bool) (string, string) {
	if !lastCallSucceeded {
		return prev, twoPrev
	}
	if entityName == meSegment {
		prev = meBackingSet
	} else if twoPrev == meSegment {
		twoPrev = meBackingType
	}
	return prev, twoPrev
}
