package models

// FacetType is one queryable attribute dimension of a media record.
// The set is closed; the entity extractor never produces anything else.
type FacetType string

const (
	FacetName       FacetType = "name"
	FacetYear       FacetType = "year"
	FacetMonth      FacetType = "month"
	FacetDay        FacetType = "day"
	FacetLabel      FacetType = "label"
	FacetText       FacetType = "text"
	FacetFormat     FacetType = "format"
	FacetAlbum      FacetType = "album"
	FacetLocation   FacetType = "location"
	FacetCollection FacetType = "collection"
)

// AllFacetTypes lists the closed facet vocabulary.
var AllFacetTypes = []FacetType{
	FacetName, FacetYear, FacetMonth, FacetDay, FacetLabel,
	FacetText, FacetFormat, FacetAlbum, FacetLocation, FacetCollection,
}

// Valid reports whether t is a member of the closed facet set.
func (t FacetType) Valid() bool {
	for _, ft := range AllFacetTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// Intent labels produced by the intent classifier.
const (
	IntentSearch   = "search"
	IntentGreeting = "greeting"
	IntentThanks   = "thanks"
	IntentHelp     = "help"
	IntentCount    = "count"
)

// IntentPrediction is the classifier's verdict for one query.
// The engine consumes these, it never constructs them.
type IntentPrediction struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// EntityPrediction maps each facet type to the raw values the extractor
// found, in extraction order. Duplicates are possible and tolerated.
type EntityPrediction map[FacetType][]string
