// Package features turns product titles into structured feature sets.
package features

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/bazaar/internal/domain"
)

const (
	FeatureBrand            = "brand"
	FeatureCategoryKeywords = "category_keywords"
	FeatureRAM              = "ram"
	FeatureStorage          = "storage"
)

// Extractor derives a feature set from free text.
type Extractor interface {
	Extract(title string) domain.FeatureSet
}

type pattern struct {
	name string
	re   *regexp.Regexp
}

// Patterns are tried in this order; the first non-empty capture group wins.
var patterns = []pattern{
	{"ram", regexp.MustCompile(`(\d+)\s*(?:GB|gb|G|g)\s*(?:RAM|ram|Ram)`)},
	{"storage", regexp.MustCompile(`(\d+)\s*(?:GB|gb|TB|tb|G|g|T|t)\s*(?:SSD|HDD|eMMC|storage|Storage)`)},
	{"screen_size", regexp.MustCompile(`(\d+\.?\d*)["-]\s*(?:inch|in|display|screen|IPS|LCD|LED|OLED|FHD|QHD|UHD)`)},
	{"processor", regexp.MustCompile(`(i\d-\d{4,}(?:[A-Z]*)?|[A-Z]\d-\d{4,}(?:[A-Z]*)?|Ryzen\s*\d|Snapdragon\s*\d+|Intel\s*[A-Za-z]*\s*\d+|AMD\s*[A-Za-z]*\s*\d+|Quad[\-\s]Core|Octa[\-\s]Core|Hexa[\-\s]Core)`)},
	{"resolution", regexp.MustCompile(`(\d+\s*[xX]\s*\d+|HD|FHD|QHD|UHD|4K|1080[pP]|720[pP]|2160[pP])`)},
	{"battery", regexp.MustCompile(`(\d+)\s*(?:mAh|Wh)\s*(?:battery|Battery)`)},
	{"color", regexp.MustCompile(`(?:Color|color|Colour|colour):\s*([A-Za-z]+)|(?:in|In)\s+([A-Za-z]+)(?:\s+color|\s+Color)`)},
	{"bluetooth", regexp.MustCompile(`(Bluetooth\s*\d+\.?\d*)`)},
	{"waterproof", regexp.MustCompile(`((?:IP|ip)\d{1,2}(?:X|\s*)?(?:\d{1,2})?|Water[\-\s]*(?:proof|resistant))`)},
	{"wireless", regexp.MustCompile(`(Wireless|wireless|Wi-Fi|wifi|WiFi)`)},
	{"noise_cancelling", regexp.MustCompile(`(Noise\s*(?:Cancelling|Cancellation|cancelling|cancellation))`)},
	{"material", regexp.MustCompile(`(?:made\s+of|Made\s+of|material:)\s+([A-Za-z]+)`)},
	{"weight", regexp.MustCompile(`(\d+\.?\d*)\s*(?:kg|g|Kg|KG|G|pounds|lbs|oz)`)},
}

type categoryKeywords struct {
	category string
	keywords []string
}

var keywordTable = []categoryKeywords{
	{"electronics", []string{"wireless", "bluetooth", "earbuds", "headphones", "speaker", "monitor", "tv", "camera"}},
	{"computers", []string{"laptop", "computer", "desktop", "keyboard", "mouse", "webcam", "processor", "ram", "ssd"}},
	{"home_kitchen", []string{"purifier", "coffee", "maker", "cookware", "kitchen", "blender", "mixer", "toaster"}},
	{"beauty", []string{"moisturizer", "cream", "shampoo", "conditioner", "dryer", "shaver", "trimmer"}},
	{"toys", []string{"game", "toy", "puzzle", "building", "lego", "doll", "action figure"}},
	{"tools", []string{"drill", "saw", "hammer", "screwdriver", "wrench", "tool", "bulb", "light"}},
	{"books", []string{"novel", "fiction", "nonfiction", "book", "author", "story", "series"}},
}

var firstToken = regexp.MustCompile(`[\p{L}\p{N}]+(?:[-&][\p{L}\p{N}]+)*`)

// RegexExtractor extracts features with a fixed table of title patterns.
type RegexExtractor struct{}

// NewExtractor returns the default regex-based extractor.
func NewExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns the features found in title. An empty title yields an empty
// set, never nil.
func (RegexExtractor) Extract(title string) domain.FeatureSet {
	fs := domain.FeatureSet{}
	if title == "" {
		return fs
	}

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				fs[p.name] = domain.TextFeature(group)
				break
			}
		}
	}

	if brand := GuessBrand(title); brand != "" {
		fs[FeatureBrand] = domain.TextFeature(brand)
	}

	lower := strings.ToLower(title)
	var found []string
	for _, row := range keywordTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
	}
	if len(found) > 0 {
		fs[FeatureCategoryKeywords] = domain.KeywordsFeature(found...)
	}
	return fs
}

// GuessBrand returns the first word of title unless it is a stopword.
func GuessBrand(title string) string {
	tok := firstToken.FindString(title)
	if tok == "" || IsStopword(strings.ToLower(tok)) {
		return ""
	}
	return tok
}

// Brand returns the brand feature of fs, or "".
func Brand(fs domain.FeatureSet) string {
	if v, ok := fs[FeatureBrand]; ok {
		return v.String()
	}
	return ""
}

var groups = []struct {
	name     string
	features []string
}{
	{"technical_specs", []string{"ram", "storage", "processor", "resolution", "screen_size"}},
	{"physical_attributes", []string{"color", "weight", "material"}},
	{"connectivity", []string{"bluetooth", "wireless"}},
	{"durability", []string{"waterproof", "battery"}},
	{"audio", []string{"noise_cancelling"}},
	{"metadata", []string{"brand", "category_keywords"}},
}

// GroupOther collects features that belong to no named group.
const GroupOther = "other"

// GroupNames lists the feature groups in display order.
func GroupNames() []string {
	names := make([]string, 0, len(groups)+1)
	for _, g := range groups {
		names = append(names, g.name)
	}
	return append(names, GroupOther)
}

// Categorize groups the features of fs by kind. Unknown names land in
// GroupOther and groups with no features are omitted.
func Categorize(fs domain.FeatureSet) map[string]domain.FeatureSet {
	out := make(map[string]domain.FeatureSet)
	seen := make(map[string]bool, len(fs))
	for _, g := range groups {
		sub := domain.FeatureSet{}
		for _, name := range g.features {
			if v, ok := fs[name]; ok {
				sub[name] = v
				seen[name] = true
			}
		}
		if len(sub) > 0 {
			out[g.name] = sub
		}
	}
	for name, v := range fs {
		if seen[name] {
			continue
		}
		if out[GroupOther] == nil {
			out[GroupOther] = domain.FeatureSet{}
		}
		out[GroupOther][name] = v
	}
	return out
}
