package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/domain"
)

const laptopTitle = `Acme UltraBook 15.6" FHD Laptop, Intel Core i7-1165G7, 16GB RAM, 512GB SSD, Wireless`

func TestExtract_LaptopTitle(t *testing.T) {
	fs := NewExtractor().Extract(laptopTitle)

	assert.Equal(t, "16", fs["ram"].String())
	assert.Equal(t, "512", fs["storage"].String())
	assert.Equal(t, "15.6", fs["screen_size"].String())
	assert.Equal(t, "i7-1165G", fs["processor"].String())
	assert.Equal(t, "FHD", fs["resolution"].String())
	assert.Equal(t, "Wireless", fs["wireless"].String())
	assert.Equal(t, "Acme", Brand(fs))

	kw, ok := fs[FeatureCategoryKeywords]
	require.True(t, ok)
	assert.True(t, kw.IsKeywords())
	assert.Subset(t, kw.Keywords, []string{"laptop", "ram", "ssd", "wireless"})
}

func TestExtract_AudioTitle(t *testing.T) {
	fs := NewExtractor().Extract("Sonic Wireless Earbuds, Bluetooth 5.3, Active Noise Cancelling, IPX7 Waterproof, 500mAh battery")

	assert.Equal(t, "Bluetooth 5.3", fs["bluetooth"].String())
	assert.Equal(t, "Noise Cancelling", fs["noise_cancelling"].String())
	// "IPX7" has no digit after "IP", so the word match wins.
	assert.Equal(t, "Waterproof", fs["waterproof"].String())
	assert.Equal(t, "500", fs["battery"].String())
	assert.Subset(t, fs[FeatureCategoryKeywords].Keywords, []string{"bluetooth", "earbuds", "wireless"})
}

func TestExtract_IngressRating(t *testing.T) {
	fs := NewExtractor().Extract("Trail Sport Watch, IP67, GPS")
	assert.Equal(t, "IP67", fs["waterproof"].String())

	fs = NewExtractor().Extract("Garden Speaker, Water-resistant")
	assert.Equal(t, "Water-resistant", fs["waterproof"].String())
}

func TestExtract_ColorAndMaterial(t *testing.T) {
	fs := NewExtractor().Extract("Chef Pan made of steel, Color: Red")
	assert.Equal(t, "Red", fs["color"].String())
	assert.Equal(t, "steel", fs["material"].String())

	fs = NewExtractor().Extract("Desk Lamp in Blue color")
	assert.Equal(t, "Blue", fs["color"].String())
}

func TestExtract_EmptyTitle(t *testing.T) {
	fs := NewExtractor().Extract("")
	assert.NotNil(t, fs)
	assert.Empty(t, fs)
}

func TestGuessBrand(t *testing.T) {
	assert.Equal(t, "Sony", GuessBrand("Sony WH-1000XM5 Headphones"))
	assert.Equal(t, "", GuessBrand("The Great Novel"))
	assert.Equal(t, "", GuessBrand(""))
}

func TestCategorize(t *testing.T) {
	fs := NewExtractor().Extract(laptopTitle)
	groups := Categorize(fs)

	assert.Contains(t, groups, "technical_specs")
	assert.Contains(t, groups, "metadata")
	assert.Contains(t, groups["technical_specs"], "ram")
	assert.NotContains(t, groups, "audio")
	assert.NotContains(t, groups, GroupOther)

	groups = Categorize(domain.FeatureSet{"ram": domain.TextFeature("8"), "hdmi": domain.TextFeature("2")})
	assert.Equal(t, domain.FeatureSet{"hdmi": domain.TextFeature("2")}, groups[GroupOther])
	assert.Equal(t, GroupOther, GroupNames()[len(GroupNames())-1])
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Len(t, w, 15)

	v, ok := w.Weight("processor")
	assert.True(t, ok)
	assert.Equal(t, 0.9, v)

	_, ok = w.Weight("unknown")
	assert.False(t, ok)

	// Each call returns an independent table.
	w["ram"] = 0
	assert.Equal(t, 0.8, DefaultWeights()["ram"])
}
