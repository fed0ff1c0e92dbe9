package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/bazaar/internal/assistant"
	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/domain"
	"github.com/alexanderramin/bazaar/internal/features"
	"github.com/alexanderramin/bazaar/internal/negotiation"
	"github.com/alexanderramin/bazaar/internal/recommend"
	"github.com/alexanderramin/bazaar/internal/repository"
	"github.com/alexanderramin/bazaar/internal/service"
	"github.com/alexanderramin/bazaar/internal/testutil"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// testApp wires a full App backed by an in-memory DB seeded with the sample
// catalog. The LLM is disabled.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	products := repository.NewSQLiteProductRepo(database)
	imports := repository.NewSQLiteImportRepo(database)
	ctx := context.Background()
	require.NoError(t, products.ReplaceAll(ctx, testutil.SampleCatalog()))

	store := service.NewStore(products, features.NewExtractor(), features.DefaultWeights(), recommend.DefaultConfig())
	require.NoError(t, store.Load(ctx))

	return &App{
		Catalog:     service.NewCatalogService(store, products, imports),
		Import:      service.NewImportService(catalog.NewLoader(nil, nil), store, testutil.NewTestUoW(database)),
		Negotiation: service.NewNegotiationService(store, negotiation.NewEngine(negotiation.DefaultConfig(), nil)),
		Recommend:   service.NewRecommendationService(store),
		Cart:        service.NewCartService(store),
		Chat:        service.NewChatService(assistant.New(store, nil, zerolog.Nop())),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr with ANSI
// styling removed.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

// scriptedPrompter answers prompts from fixed lists.
type scriptedPrompter struct {
	offers   []float64
	confirms []bool
	asked    []string
}

func (s *scriptedPrompter) Offer(title, description string) (float64, bool, error) {
	s.asked = append(s.asked, description)
	if len(s.offers) == 0 {
		return 0, false, nil
	}
	v := s.offers[0]
	s.offers = s.offers[1:]
	return v, true, nil
}

func (s *scriptedPrompter) Confirm(string) (bool, error) {
	if len(s.confirms) == 0 {
		return false, nil
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func TestProductsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "products", "--category", "computers", "--sort", "price")
	require.NoError(t, err)
	acme14 := strings.Index(out, "computers_acme14")
	acme15 := strings.Index(out, "computers_acme15")
	require.Positive(t, acme14)
	assert.Less(t, acme14, acme15)
	assert.NotContains(t, out, "electronics_sonic")

	out, err = executeCmd(t, app, "", "products", "--max-price", "80", "--json")
	require.NoError(t, err)
	var got []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"electronics_sonic", "home_kitchen_barista"}, ids)
}

func TestProductsCmd_BadSort(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "", "products", "--sort", "popularity")
	require.Error(t, err)
}

func TestProductCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "product", "computers_acme15")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Laptop 15.6 inch")
	assert.Contains(t, out, "$899.99")
	assert.Contains(t, out, "FEATURES")
	assert.Contains(t, out, "ram: 16")

	_, err = executeCmd(t, app, "", "product", "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCategoriesCmd(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "computers")
	assert.Contains(t, out, "home_kitchen")
}

func TestNegotiateCmd_ScriptedOffers(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "negotiate", "computers_acme15", "--offer", "805", "--offer", "$899.99,950", "--floor")
	require.NoError(t, err)
	assert.Contains(t, out, "floor $801.89")
	assert.Contains(t, out, "COUNTER")
	assert.Contains(t, out, "counter: $843.00")
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "HISTORY")
	assert.NotContains(t, out, "$950.00", "offers after acceptance are not sent")

	h, err := app.Negotiation.History(context.Background(), "computers_acme15")
	require.NoError(t, err)
	assert.Len(t, h.Rounds, 2)
	assert.Equal(t, domain.NegotiationAccepted, h.Status)
}

func TestNegotiateCmd_Reset(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_, err := app.Negotiation.Offer(ctx, "computers_acme15", 805)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "", "negotiate", "computers_acme15", "--reset", "--offer", "805")
	require.NoError(t, err)
	assert.Contains(t, out, "Round 1")
}

func TestNegotiateCmd_RequiresOffersWhenNotInteractive(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "", "negotiate", "computers_acme15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no offers")
}

func TestNegotiateCmd_InvalidOffer(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "", "negotiate", "computers_acme15", "--offer", "cheap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestNegotiateCmd_InteractiveAddsToCart(t *testing.T) {
	app := testApp(t)
	prompts := &scriptedPrompter{offers: []float64{805, 899.99}, confirms: []bool{true}}
	app.Prompts = prompts
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "", "negotiate", "computers_acme15")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPTED")
	assert.Equal(t, []string{"List price $899.99, round 1", "List price $899.99, round 2"}, prompts.asked)

	cart := app.Cart.Get(context.Background())
	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].NegotiatedPrice)
	assert.InDelta(t, 899.99, *cart.Items[0].NegotiatedPrice, 0.001)
	assert.Contains(t, out, "total $899.99")
}

func TestNegotiateCmd_InteractiveStop(t *testing.T) {
	app := testApp(t)
	app.Prompts = &scriptedPrompter{}
	app.IsInteractive = func() bool { return true }

	out, err := executeCmd(t, app, "", "negotiate", "computers_acme15")
	require.NoError(t, err)
	assert.Contains(t, out, "Negotiation paused.")
	assert.Empty(t, app.Cart.Get(context.Background()).Items)
}

func TestRecommendationCmds(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "", "similar", "computers_acme15", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SIMILAR TO COMPUTERS_ACME15")
	assert.Contains(t, out, "computers_acme14")

	out, err = executeCmd(t, app, "", "better", "computers_acme14")
	require.NoError(t, err)
	assert.Contains(t, out, "BETTER THAN COMPUTERS_ACME14")

	out, err = executeCmd(t, app, "", "recommend", "computers_acme15")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")

	out, err = executeCmd(t, app, "", "search", "coffee", "maker", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "home_kitchen_barista")

	_, err = executeCmd(t, app, "", "similar", "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestChatCmd_Question(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "", "chat", "I", "want", "to", "buy", "a", "coffee", "maker")
	require.NoError(t, err)
	assert.Contains(t, out, "Barista Coffee Maker")
	assert.NotContains(t, out, "**")
}

type slowChat struct{ stubChat }

func (s *slowChat) Answer(ctx context.Context, q string) string {
	time.Sleep(250 * time.Millisecond)
	return s.stubChat.Answer(ctx, q)
}

func TestChatCmd_QuestionShowsSpinnerInTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.Chat = &slowChat{stubChat{answers: map[string]string{"any deals": "Try the **Acme** laptop"}}}

	out, err := executeCmd(t, app, "", "chat", "any", "deals")
	require.NoError(t, err)
	assert.Contains(t, out, "thinking…")
	assert.Contains(t, out, "Try the Acme laptop")
}

func TestChatCmd_ReadsStdinWhenNotInteractive(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "hello\n\nfind earbuds\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "you> hello")
	assert.Contains(t, out, "trouble connecting")
	assert.Contains(t, out, "you> find earbuds")
	assert.Contains(t, out, "Sonic Wireless Earbuds")
}

func TestImportCmd(t *testing.T) {
	app := testApp(t)
	dir := t.TempDir()
	csv := "Title,Price,Rating,Reviews,Brand,Product Link\n" +
		"\"Glow Desk Lamp, LED\",24.99,4.4,88,Glow,https://example.com/g\n"
	path := filepath.Join(dir, "amazon_lighting.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := executeCmd(t, app, "", "import", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 products")
	assert.Contains(t, out, "lighting")

	_, err = executeCmd(t, app, "", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--append")

	out, err = executeCmd(t, app, "", "import", "--append", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 products")

	products, err := app.Catalog.List(context.Background(), catalog.Query{})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = executeCmd(t, app, "", "import", "--append", dir)
	require.Error(t, err)
}

func TestImportCmd_UsesDataDir(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog directory")

	app.DataDir = filepath.Join(t.TempDir(), "missing")
	_, err = executeCmd(t, app, "", "import")
	require.Error(t, err)
}

func TestServeCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "", "serve")
	require.Error(t, err)

	called := false
	app.Serve = func(ctx context.Context) error {
		called = true
		require.NotNil(t, ctx)
		return errors.New("bind failed")
	}
	_, err = executeCmd(t, app, "", "serve")
	assert.EqualError(t, err, "bind failed")
	assert.True(t, called)
}

func TestOfferList(t *testing.T) {
	var o offerList
	require.NoError(t, o.Set("700"))
	require.NoError(t, o.Set("$750.50, 800"))
	assert.Equal(t, offerList{700, 750.5, 800}, o)
	assert.Equal(t, "[700,750.5,800]", o.String())
	assert.Equal(t, "amounts", o.Type())

	assert.Error(t, o.Set("-5"))
	assert.Error(t, o.Set("abc"))
}
