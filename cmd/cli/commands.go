package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/gorilla/websocket"

	"recipehub/pkg/models"
)

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func printRecipe(r models.Recipe) {
	fmt.Printf("#%d %s\n", r.ID, r.Name)
	for _, ing := range r.Ingredients {
		fmt.Printf("  - %s: %s\n", ing.Name, ing.Quantity)
	}
	if r.Instructions != "" {
		fmt.Printf("  %s\n", strings.ReplaceAll(r.Instructions, "\n", "\n  "))
	}
}

// --- recipes ---

type recipesCmd struct {
	api  func() *apiClient
	long bool
}

func (*recipesCmd) Name() string     { return "recipes" }
func (*recipesCmd) Synopsis() string { return "lists saved recipes" }
func (*recipesCmd) Usage() string {
	return `recipes [-long]

Lists every saved recipe with its id.
`
}
func (c *recipesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.long, "long", false, "print ingredients and instructions")
}

func (c *recipesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := c.api().ListRecipes(ctx)
	if err != nil {
		return fail(err)
	}
	if len(list) == 0 {
		fmt.Println("no recipes")
		return subcommands.ExitSuccess
	}
	for _, r := range list {
		if c.long {
			printRecipe(r)
			continue
		}
		fmt.Printf("#%d %s (%d ingredients)\n", r.ID, r.Name, len(r.Ingredients))
	}
	return subcommands.ExitSuccess
}

// --- add-recipe ---

type addRecipeCmd struct {
	api          func() *apiClient
	name         string
	ingredients  string
	instructions string
}

func (*addRecipeCmd) Name() string     { return "add-recipe" }
func (*addRecipeCmd) Synopsis() string { return "saves a recipe" }
func (*addRecipeCmd) Usage() string {
	return `add-recipe -name <name> -ingredients '<json object>' [-instructions <text>]

Ingredients are a JSON object of label to quantity, e.g. '{"eggs": 2, "flour": "200g"}'.
`
}
func (c *addRecipeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "recipe name")
	f.StringVar(&c.ingredients, "ingredients", "{}", "ingredients as a JSON object")
	f.StringVar(&c.instructions, "instructions", "", "preparation steps")
}

func (c *addRecipeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.name) == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	var ingredients models.Ingredients
	if err := json.Unmarshal([]byte(c.ingredients), &ingredients); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -ingredients: %v\n", err)
		return subcommands.ExitUsageError
	}

	resp, err := c.api().AddRecipe(ctx, c.name, ingredients, c.instructions)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s (#%d)\n", resp.Message, resp.Recipe.ID)
	return subcommands.ExitSuccess
}

// --- delete-recipe ---

type deleteRecipeCmd struct {
	api func() *apiClient
}

func (*deleteRecipeCmd) Name() string     { return "delete-recipe" }
func (*deleteRecipeCmd) Synopsis() string { return "deletes recipes by id" }
func (*deleteRecipeCmd) Usage() string {
	return `delete-recipe <id>...
`
}
func (*deleteRecipeCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteRecipeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil || len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one numeric recipe id is required.")
		return subcommands.ExitUsageError
	}
	api := c.api()
	for _, id := range ids {
		msg, err := api.DeleteRecipe(ctx, id)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("#%d: %s\n", id, msg)
	}
	return subcommands.ExitSuccess
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// --- generate ---

type generateCmd struct {
	api func() *apiClient
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "asks the model for a recipe and saves it" }
func (*generateCmd) Usage() string {
	return `generate <recipe name>
`
}
func (*generateCmd) SetFlags(*flag.FlagSet) {}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: a recipe name is required.")
		return subcommands.ExitUsageError
	}
	resp, err := c.api().GenerateRecipe(ctx, name)
	if err != nil {
		return fail(err)
	}
	fmt.Println(resp.Message)
	printRecipe(resp.Recipe)
	return subcommands.ExitSuccess
}

// --- search ---

type searchCmd struct {
	api func() *apiClient
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "asks the model for three matching recipes and saves them" }
func (*searchCmd) Usage() string {
	return `search <query>
`
}
func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.TrimSpace(strings.Join(f.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: a search query is required.")
		return subcommands.ExitUsageError
	}
	resp, err := c.api().SearchRecipes(ctx, query)
	if err != nil {
		return fail(err)
	}
	fmt.Println(resp.Message)
	for _, r := range resp.Recipes {
		printRecipe(r)
	}
	return subcommands.ExitSuccess
}

// --- shop ---

type shopCmd struct {
	api      func() *apiClient
	currency func() string
}

func (*shopCmd) Name() string     { return "shop" }
func (*shopCmd) Synopsis() string { return "prices the combined shopping list of recipes at every store" }
func (*shopCmd) Usage() string {
	return `shop <recipe id>...
`
}
func (*shopCmd) SetFlags(*flag.FlagSet) {}

func (c *shopCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, err := parseIDs(f.Args())
	if err != nil || len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one numeric recipe id is required.")
		return subcommands.ExitUsageError
	}
	res, err := c.api().ShoppingList(ctx, ids)
	if err != nil {
		return fail(err)
	}

	cur := c.currency()
	fmt.Println("Shopping list:")
	for _, item := range res.ShoppingList {
		fmt.Printf("  - %s: %s\n", item.Name, item.Quantity)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tTOTAL\t")
	for _, sc := range res.StoreCosts {
		mark := ""
		if sc.Store == res.CheapestStore {
			mark = "cheapest"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", sc.Store, formatMoney(sc.Total, cur), mark)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// --- nearest ---

type nearestCmd struct {
	api      func() *apiClient
	currency func() string
	limit    int
}

func (*nearestCmd) Name() string     { return "nearest" }
func (*nearestCmd) Synopsis() string { return "lists stores by distance from a UK postcode" }
func (*nearestCmd) Usage() string {
	return `nearest [-n <count>] <postcode>
`
}
func (c *nearestCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "show at most n stores (0 = all)")
}

func (c *nearestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	postcode := strings.TrimSpace(strings.Join(f.Args(), " "))
	if postcode == "" {
		fmt.Fprintln(os.Stderr, "Error: a postcode is required.")
		return subcommands.ExitUsageError
	}
	list, err := c.api().NearestStores(ctx, postcode)
	if err != nil {
		return fail(err)
	}
	if c.limit > 0 && len(list) > c.limit {
		list = list[:c.limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DISTANCE\tSTORE\tPOSTCODE\tEGGS")
	for _, s := range list {
		eggs := "-"
		if p, ok := s.Prices.Get("eggs"); ok {
			eggs = formatMoney(p, c.currency())
		}
		fmt.Fprintf(w, "%.2f km\t%s\t%s\t%s\n", s.Distance, s.Name, s.Postcode, eggs)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// --- init-stores ---

type initStoresCmd struct {
	api func() *apiClient
}

func (*initStoresCmd) Name() string     { return "init-stores" }
func (*initStoresCmd) Synopsis() string { return "replaces all stores with the built-in set" }
func (*initStoresCmd) Usage() string {
	return `init-stores
`
}
func (*initStoresCmd) SetFlags(*flag.FlagSet) {}

func (c *initStoresCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	msg, err := c.api().InitStores(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}

// --- watch ---

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "prints change events from the server's WebSocket feed" }
func (*watchCmd) Usage() string {
	return `watch
`
}
func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wsURL, err := websocketURL(*baseURL, "/ws")
	if err != nil {
		return fail(err)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fail(err)
	}
	defer conn.Close()

	fmt.Fprintf(os.Stderr, "connected to %s\n", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return fail(err)
		}
		fmt.Println(strings.TrimSpace(string(msg)))
	}
}

func websocketURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
