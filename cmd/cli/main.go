package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"

	"recipehub/pkg/utils"
)

const defaultBaseURL = "http://localhost:8000"

var (
	baseURL  = flag.String("api", defaultBaseURL, "API base URL")
	currency = flag.String("currency", "", "currency for prices (default from RECIPEHUB_CURRENCY or GBP)")
)

func main() {
	utils.LoadDotEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	api := func() *apiClient {
		return &apiClient{BaseURL: *baseURL, HTTP: &http.Client{Timeout: 90 * time.Second}}
	}
	cur := func() string {
		if *currency != "" {
			return *currency
		}
		return utils.LoadCurrency()
	}

	commander.Register(&recipesCmd{api: api}, "recipes")
	commander.Register(&addRecipeCmd{api: api}, "recipes")
	commander.Register(&deleteRecipeCmd{api: api}, "recipes")
	commander.Register(&generateCmd{api: api}, "recipes")
	commander.Register(&searchCmd{api: api}, "recipes")
	commander.Register(&shopCmd{api: api, currency: cur}, "stores")
	commander.Register(&nearestCmd{api: api, currency: cur}, "stores")
	commander.Register(&initStoresCmd{api: api}, "stores")
	commander.Register(&watchCmd{}, "sync")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
