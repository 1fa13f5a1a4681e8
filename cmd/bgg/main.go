// Command bgg is a small terminal front end for the BoardGameGeek XML
// API: search the catalog, inspect a game, list a collection, or show
// the hotness list.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	bgg "github.com/meeplelab/go-bgg"
)

var (
	client *bgg.Client
	logger zerolog.Logger

	// Command flags
	verbose   bool
	exact     bool
	wishlist  bool
	expansion bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bgg",
	Short: "Query BoardGameGeek from the terminal",
	Long: `bgg looks up games, collections, guilds and the hotness list on
BoardGameGeek. Configuration is read from BGG_ environment variables,
for example BGG_BASE_URL to point at a proxy.`,
	PersistentPreRunE: initializeApp,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and retries")

	searchCmd.Flags().BoolVar(&exact, "exact", false, "match the name exactly")
	thingCmd.Flags().BoolVar(&expansion, "expansions", false, "include expansions the game has")
	collectionCmd.Flags().BoolVar(&wishlist, "wishlist", false, "show the wishlist instead of owned games")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(thingCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(hotCmd)
}

// initializeApp builds the shared client from environment configuration.
func initializeApp(cmd *cobra.Command, args []string) error {
	viper.SetEnvPrefix("bgg")
	viper.AutomaticEnv()
	viper.SetDefault("base_url", bgg.DefaultBaseURL)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("retry_max", 4)
	viper.SetDefault("retry_delay", "5s")

	logger = setupLogger()

	timeout, err := time.ParseDuration(viper.GetString("timeout"))
	if err != nil {
		return fmt.Errorf("invalid BGG_TIMEOUT: %w", err)
	}
	retryDelay, err := time.ParseDuration(viper.GetString("retry_delay"))
	if err != nil {
		return fmt.Errorf("invalid BGG_RETRY_DELAY: %w", err)
	}

	client, err = bgg.NewClient(
		bgg.WithBaseURL(viper.GetString("base_url")),
		bgg.WithTimeout(timeout),
		bgg.WithRetry(viper.GetInt("retry_max"), retryDelay),
		bgg.WithUserAgent("bgg-cli/1.0"),
		bgg.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to build client: %w", err)
	}
	return nil
}

func setupLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := client.Search.Search(cmd.Context(), args[0], &bgg.SearchOptions{
			Exact: exact,
		})
		if err != nil {
			return err
		}
		for _, r := range results {
			year := ""
			if r.YearPublished != 0 {
				year = fmt.Sprintf(" (%d)", r.YearPublished)
			}
			fmt.Printf("%8d  %-20s %s%s\n", r.ID, r.Type, r.Name, year)
		}
		return nil
	},
}

var thingCmd = &cobra.Command{
	Use:   "thing <id>",
	Short: "Show a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		game, err := client.Things.Get(cmd.Context(), id, nil)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d)\n", game.Name, game.YearPublished)
		fmt.Printf("  players: %d-%d, playtime: %s, age: %d+\n",
			game.MinPlayers, game.MaxPlayers, game.PlayingTime, game.MinAge)
		if game.Stats != nil {
			fmt.Printf("  rank: %s, rating: %.2f (%d votes)\n",
				game.Stats.Rank, game.Stats.Average, game.Stats.UsersRated)
		}
		if len(game.Designers) > 0 {
			names := make([]string, 0, len(game.Designers))
			for _, d := range game.Designers {
				names = append(names, d.Name)
			}
			fmt.Printf("  designers: %s\n", strings.Join(names, ", "))
		}
		if expansion {
			for _, e := range game.Expansions {
				fmt.Printf("  expansion: %s (%d)\n", e.Name, e.ID)
			}
		}
		return nil
	},
}

var collectionCmd = &cobra.Command{
	Use:   "collection <username>",
	Short: "List a user's collection",
	Long: `List the games a user owns, or with --wishlist the games they want.
Collections are built asynchronously on the service side; the command
retries queued responses automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			collection *bgg.Collection
			err        error
		)
		if wishlist {
			collection, err = client.Collections.Wishlist(cmd.Context(), args[0])
		} else {
			collection, err = client.Collections.Owned(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}

		for _, item := range collection.Items {
			status := ""
			if item.Status.Wishlist {
				status = fmt.Sprintf(" [%s]", item.Status.WishlistPriority)
			}
			fmt.Printf("%8d  %s (%d)%s\n", item.ID, item.Name, item.YearPublished, status)
		}
		fmt.Printf("%d items\n", collection.TotalItems)
		return nil
	},
}

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "Show the current hotness list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := client.Hot.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Printf("%3d. %s (%d)\n", item.Rank, item.Name, item.YearPublished)
		}
		return nil
	},
}
