package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// StatusCommand shows dataset size, favorites and storage health.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// SearchCommand filters the catalog.
type SearchCommand struct {
	PriceMin string   `long:"price-min" description:"Minimum price"`
	PriceMax string   `long:"price-max" description:"Maximum price"`
	Types    []string `long:"type" description:"Property type: house, condo, townhouse, apartment (repeatable)"`
	Beds     string   `long:"beds" description:"Minimum bedrooms"`
	Baths    string   `long:"baths" description:"Minimum bathrooms"`
	Sqft     string   `long:"sqft" description:"Minimum square feet"`
	Location string   `long:"location" description:"City, state or address text"`

	globals *GlobalFlags
	version string
}

// ShowCommand prints one listing in detail.
type ShowCommand struct {
	ID string `long:"id" description:"Property ID (or first argument)"`

	globals *GlobalFlags
	version string
}

// FeaturedCommand prints the first listings of the catalog.
type FeaturedCommand struct {
	Count int `long:"count" description:"Number of listings" default:"3"`

	globals *GlobalFlags
	version string
}

// FavoritesCommand groups the favorites subcommands.
type FavoritesCommand struct{}

// FavoritesListCommand prints saved listings.
type FavoritesListCommand struct {
	globals *GlobalFlags
	version string
}

// FavoritesAddCommand saves a listing.
type FavoritesAddCommand struct {
	ID string `long:"id" description:"Property ID (or first argument)"`

	globals *GlobalFlags
	version string
}

// FavoritesRemoveCommand unsaves a listing.
type FavoritesRemoveCommand struct {
	ID string `long:"id" description:"Property ID (or first argument)"`

	globals *GlobalFlags
	version string
}

// FavoritesClearCommand deletes every favorite after confirmation.
type FavoritesClearCommand struct {
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	in      io.Reader // confirmation input; nil means os.Stdin
}

// FavoritesPruneCommand drops favorites whose listing no longer exists.
type FavoritesPruneCommand struct {
	DryRun bool `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// MortgageCommand runs the payment calculator.
type MortgageCommand struct {
	ID          string `long:"id" description:"Take the home price from this property"`
	Price       string `long:"price" description:"Home price"`
	Down        string `long:"down" description:"Down payment amount"`
	DownPercent string `long:"down-percent" description:"Down payment as a percent of price (default from config)"`
	Term        string `long:"term" description:"Loan term in years (default from config)"`
	Rate        string `long:"rate" description:"Annual interest rate in percent (default from config)"`
	Tax         string `long:"tax" description:"Annual property tax"`
	Insurance   string `long:"insurance" description:"Annual home insurance"`
	PMI         string `long:"pmi" description:"Annual PMI"`

	globals *GlobalFlags
	version string
}

// MapCommand prints map pins grouped by geohash cell.
type MapCommand struct {
	Precision uint   `long:"precision" description:"Geohash cell length, 1-12 (default from config)"`
	Location  string `long:"location" description:"Only pin listings matching this location"`

	globals *GlobalFlags
	version string
}

// ServeCommand runs the local JSON API.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`

	globals *GlobalFlags
	version string
}
