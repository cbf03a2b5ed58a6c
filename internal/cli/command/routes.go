package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/featherserve-go/internal/cli/output"
	"github.com/yndnr/featherserve-go/internal/storage/assets"
)

// RouteInfo describes one URL path served from the cache.
type RouteInfo struct {
	Path         string `json:"path" yaml:"path"`
	ContentType  string `json:"content_type" yaml:"content_type"`
	Bytes        int    `json:"bytes" yaml:"bytes"`
	GzipBytes    int    `json:"gzip_bytes" yaml:"gzip_bytes"`
	CacheControl string `json:"cache_control" yaml:"cache_control"`
	Hash         string `json:"hash" yaml:"hash"`
}

// RouteList is the result of the routes command.
type RouteList []RouteInfo

// Table implements output.Tabler.
func (r RouteList) Table() *output.Table {
	t := output.NewTable("PATH", "TYPE", "BYTES", "GZIP", "CACHE-CONTROL", "HASH")
	for _, ri := range r {
		t.AddRow(ri.Path, ri.ContentType, ri.Bytes, ri.GzipBytes, ri.CacheControl, ri.Hash)
	}
	return t
}

const routesDescription = `Only regular files are loaded. Symbolic links under the site root,
including links to files inside it, are skipped: they are not listed
here and requests for them get the 404 page.`

// RoutesCommand returns the routes command.
func RoutesCommand() *cli.Command {
	return &cli.Command{
		Name:        "routes",
		Usage:       "list every URL path the site would serve",
		Description: routesDescription,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "site directory"},
		},
		Action: runRoutes,
	}
}

func runRoutes(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"), overrides(c, []overrideFlag{{"root", "static.root"}}))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cache := assets.Load(cfg.Static.Root)
	return render(c, routeList(cache))
}

func routeList(cache *assets.Cache) RouteList {
	routes := cache.Routes()
	list := make(RouteList, 0, len(routes))
	for _, r := range routes {
		list = append(list, RouteInfo{
			Path:         r.Path,
			ContentType:  r.Entry.ContentType,
			Bytes:        len(r.Entry.Body),
			GzipBytes:    len(r.Entry.Gzip),
			CacheControl: r.Entry.CacheControl,
			Hash:         fmt.Sprintf("%016x", r.Entry.Hash),
		})
	}
	return list
}
