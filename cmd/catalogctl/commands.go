package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"jewelry-storefront/internal/backend"
	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/config"
	"jewelry-storefront/internal/db"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/importer"
	categoryrepo "jewelry-storefront/internal/repository/category"
	productrepo "jewelry-storefront/internal/repository/product"
	subcategoryrepo "jewelry-storefront/internal/repository/subcategory"
	"jewelry-storefront/internal/route"
	categorysvc "jewelry-storefront/internal/service/category"
	productsvc "jewelry-storefront/internal/service/product"
	subcategorysvc "jewelry-storefront/internal/service/subcategory"
	"jewelry-storefront/internal/slug"
)

func slugCommand() *cli.Command {
	return &cli.Command{
		Name:      "slug",
		Usage:     "print the slug generated for a display name",
		ArgsUsage: "<name...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("slug: a name is required", 2)
			}
			_, err := fmt.Fprintln(cmd.Root().Writer, slug.Make(strings.Join(cmd.Args().Slice(), " ")))
			return err
		},
	}
}

func backendFlag(cfg config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "backend",
		Usage: "catalog backend base URL",
		Value: cfg.Backend.PublicURL,
	}
}

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "map storefront URLs to selections and back",
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "print the selection and breadcrumbs a storefront URL encodes",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "backend", Usage: "resolve ambiguous category paths against this backend"},
				},
				Action: parseRoute,
			},
			{
				Name:  "build",
				Usage: "print the storefront URL for a selection",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "subcategory"},
					&cli.StringFlag{Name: "product"},
					&cli.StringFlag{Name: "collection"},
					&cli.StringFlag{Name: "q", Usage: "search term"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path, err := route.Build(route.Selection{
						CategorySlug:    cmd.String("category"),
						SubCategorySlug: cmd.String("subcategory"),
						ProductSlug:     cmd.String("product"),
						CollectionSlug:  cmd.String("collection"),
						Search:          cmd.String("q"),
					})
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.Root().Writer, path)
					return err
				},
			},
		},
	}
}

func parseRoute(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit("route parse: exactly one url is required", 2)
	}
	u, err := url.Parse(cmd.Args().First())
	if err != nil {
		return err
	}

	var (
		sel   route.Selection
		names route.NameResolver
	)
	if base := cmd.String("backend"); base != "" {
		cat, err := loadCatalog(ctx, base)
		if err != nil {
			return err
		}
		sel, err = route.ParseWith(u.EscapedPath(), u.RawQuery, cat)
		if err != nil {
			return err
		}
		names = cat
	} else if sel, err = route.Parse(u.EscapedPath(), u.RawQuery); err != nil {
		return err
	}

	return writeJSON(cmd.Root().Writer, map[string]any{
		"selection":   sel,
		"breadcrumbs": route.Breadcrumbs(sel, names, ""),
	})
}

func treeCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "print the category hierarchy held by a backend",
		Flags: []cli.Flag{
			backendFlag(cfg),
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of an outline"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cat, err := loadCatalog(ctx, cmd.String("backend"))
			if err != nil {
				return err
			}
			out := cmd.Root().Writer
			if cmd.Bool("json") {
				return writeJSON(out, map[string]any{"tree": cat.Tree(), "dangling": cat.Dangling()})
			}
			printTree(out, cat)
			return nil
		},
	}
}

func printTree(out io.Writer, cat catalog.Catalog) {
	for _, node := range cat.Tree() {
		fmt.Fprintf(out, "%s (%s) products=%d%s\n", node.Category.Name, node.Category.Slug, node.Products, inactive(node.Category.IsActive))
		for _, sub := range node.Subcategories {
			fmt.Fprintf(out, "  %s (%s) products=%d%s\n", sub.Subcategory.Name, sub.Subcategory.Slug, sub.Products, inactive(sub.Subcategory.IsActive))
		}
	}
	if dangling := cat.Dangling(); len(dangling) > 0 {
		fmt.Fprintln(out, "dangling references:")
		for _, d := range dangling {
			fmt.Fprintf(out, "  %s %s: %s=%q\n", d.Kind, d.Slug, d.Field, d.Value)
		}
	}
}

func inactive(active bool) string {
	if active {
		return ""
	}
	return " [inactive]"
}

func loadCatalog(ctx context.Context, base string) (catalog.Catalog, error) {
	client := backend.New(backend.Options{PublicURL: base}, nil)
	store := catalog.NewStore(client, nil)
	if err := store.Load(ctx); err != nil {
		return catalog.Catalog{}, err
	}
	return store.Snapshot(), nil
}

func importCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "upsert products or categories from a CSV file into the devbackend database",
		ArgsUsage: "<file.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dsn", Usage: "Postgres connection string", Value: cfg.DevBackend.DBConnString},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("import: exactly one file is required", 2)
			}
			f, err := os.Open(cmd.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			kind, err := importer.DetectKind(f)
			if err != nil {
				return err
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return err
			}

			pool, err := db.Connect(ctx, cmd.String("dsn"))
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer pool.Close()

			imp := importer.NewCSVImporter(f, importer.Writers{
				Products:      productsvc.New(productrepo.NewPostgres(pool, zap.NewNop())),
				Categories:    categorysvc.New(categoryrepo.NewPostgres(pool)),
				Subcategories: subcategorysvc.New(subcategoryrepo.NewPostgres(pool)),
			})
			count, err := imp.Run(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrValidation) {
					return cli.Exit(err.Error(), 2)
				}
				return err
			}
			_, err = fmt.Fprintf(cmd.Root().Writer, "imported %d %s\n", count, kind)
			return err
		},
	}
}

func sessionKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "session-key",
		Usage: "generate SESSION_KEY and SESSION_BLOCK_KEY values for the storefront",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Hex doubles the length: 64 signing bytes and a 32-byte AES key.
			hashKey := securecookie.GenerateRandomKey(32)
			blockKey := securecookie.GenerateRandomKey(16)
			if hashKey == nil || blockKey == nil {
				return errors.New("session-key: random source unavailable")
			}
			_, err := fmt.Fprintf(cmd.Root().Writer, "SESSION_KEY=%s\nSESSION_BLOCK_KEY=%s\n",
				hex.EncodeToString(hashKey), hex.EncodeToString(blockKey))
			return err
		},
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
