package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/go-faster/errors"

	"github.com/productcatalog/backend/config"
	"github.com/productcatalog/backend/internal/infrastructure/catalogapi"
	appLogger "github.com/productcatalog/backend/internal/logger"
	"github.com/productcatalog/backend/internal/viewmodel"
)

const CatalogCtlVersion = "1.0.0"

const usage = `Product catalog control.

The api url defaults to client.base_url from config (CATALOG_CLIENT_BASE_URL).

Usage:
    catalogctl list [--api_url=<api_url>] [--sort=<method>]
    catalogctl add [--api_url=<api_url>]
        --name=<name>
        --count=<count>
        --width=<width>
        --height=<height>
        --weight=<weight>
        [--id=<id>] [--image_url=<image_url>]
    catalogctl edit [--api_url=<api_url>] <record_id>
        [--id=<id>] [--image_url=<image_url>] [--name=<name>]
        [--count=<count>] [--width=<width>] [--height=<height>] [--weight=<weight>]
    catalogctl delete [--api_url=<api_url>] <record_id>
    catalogctl comment add [--api_url=<api_url>] <record_id> <text>
    catalogctl comment delete [--api_url=<api_url>] <record_id> <index>
    catalogctl comments [--api_url=<api_url>] <record_id>
    catalogctl -h | --help
    catalogctl --version

Options:
    -h --help                  Show this screen.
    --version                  Show version.
    --api_url=<api_url>        Catalog API base url.
    --sort=<method>            alphabetical or count [default: alphabetical].
    --id=<id>                  Display id, 0 when omitted on add.
    --image_url=<image_url>    Product image url.
    --name=<name>              Product name.
    --count=<count>            Units in stock.
    --width=<width>            Width.
    --height=<height>          Height.
    --weight=<weight>          Weight with unit, e.g. 500g.`

// draftFlags maps command line flags to form fields
var draftFlags = []struct{ flag, field string }{
	{"--id", viewmodel.FieldID},
	{"--image_url", viewmodel.FieldImageURL},
	{"--name", viewmodel.FieldName},
	{"--count", viewmodel.FieldCount},
	{"--width", viewmodel.FieldWidth},
	{"--height", viewmodel.FieldHeight},
	{"--weight", viewmodel.FieldWeight},
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], CatalogCtlVersion)
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := appLogger.New(cfg.Log.Level, cfg.Server.Environment, "catalogctl")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	baseURL := cfg.Client.BaseURL
	if apiURL, _ := opts.String("--api_url"); apiURL != "" {
		baseURL = apiURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := catalogapi.NewClient(baseURL, cfg.Client.RatePerSec, cfg.Client.Burst, logger)
	catalog := viewmodel.NewCatalog(client, logger)

	if err := run(ctx, os.Stdout, catalog, opts); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the catalog, performs the selected command and prints the listing
func run(ctx context.Context, out io.Writer, catalog *viewmodel.Catalog, opts docopt.Opts) error {
	if err := catalog.Load(ctx); err != nil {
		return err
	}

	recordID, _ := opts.String("<record_id>")

	// "comment add" also sets "add", so comment commands are matched first
	if comment, _ := opts.Bool("comment"); comment {
		var err error
		if add, _ := opts.Bool("add"); add {
			err = commentAdd(ctx, catalog, recordID, opts)
		} else {
			err = commentDelete(ctx, catalog, recordID, opts)
		}
		if err != nil {
			return err
		}
		catalog.ToggleComments(recordID)
	} else if list, _ := opts.Bool("list"); list {
		method, _ := opts.String("--sort")
		if err := catalog.SetSortMethod(method); err != nil {
			return err
		}
	} else if add, _ := opts.Bool("add"); add {
		if err := addProduct(ctx, out, catalog, opts); err != nil {
			return err
		}
	} else if edit, _ := opts.Bool("edit"); edit {
		if err := editProduct(ctx, catalog, recordID, opts); err != nil {
			return err
		}
	} else if del, _ := opts.Bool("delete"); del {
		catalog.RequestDelete(recordID)
		if err := catalog.ConfirmDelete(ctx); err != nil {
			return err
		}
	} else if comments, _ := opts.Bool("comments"); comments {
		if _, ok := catalog.Product(recordID); !ok {
			return errors.Errorf("product %s not found", recordID)
		}
		catalog.ToggleComments(recordID)
	}

	render(out, catalog)
	return nil
}

func addProduct(ctx context.Context, out io.Writer, catalog *viewmodel.Catalog, opts docopt.Opts) error {
	catalog.OpenAddForm()
	if err := applyDraftFlags(catalog, opts); err != nil {
		return err
	}

	created, err := catalog.SubmitAdd(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Added %s (%s)\n\n", created.Name, created.RecordID)
	return nil
}

func editProduct(ctx context.Context, catalog *viewmodel.Catalog, recordID string, opts docopt.Opts) error {
	if err := catalog.BeginEdit(recordID); err != nil {
		return err
	}
	if err := applyDraftFlags(catalog, opts); err != nil {
		return err
	}
	return catalog.SaveEdit(ctx)
}

// applyDraftFlags copies the flags that were given onto the draft form
func applyDraftFlags(catalog *viewmodel.Catalog, opts docopt.Opts) error {
	for _, f := range draftFlags {
		if opts[f.flag] == nil {
			continue
		}
		value, err := opts.String(f.flag)
		if err != nil {
			return errors.Wrapf(err, "flag %s", f.flag)
		}
		if err := catalog.SetDraftField(f.field, value); err != nil {
			return err
		}
	}
	return nil
}

func commentAdd(ctx context.Context, catalog *viewmodel.Catalog, recordID string, opts docopt.Opts) error {
	text, _ := opts.String("<text>")
	catalog.SetCommentDraft(recordID, text)
	return catalog.AddComment(ctx, recordID)
}

func commentDelete(ctx context.Context, catalog *viewmodel.Catalog, recordID string, opts docopt.Opts) error {
	raw, _ := opts.String("<index>")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrapf(err, "comment index %q", raw)
	}
	return catalog.DeleteComment(ctx, recordID, index)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
