package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/elevatedliving/storefront/config"
	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// newRootCmd builds the storefront command tree. load is called once before
// any subcommand runs.
func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	var app *application

	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Elevated Living storefront and gift concierge",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			app, err = newApplication(cmd.Context(), cfg, cmd.ErrOrStderr())
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}

	recommend := &cobra.Command{
		Use:     "recommend <preferences...>",
		Short:   "Ask the concierge for gift ideas",
		Example: `  storefront recommend "housewarming for a friend who loves tea"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd.Context(), app, cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}

	var category string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCatalog(cmd.OutOrStdout(), app, category)
		},
	}
	catalogCmd.Flags().StringVar(&category, "category", domain.CategoryAll, "category to show (All, Dining, Serving, Home Decor, Barware)")

	root.AddCommand(serve, recommend, catalogCmd)
	return root
}

// runServe serves HTTP until SIGINT/SIGTERM, then drains in-flight requests
func runServe(ctx context.Context, app *application) error {
	limiter, handler, err := app.router()
	if err != nil {
		return err
	}
	defer limiter.Close()

	srv := &http.Server{
		Addr:              ":" + app.cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info().
			Str("addr", srv.Addr).
			Str("environment", app.cfg.Server.Environment).
			Msg("Elevated Living storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info().Dur("timeout", app.cfg.Server.ShutdownTimeout).Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// runRecommend prints one recommendation. Blank input never reaches the
// concierge.
func runRecommend(ctx context.Context, app *application, out io.Writer, preferences string) error {
	if strings.TrimSpace(preferences) == "" {
		return fmt.Errorf("%w: describe the occasion and recipient", domain.ErrInvalidRequest)
	}

	advice := app.concierge.RequestRecommendation(ctx, preferences)
	_, err := fmt.Fprintln(out, advice)
	return err
}

func printCatalog(out io.Writer, app *application, category string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
	for _, item := range app.catalog.Products(category) {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\n", item.ID, item.Name, item.Category, item.Price)
	}
	return w.Flush()
}
