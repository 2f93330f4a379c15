package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sfomuseum/go-flags/multi"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-textscan/api"
	"github.com/gcbaptista/go-textscan/config"
	"github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/internal/jobs"
	"github.com/gcbaptista/go-textscan/internal/scanner"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// Exit codes
const (
	exitOK         = 0
	exitFailure    = 1
	exitInvalidArg = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs()))
}

func usage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "textscan - find a word family in a text file\n\n")
	fmt.Fprintf(w, "Usage: textscan [options]\n\n")
	fmt.Fprintf(w, "Options:\n")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  textscan                                   # Scan origin.txt for 'herit' into origin_output.txt\n")
	fmt.Fprintf(w, "  textscan -i book.txt -t \"inherit heir\"      # Several terms, space separated\n")
	fmt.Fprintf(w, "  textscan -mode words -o words.txt          # Sorted matching words, one per line\n")
	fmt.Fprintf(w, "  textscan -i file:///data/book.txt          # Read through a blob bucket URI\n")
	fmt.Fprintf(w, "  textscan -serve -port 9000                 # Accept scans over HTTP\n")
}

// run parses args, then either runs one scan or serves the HTTP API. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer, fs afero.Fs) int {
	flags := flag.NewFlagSet("textscan", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		raw      config.RawArgs
		terms    multi.MultiString
		serve    bool
		port     string
		workers  int
		help     bool
		showVers bool
	)
	flags.StringVar(&raw.InFile, "i", "", "Shorthand for -infile")
	flags.StringVar(&raw.InFile, "infile", "", "Input file to be searched (path or blob URI). default: "+config.DefaultInputPath)
	flags.StringVar(&raw.OutFile, "o", "", "Shorthand for -outfile")
	flags.StringVar(&raw.OutFile, "outfile", "", "Output file to be written to, overwritten if present. default: "+config.DefaultOutputPath)
	flags.StringVar(&raw.Terms, "t", "", "Shorthand for -terms")
	flags.StringVar(&raw.Terms, "terms", "", "Terms used to search the input file, separated by spaces. default: herit (lines), heritable inherit inheritance (words)")
	flags.Var(&terms, "term", "A single search term. May be specified multiple times.")
	flags.StringVar(&raw.Mode, "mode", "lines", "Scan mode: 'lines' (first match per line with its number) or 'words' (sorted matching words)")
	flags.BoolVar(&raw.RegexTerms, "regex", false, "Treat terms as regular expression fragments instead of literal text")
	flags.BoolVar(&serve, "serve", false, "Run the HTTP scan service instead of a single scan")
	flags.StringVar(&port, "port", "8080", "Port to run the server on (with -serve)")
	flags.IntVar(&workers, "workers", 4, "Maximum concurrent scans (with -serve)")
	flags.BoolVar(&help, "help", false, "Show help message")
	flags.BoolVar(&showVers, "version", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitInvalidArg
	}

	if help {
		usage(stdout, flags)
		return exitOK
	}
	if showVers {
		fmt.Fprintf(stdout, "textscan v%s\n", version)
		return exitOK
	}

	if serve {
		if err := serveHTTP(port, workers, fs, stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	raw.TermList = []string(terms)
	cfg, err := config.Resolve(raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalidArg
	}

	fmt.Fprintf(stdout, "infile: %s\noutfile: %s\nterms: %v\nmode: %s\n\n", cfg.InputPath, cfg.OutputPath, cfg.Terms, cfg.Mode)

	s := scanner.NewScanner(fs, log.New(stdout, "", 0))
	if _, err := s.Scan(context.Background(), cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if stderrors.Is(err, errors.ErrInvalidArgument) {
			return exitInvalidArg
		}
		return exitFailure
	}
	return exitOK
}

// serveHTTP runs the scan API until SIGINT/SIGTERM, then drains running scans.
func serveHTTP(port string, workers int, fs afero.Fs, logOutput io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := jobs.NewManager(workers)
	manager.Start()
	defer manager.Stop()

	s := scanner.NewScanner(fs, log.New(logOutput, "", log.LstdFlags))

	router := gin.Default()
	api.SetupRoutes(router, s, manager)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
