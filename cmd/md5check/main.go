package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/config"
	"github.com/ykhdr/md5check/internal/console"
	"github.com/ykhdr/md5check/internal/hashcrack"
	"github.com/ykhdr/md5check/internal/hashcrack/bruteforce"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
	"github.com/ykhdr/md5check/internal/store/mongo"
	"github.com/ykhdr/md5check/internal/store/resultstore"
)

const usage = `usage:
  md5check [-config path] [-test] [-single] <in_file> <out_file> online [-delay 4s]
  md5check [-config path] [-test] [-single] <in_file> <out_file> dictionary <dict_file>
  md5check [-config path] [-test] [-single] <in_file> <out_file> bruteforce [-length 12] [-alphabet abc]
  md5check [-config path] worker
`

func main() {
	configPath := flag.String("config", "", "path to the kdl config file")
	test := flag.Bool("test", false, "run a test case generating basic hashes; requires -single")
	single := flag.Bool("single", false, "each input line is a lone md5 hash")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.InitializeConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 1 && args[0] == "worker" {
		if err = runWorker(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
		return
	}
	if len(args) < 3 {
		flag.Usage()
		os.Exit(2)
	}

	reporter := console.Default()
	reporter.Banner()
	opts := hashcrack.Options{
		InFile:  args[0],
		OutFile: args[1],
		Single:  *single,
		Test:    *test,
	}
	if err = run(ctx, cfg, reporter, opts, args[2], args[3:]); err != nil {
		reporter.Error("Error", err.Error())
		reporter.Error("Closing!", "")
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	cfg *config.Config,
	reporter *console.Reporter,
	opts hashcrack.Options,
	command string,
	args []string,
) error {
	t := strategy.ParseType(command)
	if t == strategy.EmptyType {
		return errors.Errorf("unknown command %q", command)
	}
	if err := applyCommandFlags(cfg, t, args); err != nil {
		return err
	}
	crackStrategy, err := buildStrategy(ctx, cfg, reporter, t)
	if err != nil {
		return err
	}

	var svcOpts []hashcrack.Option
	if cfg.MongoDBConfig != nil && cfg.MongoDBConfig.URI != "" {
		client, err := mongo.NewClient(&cfg.MongoDBConfig.ClientConfig)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		svcOpts = append(svcOpts, hashcrack.WithResultStore(resultstore.New(client.Database(cfg.MongoDBConfig.Database))))
	}

	_, err = hashcrack.NewService(crackStrategy, reporter, svcOpts...).Run(ctx, opts)
	return err
}

// applyCommandFlags parses the strategy's own flags over the loaded config.
func applyCommandFlags(cfg *config.Config, t strategy.Type, args []string) error {
	fs := flag.NewFlagSet(t.String(), flag.ContinueOnError)
	switch t {
	case strategy.BruteforceType:
		fs.IntVar(&cfg.BruteforceConfig.MaxLength, "length", cfg.BruteforceConfig.MaxLength,
			"maximum length of generated strings")
		fs.StringVar(&cfg.BruteforceConfig.Alphabet, "alphabet", cfg.BruteforceConfig.Alphabet,
			"ordered symbols to generate strings from")
	case strategy.OnlineType:
		fs.DurationVar(&cfg.OnlineConfig.Delay, "delay", cfg.OnlineConfig.Delay, "delay between each hash check")
	}
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "parse %s flags", t)
	}
	if t == strategy.DictionaryType {
		if fs.NArg() > 0 {
			cfg.DictionaryConfig.File = fs.Arg(0)
		}
		if cfg.DictionaryConfig.File == "" {
			return errors.New("dictionary file is required")
		}
	}
	return cfg.Validate()
}

func buildStrategy(
	ctx context.Context,
	cfg *config.Config,
	reporter *console.Reporter,
	t strategy.Type,
) (strategy.Strategy, error) {
	fn, err := digest.Get(cfg.BruteforceConfig.Digest)
	if err != nil {
		return nil, err
	}
	alphabet, err := cfg.Alphabet()
	if err != nil {
		return nil, err
	}
	deps := strategy.Deps{
		Logger:         log.Logger,
		Digest:         fn,
		Alphabet:       alphabet,
		MaxLength:      cfg.BruteforceConfig.MaxLength,
		DictionaryFile: cfg.DictionaryConfig.File,
		Delay:          cfg.OnlineConfig.Delay,
	}
	switch t {
	case strategy.BruteforceType:
		deps.Controller = bruteforce.NewController(fn, bruteforce.WithLogger(log.Logger), bruteforce.WithStop(ctx.Done()))
	case strategy.OnlineType:
		deps.Client = &http.Client{Timeout: cfg.OnlineConfig.Timeout}
		deps.Servers, err = strategy.EnsureServers(ctx, cfg.OnlineConfig.ServersFile, deps.Client, promptAPIKey(reporter))
		if err != nil {
			return nil, err
		}
		reporter.Info("Servers loaded", fmt.Sprint(len(deps.Servers)))
	}
	return strategy.New(t, deps)
}

func promptAPIKey(reporter *console.Reporter) func() (string, error) {
	return func() (string, error) {
		reporter.Ask("A servers file does not yet exist", "")
		reporter.Ask("Please go to http://md5crack.com/api and retrieve an API key", "")
		reporter.Ask("API Key", "")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return line, nil
	}
}
