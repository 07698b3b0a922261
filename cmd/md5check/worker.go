package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/config"
	"github.com/ykhdr/md5check/internal/amqp"
	"github.com/ykhdr/md5check/internal/consul"
	"github.com/ykhdr/md5check/internal/hashcrack/bruteforce"
	"github.com/ykhdr/md5check/internal/hashcrack/digest"
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
	"github.com/ykhdr/md5check/internal/net"
	"github.com/ykhdr/md5check/internal/server"
	"github.com/ykhdr/md5check/internal/store/mongo"
	"github.com/ykhdr/md5check/internal/store/resultstore"
	"github.com/ykhdr/md5check/internal/worker"
	"golang.org/x/sync/errgroup"
)

func runWorker(ctx context.Context, cfg *config.Config) error {
	address, err := net.FindIPv4Addr()
	if err != nil {
		return errors.Wrap(err, "find worker address")
	}
	consulClient, err := consul.NewClient(cfg.ConsulConfig)
	if err != nil {
		return err
	}
	amqpConn, err := amqp.Dial(ctx, cfg.AmqpConfig)
	if err != nil {
		return err
	}
	defer func() { _ = amqpConn.Close() }()

	strategies, err := workerStrategies(ctx, cfg)
	if err != nil {
		return err
	}
	deps := worker.Deps{
		Address:      address,
		Port:         cfg.ServerPort,
		AmqpConfig:   cfg.AmqpConfig,
		ConsulClient: consulClient,
		AmqpConn:     amqpConn,
		Strategies:   strategies,
	}
	if cfg.MongoDBConfig != nil && cfg.MongoDBConfig.URI != "" {
		client, err := mongo.NewClient(&cfg.MongoDBConfig.ClientConfig)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		deps.Store = resultstore.New(client.Database(cfg.MongoDBConfig.Database))
	}
	workerSrv, err := worker.NewService(deps)
	if err != nil {
		return err
	}
	httpSrv := server.New(fmt.Sprintf("%s:%d", address, cfg.ServerPort))

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpSrv.Start(gCtx)
	})
	group.Go(func() error {
		return workerSrv.Start(gCtx)
	})
	return group.Wait()
}

func workerStrategies(ctx context.Context, cfg *config.Config) ([]strategy.Strategy, error) {
	fn, err := digest.Get(cfg.BruteforceConfig.Digest)
	if err != nil {
		return nil, err
	}
	alphabet, err := cfg.Alphabet()
	if err != nil {
		return nil, err
	}
	return worker.Strategies(strategy.Deps{
		Logger:         log.Logger,
		Digest:         fn,
		Controller:     bruteforce.NewController(fn, bruteforce.WithLogger(log.Logger), bruteforce.WithStop(ctx.Done())),
		Alphabet:       alphabet,
		MaxLength:      cfg.BruteforceConfig.MaxLength,
		DictionaryFile: cfg.DictionaryConfig.File,
	}, cfg.Strategy)
}
