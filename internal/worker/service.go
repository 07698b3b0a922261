package worker

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/md5check/internal/amqp"
	"github.com/ykhdr/md5check/internal/amqp/connection"
	"github.com/ykhdr/md5check/internal/amqp/consumer"
	"github.com/ykhdr/md5check/internal/amqp/publisher"
	"github.com/ykhdr/md5check/internal/consul"
	"github.com/ykhdr/md5check/internal/hashcrack/enumerator"
	"github.com/ykhdr/md5check/internal/hashcrack/strategy"
	"github.com/ykhdr/md5check/internal/store/resultstore"
	"github.com/ykhdr/md5check/pkg/messages"
)

const ServiceName = "md5check-worker"

type Deps struct {
	Address      string
	Port         int
	AmqpConfig   *amqp.Config
	ConsulClient consul.Client
	AmqpConn     *connection.Connection
	// Strategies lists the strategies a request may ask for; the first is the default.
	Strategies []strategy.Strategy
	Store      resultstore.ResultStore
}

// Service takes crack requests from a queue and publishes one response per request.
type Service struct {
	l             zerolog.Logger
	deps          Deps
	strategies    map[string]strategy.Strategy
	defaultName   string
	amqpPublisher publisher.Publisher[messages.CrackHashResponse]
}

func NewService(deps Deps) (*Service, error) {
	if len(deps.Strategies) == 0 {
		return nil, errors.New("worker needs at least one strategy")
	}
	strategies := make(map[string]strategy.Strategy, len(deps.Strategies))
	for _, s := range deps.Strategies {
		strategies[s.Name()] = s
	}
	return &Service{
		deps:        deps,
		strategies:  strategies,
		defaultName: deps.Strategies[0].Name(),
		l: log.With().
			Str("domain", "worker").
			Logger(),
	}, nil
}

// Start registers the worker in consul and consumes requests until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	serviceId, err := s.deps.ConsulClient.RegisterService(ServiceName, s.deps.Address, s.deps.Port)
	if err != nil {
		s.l.Warn().Err(err).Msg("error register service in consul")
		return errors.Wrap(err, "register service in consul")
	}
	defer func() {
		if err := s.deps.ConsulClient.DeregisterService(serviceId); err != nil {
			s.l.Warn().Err(err).Msg("error deregister service in consul")
		}
	}()
	s.logPeers()

	ch, err := s.deps.AmqpConn.Channel(ctx)
	if err != nil {
		return errors.Wrap(err, "create amqp channel")
	}
	defer func() { _ = ch.Close() }()

	consumerCfg := s.deps.AmqpConfig.ConsumerConfig.ToConsumerConfig(xml.Unmarshal)
	if err = ch.DeclareQueue(consumerCfg.Queue); err != nil {
		return err
	}
	s.amqpPublisher = publisher.New[messages.CrackHashResponse](
		ch,
		s.deps.AmqpConfig.PublisherConfig.ToPublisherConfig(xml.Marshal, "application/xml"),
	)
	s.l.Info().Str("service-id", serviceId).Str("queue", consumerCfg.Queue).Msg("worker is running")
	consumer.New(ch, s.receive, consumerCfg).Subscribe(ctx)
	return nil
}

func (s *Service) logPeers() {
	peers, err := s.deps.ConsulClient.HealthServices(ServiceName)
	if err != nil {
		s.l.Warn().Err(err).Msg("error query healthy workers")
		return
	}
	for _, p := range peers {
		s.l.Debug().Str("service-id", p.Id()).Str("url", p.Url()).Msg("healthy worker")
	}
	s.l.Info().Int("count", len(peers)).Msg("workers sharing the queue")
}

func (s *Service) receive(ctx context.Context, req *messages.CrackHashRequest, d amqp091.Delivery) error {
	resp, err := s.crackTask(ctx, req)
	if err != nil {
		s.l.Info().Err(err).Str("req-id", req.RequestId).Msg("task interrupted, returning it to the queue")
		return errors.Wrap(d.Nack(false, true), "requeue delivery")
	}
	if err = s.amqpPublisher.SendMessage(ctx, resp, publisher.Persistent); err != nil {
		if nackErr := d.Nack(false, true); nackErr != nil {
			s.l.Warn().Err(nackErr).Str("req-id", req.RequestId).Msg("failed to requeue delivery")
		}
		return errors.Wrap(err, "publish response")
	}
	if err = d.Ack(false); err != nil {
		return errors.Wrap(err, "ack delivery")
	}
	if resp.Found {
		s.save(ctx, req, resp)
	}
	return nil
}

// crackTask builds the response for req. Strategy failures are reported in
// the response; an error is returned only when the search was interrupted
// and the request should be retried.
func (s *Service) crackTask(ctx context.Context, req *messages.CrackHashRequest) (*messages.CrackHashResponse, error) {
	s.l.Debug().
		Str("req-id", req.RequestId).
		Str("hash", req.Hash).
		Int("max-length", req.MaxLength).
		Str("strategy", req.Strategy).
		Msg("cracking task")
	res, err := s.crack(ctx, req)
	if interrupted(ctx, err) {
		return nil, err
	}
	resp := &messages.CrackHashResponse{
		Id:        uuid.NewString(),
		RequestId: req.RequestId,
		Hash:      req.Hash,
	}
	if err != nil {
		s.l.Warn().Err(err).Str("req-id", req.RequestId).Msg("task failed")
		resp.Error = err.Error()
		return resp, nil
	}
	resp.Found = res.Found()
	resp.Plaintext = res.Plaintext()
	return resp, nil
}

func interrupted(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, strategy.ErrStopped) ||
		errors.Is(err, context.Canceled) ||
		ctx.Err() != nil
}

func (s *Service) crack(ctx context.Context, req *messages.CrackHashRequest) (strategy.CrackResult, error) {
	name := s.defaultName
	if req.Strategy != "" {
		name = strategy.ParseType(req.Strategy).String()
	}
	crackStrategy, ok := s.strategies[name]
	if !ok {
		return nil, errors.Errorf("strategy %q is not available on this worker", req.Strategy)
	}
	bounded, ok := crackStrategy.(strategy.Bounded)
	if !ok || (req.MaxLength == 0 && len(req.Alphabet.Symbols) == 0) {
		return crackStrategy.Crack(ctx, req.Hash)
	}
	alphabet, err := requestAlphabet(req.Alphabet)
	if err != nil {
		return nil, err
	}
	return bounded.CrackWith(req.Hash, req.MaxLength, alphabet)
}

func requestAlphabet(a messages.Alphabet) (enumerator.Alphabet, error) {
	if len(a.Symbols) == 0 {
		return enumerator.Alphabet{}, nil
	}
	alphabet, err := enumerator.NewAlphabet(strings.Join(a.Symbols, ""))
	if err != nil {
		return enumerator.Alphabet{}, errors.Wrap(err, "request alphabet")
	}
	return alphabet, nil
}

func (s *Service) save(ctx context.Context, req *messages.CrackHashRequest, resp *messages.CrackHashResponse) {
	if s.deps.Store == nil {
		return
	}
	name := req.Strategy
	if name == "" {
		name = s.defaultName
	}
	err := s.deps.Store.Save(ctx, &resultstore.Record{
		Hash:      resp.Hash,
		Plaintext: resp.Plaintext,
		Strategy:  name,
		FoundAt:   time.Now().UTC(),
	})
	if err != nil {
		s.l.Warn().Err(err).Str("req-id", req.RequestId).Msg("failed to store result")
	}
}
