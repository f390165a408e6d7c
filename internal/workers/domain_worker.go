package workers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/folio/internal/services"
)

// DomainChecker is the part of services.DomainService the workers drive.
type DomainChecker interface {
	Check(ctx context.Context, domain string) (*services.DomainCheck, error)
	EnqueueStale(ctx context.Context) (int, error)
}

// DomainWorkerPool consumes verification jobs from a Redis stream.
// Jobs are acknowledged whatever the outcome; the Scheduler re-queues
// domains that are still not valid.
type DomainWorkerPool struct {
	Redis      *redis.Client
	Domains    DomainChecker
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
	JobTimeout     time.Duration
}

func (p *DomainWorkerPool) defaults() error {
	if p.Redis == nil || p.Domains == nil {
		return errors.New("DomainWorkerPool missing dependency: Redis/Domains must be set")
	}
	if p.Stream == "" {
		p.Stream = services.DomainVerifyStream
	}
	if p.Group == "" {
		p.Group = "domain-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.JobTimeout <= 0 {
		p.JobTimeout = 30 * time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}
	return nil
}

// Run blocks until ctx is done.
func (p *DomainWorkerPool) Run(ctx context.Context) error {
	if err := p.defaults(); err != nil {
		return err
	}

	err := p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return err
	}

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.runConsumer(ctx, consumer)
		}()
	}
	p.Logger.WithFields(logrus.Fields{"stream": p.Stream, "workers": p.NumWorkers}).Info("domain workers started")

	wg.Wait()
	return nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

func (p *DomainWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("xreadgroup failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *DomainWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	domain, _ := msg.Values["domain"].(string)
	log := p.Logger.WithFields(logrus.Fields{"redis_id": msg.ID, "domain": domain})
	if domain == "" {
		log.Warn("job without domain dropped")
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, p.JobTimeout)
	defer cancel()

	res, err := p.Domains.Check(jobCtx, domain)
	if err != nil {
		log.WithError(err).Warn("domain check failed")
		return
	}
	log.WithField("status", res.Status).Debug("domain checked")
}

// Scheduler periodically re-queues custom domains that are not yet valid.
type Scheduler struct {
	Domains  DomainChecker
	Interval time.Duration
	Logger   *logrus.Logger
}

// Run blocks until ctx is done. The first sweep happens immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Domains == nil {
		return errors.New("Scheduler missing dependency: Domains must be set")
	}
	if s.Interval <= 0 {
		s.Interval = 5 * time.Minute
	}
	if s.Logger == nil {
		s.Logger = logrus.New()
	}

	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	n, err := s.Domains.EnqueueStale(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.Logger.WithError(err).Warn("domain recheck sweep failed")
		}
		return
	}
	if n > 0 {
		s.Logger.WithField("queued", n).Info("domain rechecks queued")
	}
}
