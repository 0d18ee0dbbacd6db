package telemetry

import (
	"context"
	"net"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MonitorRedis traces dials and commands of r to the debug level of log.
func MonitorRedis(r redis.UniversalClient, log zerolog.Logger) {
	r.AddHook(redisLog{log: log.With().Str("component", "redis").Logger()})
}

type redisLog struct {
	log zerolog.Logger
}

func (h redisLog) DialHook(hook redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := hook(ctx, network, addr)
		if err != nil {
			h.log.Error().Err(err).Str("addr", addr).Msg("redis: dial failed")
			return conn, err
		}
		h.log.Debug().Str("network", network).Str("addr", addr).Msg("redis: dialed")
		return conn, nil
	}
}

func (h redisLog) ProcessHook(hook redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := hook(ctx, cmd)
		if err != nil && err != redis.Nil {
			h.log.Error().Err(err).Str("cmd", cmd.Name()).Msg("redis: command failed")
			return err
		}
		h.log.Debug().Str("cmd", cmd.Name()).Msg("redis: processed")
		return err
	}
}

func (h redisLog) ProcessPipelineHook(hook redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := hook(ctx, cmds)
		h.log.Debug().Int("cmds", len(cmds)).Err(err).Msg("redis: pipeline processed")
		return err
	}
}
