package kv

import (
	"context"

	radix "github.com/mediocregopher/radix/v3"
)

type redisKV struct {
	client radix.Client
}

// NewRedis 基于 Redis 的键值存储
func NewRedis(client radix.Client) KV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	mn := radix.MaybeNil{Rcv: &value}
	if err := r.client.Do(radix.Cmd(&mn, "GET", key)); err != nil {
		return "", false, err
	}
	if mn.Nil {
		return "", false, nil
	}
	return value, true, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Do(radix.Cmd(nil, "SET", key, value))
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.client.Do(radix.Cmd(nil, "DEL", key))
}
