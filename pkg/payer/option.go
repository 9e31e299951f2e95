package payer

import (
	"time"

	"github.com/NobleSOL/silverback-agent-sub002/pkg/api"
)

type Options struct {
	nonceFunc api.NonceFunc
	nowFunc   api.NowFunc
}

func NewOptions(opts ...Option) (*Options, error) {
	options := &Options{
		nonceFunc: api.DefaultNonce,
		nowFunc:   time.Now,
	}

	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (o *Options) NonceFunc() api.NonceFunc {
	return o.nonceFunc
}

func (o *Options) NowFunc() api.NowFunc {
	return o.nowFunc
}

type Option func(*Options) error

func WithNonceFunc(nonceFunc api.NonceFunc) Option {
	return func(o *Options) error {
		o.nonceFunc = nonceFunc

		return nil
	}
}

func WithNowFunc(nowFunc api.NowFunc) Option {
	return func(o *Options) error {
		o.nowFunc = nowFunc

		return nil
	}
}
