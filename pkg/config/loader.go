package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
)

// entry holds the parsed value of one configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*entry)
)

// Load parses the environment into v. Each configuration type is parsed at
// most once per process; later calls copy the cached value. A failed parse is
// cached too, so fix the environment and call ForceReloadConfig to retry.
//
// The default .env file in the working directory is loaded before the first
// parse if it exists.
//
//	type PoolConfig struct {
//		Workers int `env:"WORKERPOOL_WORKERS" envDefault:"4"`
//	}
//
//	var cfg PoolConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	e := lookup[T]()
	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})
	if e.err != nil {
		return e.err
	}
	*v = e.value.(T)
	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ForceReloadConfig drops the cached value of T and parses the environment again.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	cacheMu.Lock()
	delete(cache, typeOf[T]())
	cacheMu.Unlock()
	return Load(v)
}

// ResetCache forgets every cached configuration value.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func lookup[T any]() *entry {
	key := typeOf[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	e, ok := cache[key]
	if !ok {
		e = &entry{}
		cache[key] = e
	}
	return e
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
