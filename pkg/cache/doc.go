// Package cache stores computed layout records.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the XDG cache directory), [RedisCache] for server
// deployments that share results between instances, and [NullCache] when
// caching is disabled. Keys come from a [Keyer]; [DefaultKeyer] hashes the
// source text hash together with the layout options, and [ScopedKeyer]
// prefixes keys per frontend.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(cache.Hash(src), opts)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    ...
//	}
package cache
