// Package msgcache caches compiled ICU messages.
//
// A [Store] maps a key to an [icu.Message]. Two stores are provided:
//
//   - [Memory]: process-local, bounded LRU
//   - [Redis]: shared, serialized through a [Codec] ([JSONCodec] or [MsgpackCodec])
//
// [Compiler] puts a store in front of [icu.Compile]. Keys are the SHA-256 of
// the message source, so editing a message simply produces a new key.
//
//	c := msgcache.NewCompiler(msgcache.NewMemory())
//	msg, err := c.Compile(ctx, "Hello {name}!")
//	if err != nil {
//	    return err
//	}
//	out, err := icu.FormatString(msg, "en", icu.Values{"name": icu.String("Ada")})
//
// Concurrent compilations of the same source are collapsed with
// golang.org/x/sync/singleflight.
package msgcache
