// Package source provides ready-made producers for stream.PumpStream: fixed
// chunks, strings, channels, readers and generator functions, plus the Limit
// and Map combinators.
//
//	p := stream.NewPump(source.Limit(source.Generate(func() []byte {
//		return []byte("tick ")
//	}), 12))
//	data, _ := stream.ReadAll(p) // "tick tick ti"
package source
