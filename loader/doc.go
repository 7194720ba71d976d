// SPDX-License-Identifier: EPL-2.0

// Package loader fetches encoded audio and decodes it off the caller's
// goroutine.
//
//	l := loader.New(loader.DefaultFetcher(), engineCtx, nil)
//	res := l.Load(ctx, "https://example.com/hit.ogg")
//
//	buf, err := res.Wait(ctx)
//	var lf *loader.LoadFailure
//	if errors.As(err, &lf) && lf.Stage == loader.StageDecode {
//	    // bytes arrived but were not audio
//	}
//
// A Result settles once. There is no retry and no timeout beyond what the
// caller's context imposes.
package loader
