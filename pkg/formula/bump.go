package formula

import (
	"context"
	"strings"
	"sync"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultBumpConcurrency bounds parallel artifact downloads
const DefaultBumpConcurrency = 4

// Fetcher computes the SHA-256 of a remote artifact
type Fetcher interface {
	Checksum(ctx context.Context, url string) (string, error)
}

// BumpOptions controls Bump
type BumpOptions struct {
	Concurrency int
}

// Bump moves the formula to version, recomputes every platform URL from the
// url template and refreshes the checksums by downloading each artifact.
// The formula is left untouched when any download fails.
func (f *Formula) Bump(ctx context.Context, fetcher Fetcher, version string, opts BumpOptions) error {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" {
		return errors.New(errors.ErrInvalidInput, "version is required")
	}
	if f.URLTemplate == "" {
		return errors.New(errors.ErrFormulaInvalid, "url_template is required to bump a formula")
	}
	if len(f.Platforms) == 0 {
		return errors.New(errors.ErrFormulaInvalid, "formula has no platforms")
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultBumpConcurrency
	}

	logger := logging.GetLogger("formula")
	next := *f
	next.Version = version

	var mu sync.Mutex
	updated := make(map[string]Artifact, len(f.Platforms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, goos := range f.OrderedPlatforms() {
		goos := goos
		a := f.Platforms[goos]
		url := next.ExpandURL(goos, a.Arch)
		g.Go(func() error {
			sum, err := fetcher.Checksum(gctx, url)
			if err != nil {
				return errors.Wrapf(err, errors.ErrDownload, "failed to fetch %s artifact", goos).
					WithDetail("url", url)
			}
			logger.Debug().Str("os", goos).Str("url", url).Str("sha256", sum).Msg("Computed checksum")

			mu.Lock()
			updated[goos] = Artifact{URL: url, SHA256: sum, Arch: a.Arch}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.Version = version
	f.Platforms = updated
	logger.Info().Str("version", version).Int("platforms", len(updated)).Msg("Bumped formula")
	return nil
}
