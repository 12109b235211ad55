package docroot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("javalink.docroot")

// Fetcher reads package manifests over HTTP(S) and from file URLs.
type Fetcher struct {
	Client *http.Client
	// Concurrency bounds the number of manifests fetched at once.
	Concurrency int
}

func NewFetcher(timeout time.Duration) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &Fetcher{
		Client:      &http.Client{Transport: transport, Timeout: timeout},
		Concurrency: 4,
	}
}

// Build fetches the manifest of every docroot and merges them in
// configuration order. A docroot that cannot be read is skipped; the
// returned warnings say which, and which packages were listed twice.
func (f *Fetcher) Build(ctx context.Context, roots []Docroot) (*Registry, []string) {
	type result struct {
		loc      Location
		packages []string
		warning  string
	}
	results := make([]result, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	if f.Concurrency > 0 {
		g.SetLimit(f.Concurrency)
	}
	for i, root := range roots {
		g.Go(func() error {
			loc, err := root.Locate()
			if err != nil {
				results[i].warning = err.Error()
				return nil
			}
			results[i].loc = loc
			packages, err := f.Fetch(gctx, loc)
			if err != nil {
				log.Debugf("%s: %s", root.Root, err)
				results[i].warning = fmt.Sprintf("could not get %s; some links may not resolve", loc.Manifests()[0])
				return nil
			}
			results[i].packages = packages
			return nil
		})
	}
	g.Wait()

	registry := NewRegistry()
	var warnings []string
	for _, r := range results {
		if r.warning != "" {
			log.Warning(r.warning)
			warnings = append(warnings, r.warning)
			continue
		}
		entry := Entry{Base: r.loc.Base, Version: r.loc.Version}
		for _, pkg := range r.packages {
			if !registry.Add(pkg, entry) {
				w := fmt.Sprintf("duplicate package '%s' in %s", pkg, r.loc.ManifestRoot)
				log.Warning(w)
				warnings = append(warnings, w)
			}
		}
	}
	log.Infof("%d documented packages from %d docroots", registry.Len(), len(roots))
	return registry, warnings
}

// Fetch returns the packages listed by the first manifest of loc that can
// be read.
func (f *Fetcher) Fetch(ctx context.Context, loc Location) ([]string, error) {
	var lastErr error
	for _, manifest := range loc.Manifests() {
		packages, err := f.fetchManifest(ctx, manifest)
		if err == nil {
			return packages, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (f *Fetcher) fetchManifest(ctx context.Context, manifest string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifest, nil)
	if err != nil {
		return nil, errors.Errorf("fetching %s: %w", manifest, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Errorf("fetching %s: %w", manifest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching %s: %s", manifest, resp.Status)
	}
	return ParseManifest(resp.Body)
}

// ParseManifest reads one package name per line. Module lines of an
// element-list and blank lines are skipped.
func ParseManifest(r io.Reader) ([]string, error) {
	var packages []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "module:") {
			continue
		}
		packages = append(packages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}
	return packages, nil
}
