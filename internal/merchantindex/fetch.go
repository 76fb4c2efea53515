package merchantindex

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSource is the published merchant dataset.
const DefaultSource = "https://raw.githubusercontent.com/shuvankr7/transaction/main/final_merchant_dataset.json"

// Fetch downloads and decodes the index with a single GET. It does not retry.
func Fetch(ctx context.Context, client *http.Client, url string) (*Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching merchant index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching merchant index: status %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

// ReadFile decodes an index stored on disk.
func ReadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening merchant index: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Load resolves source (an http(s) URL or a file path) into an index. Any failure is
// logged and yields an empty index: tagging degrades, startup continues.
func Load(ctx context.Context, source string, timeout time.Duration, log zerolog.Logger) *Index {
	if source == "" {
		log.Debug().Msg("merchant index disabled")
		return Empty()
	}

	var (
		ix  *Index
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		ix, err = Fetch(ctx, http.DefaultClient, source)
	} else {
		ix, err = ReadFile(source)
	}

	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("merchant index unavailable, tagging from keywords only")
		return Empty()
	}
	log.Debug().Str("source", source).Int("categories", ix.Len()).Msg("merchant index loaded")
	return ix
}
