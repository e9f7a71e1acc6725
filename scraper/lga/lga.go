package lga

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"airbnb-cleaner/config"
	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// Scraper retrieves the Victorian LGA reference table (area name, area in
// km², population density) and normalizes the area names so they can be
// joined against the listings' neighbourhood column.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use LGA table Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// tableRow mirrors what the page-side extraction returns per LGA.
type tableRow struct {
	Name    string `json:"name"`
	Area    string `json:"area"`
	Density string `json:"density"`
}

// Scrape fetches the reference page and returns the cleaned table.
func (s *Scraper) Scrape() ([]*models.LGARef, error) {
	s.logger.Info("[lga] Fetching reference table from %s", s.cfg.LGASourceURL)

	chromeBin := findChromeBinary()
	s.logger.Info("[lga] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var rows []tableRow

	err := s.retry.Do("fetch-lga-table", func() error {
		ctx, cancel := chromedp.NewContext(silentCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.Navigate(s.cfg.LGASourceURL),
			chromedp.Sleep(3*time.Second),

			// Pull every wikitable row whose header set looks like the LGA
			// table: a name column plus area and density columns.
			chromedp.Evaluate(`
				(function() {
					var results = [];
					var tables = document.querySelectorAll('table.wikitable');
					for (var t = 0; t < tables.length; t++) {
						var headers = Array.prototype.map.call(
							tables[t].querySelectorAll('th'),
							function(th) { return th.innerText.toLowerCase(); });
						var nameCol = -1, areaCol = -1, densityCol = -1;
						for (var h = 0; h < headers.length; h++) {
							if (nameCol < 0 && headers[h].indexOf('local government area') >= 0) nameCol = h;
							if (areaCol < 0 && headers[h].indexOf('area') >= 0 && headers[h].indexOf('km') >= 0) areaCol = h;
							if (densityCol < 0 && headers[h].indexOf('density') >= 0) densityCol = h;
						}
						if (nameCol < 0 || areaCol < 0 || densityCol < 0) continue;

						var trs = tables[t].querySelectorAll('tbody tr');
						for (var i = 0; i < trs.length; i++) {
							var cells = trs[i].querySelectorAll('td, th');
							if (cells.length <= Math.max(nameCol, areaCol, densityCol)) continue;
							var name = cells[nameCol].innerText.trim();
							if (!name || name.toLowerCase().indexOf('local government area') >= 0) continue;
							results.push({
								name:    name,
								area:    cells[areaCol].innerText.trim(),
								density: cells[densityCol].innerText.trim()
							});
						}
						if (results.length > 0) break;
					}
					return results;
				})()
			`, &rows),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("lga: scrape reference table: %w", err)
	}

	refs := cleanRows(rows, s.logger)
	if len(refs) == 0 {
		return nil, fmt.Errorf("lga: reference table extraction yielded no usable rows")
	}

	s.logger.Info("[lga] Scraped %d reference rows", len(refs))
	return refs, nil
}

// cleanRows normalizes raw table rows: the "City of "/"Shire of " prefix
// is stripped from the area name and the numeric cells are parsed with
// their thousands separators and footnote markers removed. Rows whose
// numerics cannot be parsed are dropped with a warning.
func cleanRows(rows []tableRow, logger *utils.Logger) []*models.LGARef {
	refs := make([]*models.LGARef, 0, len(rows))

	for _, row := range rows {
		area, areaOK := parseCellNumber(row.Area)
		density, densityOK := parseCellNumber(row.Density)
		if !areaOK || !densityOK {
			logger.Warn("[lga] Skipping reference row %q: bad numerics (area %q, density %q)",
				row.Name, row.Area, row.Density)
			continue
		}

		refs = append(refs, &models.LGARef{
			Name:    NormalizeName(row.Name),
			AreaKm2: area,
			Density: density,
		})
	}
	return refs
}

// NormalizeName strips the administrative prefix from an LGA name so it
// matches the listings' join key form.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range []string{"City of ", "Shire of "} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(name, prefix))
		}
	}
	return name
}

// parseCellNumber parses a wiki table numeric cell, tolerating thousands
// separators and trailing footnote references.
func parseCellNumber(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if i := strings.IndexAny(cell, "[("); i >= 0 {
		cell = strings.TrimSpace(cell[:i])
	}
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
