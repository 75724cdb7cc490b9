package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/signalsfoundry/orbital-atlas/core"
)

// LoadOptions tunes a dataset load. The zero value is fully usable: the
// delimiter is sniffed from the header line, thresholds and disc radius
// fall back to their defaults, and the year range is clamped to the wall
// clock.
type LoadOptions struct {
	// Delimiter is the column separator; 0 sniffs comma vs tab from the
	// header line, since the source views export both.
	Delimiter rune

	// Thresholds for the LEO predicate; zero value means
	// DefaultLEOThresholds.
	Thresholds LEOThresholds

	// DiscRadius anchors the layout annulus; non-positive means the core
	// default.
	DiscRadius float64

	// Now clamps the upper end of the year range. Zero means time.Now.
	// Tests pin it for reproducible ranges.
	Now time.Time
}

// Load reads a catalog snapshot from r and builds the working set: parse
// each row, keep only LEO-eligible records, derive layout per record.
//
// Row-level failures are counted, not surfaced; catalog exports always
// contain some unusable rows. A dataset that yields zero usable records is
// a fatal condition for the view and fails the load outright.
func Load(r io.Reader, opts LoadOptions) (*Catalog, error) {
	if opts.Thresholds == (LEOThresholds{}) {
		opts.Thresholds = DefaultLEOThresholds
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	br := bufio.NewReader(r)
	delim := opts.Delimiter
	if delim == 0 {
		var err error
		delim, err = sniffDelimiter(br)
		if err != nil {
			return nil, fmt.Errorf("catalog.Load: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: read header: %w", err)
	}
	schema, err := ResolveSchema(header)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}

	gen := core.NewLayoutGenerator(opts.DiscRadius)

	cat := &Catalog{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog.Load: row %d: %w", cat.stats.RowsRead+1, err)
		}

		rowIndex := cat.stats.RowsRead
		cat.stats.RowsRead++

		rec := ParseRow(schema, row, rowIndex)
		if rec == nil {
			cat.stats.Rejected++
			continue
		}
		if !opts.Thresholds.IsLEO(rec) {
			cat.stats.Ineligible++
			continue
		}

		rec.Layout = gen.For(rec.CatalogID)
		cat.records = append(cat.records, *rec)
	}
	cat.stats.Kept = len(cat.records)

	if cat.stats.Kept == 0 {
		return nil, fmt.Errorf("catalog.Load: no usable records (%d rows read, %d rejected, %d ineligible)",
			cat.stats.RowsRead, cat.stats.Rejected, cat.stats.Ineligible)
	}

	cat.minYear, cat.maxYear = launchYearRange(cat, now)
	cat.types = distinctTypes(cat.records)
	return cat, nil
}

// sniffDelimiter inspects the buffered header line and picks tab when tabs
// outnumber commas. The reader is not consumed.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	peek, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, fmt.Errorf("sniff delimiter: %w", err)
	}
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, "\t") > strings.Count(line, ",") {
		return '\t', nil
	}
	return ',', nil
}

func launchYearRange(cat *Catalog, now time.Time) (min, max int) {
	min = cat.records[0].LaunchDate.Year()
	max = min
	for i := range cat.records {
		y := cat.records[i].LaunchDate.Year()
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	if current := now.Year(); max > current {
		max = current
	}
	return min, max
}
