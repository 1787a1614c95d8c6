package twse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"twse_codes/internal/feature/codes/domain/entity"
	"twse_codes/internal/feature/codes/usecase"

	"github.com/PuerkitoBio/goquery"
)

// strModes maps each source category to the strMode query value of C_public.jsp.
var strModes = map[entity.Category]string{
	entity.CategoryTWSE:   "2",
	entity.CategoryOTC:    "4",
	entity.CategoryFuture: "11",
}

// fullwidthSpace joins code and name inside the first cell of a listing row.
const fullwidthSpace = "　"

// futureSecurityType is the fixed 類別 for everything on the futures page.
const futureSecurityType = "指數"

// Client fetches and parses the C_public.jsp listing pages.
type Client struct {
	cfg    Config
	client *http.Client
}

// Client implements the CodeFetcher interface, verified at compile time.
var _ usecase.CodeFetcher = (*Client)(nil)

// NewClient creates a new listing client with the given configuration and
// HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Fetch downloads the listing page for the given category and parses it into
// normalized records. Rows the parser cannot shape are counted in the report
// as skipped rather than failing the download.
func (c *Client) Fetch(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
	mode, ok := strModes[category]
	if !ok {
		return nil, entity.FetchReport{}, fmt.Errorf("no listing page for category %q", category)
	}

	u := fmt.Sprintf("%s/isin/C_public.jsp?strMode=%s", c.cfg.BaseURL, mode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, entity.FetchReport{}, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, entity.FetchReport{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, entity.FetchReport{}, fmt.Errorf("twse http %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, entity.FetchReport{}, err
	}
	return parseListing(doc, category)
}

// parseListing walks the rows of the `h4` listing table. The first row is the
// column header. On the TWSE and OTC pages a row with a single cell carries
// the security type (股票, ETF, ...) for the data rows that follow; the
// futures page has no separator rows and every product is an index.
func parseListing(doc *goquery.Document, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
	table := doc.Find("table.h4").First()
	if table.Length() == 0 {
		return nil, entity.FetchReport{}, fmt.Errorf("listing table not found on %s page", category)
	}

	report := entity.FetchReport{Category: category}
	var records []entity.CodeRecord

	securityType := ""
	if category == entity.CategoryFuture {
		securityType = futureSecurityType
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := cellTexts(row)
		if len(cells) == 0 {
			report.Skipped = append(report.Skipped, entity.SkippedRow{Row: i + 1, Reason: "row has no cells"})
			return
		}
		if category != entity.CategoryFuture && len(cells) == 1 {
			securityType = cells[0]
			return
		}

		code, name, ok := splitCodeName(cells[0])
		if !ok {
			report.Skipped = append(report.Skipped, entity.SkippedRow{
				Row:    i + 1,
				Reason: fmt.Sprintf("cannot split code and name in %q", cells[0]),
			})
			return
		}
		if code == "" {
			report.Skipped = append(report.Skipped, entity.SkippedRow{Row: i + 1, Reason: "empty code"})
			return
		}

		rec := entity.CodeRecord{
			Code:         code,
			Name:         name,
			Category:     category,
			SecurityType: securityType,
		}
		if category == entity.CategoryFuture {
			// 代號及名稱, ISIN, 上市日, CFICode, 備註; no market or industry column.
			rec.ISIN = cellAt(cells, 1)
			rec.ListingDate = cellAt(cells, 2)
			rec.CFICode = cellAt(cells, 3)
			rec.Remark = cellAt(cells, 4)
		} else {
			rec.ISIN = cellAt(cells, 1)
			rec.ListingDate = cellAt(cells, 2)
			rec.Market = cellAt(cells, 3)
			rec.Industry = cellAt(cells, 4)
			rec.CFICode = cellAt(cells, 5)
			rec.Remark = cellAt(cells, 6)
		}
		records = append(records, rec)
		report.Accepted++
	})

	return records, report, nil
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	return cells
}

// splitCodeName breaks the combined first cell into code and name. The two
// parts are joined by a fullwidth space; ASCII spaces inside the code part
// are upstream padding and are removed.
func splitCodeName(cell string) (code, name string, ok bool) {
	parts := strings.SplitN(cell, fullwidthSpace, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.ReplaceAll(parts[0], " ", ""), strings.TrimSpace(parts[1]), true
}

// cellAt reads a cell by position, tolerating rows with fewer trailing
// columns than the header.
func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
