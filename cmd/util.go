package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/dstjohniii/rand-db-jsonb-populate/internal/datagen"
)

const defaultPort = 5432

func buildConnStr(host string, port int, user, password, db, sslMode string) string {
	hostPort := host
	if port > 0 {
		hostPort = fmt.Sprintf("%s:%d", host, port)
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   hostPort,
		Path:   "/" + db,
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{sslMode}}.Encode()
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	return string(pass)
}

// formatPool renders the type pool one type per line, in catalog order.
func formatPool(catalog datagen.Catalog, pool datagen.Pool) string {
	var b strings.Builder
	for _, t := range catalog {
		values := pool[t.Name()]
		parts := make([]string, len(values))
		for i, v := range values {
			if s, ok := v.(string); ok {
				parts[i] = fmt.Sprintf("%q", s)
			} else {
				parts[i] = fmt.Sprint(v)
			}
		}
		fmt.Fprintf(&b, "  %s: [%s]\n", t.Name(), strings.Join(parts, ", "))
	}
	return b.String()
}

// formatSchema renders the field ids comma separated, grouped by prefix.
func formatSchema(schema datagen.Schema) string {
	groups := make(map[string][]string)
	for _, id := range schema {
		groups[id[:2]] = append(groups[id[:2]], id)
	}
	prefixes := make([]string, 0, len(groups))
	for p := range groups {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	var b strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&b, "  %s: %s\n", p, strings.Join(groups[p], ","))
	}
	return b.String()
}

type runSummary struct {
	RunID         string    `json:"run_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationSecs  float64   `json:"duration_secs"`
	Schema        string    `json:"schema"`
	Table         string    `json:"table"`
	RowsRequested int       `json:"rows_requested"`
	RowsInserted  int       `json:"rows_inserted"`
	RowsInTable   int64     `json:"rows_in_table"`
	Batches       int       `json:"batches"`
	PayloadBytes  int64     `json:"payload_bytes"`
	Fields        []string  `json:"fields"`
}

func writeSummaryJSON(summary runSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func rowsPerSec(rows int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return humanize.Comma(int64(float64(rows)/d.Seconds())) + " rows/s"
}

func log(format string, args ...interface{}) {
	fmt.Printf("[%s] "+format+"\n", append([]interface{}{time.Now().Format(time.RFC3339)}, args...)...)
}
