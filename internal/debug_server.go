package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Key       string
	Namespace string
	EntityID  string
	Detail    string
}

type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// StartDebugServer exposes a read-only HTML view over the badger keyspace
// (teams, memberships, invitations) plus live gateway counters. Meant for
// local operations only; never mount it on a public interface.
func StartDebugServer(db *badger.DB, port int, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "team:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		type rawRow struct {
			key string
			val []byte
		}
		var rows []rawRow
		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					rows = append(rows, rawRow{key: string(item.Key()), val: append([]byte(nil), val...)})
					return nil
				})
			}
			return nil
		})
		data.Items = lo.Map(rows, func(row rawRow, _ int) InspectRow {
			return mapRow(row.key, row.val)
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("127.0.0.1:%d", port), mux)
	}()
}

// mapRow renders one store entry. Values are JSON documents; invitation
// tokens embedded in keys are truncated so the page stays readable.
func mapRow(key string, val []byte) InspectRow {
	parts := strings.SplitN(key, ":", 3)
	row := InspectRow{
		Key:       key,
		Namespace: parts[0],
		EntityID:  "-",
	}
	if len(parts) >= 2 {
		row.EntityID = parts[1]
	}
	if row.Namespace == "inv" && len(parts) == 3 && len(parts[2]) > 12 {
		row.Key = fmt.Sprintf("%s:%s:%s...", parts[0], parts[1], parts[2][:12])
	}

	var doc map[string]any
	if err := json.Unmarshal(val, &doc); err != nil {
		row.Detail = fmt.Sprintf("%d bytes", len(val))
		return row
	}
	pretty, err := json.Marshal(doc)
	if err != nil {
		row.Detail = fmt.Sprintf("%d bytes", len(val))
		return row
	}
	row.Detail = string(pretty)
	return row
}
