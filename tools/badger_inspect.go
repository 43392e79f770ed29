package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"

	"team-lab/domain"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "team:", "Prefix to scan (team:, mbr:, inv:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Namespace", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()

			// The sequence key holds a raw counter, not a JSON document.
			if strings.HasPrefix(string(item.Key()), "seq:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				table.Append(describe(string(item.Key()), v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe renders one store entry as a table row. Invite tokens embedded
// in keys are truncated for readability.
func describe(key string, value []byte) []string {
	parts := strings.SplitN(key, ":", 3)
	namespace := parts[0]
	entityID := "-"
	if len(parts) >= 2 {
		entityID = parts[1]
	}

	displayKey := key
	if namespace == "inv" && len(parts) == 3 && len(parts[2]) > 12 {
		displayKey = fmt.Sprintf("%s:%s:%s...", parts[0], parts[1], parts[2][:12])
	}

	detail := fmt.Sprintf("%d bytes", len(value))
	switch namespace {
	case "team":
		var team domain.Team
		if err := json.Unmarshal(value, &team); err == nil {
			detail = fmt.Sprintf("%s [%s] created %s", team.Name, team.ActStatus, team.CreatedAt.Format(time.DateOnly))
		}
	case "mbr":
		var member domain.TeamMember
		if err := json.Unmarshal(value, &member); err == nil {
			detail = fmt.Sprintf("user %d role %s joined %s", member.UserID, member.Role, member.JoinedAt.Format(time.DateOnly))
		}
	case "inv":
		var invite domain.TeamInvitation
		if err := json.Unmarshal(value, &invite); err == nil {
			detail = fmt.Sprintf("issuer %d usage %d/%d [%s] until %s",
				invite.IssuerID, invite.UsageCurCnt, invite.UsageMaxCnt, invite.ActStatus, invite.EndAt.Format(time.DateTime))
		}
	}

	return []string{displayKey, namespace, entityID, detail}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
